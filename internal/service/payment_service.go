package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

// Intent amounts in minor units. Stripe rejects charges outside this range.
const (
	MinIntentAmount int64 = 50
	MaxIntentAmount int64 = 99_999_999
)

type paymentGateway interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
}

// PaymentIntentRequest carries the class price in major currency units.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// PaymentIntentResponse returns the secret the client confirms the card payment with.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentService opens payment intents for class purchases.
type PaymentService struct {
	gateway   paymentGateway
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(gateway paymentGateway, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PaymentService{gateway: gateway, validator: validate, logger: logger}
}

// CreateIntent converts price to cents and asks the provider for a client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, caller models.Identity, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid price")
	}
	cents := math.Round(req.Price * 100)
	if cents < float64(MinIntentAmount) || cents > float64(MaxIntentAmount) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "price is outside the chargeable range")
	}
	amount := int64(cents)

	secret, err := s.gateway.CreateIntent(ctx, amount)
	if err != nil {
		s.logger.Warn("payment intent failed", zap.String("email", caller.Email), zap.Int64("amount", amount), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrPayment.Code, appErrors.ErrPayment.Status, appErrors.ErrPayment.Message)
	}
	return &PaymentIntentResponse{ClientSecret: secret}, nil
}
