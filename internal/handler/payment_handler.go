package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/internal/service"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

type intentCreator interface {
	CreateIntent(ctx context.Context, caller models.Identity, req service.PaymentIntentRequest) (*service.PaymentIntentResponse, error)
}

// PaymentHandler opens payment intents.
type PaymentHandler struct {
	service intentCreator
}

// NewPaymentHandler constructs a payment handler.
func NewPaymentHandler(svc intentCreator) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// CreateIntent godoc
// @Summary Create payment intent
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.PaymentIntentRequest true "Price"
// @Success 200 {object} service.PaymentIntentResponse
// @Failure 502 {object} response.ErrorBody
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.CreateIntent(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
