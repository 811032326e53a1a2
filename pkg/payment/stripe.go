package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"github.com/noah-isme/eduspark-api/pkg/config"
)

// StripeGateway creates card PaymentIntents through the Stripe API.
type StripeGateway struct {
	intents  paymentintent.Client
	currency string
}

// NewStripe builds a gateway bound to the configured secret key.
func NewStripe(cfg config.PaymentConfig) *StripeGateway {
	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{
		intents:  paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.SecretKey},
		currency: currency,
	}
}

// CreateIntent opens a PaymentIntent for amount in the smallest currency unit
// and returns its client secret.
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
