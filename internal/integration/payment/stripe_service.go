// Package payment implements the payment provider adapter with Stripe.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// stripeService implements the adapter.PaymentService interface.
type stripeService struct{}

// NewStripeService creates a Stripe-backed payment service. The secret key is
// process-wide state in the Stripe SDK.
func NewStripeService(secretKey string) adapter.PaymentService {
	stripe.Key = secretKey
	return &stripeService{}
}

// CreatePaymentIntent creates a payment intent with Stripe.
func (s *stripeService) CreatePaymentIntent(ctx context.Context, input adapter.CreatePaymentIntentInput) (*adapter.CreatePaymentIntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.Amount),
		Currency: stripe.String(input.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &adapter.CreatePaymentIntentResult{ClientSecret: intent.ClientSecret}, nil
}
