// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// CreatePaymentIntentInput represents a payment intent request. Amount is in
// the currency's minor units.
type CreatePaymentIntentInput struct {
	Amount   int64
	Currency string
}

// CreatePaymentIntentResult carries the client secret used by the UI to
// confirm the payment.
type CreatePaymentIntentResult struct {
	ClientSecret string
}

// PaymentService defines the single request/response call delegated to the
// external payment processor.
type PaymentService interface {
	// CreatePaymentIntent creates a payment intent with the provider.
	CreatePaymentIntent(ctx context.Context, input CreatePaymentIntentInput) (*CreatePaymentIntentResult, error)
}
