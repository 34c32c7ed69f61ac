// Package payment contains the premium-upgrade payment use case.
package payment

import (
	"context"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// CreatePaymentIntentInput represents the input for starting a card payment.
type CreatePaymentIntentInput struct {
	Amount   int64
	Currency string
}

// CreatePaymentIntentOutput represents the output of starting a card payment.
type CreatePaymentIntentOutput struct {
	ClientSecret string
}

// CreatePaymentIntentUseCase handles payment intent creation logic.
type CreatePaymentIntentUseCase struct {
	paymentService  adapter.PaymentService
	defaultCurrency string
}

// NewCreatePaymentIntentUseCase creates a new CreatePaymentIntentUseCase instance.
func NewCreatePaymentIntentUseCase(paymentService adapter.PaymentService, defaultCurrency string) *CreatePaymentIntentUseCase {
	return &CreatePaymentIntentUseCase{
		paymentService:  paymentService,
		defaultCurrency: defaultCurrency,
	}
}

// Execute starts the payment and returns the client secret the caller needs
// to confirm it. Amounts are in the currency's minor unit.
func (uc *CreatePaymentIntentUseCase) Execute(ctx context.Context, input CreatePaymentIntentInput) (*CreatePaymentIntentOutput, error) {
	if input.Amount <= 0 {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be positive",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	currency := input.Currency
	if currency == "" {
		currency = uc.defaultCurrency
	}

	result, err := uc.paymentService.CreatePaymentIntent(ctx, adapter.CreatePaymentIntentInput{
		Amount:   input.Amount,
		Currency: currency,
	})
	if err != nil {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodePaymentProviderFailure,
			"payment provider rejected the request",
			err,
		)
	}
	return &CreatePaymentIntentOutput{ClientSecret: result.ClientSecret}, nil
}
