package dto

// CreatePaymentIntentRequest represents the request body for starting a payment.
// Amount is in the currency's minor unit.
type CreatePaymentIntentRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency,omitempty"`
}

// CreatePaymentIntentResponse carries the client secret for confirming the payment.
type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}
