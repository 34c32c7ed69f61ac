// Package error defines domain-specific errors for the PocketLedger application.
package error

import "errors"

// Payment collaborator errors.
var (
	// ErrInvalidPaymentAmount is returned when the payment amount is not positive.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

	// ErrPaymentProviderFailure is returned when the payment provider call fails.
	ErrPaymentProviderFailure = errors.New("payment provider request failed")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	ErrCodeInvalidPaymentAmount   PaymentErrorCode = "PAY-010001"
	ErrCodePaymentProviderFailure PaymentErrorCode = "PAY-010002"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
