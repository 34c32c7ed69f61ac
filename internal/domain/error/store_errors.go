// Package error defines domain-specific errors for the PocketLedger application.
package error

import "errors"

// Remote store errors.
var (
	// ErrRemoteWriteFailure is returned when a store write could not be applied.
	ErrRemoteWriteFailure = errors.New("remote write failed")

	// ErrRemoteReadFailure is returned when a store read could not be served.
	ErrRemoteReadFailure = errors.New("remote read failed")

	// ErrStoreClosed is returned when an operation is attempted on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// StoreErrorCode defines error codes for remote store errors.
// Format: STO-XXYYYY where XX is category and YYYY is specific error.
type StoreErrorCode string

const (
	ErrCodeRemoteWrite StoreErrorCode = "STO-010001"
	ErrCodeRemoteRead  StoreErrorCode = "STO-010002"
	ErrCodeStoreClosed StoreErrorCode = "STO-010003"
)

// StoreError represents a remote store error with code and message.
type StoreError struct {
	Code    StoreErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given code and message.
func NewStoreError(code StoreErrorCode, message string, err error) *StoreError {
	return &StoreError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
