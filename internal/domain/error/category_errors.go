// Package error defines domain-specific errors for the PocketLedger application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrEmptyCategoryName is returned when the category name is empty.
	ErrEmptyCategoryName = errors.New("category name cannot be empty")

	// ErrInvalidCategoryIcon is returned when the icon identifier is not in the supported set.
	ErrInvalidCategoryIcon = errors.New("unsupported category icon")

	// ErrInvalidCategoryKind is returned when the category kind is invalid.
	ErrInvalidCategoryKind = errors.New("invalid category kind")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	ErrCodeCategoryNotFound    CategoryErrorCode = "CAT-010001"
	ErrCodeEmptyCategoryName   CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryIcon CategoryErrorCode = "CAT-010003"
	ErrCodeInvalidCategoryKind CategoryErrorCode = "CAT-010004"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
