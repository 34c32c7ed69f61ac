// Package error defines domain-specific errors for the PocketLedger application.
package error

import "errors"

// Budget goal domain errors.
var (
	// ErrBudgetGoalNotFound is returned when a budget goal is not found.
	ErrBudgetGoalNotFound = errors.New("budget goal not found")

	// ErrInvalidBudgetAmount is returned when the limit amount is not positive.
	ErrInvalidBudgetAmount = errors.New("budget amount must be positive")

	// ErrInvalidBudgetPeriod is returned when the period is invalid.
	ErrInvalidBudgetPeriod = errors.New("budget period must be 'monthly' or 'yearly'")

	// ErrBudgetCategoryNotFound is returned when the targeted category does not exist.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrBudgetCategoryNotBudgetable is returned when targeting an income-kind category.
	ErrBudgetCategoryNotBudgetable = errors.New("income categories cannot be budgeted")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	ErrCodeBudgetNotFound           BudgetErrorCode = "BDG-010001"
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BDG-010002"
	ErrCodeInvalidBudgetPeriod      BudgetErrorCode = "BDG-010003"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BDG-010004"
	ErrCodeBudgetCategoryNotAllowed BudgetErrorCode = "BDG-010005"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
