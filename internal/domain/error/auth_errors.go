// Package error defines domain-specific errors for the PocketLedger application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrAuthRequired is returned when a mutation is attempted with no signed-in user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials is returned when email/password verification fails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailAlreadyRegistered is returned when registering an email that is taken.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrUserNotFound is returned when no user exists for the given identity.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when a token fails validation.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidEmail is returned when the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword is returned when a password fails the strength check.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	ErrCodeAuthRequired       AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-010002"
	ErrCodeEmailTaken         AuthErrorCode = "AUTH-010003"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-010004"
	ErrCodeInvalidToken       AuthErrorCode = "AUTH-010005"
	ErrCodeMissingToken       AuthErrorCode = "AUTH-010006"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-010007"
	ErrCodeInvalidEmail       AuthErrorCode = "AUTH-010008"
	ErrCodeWeakPassword       AuthErrorCode = "AUTH-010009"
)

// AuthError represents an auth error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
