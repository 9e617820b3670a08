package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound  = errors.New("resource not found")
	ErrConflict          = errors.New("conflict")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Persistence errors
	ErrConnectionFailed = errors.New("failed to establish database connection")
	ErrPersistence      = errors.New("persistence failure")

	// Domain errors
	ErrBusinessRule    = errors.New("business rule violated")
	ErrUnknownExamType = errors.New("unknown exam type")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewBusinessRuleError wraps a message raised by the data layer so the
// caller can surface it verbatim with a 400.
func NewBusinessRuleError(message string) error {
	return &CustomError{
		Err:     ErrBusinessRule,
		Message: message,
	}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}
