package apperrors

import "errors"

// Error kinds the HTTP layer maps to status codes
var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrValidationFailed    = errors.New("validation failed")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewValidationError creates a new custom error for a rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewConstraintViolationError creates a new custom error for a write the store refused
func NewConstraintViolationError(message string) error {
	return &CustomError{Err: ErrConstraintViolation, Message: message}
}

// Message returns the user-facing message of err, or fallback when err carries none
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// CustomError pairs an error kind with the message shown to the client
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
