package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation violates a state invariant,
// e.g. opening a session while another one is still active.
var ErrConflict = errors.New("conflict with current state")

// ErrInsufficientFunds indicates that an expense would exceed the
// session's current balance at registration time.
var ErrInsufficientFunds = errors.New("insufficient funds")

// AppError wraps unexpected failures (typically storage faults) with an
// internal code and a human readable message. Callers should treat it as
// fatal for the operation; in-memory state is never left half-applied.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound
// via errors.Is, carrying a resource specific message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
