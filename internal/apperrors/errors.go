package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBusinessRule indicates a ledger business rule was violated
// (unbalanced transaction, insufficient balance, inactive account).
var ErrBusinessRule = errors.New("business rule violation")

// ErrConflict indicates the operation conflicts with current state
// (already verified, EOD job already executed, prior job not completed).
var ErrConflict = errors.New("conflicting state")

// ErrConfiguration indicates required configuration is missing
// (System_Date not set, sub-product without GL mapping, no rate configured).
var ErrConfiguration = errors.New("configuration missing")

// ErrInvariant indicates a bookkeeping invariant does not hold
// (trial balance DR != CR, Job-5 cross-check failure).
var ErrInvariant = errors.New("invariant violation")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish code and a message
// suitable for logging. Repositories produce these; handlers unwrap the
// sentinel via errors.Is.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
