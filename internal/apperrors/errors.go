package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a negative or non-numeric monetary or quantity input.
// It is a validation error, so errors.Is(err, ErrValidation) also holds.
var ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

// ErrInvalidName indicates an empty or whitespace-only name.
var ErrInvalidName = fmt.Errorf("%w: invalid name", ErrValidation)

// ErrReorderFailed indicates that a batch order update did not commit.
// The collection has already been resynced from the store when this is returned,
// so callers only need to surface it and may retry.
var ErrReorderFailed = errors.New("reorder failed")

// AppError wraps an infrastructure failure with an HTTP-ish status code and a message.
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
