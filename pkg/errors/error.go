package errors

import (
	"errors"
	"fmt"
)

// Re-export the standard library helpers so callers only import one errors package.
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error extends the basic error interface with a wire code.
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError is the default Error implementation. Description is the
// human-readable text sent to clients; cause is never serialized.
type AppError struct {
	code        string
	description string
	cause       error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.description, e.cause.Error())
	}
	return e.description
}

func (e *AppError) Code() string {
	return e.code
}

// Description returns the client-safe message without the cause chain.
func (e *AppError) Description() string {
	return e.description
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError creates a new application error.
func NewAppError(code string, description string, cause error) *AppError {
	return &AppError{
		code:        code,
		description: description,
		cause:       cause,
	}
}

// Wrap wraps an existing error, preserving the code of an inner AppError.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), description, err)
	}

	return NewAppError(CodeInternal, description, err)
}
