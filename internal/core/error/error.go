package errx

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError so callers can branch without string matching.
type Kind string

const (
	KindInternal    Kind = "internal"
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindUnavailable Kind = "unavailable"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
)

// AppError wraps an underlying error with a kind and a safe message.
type AppError struct {
	Err     error
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, kind Kind, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Message: message,
	}
}

// Validation reports invalid input or configuration.
func Validation(format string, args ...any) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of the first AppError in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
