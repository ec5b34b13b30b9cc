package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error for the caller.
type Kind string

const (
	// KindValidation marks user-correctable input or business-rule violations.
	KindValidation Kind = "validation"
	// KindConflict marks concurrency-induced failures; the caller should
	// re-query availability rather than retry the same slot.
	KindConflict Kind = "conflict"
	// KindConfiguration marks missing or broken operator configuration.
	KindConfiguration Kind = "configuration"
	// KindNotFound marks lookups for records that do not exist.
	KindNotFound Kind = "not_found"
)

// AppError is a custom error type that carries a domain error kind.
type AppError struct {
	Kind    Kind   // Error classification
	Message string // User-facing error message naming the violated rule
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(kind Kind, format string, args ...any) *AppError {
	return &AppError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsKind reports whether err is (or wraps) an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
