// Package apperrors defines the failure kinds returned by the core services.
// Callers branch on the kind, never on the message text.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind is a machine-readable failure category.
type Kind string

const (
	KindInternal        Kind = "internal"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindCutoffViolation Kind = "cutoff_violation"
	KindValidation      Kind = "validation_error"
	KindNotReady        Kind = "not_ready"
	KindForbidden       Kind = "forbidden"
)

// Error is the domain error type carried across service boundaries.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so the
// sentinels below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict        = &Error{Kind: KindConflict, Message: "conflict"}
	ErrCutoffViolation = &Error{Kind: KindCutoffViolation, Message: "cutoff violation"}
	ErrValidation      = &Error{Kind: KindValidation, Message: "validation error"}
	ErrNotReady        = &Error{Kind: KindNotReady, Message: "not ready"}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: "forbidden"}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func CutoffViolation(message string) *Error { return New(KindCutoffViolation, message) }
func Validation(message string) *Error      { return New(KindValidation, message) }
func NotReady(message string) *Error        { return New(KindNotReady, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to the status code the API layer responds with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindNotReady:
		return http.StatusConflict
	case KindCutoffViolation:
		return http.StatusUnprocessableEntity
	case KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
