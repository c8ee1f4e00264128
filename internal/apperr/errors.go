// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindPermission
	KindUnauthorized
	KindConflict
)

// Error is an application error carrying a kind, a stable code and a message
type Error struct {
	Kind    Kind                   `json:"-"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	cause   error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error kind to an HTTP status code
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindPermission:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithDetail attaches a detail entry and returns the same error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func newError(kind Kind, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing tour, POI or project
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, "NOT_FOUND", format, args...)
}

// Validation reports invalid client input
func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, "VALIDATION_ERROR", format, args...)
}

// Permission reports a principal that is not a member of the owning group
func Permission(format string, args ...interface{}) *Error {
	return newError(KindPermission, "PERMISSION_DENIED", format, args...)
}

// Unauthorized reports a missing or invalid credential
func Unauthorized(format string, args ...interface{}) *Error {
	return newError(KindUnauthorized, "UNAUTHORIZED", format, args...)
}

// Conflict reports a request that clashes with current state
func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, "CONFLICT", format, args...)
}

// Internal wraps an unexpected failure
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_SERVER_ERROR", Message: message, cause: err}
}

// As extracts an *Error from err. Errors of other types are reported as internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err, "Internal server error")
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
