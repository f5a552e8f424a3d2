// Package apperrors defines the application error taxonomy. Every error that
// crosses the service boundary carries a machine-readable code and the HTTP
// status it maps to; persistence-layer errors are sanitized before they get
// here so driver text never reaches a client.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error is an application-level error with a code and HTTP status mapping.
type Error struct {
	Code    string
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains. The cause is
// for logs only; it is never serialized into a response.
func (e *Error) Unwrap() error {
	return e.cause
}

// Validationf reports a client-input or business-rule violation (HTTP 400).
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest}
}

// NotFoundf reports an absent entity (HTTP 404).
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...), Status: http.StatusNotFound}
}

// Conflictf reports a duplicate-identifier or state conflict (HTTP 409).
func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...), Status: http.StatusConflict}
}

// Internal wraps an unexpected failure under a sanitized message (HTTP 500).
// The cause stays attached for logging but is not part of the message.
func Internal(message string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError, cause: cause}
}

// From extracts the application error from err, or wraps err as a generic
// internal error when it carries no taxonomy information.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == CodeValidation
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == CodeNotFound
}
