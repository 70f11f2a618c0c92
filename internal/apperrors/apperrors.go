// Package apperrors defines the typed failures the catalog services raise.
// Every failure maps to one of the envelope status codes: 400 for validation
// and business-rule violations, 404 for missing targets, 500 for anything
// unclassified.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeDuplicate         = "DUPLICATE_CONFLICT"
	CodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidState      = "INVALID_STATE"
	CodePartialReference  = "PARTIAL_REFERENCE_NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternal          = "INTERNAL_FAILURE"
)

// AppError is a typed, recoverable failure. Code identifies the failure kind
// for clients, StatusCode drives the envelope, Err keeps the cause for logs.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError attaches the underlying cause.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func newError(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: status}
}

// Validation reports malformed or out-of-range input.
func Validation(message string) *AppError {
	return newError(CodeValidation, message, http.StatusBadRequest)
}

// Duplicate reports a uniqueness violation.
func Duplicate(format string, args ...any) *AppError {
	return newError(CodeDuplicate, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// ReferenceNotFound reports a dangling foreign reference in the input.
func ReferenceNotFound(format string, args ...any) *AppError {
	return newError(CodeReferenceNotFound, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// NotFound reports that the operation target is absent.
func NotFound(format string, args ...any) *AppError {
	return newError(CodeNotFound, fmt.Sprintf(format, args...), http.StatusNotFound)
}

// InvalidState reports an operation that violates an entity lifecycle rule.
func InvalidState(format string, args ...any) *AppError {
	return newError(CodeInvalidState, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// PartialReference reports a bulk operation referencing a mix of valid and
// unknown ids.
func PartialReference(format string, args ...any) *AppError {
	return newError(CodePartialReference, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(message string) *AppError {
	return newError(CodeUnauthorized, message, http.StatusUnauthorized)
}

// Internal wraps an unanticipated error. The cause is preserved for
// diagnostics but the client-facing message stays generic.
func Internal(err error) *AppError {
	return newError(CodeInternal, "internal server error", http.StatusInternalServerError).WithError(err)
}

// As extracts an *AppError from err, if there is one.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
