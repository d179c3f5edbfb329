package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the service is allowed to surface.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindConflict      Kind = "CONFLICT"
	KindBusinessRule  Kind = "BUSINESS_RULE"
	KindAuthorization Kind = "AUTHORIZATION"
	KindStorage       Kind = "STORAGE"
)

// IsValid checks if the error kind is one of the known kinds
func (k Kind) IsValid() bool {
	switch k {
	case KindValidation, KindNotFound, KindConflict, KindBusinessRule, KindAuthorization, KindStorage:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Error is the single error type allowed to cross component boundaries.
// It carries a stable machine code, a human-readable message and a details
// map with enough context (field, offending value, reason) to reproduce
// the failure.
type Error struct {
	Kind    Kind           `json:"kind"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// WithDetail adds a single key to the details map and returns the error
// for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// HTTPStatus maps the error kind to the HTTP status the responder uses.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindBusinessRule:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a field-attributed validation error.
func Validation(field string, value any, reason string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    "VALIDATION_FAILED",
		Message: fmt.Sprintf("invalid value for %s: %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NotFound reports a missing referenced entity.
func NotFound(entity string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", entity),
		Details: map[string]any{
			"entity": entity,
			"id":     id,
		},
	}
}

// Conflict reports a duplicate or overlapping booking.
func Conflict(message string, details map[string]any) *Error {
	return &Error{
		Kind:    KindConflict,
		Code:    "BOOKING_CONFLICT",
		Message: message,
		Details: details,
	}
}

// BusinessRule reports a policy denial such as an inactive destination or
// a closed cancellation window.
func BusinessRule(code, message string) *Error {
	return &Error{
		Kind:    KindBusinessRule,
		Code:    code,
		Message: message,
	}
}

// Authorization reports cross-user access.
func Authorization(message string) *Error {
	return &Error{
		Kind:    KindAuthorization,
		Code:    "ACCESS_DENIED",
		Message: message,
	}
}

// Storage wraps a storage-layer failure. Only the operation name is
// exposed to callers; the underlying error stays wrapped for logs.
func Storage(op string, err error) *Error {
	return &Error{
		Kind:    KindStorage,
		Code:    "STORAGE_ERROR",
		Message: fmt.Sprintf("operation %s failed", op),
		Details: map[string]any{"operation": op},
		wrapped: err,
	}
}

// As unwraps err into an *Error, or nil when err is not one.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	if appErr := As(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}
