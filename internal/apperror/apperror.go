// Package apperror defines the error taxonomy shared by services and
// handlers.  Services return *Error values; the HTTP layer maps each
// Kind to a status code.
package apperror

import (
	"errors"
	"fmt"
)

// Kind represents the category of an application error.
type Kind string

const (
	// KindNotFound indicates a missing entity.
	KindNotFound Kind = "NOT_FOUND"

	// KindValidation indicates field level validation failures.
	KindValidation Kind = "VALIDATION"

	// KindDuplicate indicates a unique constraint violation.
	KindDuplicate Kind = "DUPLICATE_VALUE"

	// KindConflict indicates the operation is blocked by dependent rows.
	KindConflict Kind = "CONFLICT"

	// KindUnauthorized indicates missing or bad credentials.
	KindUnauthorized Kind = "UNAUTHORIZED"

	// KindForbidden indicates the caller lacks the required role.
	KindForbidden Kind = "FORBIDDEN"

	// KindInternal is anything else.
	KindInternal Kind = "INTERNAL"
)

// Error is an application error.  Fields is only set for validation
// errors and maps a JSON field name to its messages.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound creates a not found error for the named entity.
func NotFound(entity string, id uint64) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %d not found", entity, id)}
}

// Validation creates a validation error from a field → messages map.
func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// InvalidField is a shorthand for a validation error on a single field.
func InvalidField(field, msg string) *Error {
	return Validation(map[string][]string{field: {msg}})
}

// Duplicate creates the user facing error for a unique constraint
// violation on field.
func Duplicate(field string, err error) *Error {
	msg := "a record with the same value already exists"
	if field != "" {
		msg = fmt.Sprintf("a record with the same %s already exists", field)
	}
	return &Error{Kind: KindDuplicate, Message: msg, Err: err}
}

// Conflict creates a conflict error.
func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden creates a forbidden error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Internal wraps an unexpected error.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the Kind of err, or KindInternal when err is not an
// *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err is an *Error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
