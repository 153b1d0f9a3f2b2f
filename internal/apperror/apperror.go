// Package apperror defines the application error taxonomy. Services return
// *Error values; the HTTP layer maps them to status codes and user-visible
// messages at the request boundary.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an application error.
type Type int

const (
	// Internal is an unspecified server-side failure.
	Internal Type = iota
	// Validation is malformed or out-of-bounds input.
	Validation
	// Conflict is a uniqueness violation (duplicate username/email).
	Conflict
	// Authentication is a bad-credentials failure.
	Authentication
	// Unauthenticated means no valid session is present.
	Unauthenticated
	// Forbidden means the identity lacks the required privilege.
	Forbidden
	// NotFound means the entity does not exist for the acting user.
	// Ownership violations surface as NotFound, never Forbidden.
	NotFound
	// Database is a storage-layer failure.
	Database
)

// Error is the application error type. Message is safe to show to users;
// Err carries the underlying cause for logs.
type Error struct {
	Type    Type
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.Type {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Authentication, Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(t Type, message string, err error) *Error {
	return &Error{Type: t, Message: message, Err: err}
}

func NewValidation(message string) *Error {
	return &Error{Type: Validation, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Type: Conflict, Message: message}
}

func NewAuthentication(message string) *Error {
	return &Error{Type: Authentication, Message: message}
}

func NewUnauthenticated(message string) *Error {
	return &Error{Type: Unauthenticated, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Type: Forbidden, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Type: NotFound, Message: message}
}

func NewDatabase(message string, err error) *Error {
	return &Error{Type: Database, Message: message, Err: err}
}

func is(err error, t Type) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Type == t
}

// IsValidation reports whether err is a Validation error.
func IsValidation(err error) bool { return is(err, Validation) }

// IsConflict reports whether err is a Conflict error.
func IsConflict(err error) bool { return is(err, Conflict) }

// IsAuthentication reports whether err is an Authentication error.
func IsAuthentication(err error) bool { return is(err, Authentication) }

// IsUnauthenticated reports whether err is an Unauthenticated error.
func IsUnauthenticated(err error) bool { return is(err, Unauthenticated) }

// IsForbidden reports whether err is a Forbidden error.
func IsForbidden(err error) bool { return is(err, Forbidden) }

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return is(err, NotFound) }

// Message returns the user-visible message for err. Non-application errors
// collapse to a generic message so internals never leak to callers.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "An unexpected error occurred. Please try again."
}

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.StatusCode()
	}
	return http.StatusInternalServerError
}
