// Package apperr defines the error taxonomy shared by every API handler.
//
// Handlers and stores return *Error values (or wrap sentinel errors into
// them); the HTTP layer maps each kind onto a status code in exactly one
// place. Validation errors carry per-field messages so clients can surface
// them next to the offending input.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	// KindInternal is an unexpected failure. Details are logged, never
	// returned to the client.
	KindInternal Kind = iota
	// KindValidation is a well-formed request with unacceptable content.
	KindValidation
	// KindUnauthorized means no authenticated principal was presented.
	KindUnauthorized
	// KindForbidden means the principal exists but lacks access.
	KindForbidden
	// KindNotFound means the addressed entity does not exist, or is
	// invisible to the principal.
	KindNotFound
)

// Error is the application error type.
type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string]string // per-field messages, validation only
	Err    error             // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a validation error from per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Msg: "validation failed", Fields: fields}
}

// ValidationField is a one-field convenience form of Validation.
func ValidationField(field, msg string) *Error {
	return Validation(map[string]string{field: msg})
}

// Unauthorized indicates a missing or unusable session.
func Unauthorized(msg string) *Error {
	if msg == "" {
		msg = "not signed in"
	}
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Forbidden indicates an authenticated caller without access.
func Forbidden(msg string) *Error {
	if msg == "" {
		msg = "access denied"
	}
	return &Error{Kind: KindForbidden, Msg: msg}
}

// NotFound indicates the entity does not exist from the caller's view.
func NotFound(msg string) *Error {
	if msg == "" {
		msg = "not found"
	}
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal error", Err: err}
}

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// Status maps an error onto its HTTP status code.
//
// Unauthorized and Forbidden both map to 403: the API deliberately does not
// reveal whether a session would have helped. Validation maps to 406 so
// clients can distinguish field errors from malformed requests.
func Status(err error) int {
	switch From(err).Kind {
	case KindValidation:
		return http.StatusNotAcceptable
	case KindUnauthorized, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
