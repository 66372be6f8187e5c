// Package apperr defines the error taxonomy shared by every domain package.
// Services return these; the HTTP layer maps them to status codes and a
// stable wire shape without leaking internal detail.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalid   Kind = "invalid_argument"
	KindNotFound  Kind = "not_found"
	KindConflict  Kind = "conflict"
	KindExhausted Kind = "resource_exhausted"
	KindInternal  Kind = "internal"
)

// Error is a categorized application error. Message is safe to show to
// clients; Field optionally names the offending input field.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func Invalid(msg string) *Error {
	return &Error{Kind: KindInvalid, Message: msg}
}

func Invalidf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// InvalidField reports a validation failure on a named input field.
func InvalidField(field, msg string) *Error {
	return &Error{Kind: KindInvalid, Message: msg, Field: field}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Exhausted(msg string) *Error {
	return &Error{Kind: KindExhausted, Message: msg}
}

// Internal wraps an unexpected error. The cause is retained for logging but
// never rendered to clients.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: cause}
}

// Wrap attaches a cause to e and returns e, for error-chain inspection.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// KindOf extracts the Kind from err, or KindInternal for uncategorized errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is lets errors.Is match on kind: errors.Is(err, &Error{Kind: KindNotFound}).
func (e *Error) Is(target error) bool {
	var ae *Error
	if !errors.As(target, &ae) {
		return false
	}
	return ae.Kind == e.Kind && (ae.Message == "" || ae.Message == e.Message)
}
