// Package apperr defines the error taxonomy shared by services and
// controllers. Every failure crossing a component boundary is tagged with a
// Kind so that callers branch on the kind instead of string matching or
// nil-vs-false conventions.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Validation covers malformed or out-of-range input.
	Validation Kind = iota
	// NotFound covers a missing entity.
	NotFound
	// NotAvailable covers a book that is missing or has no free copies.
	NotAvailable
	// Conflict covers a duplicate unique field.
	Conflict
	// CapacityExceeded covers the borrowing limit.
	CapacityExceeded
	// Forbidden covers an authorization failure.
	Forbidden
	// Unauthorized covers a missing or invalid credential.
	Unauthorized
	// Internal covers persistence and other unexpected failures.
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err. Untagged errors count as Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the caller-facing message of err. Internal errors are
// masked so persistence details never leak into a response body.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != Internal {
		return appErr.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation, Conflict, CapacityExceeded:
		return http.StatusBadRequest
	case NotFound, NotAvailable:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
