// Package errs defines the error kinds the repositories report.
//
// Every repository failure is one of four kinds, each with a fixed HTTP
// status. Controllers call Status(err) and pass Error.Message straight to the
// client, so repository code owns the user-facing wording.
package errs

import (
	"errors"
	"net/http"
)

// Kind classifies a repository failure.
type Kind int

const (
	// KindValidation means malformed or missing input.
	KindValidation Kind = iota
	// KindNotFound means the entity addressed by the request does not exist.
	KindNotFound
	// KindInvalidReference means a referenced entity is absent. Unlike
	// KindNotFound this is a 400: the request itself named a bad id.
	KindInvalidReference
	// KindConflict means the association is already (or not) in the
	// requested state.
	KindConflict
)

// Error is the concrete error returned by repositories.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation returns a KindValidation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound returns a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// InvalidReference returns a KindInvalidReference error.
func InvalidReference(message string) *Error {
	return &Error{Kind: KindInvalidReference, Message: message}
}

// Conflict returns a KindConflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Status maps err to an HTTP status code. Unknown errors are 500.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}

	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindInvalidReference, KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err, or a generic fallback
// for unexpected errors so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
