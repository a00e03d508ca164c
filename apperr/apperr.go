// Package apperr defines the error kinds shared by services and handlers.
//
// Services wrap one of the sentinel kinds with a message; handlers map the kind
// to an HTTP status with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return wrap(ErrUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) error {
	return wrap(ErrForbidden, format, args...)
}

// Message returns the client-facing text of a classified error, without the
// kind prefix. Unclassified errors have no client-facing text.
func Message(err error) string {
	var m *messageError
	if errors.As(err, &m) {
		return m.msg
	}
	return ""
}

// IsClientError reports whether err carries one of the kinds above.
func IsClientError(err error) bool {
	for _, k := range []error{ErrNotFound, ErrConflict, ErrInvalidArgument, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

type messageError struct {
	kind error
	msg  string
}

func (e *messageError) Error() string { return e.kind.Error() + ": " + e.msg }

func (e *messageError) Unwrap() error { return e.kind }

func wrap(kind error, format string, args ...any) error {
	return &messageError{kind: kind, msg: fmt.Sprintf(format, args...)}
}
