package domain

import "errors"

// Error kinds. Every error surfaced by the core wraps exactly one of them,
// so the boundary layer can map it with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal failure")
)

// ErrorKind is the stable, machine-readable name of an error kind
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindInvalidInput ErrorKind = "invalid_input"
	KindConflict     ErrorKind = "conflict"
	KindForbidden    ErrorKind = "forbidden"
	KindInternal     ErrorKind = "internal"
)

// Error is a sentinel error with a human-readable message and a kind
type Error struct {
	kind error
	msg  string
}

// NewError creates a sentinel error of the given kind
func NewError(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// KindOf classifies err. Unclassified errors are internal failures.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindInternal
	}
}
