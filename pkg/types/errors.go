package types

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match them with errors.Is; the API layer maps each kind
// to an HTTP status.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrConflict      = errors.New("conflicting entity")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Error is a kind plus the message shown to API users.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// NotFoundf returns an ErrNotFound error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Invalidf returns an ErrInvalidData error with a formatted message.
func Invalidf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidData, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf returns an ErrConflict error with a formatted message.
func Conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

// Message returns the user-facing text of err. Errors built by this package
// yield their message; anything else yields err.Error().
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
