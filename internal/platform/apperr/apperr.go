// Package apperr defines the error kinds shared by every module so handlers
// can map failures to HTTP statuses without sniffing driver messages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("upstream failure")
)

// Error carries a client-facing message and the kind it belongs to.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return newf(ErrNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return newf(ErrConflict, format, args...)
}

func Validation(format string, args ...interface{}) error {
	return newf(ErrValidation, format, args...)
}

func Upstream(format string, args ...interface{}) error {
	return newf(ErrUpstream, format, args...)
}

// Is reports whether err belongs to kind.
func Is(err, kind error) bool { return errors.Is(err, kind) }
