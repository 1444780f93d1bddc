package qrcode

import (
	"errors"
)

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("qr code not found")
	ErrUpload          = errors.New("logo upload failed")
	ErrPersistence     = errors.New("persistence failed")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotDynamic      = errors.New("qr code is not dynamic")
)

// Error связывает операцию, вид ошибки и исходную причину.
// errors.Is срабатывает и для вида, и для причины.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(op string, kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}
