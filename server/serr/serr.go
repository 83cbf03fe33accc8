// Package serr has the errors shared by the scopecmd server packages. Its
// Error type carries any number of causes so that a single error can be
// checked with errors.Is both for what went wrong underneath and for how the
// API should report it.
package serr

import (
	"errors"
	"slices"
)

var (
	ErrNotFound      = errors.New("the requested entity could not be found")
	ErrDB            = errors.New("an error occured with the DB")
	ErrBadArgument   = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal = errors.New("malformed data in request")

	// ErrRejected is a cause of every Error for a command line that could not
	// be parsed or carried out. The other cause is the error from the command
	// or sim package.
	ErrRejected = errors.New("the command line was rejected")
)

// Error is an error with a message and a list of causes. errors.Is matches an
// Error against any of its causes.
//
// The text of an Error is its message followed by the text of its first
// cause. With no message it is only the first cause's text.
type Error struct {
	msg   string
	cause []error
}

func (e Error) Error() string {
	switch {
	case len(e.cause) == 0:
		return e.msg
	case e.msg == "":
		return e.cause[0].Error()
	default:
		return e.msg + ": " + e.cause[0].Error()
	}
}

// Unwrap gives the causes of e, or nil if it has none.
func (e Error) Unwrap() []error {
	if len(e.cause) == 0 {
		return nil
	}
	return e.cause
}

// Is reports whether target is an Error equal to e or is one of e's causes.
func (e Error) Is(target error) bool {
	if other, ok := target.(Error); ok && e.msg == other.msg && slices.Equal(e.cause, other.cause) {
		return true
	}
	return slices.Contains(e.cause, target)
}

// New returns an Error with the given message and causes. msg may be empty.
func New(msg string, causes ...error) Error {
	return Error{msg: msg, cause: slices.Clone(causes)}
}

// WrapDB returns an Error caused by err and ErrDB.
func WrapDB(msg string, err error) Error {
	return New(msg, err, ErrDB)
}

// Rejected returns an Error for a command line that failed with err. Its text
// is that of err, so the console message of a parse failure reaches the
// client unchanged.
func Rejected(err error) Error {
	return New("", err, ErrRejected)
}
