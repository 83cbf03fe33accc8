// Package scoperr holds the error types produced while turning console input
// into commands and while carrying those commands out. Every error created by
// this package has two messages: a technical one returned by Error() and a
// short one suitable for showing to the operator at the scope, available via
// ConsoleMessage.
package scoperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInputType is matched by errors.Is for any InputTypeError.
	ErrInputType = errors.New("input is not a string")

	// ErrUnknownCommand is matched by errors.Is for any UnknownCommandError.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrArity is matched by errors.Is for any ArityError.
	ErrArity = errors.New("wrong number of arguments")

	// ErrValidation is matched by errors.Is for any ValidationError.
	ErrValidation = errors.New("invalid argument")

	// ErrNoCommand is returned for input that holds no command at all.
	ErrNoCommand = errors.New("no command given")
)

// interpreterError is an error caused by attempting to carry out input. Either
// the input could not be understood or it asks for something that cannot be
// done right now.
type interpreterError struct {
	msg     string
	console string
	wrap    error
}

func (e *interpreterError) Error() string {
	return e.msg
}

// ConsoleMessage shows the message that should be displayed at the console to
// describe the error.
func (e *interpreterError) ConsoleMessage() string {
	return e.console
}

// Unwrap gives the error that the interpreterError wraps, if it wraps one.
func (e *interpreterError) Unwrap() error {
	return e.wrap
}

// Interpreter returns a new interpreter error that has both the message to
// show the operator and the technical description of the error.
func Interpreter(console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got InterpreterError(%q)", console)
	}
	return &interpreterError{
		msg:     technical,
		console: console,
	}
}

// Interpreterf returns a new interpreter error whose console message is built
// from the format string and its arguments. The technical message is generated
// automatically.
func Interpreterf(consoleFormat string, a ...interface{}) error {
	return Interpreter(fmt.Sprintf(consoleFormat, a...), "")
}

// WrapInterpreter is like Interpreter but the returned error also wraps e.
func WrapInterpreter(e error, console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got InterpreterError(%q)", console)
	}
	return &interpreterError{
		msg:     technical,
		console: console,
		wrap:    e,
	}
}

// WrapInterpreterf is like Interpreterf but the returned error also wraps e.
func WrapInterpreterf(e error, consoleFormat string, a ...interface{}) error {
	return WrapInterpreter(e, fmt.Sprintf(consoleFormat, a...), "")
}

// ConsoleMessage gets the message to display at the console for the given
// error. The outermost error in the chain that has a console message supplies
// it. If none does, err.Error() is returned.
func ConsoleMessage(err error) string {
	var cm interface{ ConsoleMessage() string }
	if errors.As(err, &cm) {
		return cm.ConsoleMessage()
	}
	return err.Error()
}
