package scoperr

import (
	"fmt"
	"strings"
)

// InputTypeError is returned when something other than a string is handed to
// the parser.
type InputTypeError struct {
	// Got is the Go type of the rejected input, as printed by %T.
	Got string
}

func (e *InputTypeError) Error() string {
	return fmt.Sprintf("input must be a string, got %s", e.Got)
}

func (e *InputTypeError) ConsoleMessage() string {
	return "Commands must be entered as text"
}

func (e *InputTypeError) Is(target error) bool {
	return target == ErrInputType
}

// UnknownCommandError is returned when a token does not resolve to any
// canonical command in the registry that applies to it.
type UnknownCommandError struct {
	// Token is the offending token exactly as it appeared after
	// normalization. It may be the empty string.
	Token string

	// Registry names the registry the token was looked up in, such as
	// "system" or "entity".
	Registry string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("%s command %q not recognized", e.Registry, e.Token)
}

func (e *UnknownCommandError) ConsoleMessage() string {
	if e.Token == "" {
		return "Extra space in command; commands are separated by a single space"
	}
	return fmt.Sprintf("Unknown command %q", strings.ToUpper(e.Token))
}

func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// ArityError is returned when a command receives a number of arguments
// outside of what it accepts.
type ArityError struct {
	// Command is the canonical name of the command. It is filled in by the
	// dispatcher if the validator that raised the error did not know it.
	Command string
	Got     int
	Min     int
	Max     int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: got %d argument(s), want %s", e.commandName(), e.Got, e.want())
}

func (e *ArityError) ConsoleMessage() string {
	switch {
	case e.Max == 0:
		return fmt.Sprintf("%s takes no arguments", e.commandName())
	case e.Got < e.Min:
		return fmt.Sprintf("%s needs %s argument(s), got %d", e.commandName(), e.want(), e.Got)
	default:
		return fmt.Sprintf("%s takes %s argument(s), got %d", e.commandName(), e.want(), e.Got)
	}
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

func (e *ArityError) want() string {
	if e.Min == e.Max {
		return fmt.Sprintf("%d", e.Min)
	}
	return fmt.Sprintf("%d to %d", e.Min, e.Max)
}

func (e *ArityError) commandName() string {
	if e.Command == "" {
		return "command"
	}
	return e.Command
}

// ValidationError is returned when an argument is present but cannot be
// coerced to the type or range the command needs.
type ValidationError struct {
	Command string
	Token   string
	Reason  string
}

func (e *ValidationError) Error() string {
	name := e.Command
	if name == "" {
		name = "command"
	}
	return fmt.Sprintf("%s: invalid argument %q: %s", name, e.Token, e.Reason)
}

func (e *ValidationError) ConsoleMessage() string {
	return fmt.Sprintf("%q is not valid: %s", strings.ToUpper(e.Token), e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SegmentError locates a failure within a line. Index is the zero-based
// position of the failing sub-command among the commands in the line. Err is
// one of the typed errors above and is reachable with errors.Is/errors.As.
type SegmentError struct {
	Command string
	Target  string
	Index   int
	Err     error
}

func (e *SegmentError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s command %d: %v", e.Target, e.Index+1, e.Err)
	}
	return e.Err.Error()
}

func (e *SegmentError) ConsoleMessage() string {
	msg := ConsoleMessage(e.Err)
	if e.Target != "" {
		return e.Target + ": " + msg
	}
	return msg
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}
