package command

import (
	"errors"
	"strings"

	"github.com/tracon/scopecmd/internal/scoperr"
)

// Classify decides from the first token of a line whose commands the line
// holds. It is System if and only if first is a System alias; anything else
// is taken to be the callsign of an aircraft, whether or not one exists.
func Classify(first string) Category {
	if SystemCommands.Has(first) {
		return System
	}
	return Entity
}

// Parse parses one line of console input into the commands it contains.
//
// A System line gives exactly one Command. An Entity line gives one Command
// per chained sub-command, in the order they were typed, all with the same
// target; "AA777 fh 030 sp 250" gives a heading command and a speed command
// for AA777.
//
// Parsing is all or nothing. If any part of the line fails, no commands are
// returned and the error says which sub-command failed; it will match one of
// scoperr.ErrUnknownCommand, scoperr.ErrArity, or scoperr.ErrValidation with
// errors.Is. A blank line, or a callsign with nothing after it, gives an
// error matching scoperr.ErrNoCommand.
func Parse(line string) ([]Command, error) {
	return parseTokens(Tokenize(line))
}

// ParseInput is Parse for input of unknown type, such as a value decoded from
// a JSON request body. If v is not a string, an error matching
// scoperr.ErrInputType is returned before any tokenizing is done.
func ParseInput(v any) ([]Command, error) {
	tokens, err := TokenizeInput(v)
	if err != nil {
		return nil, err
	}
	return parseTokens(tokens)
}

func parseTokens(tokens []string) ([]Command, error) {
	if len(tokens) == 1 && tokens[0] == "" {
		return nil, scoperr.WrapInterpreter(scoperr.ErrNoCommand, "Enter a command", "")
	}

	if Classify(tokens[0]) == System {
		cmd, err := parseSystem(tokens)
		if err != nil {
			return nil, err
		}
		return []Command{cmd}, nil
	}
	return parseEntity(tokens)
}

func parseSystem(tokens []string) (Command, error) {
	name, ok := SystemCommands.Resolve(tokens[0])
	if !ok {
		return Command{}, &scoperr.UnknownCommandError{Token: tokens[0], Registry: SystemCommands.Label()}
	}
	def, _ := SystemCommands.Lookup(name)

	args, rest := def.Parse(tokens[1:])
	if len(rest) > 0 {
		// a system command must account for the entire line
		err := &scoperr.ArityError{Got: len(args) + len(rest), Min: len(args), Max: len(args)}
		return Command{}, segmentError(name, "", 0, err)
	}

	vals, err := def.Validate(args)
	if err != nil {
		return Command{}, segmentError(name, "", 0, err)
	}

	return New(name, System, "", vals...), nil
}

func parseEntity(tokens []string) ([]Command, error) {
	target := strings.ToUpper(tokens[0])
	tail := tokens[1:]

	if len(tail) == 0 {
		return nil, scoperr.WrapInterpreterf(scoperr.ErrNoCommand, "No command given for %s", target)
	}

	var cmds []Command
	for len(tail) > 0 {
		idx := len(cmds)

		name, ok := EntityCommands.Resolve(tail[0])
		if !ok {
			err := &scoperr.UnknownCommandError{Token: tail[0], Registry: EntityCommands.Label()}
			return nil, segmentError("", target, idx, err)
		}
		def, _ := EntityCommands.Lookup(name)

		args, rest := def.Parse(tail[1:])
		vals, err := def.Validate(args)
		if err != nil {
			return nil, segmentError(name, target, idx, err)
		}

		cmds = append(cmds, New(name, Entity, target, vals...))
		tail = rest
	}

	return cmds, nil
}

// segmentError wraps err with where in the line it happened, filling in the
// command name on typed errors that were raised without knowing it.
func segmentError(name Name, target string, idx int, err error) error {
	var arityErr *scoperr.ArityError
	if errors.As(err, &arityErr) && arityErr.Command == "" {
		arityErr.Command = string(name)
	}
	var valErr *scoperr.ValidationError
	if errors.As(err, &valErr) && valErr.Command == "" {
		valErr.Command = string(name)
	}

	return &scoperr.SegmentError{
		Command: string(name),
		Target:  target,
		Index:   idx,
		Err:     err,
	}
}
