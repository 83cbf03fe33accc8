package command

import (
	"regexp"
	"strconv"

	"github.com/tracon/scopecmd/internal/scoperr"
)

// Direction is a turn direction given to a heading or hold command.
type Direction string

const (
	// NoDirection means the shortest turn, or the default for a hold.
	NoDirection Direction = ""
	Left        Direction = "left"
	Right       Direction = "right"
)

var directionWords = map[string]Direction{
	"l":     Left,
	"left":  Left,
	"r":     Right,
	"right": Right,
}

var expediteWords = map[string]bool{
	"x":        true,
	"ex":       true,
	"expedite": true,
}

var (
	runwayPat    = regexp.MustCompile(`^(0?[1-9]|[12][0-9]|3[0-6])[lcr]?$`)
	fixPat       = regexp.MustCompile(`^[a-z][a-z0-9]{1,4}$`)
	routePat     = regexp.MustCompile(`^[a-z0-9][a-z0-9.]*$`)
	procedurePat = regexp.MustCompile(`^[a-z][a-z0-9]+$`)
	squawkPat    = regexp.MustCompile(`^[0-7]{4}$`)
	icaoPat      = regexp.MustCompile(`^[a-z]{4}$`)
	legPat       = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(min|nm)$`)
	digitsPat    = regexp.MustCompile(`^[0-9]+$`)
)

// takeAll is the ParseFunc of every System command: the command owns the rest
// of the line.
func takeAll(tokens []string) ([]string, []string) {
	return append([]string{}, tokens...), nil
}

// takeArgs gives a ParseFunc for Entity commands. It takes the first
// required tokens whatever they are, then up to optional more for as long as
// the next token is not itself an Entity alias, which marks the start of the
// next chained command. An empty token from a doubled or trailing space also
// ends the optional arguments, so it is reported as a stray command.
func takeArgs(required, optional int) ParseFunc {
	return func(tokens []string) ([]string, []string) {
		n := required
		if n > len(tokens) {
			n = len(tokens)
		}
		for n < len(tokens) && n < required+optional && tokens[n] != "" && !EntityCommands.Has(tokens[n]) {
			n++
		}
		return append([]string{}, tokens[:n]...), tokens[n:]
	}
}

// PassThrough is the identity ValidateFunc. It is for commands that take no
// arguments, or whose arguments need no checking, and returns the arguments
// unchanged.
func PassThrough(args []string) ([]any, error) {
	vals := make([]any, len(args))
	for i := range args {
		vals[i] = args[i]
	}
	return vals, nil
}

func checkArity(args []string, min, max int) error {
	if len(args) < min || len(args) > max {
		return &scoperr.ArityError{Got: len(args), Min: min, Max: max}
	}
	return nil
}

func zeroArgs(args []string) ([]any, error) {
	if err := checkArity(args, 0, 0); err != nil {
		return nil, err
	}
	return []any{}, nil
}

func invalid(tok, reason string) error {
	return &scoperr.ValidationError{Token: tok, Reason: reason}
}

// matching gives a ValidateFunc taking exactly one argument that must match
// pat; what describes the argument in error messages.
func matching(pat *regexp.Regexp, what string) ValidateFunc {
	return func(args []string) ([]any, error) {
		if err := checkArity(args, 1, 1); err != nil {
			return nil, err
		}
		if !pat.MatchString(args[0]) {
			return nil, invalid(args[0], "not a valid "+what)
		}
		return []any{args[0]}, nil
	}
}

// optionalMatching is like matching but the argument may be left out.
func optionalMatching(pat *regexp.Regexp, what string) ValidateFunc {
	return func(args []string) ([]any, error) {
		if err := checkArity(args, 0, 1); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return []any{}, nil
		}
		return matching(pat, what)(args)
	}
}

func parseInt(tok, what string) (int, error) {
	if !digitsPat.MatchString(tok) {
		return 0, invalid(tok, what+" must be a whole number")
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, invalid(tok, what+" is out of range")
	}
	return n, nil
}

// parseAltitude reads an altitude given in hundreds of feet, as in "c 120"
// for 12,000 feet, and gives it in feet.
func parseAltitude(tok string) (int, error) {
	hundreds, err := parseInt(tok, "altitude")
	if err != nil {
		return 0, err
	}
	if hundreds < 1 || hundreds > 999 {
		return 0, invalid(tok, "altitude must be between 1 and 999 hundred feet")
	}
	return hundreds * 100, nil
}
