package scoperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ConsoleMessage(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "plain error",
			err:    errors.New("disk on fire"),
			expect: "disk on fire",
		},
		{
			name:   "interpreter error",
			err:    Interpreterf("No aircraft with callsign %s", "AA777"),
			expect: "No aircraft with callsign AA777",
		},
		{
			name:   "interpreter error wrapped by fmt",
			err:    fmt.Errorf("advance: %w", Interpreter("Unable", "tech")),
			expect: "Unable",
		},
		{
			name:   "unknown command",
			err:    &UnknownCommandError{Token: "zz", Registry: "entity"},
			expect: `Unknown command "ZZ"`,
		},
		{
			name:   "unknown empty command",
			err:    &UnknownCommandError{Token: "", Registry: "entity"},
			expect: "Extra space in command; commands are separated by a single space",
		},
		{
			name:   "arity with no arguments allowed",
			err:    &ArityError{Command: "pause", Got: 1, Min: 0, Max: 0},
			expect: "pause takes no arguments",
		},
		{
			name:   "arity too few",
			err:    &ArityError{Command: "altitude", Got: 0, Min: 1, Max: 2},
			expect: "altitude needs 1 to 2 argument(s), got 0",
		},
		{
			name:   "arity too many",
			err:    &ArityError{Command: "speed", Got: 2, Min: 1, Max: 1},
			expect: "speed takes 1 argument(s), got 2",
		},
		{
			name:   "validation",
			err:    &ValidationError{Command: "speed", Token: "fast", Reason: "speed must be a whole number"},
			expect: `"FAST" is not valid: speed must be a whole number`,
		},
		{
			name: "segment with target",
			err: &SegmentError{
				Command: "speed",
				Target:  "AA777",
				Index:   1,
				Err:     &ValidationError{Command: "speed", Token: "fast", Reason: "bad"},
			},
			expect: `AA777: "FAST" is not valid: bad`,
		},
		{
			name:   "input type",
			err:    &InputTypeError{Got: "int"},
			expect: "Commands must be entered as text",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ConsoleMessage(tc.err))
		})
	}
}

func Test_typedErrorsMatchSentinels(t *testing.T) {
	seg := func(err error) error {
		return &SegmentError{Target: "AA1", Err: err}
	}

	assert.ErrorIs(t, &InputTypeError{}, ErrInputType)
	assert.ErrorIs(t, seg(&UnknownCommandError{}), ErrUnknownCommand)
	assert.ErrorIs(t, seg(&ArityError{}), ErrArity)
	assert.ErrorIs(t, seg(&ValidationError{}), ErrValidation)
	assert.NotErrorIs(t, seg(&ValidationError{}), ErrArity)
	assert.ErrorIs(t, WrapInterpreterf(ErrNoCommand, "Enter a command"), ErrNoCommand)
}

func Test_Interpreter_technicalMessage(t *testing.T) {
	err := Interpreter("Unable", "")

	assert.Equal(t, `got InterpreterError("Unable")`, err.Error())
	assert.Equal(t, "tech", Interpreter("Unable", "tech").Error())
}
