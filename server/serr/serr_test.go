package serr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error(t *testing.T) {
	cmdErr := errors.New("entity command \"zz\" not recognized")

	testCases := []struct {
		name        string
		err         error
		expectMsg   string
		expectIs    []error
		expectNotIs []error
	}{
		{
			name:        "message only",
			err:         New("scenario"),
			expectMsg:   "scenario",
			expectNotIs: []error{ErrBadArgument},
		},
		{
			name:      "message and causes",
			err:       New("scenario", errors.New("bad TOML"), ErrBadArgument),
			expectMsg: "scenario: bad TOML",
			expectIs:  []error{ErrBadArgument},
		},
		{
			name:        "rejected line shows the command error",
			err:         Rejected(cmdErr),
			expectMsg:   cmdErr.Error(),
			expectIs:    []error{ErrRejected, cmdErr},
			expectNotIs: []error{ErrDB},
		},
		{
			name:      "DB wrap keeps message",
			err:       WrapDB("could not save session", errors.New("disk full")),
			expectMsg: "could not save session: disk full",
			expectIs:  []error{ErrDB},
		},
		{
			name:      "matches an equal Error",
			err:       fmt.Errorf("create: %w", New("scenario", ErrBadArgument)),
			expectMsg: "create: scenario: " + ErrBadArgument.Error(),
			expectIs:  []error{New("scenario", ErrBadArgument), ErrBadArgument},
		},
		{
			name:     "found through fmt wrapping",
			err:      fmt.Errorf("execute: %w", New("", ErrNotFound)),
			expectIs: []error{ErrNotFound},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.expectMsg != "" {
				assert.Equal(t, tc.expectMsg, tc.err.Error())
			}
			for _, target := range tc.expectIs {
				assert.ErrorIs(t, tc.err, target)
			}
			for _, target := range tc.expectNotIs {
				assert.NotErrorIs(t, tc.err, target)
			}
		})
	}
}
