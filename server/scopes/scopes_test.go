package scopes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/scoperr"
	"github.com/tracon/scopecmd/server/dao/inmem"
	"github.com/tracon/scopecmd/server/serr"
)

const testScenario = `
format = "SCOPE"
type = "DATA"

[scenario]
name = "Boston"
airport = "KBOS"

[[aircraft]]
callsign = "AA777"
heading = 10
altitude = 5000
speed = 210
route = "MERIT.HFD.PUT.BOS"
`

func newTestService(t *testing.T) (*Service, uuid.UUID) {
	svc := New(inmem.NewDatastore(), nil)
	sesh, err := svc.CreateSession(context.Background(), testScenario)
	require.NoError(t, err)
	return svc, sesh.ID
}

func Test_Service_CreateSession(t *testing.T) {
	testCases := []struct {
		name         string
		scenario     string
		expectName   string
		expectErrIs  error
		expectNumAcf int
	}{
		{name: "default scenario", expectName: "Empty"},
		{name: "given scenario", scenario: testScenario, expectName: "Boston", expectNumAcf: 1},
		{name: "bad TOML", scenario: "format = ", expectErrIs: serr.ErrBadArgument},
		{name: "wrong format", scenario: "format = \"OTHER\"\ntype = \"DATA\"\n", expectErrIs: serr.ErrBadArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := New(inmem.NewDatastore(), nil)

			sesh, err := svc.CreateSession(context.Background(), tc.scenario)
			if tc.expectErrIs != nil {
				assert.ErrorIs(err, tc.expectErrIs)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectName, sesh.Scenario)
			assert.Len(sesh.State.Aircraft, tc.expectNumAcf)
		})
	}
}

func Test_Service_ExecuteLine(t *testing.T) {
	testCases := []struct {
		name           string
		line           any
		expectReadback []string
		expectNames    []command.Name
		expectErrIs    []error
	}{
		{
			name:           "chained entity line",
			line:           "aa777 fh 270 c 120",
			expectReadback: []string{"AA777, fly heading 270, climb and maintain 12,000"},
			expectNames:    []command.Name{command.Heading, command.Altitude},
		},
		{
			name:           "system line",
			line:           "pause",
			expectReadback: []string{"Simulation paused"},
			expectNames:    []command.Name{command.Pause},
		},
		{
			name:        "non-string input",
			line:        42,
			expectErrIs: []error{serr.ErrRejected, scoperr.ErrInputType},
		},
		{
			name:        "unknown command",
			line:        "AA777 ZZ",
			expectErrIs: []error{serr.ErrRejected, scoperr.ErrUnknownCommand},
		},
		{
			name:        "bad arity",
			line:        "AA777 FH",
			expectErrIs: []error{serr.ErrRejected, scoperr.ErrArity},
		},
		{
			name:        "unknown aircraft",
			line:        "UA1 FH 270",
			expectErrIs: []error{serr.ErrRejected},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc, id := newTestService(t)

			ex, err := svc.ExecuteLine(context.Background(), id, tc.line)
			if tc.expectErrIs != nil {
				for _, target := range tc.expectErrIs {
					assert.ErrorIs(err, target)
				}

				hist, err := svc.History(context.Background(), id)
				require.NoError(t, err)
				assert.Empty(hist, "rejected line must not be recorded")
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectReadback, ex.Readback)
			var names []command.Name
			for _, c := range ex.Commands {
				names = append(names, c.Name())
			}
			assert.Equal(tc.expectNames, names)

			hist, err := svc.History(context.Background(), id)
			require.NoError(t, err)
			require.Len(t, hist, 1)
			assert.Equal(tc.expectReadback, hist[0].Readback)
		})
	}
}

func Test_Service_ExecuteLine_persistsState(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc, id := newTestService(t)

	_, err := svc.ExecuteLine(ctx, id, "AA777 FH 270")
	require.NoError(t, err)
	ex, err := svc.ExecuteLine(ctx, id, "AA777 T R 20")
	require.NoError(t, err)
	assert.Equal([]string{"AA777, turn 20 degrees right, heading 290"}, ex.Readback)

	sesh, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(290, sesh.State.Aircraft["AA777"].AssignedHeading)

	hist, err := svc.History(ctx, id)
	require.NoError(t, err)
	assert.Len(hist, 2)
}

func Test_Service_ExecuteLine_quitEndsSession(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t)

	ex, err := svc.ExecuteLine(ctx, id, "bye")
	require.NoError(t, err)
	assert.True(t, ex.Ended)

	_, err = svc.GetSession(ctx, id)
	assert.ErrorIs(t, err, serr.ErrNotFound)
}

func Test_Service_missingSession(t *testing.T) {
	ctx := context.Background()
	svc := New(inmem.NewDatastore(), nil)
	id := uuid.New()

	_, err := svc.ExecuteLine(ctx, id, "pause")
	assert.ErrorIs(t, err, serr.ErrNotFound)

	_, err = svc.DeleteSession(ctx, id)
	assert.ErrorIs(t, err, serr.ErrNotFound)

	_, err = svc.History(ctx, id)
	assert.ErrorIs(t, err, serr.ErrNotFound)
}
