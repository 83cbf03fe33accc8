package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allSystemNames = []Name{
	Airac, Airport, Auto, Clear, Help, Pause, Quit, Rate, Timewarp, Tutorial,
}

var allEntityNames = []Name{
	Abort, Altitude, ClearedAsFiled, ClimbViaSID, Delete, DescendViaSTAR,
	Direct, ExpectArrivalRunway, FlyPresentHeading, Heading, Hold, Land,
	Reroute, Route, SayAltitude, SayAssignedAltitude, SayAssignedHeading,
	SayAssignedSpeed, SayHeading, SayIndicatedAirspeed, SayRoute, SID, Speed,
	Squawk, STAR, Takeoff, Taxi,
}

func Test_Registries_coverEveryName(t *testing.T) {
	assert.ElementsMatch(t, allSystemNames, SystemCommands.Names())
	assert.ElementsMatch(t, allEntityNames, EntityCommands.Names())
}

func Test_Registries_aliasesResolveToOwner(t *testing.T) {
	for _, reg := range []*Registry{SystemCommands, EntityCommands} {
		for _, name := range reg.Names() {
			for _, alias := range reg.Aliases(name) {
				resolved, ok := reg.Resolve(alias)
				assert.True(t, ok, "%s alias %q", reg.Label(), alias)
				assert.Equal(t, name, resolved, "%s alias %q", reg.Label(), alias)
			}

			// canonical names that are their own alias resolve to themselves
			if reg.Has(string(name)) {
				resolved, _ := reg.Resolve(string(name))
				assert.Equal(t, name, resolved)
			}
		}
	}
}

func Test_Registries_aliasesDisjoint(t *testing.T) {
	for _, reg := range []*Registry{SystemCommands, EntityCommands} {
		seen := map[string]Name{}
		for _, name := range reg.Names() {
			for _, alias := range reg.Aliases(name) {
				owner, dup := seen[alias]
				assert.False(t, dup, "%s alias %q in both %q and %q", reg.Label(), alias, owner, name)
				seen[alias] = name
			}
		}
	}
}

func Test_Registries_argumentWordsAreNotEntityAliases(t *testing.T) {
	// these are consumed as optional arguments and must never end a command
	for w := range directionWords {
		assert.False(t, EntityCommands.Has(w), "direction %q", w)
	}
	for w := range expediteWords {
		assert.False(t, EntityCommands.Has(w), "expedite %q", w)
	}
}

func Test_NewRegistry(t *testing.T) {
	ok := func(args []string) ([]any, error) { return nil, nil }

	testCases := []struct {
		name      string
		defs      []Definition
		expectErr bool
	}{
		{
			name: "valid",
			defs: []Definition{
				{Name: "a", Aliases: []string{"a", "aa"}, Parse: takeAll, Validate: ok},
				{Name: "b", Aliases: []string{"b"}, Parse: takeAll, Validate: PassThrough},
			},
		},
		{
			name: "alias in two definitions",
			defs: []Definition{
				{Name: "a", Aliases: []string{"a", "x"}, Parse: takeAll, Validate: ok},
				{Name: "b", Aliases: []string{"b", "x"}, Parse: takeAll, Validate: ok},
			},
			expectErr: true,
		},
		{
			name: "name defined twice",
			defs: []Definition{
				{Name: "a", Aliases: []string{"a"}, Parse: takeAll, Validate: ok},
				{Name: "a", Aliases: []string{"b"}, Parse: takeAll, Validate: ok},
			},
			expectErr: true,
		},
		{
			name: "missing validate",
			defs: []Definition{
				{Name: "a", Aliases: []string{"a"}, Parse: takeAll},
			},
			expectErr: true,
		},
		{
			name: "missing parse",
			defs: []Definition{
				{Name: "a", Aliases: []string{"a"}, Validate: ok},
			},
			expectErr: true,
		},
		{
			name: "no aliases",
			defs: []Definition{
				{Name: "a", Parse: takeAll, Validate: ok},
			},
			expectErr: true,
		},
		{
			name: "upper-case alias",
			defs: []Definition{
				{Name: "a", Aliases: []string{"A"}, Parse: takeAll, Validate: ok},
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reg, err := NewRegistry("test", tc.defs...)
			if tc.expectErr {
				assert.Error(t, err)
				assert.Nil(t, reg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, reg.Names(), len(tc.defs))
		})
	}
}

func Test_Registry_unknownAlias(t *testing.T) {
	name, ok := EntityCommands.Resolve("zz")

	assert.False(t, ok)
	assert.Equal(t, Name(""), name)
}

func Test_PassThrough_identity(t *testing.T) {
	testCases := [][]string{
		{},
		{"kepec"},
		{"a", "b", "c"},
	}

	for _, in := range testCases {
		out, err := PassThrough(in)
		require.NoError(t, err)
		require.Len(t, out, len(in))
		for i := range in {
			assert.Equal(t, in[i], out[i])
		}
	}
}

func Test_takeArgs_stopsAtNextCommand(t *testing.T) {
	testCases := []struct {
		name       string
		required   int
		optional   int
		tokens     []string
		expectArgs []string
		expectRest []string
	}{
		{
			name:       "takes nothing",
			tokens:     []string{"sp", "250"},
			expectArgs: []string{},
			expectRest: []string{"sp", "250"},
		},
		{
			name:       "required token taken even if it is an alias",
			required:   1,
			tokens:     []string{"sp", "250"},
			expectArgs: []string{"sp"},
			expectRest: []string{"250"},
		},
		{
			name:       "optional stops at alias",
			required:   1,
			optional:   1,
			tokens:     []string{"030", "sp", "250"},
			expectArgs: []string{"030"},
			expectRest: []string{"sp", "250"},
		},
		{
			name:       "optional taken when not an alias",
			required:   1,
			optional:   1,
			tokens:     []string{"l", "030", "sp", "250"},
			expectArgs: []string{"l", "030"},
			expectRest: []string{"sp", "250"},
		},
		{
			name:       "runs out of tokens",
			required:   2,
			tokens:     []string{"x"},
			expectArgs: []string{"x"},
			expectRest: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			orig := append([]string{}, tc.tokens...)

			args, rest := takeArgs(tc.required, tc.optional)(tc.tokens)

			assert.Equal(tc.expectArgs, args)
			assert.Equal(tc.expectRest, rest)
			assert.Equal(orig, tc.tokens, "input was modified")
		})
	}
}
