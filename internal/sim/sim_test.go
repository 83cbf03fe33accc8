package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/scoperr"
)

func testState(t *testing.T) State {
	s, err := New("kbos",
		Aircraft{
			Callsign: "aa777",
			Heading:  10,
			Altitude: 5000,
			Speed:    210,
			Squawk:   "1200",
			Route:    []string{"MERIT", "HFD", "PUT", "BOS"},
			STAR:     "ROBUC3",
			Phase:    PhaseAirborne,
		},
		Aircraft{
			Callsign: "DL1",
			Runway:   "22R",
			SID:      "SSOXS6",
			Phase:    PhaseApron,
		},
	)
	require.NoError(t, err)
	return s
}

func advanceLine(t *testing.T, s *State, line string) ([]string, error) {
	cmds, err := command.Parse(line)
	require.NoError(t, err, "parse %q", line)
	return s.Advance(cmds)
}

func Test_New(t *testing.T) {
	testCases := []struct {
		name      string
		aircraft  []Aircraft
		expectErr bool
	}{
		{name: "no aircraft"},
		{name: "callsigns upper-cased", aircraft: []Aircraft{{Callsign: "n123"}}},
		{name: "duplicate callsign", aircraft: []Aircraft{{Callsign: "N123"}, {Callsign: "n123"}}, expectErr: true},
		{name: "empty callsign", aircraft: []Aircraft{{}}, expectErr: true},
		{name: "callsign is a system command", aircraft: []Aircraft{{Callsign: "PAUSE"}}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s, err := New("kbos", tc.aircraft...)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal("KBOS", s.Airport)
			assert.Equal(1, s.TimeWarp)
			assert.Len(s.Aircraft, len(tc.aircraft))
			for _, ac := range s.Aircraft {
				assert.Equal(ac.Callsign, s.Aircraft[ac.Callsign].Callsign)
			}
		})
	}
}

func Test_State_Advance_entity(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		expect []string
		check  func(assert *assert.Assertions, s State)
	}{
		{
			name:   "chained vectors",
			line:   "AA777 fh 270 c 120 sp 250",
			expect: []string{"AA777, fly heading 270, climb and maintain 12,000, increase speed to 250"},
			check: func(assert *assert.Assertions, s State) {
				ac := s.Aircraft["AA777"]
				assert.Equal(270, ac.AssignedHeading)
				assert.Equal(12000, ac.AssignedAltitude)
				assert.Equal(250, ac.AssignedSpeed)
			},
		},
		{
			name:   "expedited descent",
			line:   "AA777 d 30 x",
			expect: []string{"AA777, descend and maintain 3,000, expedite"},
			check: func(assert *assert.Assertions, s State) {
				assert.True(s.Aircraft["AA777"].Expedite)
			},
		},
		{
			name:   "incremental turn through north",
			line:   "AA777 t l 20",
			expect: []string{"AA777, turn 20 degrees left, heading 350"},
			check: func(assert *assert.Assertions, s State) {
				assert.Equal(350, s.Aircraft["AA777"].AssignedHeading)
			},
		},
		{
			name:   "turn in direction to heading",
			line:   "AA777 t r 090",
			expect: []string{"AA777, turn right heading 090"},
		},
		{
			name:   "taxi then takeoff",
			line:   "DL1 taxi 4r to",
			expect: []string{"DL1, taxi to runway 4R, runway 4R, cleared for takeoff"},
			check: func(assert *assert.Assertions, s State) {
				assert.Equal(PhaseAirborne, s.Aircraft["DL1"].Phase)
				assert.Equal("4R", s.Aircraft["DL1"].Runway)
			},
		},
		{
			name:   "taxi to assigned runway",
			line:   "DL1 w",
			expect: []string{"DL1, taxi to runway 22R"},
		},
		{
			name:   "direct to a fix on the route",
			line:   "AA777 dct hfd",
			expect: []string{"AA777, proceed direct HFD"},
			check: func(assert *assert.Assertions, s State) {
				assert.Equal([]string{"HFD", "PUT", "BOS"}, s.Aircraft["AA777"].Route)
				assert.Equal(0, s.Aircraft["AA777"].AssignedHeading)
			},
		},
		{
			name:   "route amended",
			line:   "AA777 route put.ayr.bos",
			expect: []string{"AA777, route amended MERIT.HFD.PUT.AYR.BOS"},
		},
		{
			name:   "rerouted",
			line:   "AA777 rr lobbs.bos",
			expect: []string{"AA777, rerouted LOBBS.BOS"},
		},
		{
			name:   "hold with everything given",
			line:   "AA777 hold hfd l 2min",
			expect: []string{"AA777, hold at HFD, left turns, 2min legs"},
		},
		{
			name:   "hold with defaults",
			line:   "AA777 hold",
			expect: []string{"AA777, hold at present position, right turns, 1min legs"},
		},
		{
			name:   "land then go around",
			line:   "AA777 i 4r abort",
			expect: []string{"AA777, cleared ILS runway 4R approach, going around"},
			check: func(assert *assert.Assertions, s State) {
				assert.Equal(PhaseAirborne, s.Aircraft["AA777"].Phase)
			},
		},
		{
			name:   "descend via STAR with altitude",
			line:   "AA777 dvs 80",
			expect: []string{"AA777, descend via the ROBUC3 arrival, except maintain 8,000"},
		},
		{
			name:   "say commands",
			line:   "AA777 sa sh si sr saa",
			expect: []string{"AA777, at 5,000, heading 010, indicating 210 knots, route MERIT.HFD.PUT.BOS, no assigned altitude"},
		},
		{
			name:   "ground clearance",
			line:   "DL1 caf sid ssoxs6 sq 4321",
			expect: []string{"DL1, cleared to destination as filed, cleared via the SSOXS6 departure, squawk 4321"},
		},
		{
			name:   "delete",
			line:   "AA777 del",
			expect: []string{"AA777, good day"},
			check: func(assert *assert.Assertions, s State) {
				assert.NotContains(s.Aircraft, "AA777")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			s := testState(t)

			actual, err := advanceLine(t, &s, tc.line)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
			if tc.check != nil {
				tc.check(assert, s)
			}
		})
	}
}

func Test_State_Advance_errors(t *testing.T) {
	testCases := []struct {
		name      string
		line      string
		expectMsg string
	}{
		{name: "unknown callsign", line: "ZZ9 fh 270", expectMsg: "No aircraft with callsign ZZ9"},
		{name: "heading on the ground", line: "DL1 fh 270", expectMsg: "DL1 is not airborne"},
		{name: "taxi while flying", line: "AA777 fh 270 taxi", expectMsg: "AA777 is already airborne"},
		{name: "takeoff from the ramp", line: "DL1 to", expectMsg: "DL1 is not waiting at a runway"},
		{name: "direct off the route", line: "AA777 dct zzz", expectMsg: "ZZZ is not on the route of AA777"},
		{name: "nothing to abort", line: "AA777 abort", expectMsg: "AA777 has nothing to abort"},
		{name: "climb via without a SID", line: "AA777 cvs", expectMsg: "AA777 has no SID assigned"},
		{name: "command after delete", line: "AA777 del sp 250", expectMsg: "No aircraft with callsign AA777"},
		{name: "quit", line: "quit", expectMsg: "I can't QUIT; I'm not being run by something that can end the session"},
		{name: "time warp too big", line: "tw 500", expectMsg: "Time warp can be at most 100"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			s := testState(t)
			before := s.Copy()

			actual, err := advanceLine(t, &s, tc.line)

			assert.Nil(actual)
			if !assert.Error(err) {
				return
			}
			assert.Equal(tc.expectMsg, scoperr.ConsoleMessage(err))
			assert.Equal(before, s, "state changed after failed line")
		})
	}
}

func Test_State_Advance_system(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		expect []string
		check  func(assert *assert.Assertions, s State)
	}{
		{
			name:   "pause",
			line:   "pause",
			expect: []string{"Simulation paused"},
			check: func(assert *assert.Assertions, s State) {
				assert.True(s.Paused)
			},
		},
		{
			name:   "time warp",
			line:   "tw 5",
			expect: []string{"Time warp set to 5x"},
			check: func(assert *assert.Assertions, s State) {
				assert.Equal(5, s.TimeWarp)
			},
		},
		{
			name:   "time warp reset",
			line:   "timewarp",
			expect: []string{"Time warp set to 1x"},
		},
		{
			name:   "rate",
			line:   "rate 0.5",
			expect: []string{"Update rate set to 0.5 per second"},
			check: func(assert *assert.Assertions, s State) {
				assert.Equal(0.5, s.UpdateRate)
			},
		},
		{
			name:   "current airport",
			line:   "airport",
			expect: []string{"Controlling KBOS"},
		},
		{
			name:   "switch airport",
			line:   "airport kjfk",
			expect: []string{"Switched to KJFK; all traffic cleared"},
			check: func(assert *assert.Assertions, s State) {
				assert.Equal("KJFK", s.Airport)
				assert.Empty(s.Aircraft)
			},
		},
		{
			name:   "airac",
			line:   "airac",
			expect: []string{"AIRAC cycle " + DefaultAIRAC},
		},
		{
			name:   "auto",
			line:   "auto",
			expect: []string{"Automatic control on"},
		},
		{
			name:   "tutorial",
			line:   "tutorial",
			expect: []string{"Tutorial on"},
		},
		{
			name: "clear gives no feedback",
			line: "clear",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			s := testState(t)

			actual, err := advanceLine(t, &s, tc.line)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
			if tc.check != nil {
				tc.check(assert, s)
			}
		})
	}
}

func Test_State_Advance_badArgs(t *testing.T) {
	s := testState(t)

	cmd := command.New(command.Speed, command.Entity, "AA777", "fast")
	_, err := s.Advance([]command.Command{cmd})

	assert.Error(t, err)
	assert.Equal(t, 0, s.Aircraft["AA777"].AssignedSpeed)
}

func Test_HelpText(t *testing.T) {
	t.Run("all commands", func(t *testing.T) {
		assert := assert.New(t)

		actual, err := HelpText("", 80)
		if !assert.NoError(err) {
			return
		}

		assert.Contains(actual, "System commands:")
		assert.Contains(actual, "BYE/EXIT/QUIT")
		assert.Contains(actual, "TAXI/W/WAIT")
	})

	t.Run("one command", func(t *testing.T) {
		assert := assert.New(t)

		actual, err := HelpText("FH", 80)
		if !assert.NoError(err) {
			return
		}

		assert.Contains(actual, "Usage: CALLSIGN FH [L|R] HDG")
		assert.Contains(actual, "FH, H, HEADING, T, TURN")
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := HelpText("zz", 80)
		assert.Error(t, err)
	})

	t.Run("help through Advance", func(t *testing.T) {
		assert := assert.New(t)
		s := testState(t)

		actual, err := advanceLine(t, &s, "? pause")
		if !assert.NoError(err) {
			return
		}
		if assert.Len(actual, 1) {
			assert.Contains(actual[0], "Usage: PAUSE")
		}
	})
}

func Test_turn(t *testing.T) {
	testCases := []struct {
		hdg    int
		dir    command.Direction
		deg    int
		expect int
	}{
		{hdg: 10, dir: command.Left, deg: 20, expect: 350},
		{hdg: 350, dir: command.Right, deg: 20, expect: 10},
		{hdg: 10, dir: command.Left, deg: 10, expect: 360},
		{hdg: 90, dir: command.Right, deg: 270, expect: 360},
		{hdg: 180, dir: command.Right, deg: 45, expect: 225},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expect, turn(tc.hdg, tc.dir, tc.deg), "turn(%d, %s, %d)", tc.hdg, tc.dir, tc.deg)
	}
}
