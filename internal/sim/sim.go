// Package sim holds the state of a traffic simulation and applies parsed
// console commands to it.
package sim

import (
	"fmt"
	"strings"

	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/scoperr"
	"github.com/tracon/scopecmd/internal/util"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultAIRAC is the navigation data cycle reported when a scenario does
	// not name one.
	DefaultAIRAC = "2310"

	// MaxTimeWarp is the largest time warp multiplier accepted.
	MaxTimeWarp = 100
)

// numbers formats altitudes with digit grouping, as in "12,000".
var numbers = message.NewPrinter(language.English)

// State is the simulation's entire state.
type State struct {
	// Airport is the ICAO code of the airport being controlled, in upper case.
	Airport string

	// AIRAC is the navigation data cycle in use.
	AIRAC string

	// TimeWarp is the simulation speed multiplier. It is always at least 1.
	TimeWarp int

	// UpdateRate is how many times per second the scope is redrawn.
	UpdateRate float64

	Paused   bool
	Auto     bool
	Tutorial bool

	// Aircraft is every aircraft in the simulation, keyed by upper-case
	// callsign.
	Aircraft map[string]*Aircraft
}

// New creates a State for the given airport holding the given aircraft.
// Callsigns are upper-cased and must be unique.
func New(airport string, aircraft ...Aircraft) (State, error) {
	s := State{
		Airport:    strings.ToUpper(airport),
		AIRAC:      DefaultAIRAC,
		TimeWarp:   1,
		UpdateRate: 1,
		Aircraft:   make(map[string]*Aircraft),
	}

	for _, ac := range aircraft {
		if err := s.Add(ac); err != nil {
			return State{}, err
		}
	}

	return s, nil
}

// Add puts an aircraft into the simulation.
func (s *State) Add(ac Aircraft) error {
	ac.Callsign = strings.ToUpper(ac.Callsign)
	if ac.Callsign == "" {
		return fmt.Errorf("aircraft has no callsign")
	}
	if command.Classify(strings.ToLower(ac.Callsign)) == command.System {
		return fmt.Errorf("callsign %q is the same as a system command", ac.Callsign)
	}
	if _, exists := s.Aircraft[ac.Callsign]; exists {
		return fmt.Errorf("duplicate callsign %q", ac.Callsign)
	}

	ac = ac.Copy()
	s.Aircraft[ac.Callsign] = &ac
	return nil
}

// Callsigns gives the callsign of every aircraft in the simulation, sorted.
func (s State) Callsigns() []string {
	return util.OrderedKeys(s.Aircraft)
}

// Copy returns a deeply-copied State.
func (s State) Copy() State {
	sCopy := s
	sCopy.Aircraft = make(map[string]*Aircraft, len(s.Aircraft))
	for cs, ac := range s.Aircraft {
		acCopy := ac.Copy()
		sCopy.Aircraft[cs] = &acCopy
	}
	return sCopy
}

// Advance applies the commands parsed from one console line and returns the
// feedback to show for them. Entity commands give a single readback line
// from the aircraft.
//
// A line is applied as a whole. If any command in it cannot be carried out,
// the error is returned and the State is left as it was.
//
// QUIT is not carried out here, since ending a session is up to whatever is
// driving the State.
func (s *State) Advance(cmds []command.Command) ([]string, error) {
	for _, cmd := range cmds {
		if cmd.Category() != command.Entity {
			continue
		}
		if _, ok := s.Aircraft[cmd.Target()]; !ok {
			return nil, scoperr.Interpreterf("No aircraft with callsign %s", cmd.Target())
		}
	}

	next := s.Copy()

	var feedback []string
	var readback []string
	for _, cmd := range cmds {
		var out string
		var err error
		if cmd.Category() == command.System {
			out, err = next.executeSystem(cmd)
		} else {
			out, err = next.executeEntity(cmd)
		}
		if err != nil {
			return nil, err
		}
		if out == "" {
			continue
		}
		if cmd.Category() == command.System {
			feedback = append(feedback, out)
		} else {
			readback = append(readback, out)
		}
	}

	if len(readback) > 0 {
		feedback = append(feedback, cmds[0].Target()+", "+strings.Join(readback, ", "))
	}

	*s = next
	return feedback, nil
}

func (s *State) executeSystem(cmd command.Command) (string, error) {
	args := cmd.Args()

	switch cmd.Name() {
	case command.Airac:
		return "AIRAC cycle " + s.AIRAC, nil
	case command.Airport:
		if len(args) == 0 {
			if s.Airport == "" {
				return "No airport loaded", nil
			}
			return "Controlling " + s.Airport, nil
		}
		code, err := arg[string](cmd, 0)
		if err != nil {
			return "", err
		}
		code = strings.ToUpper(code)
		if code == s.Airport {
			return "Already controlling " + code, nil
		}
		s.Airport = code
		s.Aircraft = make(map[string]*Aircraft)
		return "Switched to " + code + "; all traffic cleared", nil
	case command.Auto:
		s.Auto = !s.Auto
		return "Automatic control " + onOff(s.Auto), nil
	case command.Clear:
		return "", nil
	case command.Help:
		var alias string
		if len(args) > 0 {
			var err error
			if alias, err = arg[string](cmd, 0); err != nil {
				return "", err
			}
		}
		return HelpText(alias, DefaultWidth)
	case command.Pause:
		s.Paused = !s.Paused
		if s.Paused {
			return "Simulation paused", nil
		}
		return "Simulation resumed", nil
	case command.Quit:
		return "", scoperr.Interpreterf("I can't QUIT; I'm not being run by something that can end the session")
	case command.Rate:
		r, err := arg[float64](cmd, 0)
		if err != nil {
			return "", err
		}
		s.UpdateRate = r
		return fmt.Sprintf("Update rate set to %g per second", r), nil
	case command.Timewarp:
		warp := 1
		if len(args) > 0 {
			var err error
			if warp, err = arg[int](cmd, 0); err != nil {
				return "", err
			}
		}
		if warp > MaxTimeWarp {
			return "", scoperr.Interpreterf("Time warp can be at most %d", MaxTimeWarp)
		}
		if warp < 1 {
			warp = 1
		}
		s.TimeWarp = warp
		return fmt.Sprintf("Time warp set to %dx", warp), nil
	case command.Tutorial:
		s.Tutorial = !s.Tutorial
		return "Tutorial " + onOff(s.Tutorial), nil
	default:
		return "", scoperr.Interpreterf("I don't know how to %s", strings.ToUpper(string(cmd.Name())))
	}
}

// arg gets the i-th argument of cmd as a T.
func arg[T any](cmd command.Command, i int) (T, error) {
	var zero T
	args := cmd.Args()
	if i >= len(args) {
		return zero, scoperr.Interpreter("Internal error; check the logs", fmt.Sprintf("%s: missing argument %d", cmd.Name(), i))
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, scoperr.Interpreter("Internal error; check the logs", fmt.Sprintf("%s: argument %d is a %T, not a %T", cmd.Name(), i, args[i], zero))
	}
	return v, nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func formatAltitude(feet int) string {
	return numbers.Sprintf("%d", feet)
}

func formatHeading(hdg int) string {
	return fmt.Sprintf("%03d", hdg)
}
