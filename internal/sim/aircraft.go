package sim

// File aircraft.go holds the per-aircraft state that entity commands act on.

import (
	"fmt"
	"strings"

	"github.com/tracon/scopecmd/internal/command"
)

// Phase is where an aircraft is in its flight.
type Phase int

const (
	// PhaseApron is on the ground and not yet taxied to a runway.
	PhaseApron Phase = iota

	// PhaseWaiting is holding short of or lined up on its departure runway.
	PhaseWaiting

	// PhaseAirborne is flying and under radar control.
	PhaseAirborne

	// PhaseLanding is flying and cleared for an approach to a runway.
	PhaseLanding
)

var phaseNames = map[Phase]string{
	PhaseApron:    "apron",
	PhaseWaiting:  "waiting",
	PhaseAirborne: "airborne",
	PhaseLanding:  "landing",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Airborne returns whether an aircraft in phase p is flying.
func (p Phase) Airborne() bool {
	return p == PhaseAirborne || p == PhaseLanding
}

// ParsePhase gives the Phase with the given name, case-insensitively.
func ParsePhase(s string) (Phase, error) {
	s = strings.ToLower(s)
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return PhaseApron, fmt.Errorf("not one of 'apron', 'waiting', 'airborne', or 'landing': %q", s)
}

// Hold is a holding instruction.
type Hold struct {
	Fix       string
	Direction command.Direction
	Leg       string
}

func (h Hold) String() string {
	return fmt.Sprintf("hold at %s, %s turns, %s legs", h.Fix, h.Direction, h.Leg)
}

// Aircraft is one aircraft in the simulation. Headings are in degrees from 1
// to 360, altitudes in feet, and speeds in knots. An assigned value of 0
// means nothing has been assigned.
type Aircraft struct {
	Callsign string

	Heading  int
	Altitude int
	Speed    int

	AssignedHeading  int
	AssignedAltitude int
	AssignedSpeed    int

	// Expedite is set when the last altitude assignment was to be expedited.
	Expedite bool

	// ViaProcedure is set when cleared to climb via the SID or descend via
	// the STAR.
	ViaProcedure bool

	Squawk string

	// Route is the fixes still to be flown, in order.
	Route []string

	// DirectTo is the fix the aircraft was sent direct to, if any.
	DirectTo string

	SID            string
	STAR           string
	Runway         string
	ArrivalRunway  string
	ClearedAsFiled bool
	Phase          Phase

	// Holding is nil unless the aircraft has been told to hold.
	Holding *Hold
}

// Copy returns a deeply-copied Aircraft.
func (ac Aircraft) Copy() Aircraft {
	acCopy := ac
	if ac.Route != nil {
		acCopy.Route = make([]string, len(ac.Route))
		copy(acCopy.Route, ac.Route)
	}

	if ac.Holding != nil {
		h := *ac.Holding
		acCopy.Holding = &h
	}

	return acCopy
}

func (ac Aircraft) String() string {
	return fmt.Sprintf("Aircraft<%s %s hdg=%03d alt=%d spd=%d>", ac.Callsign, ac.Phase, ac.Heading, ac.Altitude, ac.Speed)
}

// RouteString gives the route in the dotted form it is entered in.
func (ac Aircraft) RouteString() string {
	return strings.Join(ac.Route, ".")
}

// SplitRoute splits a dotted route such as "kjfk.dixie..lga" into upper-case
// fixes.
func SplitRoute(route string) []string {
	fixes := strings.FieldsFunc(route, func(r rune) bool {
		return r == '.'
	})
	for i := range fixes {
		fixes[i] = strings.ToUpper(fixes[i])
	}
	return fixes
}

// turn gives the heading reached by turning deg degrees in direction dir
// from hdg.
func turn(hdg int, dir command.Direction, deg int) int {
	if dir == command.Left {
		deg = -deg
	}
	h := (hdg + deg) % 360
	if h <= 0 {
		h += 360
	}
	return h
}
