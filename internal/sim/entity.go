package sim

// File entity.go carries out commands addressed to a single aircraft. Each
// one gives the phrase the aircraft reads back.

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/scoperr"
)

const (
	defaultHoldLeg       = "1min"
	defaultHoldDirection = command.Right
)

func (s *State) executeEntity(cmd command.Command) (string, error) {
	ac, ok := s.Aircraft[cmd.Target()]
	if !ok {
		return "", scoperr.Interpreterf("No aircraft with callsign %s", cmd.Target())
	}

	switch cmd.Name() {
	case command.Abort:
		return ac.abort()
	case command.Altitude:
		return ac.altitude(cmd)
	case command.ClearedAsFiled:
		if err := ac.requireGround(); err != nil {
			return "", err
		}
		ac.ClearedAsFiled = true
		return "cleared to destination as filed", nil
	case command.ClimbViaSID:
		return ac.viaProcedure(cmd, ac.SID, "SID", "climb via the %s departure")
	case command.Delete:
		delete(s.Aircraft, ac.Callsign)
		return "good day", nil
	case command.DescendViaSTAR:
		return ac.viaProcedure(cmd, ac.STAR, "STAR", "descend via the %s arrival")
	case command.Direct:
		return ac.direct(cmd)
	case command.ExpectArrivalRunway:
		rwy, err := arg[string](cmd, 0)
		if err != nil {
			return "", err
		}
		ac.ArrivalRunway = strings.ToUpper(rwy)
		return "expect runway " + ac.ArrivalRunway, nil
	case command.FlyPresentHeading:
		if err := ac.requireAirborne(); err != nil {
			return "", err
		}
		ac.vector(ac.Heading)
		return "fly present heading", nil
	case command.Heading:
		return ac.heading(cmd)
	case command.Hold:
		return ac.hold(cmd)
	case command.Land:
		return ac.land(cmd)
	case command.Reroute:
		r, err := arg[string](cmd, 0)
		if err != nil {
			return "", err
		}
		ac.Route = SplitRoute(r)
		ac.DirectTo = ""
		return "rerouted " + ac.RouteString(), nil
	case command.Route:
		return ac.amendRoute(cmd)
	case command.SayAltitude:
		return "at " + formatAltitude(ac.Altitude), nil
	case command.SayAssignedAltitude:
		if ac.AssignedAltitude == 0 {
			return "no assigned altitude", nil
		}
		return "assigned " + formatAltitude(ac.AssignedAltitude), nil
	case command.SayAssignedHeading:
		if ac.AssignedHeading == 0 {
			return "no assigned heading", nil
		}
		return "assigned heading " + formatHeading(ac.AssignedHeading), nil
	case command.SayAssignedSpeed:
		if ac.AssignedSpeed == 0 {
			return "no assigned speed", nil
		}
		return fmt.Sprintf("assigned speed %d", ac.AssignedSpeed), nil
	case command.SayHeading:
		return "heading " + formatHeading(ac.Heading), nil
	case command.SayIndicatedAirspeed:
		return fmt.Sprintf("indicating %d knots", ac.Speed), nil
	case command.SayRoute:
		if len(ac.Route) == 0 {
			return "no route", nil
		}
		return "route " + ac.RouteString(), nil
	case command.SID:
		if err := ac.requireGround(); err != nil {
			return "", err
		}
		sid, err := arg[string](cmd, 0)
		if err != nil {
			return "", err
		}
		ac.SID = strings.ToUpper(sid)
		return fmt.Sprintf("cleared via the %s departure", ac.SID), nil
	case command.Speed:
		return ac.speed(cmd)
	case command.Squawk:
		code, err := arg[string](cmd, 0)
		if err != nil {
			return "", err
		}
		ac.Squawk = code
		return "squawk " + code, nil
	case command.STAR:
		if err := ac.requireAirborne(); err != nil {
			return "", err
		}
		star, err := arg[string](cmd, 0)
		if err != nil {
			return "", err
		}
		ac.STAR = strings.ToUpper(star)
		return fmt.Sprintf("cleared via the %s arrival", ac.STAR), nil
	case command.Takeoff:
		if ac.Phase != PhaseWaiting {
			return "", scoperr.Interpreterf("%s is not waiting at a runway", ac.Callsign)
		}
		ac.Phase = PhaseAirborne
		ac.Holding = nil
		return fmt.Sprintf("runway %s, cleared for takeoff", ac.Runway), nil
	case command.Taxi:
		return ac.taxi(cmd)
	default:
		return "", scoperr.Interpreterf("I don't know how to %s", strings.ToUpper(string(cmd.Name())))
	}
}

func (ac *Aircraft) requireAirborne() error {
	if !ac.Phase.Airborne() {
		return scoperr.Interpreterf("%s is not airborne", ac.Callsign)
	}
	return nil
}

func (ac *Aircraft) requireGround() error {
	if ac.Phase.Airborne() {
		return scoperr.Interpreterf("%s is already airborne", ac.Callsign)
	}
	return nil
}

// vector puts the aircraft on a heading, ending any approach, hold, or direct
// routing.
func (ac *Aircraft) vector(hdg int) {
	ac.AssignedHeading = hdg
	ac.DirectTo = ""
	ac.Holding = nil
	if ac.Phase == PhaseLanding {
		ac.Phase = PhaseAirborne
	}
}

func (ac *Aircraft) abort() (string, error) {
	switch ac.Phase {
	case PhaseLanding:
		ac.Phase = PhaseAirborne
		return "going around", nil
	case PhaseWaiting:
		ac.Phase = PhaseApron
		return "taxiing back to the ramp", nil
	default:
		return "", scoperr.Interpreterf("%s has nothing to abort", ac.Callsign)
	}
}

func (ac *Aircraft) altitude(cmd command.Command) (string, error) {
	alt, err := arg[int](cmd, 0)
	if err != nil {
		return "", err
	}
	expedite, err := arg[bool](cmd, 1)
	if err != nil {
		return "", err
	}

	verb := "maintain"
	if alt > ac.Altitude {
		verb = "climb and maintain"
	} else if alt < ac.Altitude {
		verb = "descend and maintain"
	}

	ac.AssignedAltitude = alt
	ac.Expedite = expedite
	ac.ViaProcedure = false

	out := verb + " " + formatAltitude(alt)
	if expedite {
		out += ", expedite"
	}
	return out, nil
}

func (ac *Aircraft) viaProcedure(cmd command.Command, proc, kind, phrase string) (string, error) {
	if proc == "" {
		return "", scoperr.Interpreterf("%s has no %s assigned", ac.Callsign, kind)
	}

	out := fmt.Sprintf(phrase, proc)
	if len(cmd.Args()) > 0 {
		alt, err := arg[int](cmd, 0)
		if err != nil {
			return "", err
		}
		ac.AssignedAltitude = alt
		out += ", except maintain " + formatAltitude(alt)
	}
	ac.ViaProcedure = true
	ac.Expedite = false
	return out, nil
}

func (ac *Aircraft) direct(cmd command.Command) (string, error) {
	if err := ac.requireAirborne(); err != nil {
		return "", err
	}
	fix, err := arg[string](cmd, 0)
	if err != nil {
		return "", err
	}
	fix = strings.ToUpper(fix)

	idx := slices.Index(ac.Route, fix)
	if idx < 0 {
		return "", scoperr.Interpreterf("%s is not on the route of %s", fix, ac.Callsign)
	}

	ac.vector(0)
	ac.Route = ac.Route[idx:]
	ac.DirectTo = fix
	return "proceed direct " + fix, nil
}

func (ac *Aircraft) heading(cmd command.Command) (string, error) {
	if err := ac.requireAirborne(); err != nil {
		return "", err
	}
	dir, err := arg[command.Direction](cmd, 0)
	if err != nil {
		return "", err
	}
	deg, err := arg[int](cmd, 1)
	if err != nil {
		return "", err
	}
	incremental, err := arg[bool](cmd, 2)
	if err != nil {
		return "", err
	}

	hdg := deg
	if incremental {
		// turns stack on the last heading given
		from := ac.Heading
		if ac.AssignedHeading != 0 {
			from = ac.AssignedHeading
		}
		hdg = turn(from, dir, deg)
	}
	ac.vector(hdg)

	if dir == command.NoDirection {
		return "fly heading " + formatHeading(hdg), nil
	}
	if incremental {
		return fmt.Sprintf("turn %d degrees %s, heading %s", deg, dir, formatHeading(hdg)), nil
	}
	return fmt.Sprintf("turn %s heading %s", dir, formatHeading(hdg)), nil
}

func (ac *Aircraft) hold(cmd command.Command) (string, error) {
	if err := ac.requireAirborne(); err != nil {
		return "", err
	}
	fix, err := arg[string](cmd, 0)
	if err != nil {
		return "", err
	}
	dir, err := arg[command.Direction](cmd, 1)
	if err != nil {
		return "", err
	}
	leg, err := arg[string](cmd, 2)
	if err != nil {
		return "", err
	}

	h := Hold{
		Fix:       strings.ToUpper(fix),
		Direction: dir,
		Leg:       leg,
	}
	if h.Fix == "" {
		h.Fix = ac.DirectTo
		if h.Fix == "" {
			h.Fix = "present position"
		}
	}
	if h.Direction == command.NoDirection {
		h.Direction = defaultHoldDirection
	}
	if h.Leg == "" {
		h.Leg = defaultHoldLeg
	}

	if ac.Phase == PhaseLanding {
		ac.Phase = PhaseAirborne
	}
	ac.Holding = &h
	return h.String(), nil
}

func (ac *Aircraft) land(cmd command.Command) (string, error) {
	if err := ac.requireAirborne(); err != nil {
		return "", err
	}
	rwy, err := arg[string](cmd, 0)
	if err != nil {
		return "", err
	}
	ac.Runway = strings.ToUpper(rwy)
	ac.Phase = PhaseLanding
	ac.Holding = nil
	return fmt.Sprintf("cleared ILS runway %s approach", ac.Runway), nil
}

// amendRoute replaces the part of the route from the first fix of the new
// segment onwards.
func (ac *Aircraft) amendRoute(cmd command.Command) (string, error) {
	r, err := arg[string](cmd, 0)
	if err != nil {
		return "", err
	}
	segment := SplitRoute(r)
	if len(segment) == 0 {
		return "", scoperr.Interpreterf("Route %q has no fixes in it", r)
	}

	idx := slices.Index(ac.Route, segment[0])
	if idx < 0 {
		return "", scoperr.Interpreterf("%s is not on the route of %s; use REROUTE to replace the route", segment[0], ac.Callsign)
	}

	ac.Route = append(ac.Route[:idx], segment...)
	return "route amended " + ac.RouteString(), nil
}

func (ac *Aircraft) speed(cmd command.Command) (string, error) {
	if err := ac.requireAirborne(); err != nil {
		return "", err
	}
	kts, err := arg[int](cmd, 0)
	if err != nil {
		return "", err
	}

	verb := "maintain"
	if kts > ac.Speed {
		verb = "increase speed to"
	} else if kts < ac.Speed {
		verb = "reduce speed to"
	}

	ac.AssignedSpeed = kts
	return fmt.Sprintf("%s %d", verb, kts), nil
}

func (ac *Aircraft) taxi(cmd command.Command) (string, error) {
	if err := ac.requireGround(); err != nil {
		return "", err
	}

	rwy := ac.Runway
	if len(cmd.Args()) > 0 {
		r, err := arg[string](cmd, 0)
		if err != nil {
			return "", err
		}
		rwy = strings.ToUpper(r)
	}
	if rwy == "" {
		return "", scoperr.Interpreterf("%s has no runway assigned; give one, as in TAXI 28R", ac.Callsign)
	}

	ac.Runway = rwy
	ac.Phase = PhaseWaiting
	return "taxi to runway " + rwy, nil
}
