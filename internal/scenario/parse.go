package scenario

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tracon/scopecmd/internal/sim"
)

var (
	airportRegexp  = regexp.MustCompile(`^[A-Za-z]{4}$`)
	callsignRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{1,7}$`)
	squawkRegexp   = regexp.MustCompile(`^[0-7]{4}$`)
	runwayRegexp   = regexp.MustCompile(`^(0?[1-9]|[12][0-9]|3[0-6])[LCRlcr]?$`)
	fixRegexp      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{1,4}$`)
)

const maxAltitude = 99900

func parseScenario(scn topLevelScenario) (Scenario, error) {
	if !airportRegexp.MatchString(scn.Scenario.Airport) {
		return Scenario{}, fmt.Errorf("scenario: airport: must be a four-letter ICAO code, got %q", scn.Scenario.Airport)
	}

	name := scn.Scenario.Name
	if name == "" {
		name = strings.ToUpper(scn.Scenario.Airport)
	}

	var traffic []sim.Aircraft
	seen := map[string]bool{}
	for idx, a := range scn.Aircraft {
		if a.Phase == "" {
			a.Phase = sim.PhaseApron.String()
			if a.Altitude > 0 {
				a.Phase = sim.PhaseAirborne.String()
			}
		}

		if err := validateAircraftDef(a); err != nil {
			if a.Callsign == "" {
				return Scenario{}, fmt.Errorf("aircraft[%d]: %w", idx, err)
			}
			return Scenario{}, fmt.Errorf("aircraft[%q]: %w", a.Callsign, err)
		}

		cs := strings.ToUpper(a.Callsign)
		if seen[cs] {
			return Scenario{}, fmt.Errorf("aircraft[%q]: callsign: already used by another aircraft", a.Callsign)
		}
		seen[cs] = true

		traffic = append(traffic, a.toAircraft())
	}

	st, err := sim.New(scn.Scenario.Airport, traffic...)
	if err != nil {
		return Scenario{}, fmt.Errorf("aircraft: %w", err)
	}
	if scn.Scenario.AIRAC != "" {
		st.AIRAC = scn.Scenario.AIRAC
	}

	return Scenario{Name: name, State: st}, nil
}

func validateAircraftDef(a aircraft) error {
	if a.Callsign == "" {
		return fmt.Errorf("callsign: must exist and be non-empty")
	}
	if !callsignRegexp.MatchString(a.Callsign) {
		return fmt.Errorf("callsign: must be a letter followed by 1 to 7 letters or digits")
	}

	phase, err := sim.ParsePhase(a.Phase)
	if err != nil {
		return fmt.Errorf("phase: %w", err)
	}

	if phase.Airborne() {
		if a.Heading < 1 || a.Heading > 360 {
			return fmt.Errorf("heading: must be between 1 and 360 when airborne, got %d", a.Heading)
		}
		if a.Altitude < 1 {
			return fmt.Errorf("altitude: must be above 0 when airborne")
		}
	} else if a.Heading < 0 || a.Heading > 360 {
		return fmt.Errorf("heading: must be between 0 and 360, got %d", a.Heading)
	}
	if a.Altitude < 0 || a.Altitude > maxAltitude {
		return fmt.Errorf("altitude: must be between 0 and %d feet, got %d", maxAltitude, a.Altitude)
	}
	if a.Speed < 0 || a.Speed > 999 {
		return fmt.Errorf("speed: must be between 0 and 999 knots, got %d", a.Speed)
	}

	if a.Squawk != "" && !squawkRegexp.MatchString(a.Squawk) {
		return fmt.Errorf("squawk: must be four octal digits, got %q", a.Squawk)
	}

	if a.Runway != "" && !runwayRegexp.MatchString(a.Runway) {
		return fmt.Errorf("runway: not a valid runway: %q", a.Runway)
	}
	if phase == sim.PhaseWaiting || phase == sim.PhaseLanding {
		if a.Runway == "" {
			return fmt.Errorf("runway: must be given when phase is %q", phase)
		}
	}

	for _, fix := range sim.SplitRoute(a.Route) {
		if !fixRegexp.MatchString(fix) {
			return fmt.Errorf("route: %q is not a valid fix name", fix)
		}
	}

	return nil
}
