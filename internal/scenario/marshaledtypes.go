package scenario

import (
	"strings"

	"github.com/tracon/scopecmd/internal/sim"
)

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// topLevelScenario is every key in a complete SCOPE 'DATA' file.
type topLevelScenario struct {
	Format   string     `toml:"format"`
	Type     string     `toml:"type"`
	Scenario header     `toml:"scenario"`
	Aircraft []aircraft `toml:"aircraft"`
}

type header struct {
	Name    string `toml:"name"`
	Airport string `toml:"airport"`
	AIRAC   string `toml:"airac"`
}

type aircraft struct {
	Callsign string `toml:"callsign"`
	Heading  int    `toml:"heading"`
	Altitude int    `toml:"altitude"`
	Speed    int    `toml:"speed"`
	Squawk   string `toml:"squawk"`
	Route    string `toml:"route"`
	SID      string `toml:"sid"`
	STAR     string `toml:"star"`
	Phase    string `toml:"phase"`
	Runway   string `toml:"runway"`
}

// toAircraft converts an already-validated entry.
func (a aircraft) toAircraft() sim.Aircraft {
	phase, _ := sim.ParsePhase(a.Phase)

	return sim.Aircraft{
		Callsign: strings.ToUpper(a.Callsign),
		Heading:  a.Heading,
		Altitude: a.Altitude,
		Speed:    a.Speed,
		Squawk:   a.Squawk,
		Route:    sim.SplitRoute(a.Route),
		SID:      strings.ToUpper(a.SID),
		STAR:     strings.ToUpper(a.STAR),
		Runway:   strings.ToUpper(a.Runway),
		Phase:    phase,
	}
}
