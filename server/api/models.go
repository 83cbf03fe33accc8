package api

import (
	"time"

	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/sim"
	"github.com/tracon/scopecmd/server/dao"
)

type InfoModel struct {
	Version struct {
		Server   string `json:"server"`
		ScopeCmd string `json:"scopecmd"`
	} `json:"version"`
}

type CreateSessionRequest struct {
	Scenario string `json:"scenario"`
}

type CreateSessionResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type AircraftModel struct {
	Callsign         string   `json:"callsign"`
	Phase            string   `json:"phase"`
	Heading          int      `json:"heading"`
	Altitude         int      `json:"altitude"`
	Speed            int      `json:"speed"`
	AssignedHeading  int      `json:"assigned_heading,omitempty"`
	AssignedAltitude int      `json:"assigned_altitude,omitempty"`
	AssignedSpeed    int      `json:"assigned_speed,omitempty"`
	Squawk           string   `json:"squawk,omitempty"`
	Route            []string `json:"route,omitempty"`
	DirectTo         string   `json:"direct_to,omitempty"`
	SID              string   `json:"sid,omitempty"`
	STAR             string   `json:"star,omitempty"`
	Runway           string   `json:"runway,omitempty"`
	Holding          string   `json:"holding,omitempty"`
}

type SessionModel struct {
	ID       string          `json:"id"`
	Scenario string          `json:"scenario"`
	Airport  string          `json:"airport"`
	AIRAC    string          `json:"airac"`
	TimeWarp int             `json:"time_warp"`
	Rate     float64         `json:"update_rate"`
	Paused   bool            `json:"paused"`
	Auto     bool            `json:"auto"`
	Tutorial bool            `json:"tutorial"`
	Aircraft []AircraftModel `json:"aircraft"`
	Created  string          `json:"created"`
	Modified string          `json:"modified"`
}

type ExecuteLineRequest struct {
	// Line is left undecoded so that a non-string can be reported as a
	// command input error rather than a malformed body.
	Line any `json:"line"`
}

type CommandModel struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Target   string `json:"target,omitempty"`
	Args     []any  `json:"args"`
}

type ExecuteLineResponse struct {
	Commands []CommandModel `json:"commands"`
	Readback []string       `json:"readback"`
	Ended    bool           `json:"ended,omitempty"`
}

type HistoryEntryModel struct {
	Line     string   `json:"line"`
	Readback []string `json:"readback"`
	Created  string   `json:"created"`
}

func sessionToModel(s dao.Session) SessionModel {
	m := SessionModel{
		ID:       s.ID.String(),
		Scenario: s.Scenario,
		Airport:  s.State.Airport,
		AIRAC:    s.State.AIRAC,
		TimeWarp: s.State.TimeWarp,
		Rate:     s.State.UpdateRate,
		Paused:   s.State.Paused,
		Auto:     s.State.Auto,
		Tutorial: s.State.Tutorial,
		Aircraft: []AircraftModel{},
		Created:  s.Created.Format(time.RFC3339),
		Modified: s.Modified.Format(time.RFC3339),
	}

	for _, cs := range s.State.Callsigns() {
		m.Aircraft = append(m.Aircraft, aircraftToModel(*s.State.Aircraft[cs]))
	}

	return m
}

func aircraftToModel(ac sim.Aircraft) AircraftModel {
	m := AircraftModel{
		Callsign:         ac.Callsign,
		Phase:            ac.Phase.String(),
		Heading:          ac.Heading,
		Altitude:         ac.Altitude,
		Speed:            ac.Speed,
		AssignedHeading:  ac.AssignedHeading,
		AssignedAltitude: ac.AssignedAltitude,
		AssignedSpeed:    ac.AssignedSpeed,
		Squawk:           ac.Squawk,
		Route:            ac.Route,
		DirectTo:         ac.DirectTo,
		SID:              ac.SID,
		STAR:             ac.STAR,
		Runway:           ac.Runway,
	}
	if ac.Holding != nil {
		m.Holding = ac.Holding.String()
	}
	return m
}

func commandToModel(c command.Command) CommandModel {
	return CommandModel{
		Name:     string(c.Name()),
		Category: c.Category().String(),
		Target:   c.Target(),
		Args:     c.Args(),
	}
}

func historyToModel(c dao.Command) HistoryEntryModel {
	return HistoryEntryModel{
		Line:     c.Line,
		Readback: c.Readback,
		Created:  c.Created.Format(time.RFC3339),
	}
}
