package sim

import (
	"encoding"
	"fmt"
	"strconv"

	"github.com/dekarrin/rezi"
	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/util"
)

// decoder reads values off the front of a REZI-encoded byte slice. After the
// first failure every read gives a zero value and err keeps that failure.
type decoder struct {
	data []byte
	err  error
}

func (d *decoder) str(what string) string {
	if d.err != nil {
		return ""
	}
	s, n, err := rezi.DecString(d.data)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", what, err)
		return ""
	}
	d.data = d.data[n:]
	return s
}

func (d *decoder) int(what string) int {
	if d.err != nil {
		return 0
	}
	i, n, err := rezi.DecInt(d.data)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", what, err)
		return 0
	}
	d.data = d.data[n:]
	return i
}

func (d *decoder) bool(what string) bool {
	if d.err != nil {
		return false
	}
	b, n, err := rezi.DecBool(d.data)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", what, err)
		return false
	}
	d.data = d.data[n:]
	return b
}

func (d *decoder) binary(what string, b encoding.BinaryUnmarshaler) {
	if d.err != nil {
		return
	}
	n, err := rezi.DecBinary(d.data, b)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", what, err)
		return
	}
	d.data = d.data[n:]
}

func (ac Aircraft) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(ac.Callsign)...)
	data = append(data, rezi.EncInt(ac.Heading)...)
	data = append(data, rezi.EncInt(ac.Altitude)...)
	data = append(data, rezi.EncInt(ac.Speed)...)
	data = append(data, rezi.EncInt(ac.AssignedHeading)...)
	data = append(data, rezi.EncInt(ac.AssignedAltitude)...)
	data = append(data, rezi.EncInt(ac.AssignedSpeed)...)
	data = append(data, rezi.EncBool(ac.Expedite)...)
	data = append(data, rezi.EncBool(ac.ViaProcedure)...)
	data = append(data, rezi.EncString(ac.Squawk)...)

	data = append(data, rezi.EncInt(len(ac.Route))...)
	for _, fix := range ac.Route {
		data = append(data, rezi.EncString(fix)...)
	}

	data = append(data, rezi.EncString(ac.DirectTo)...)
	data = append(data, rezi.EncString(ac.SID)...)
	data = append(data, rezi.EncString(ac.STAR)...)
	data = append(data, rezi.EncString(ac.Runway)...)
	data = append(data, rezi.EncString(ac.ArrivalRunway)...)
	data = append(data, rezi.EncBool(ac.ClearedAsFiled)...)
	data = append(data, rezi.EncInt(int(ac.Phase))...)

	data = append(data, rezi.EncBool(ac.Holding != nil)...)
	if ac.Holding != nil {
		data = append(data, rezi.EncString(ac.Holding.Fix)...)
		data = append(data, rezi.EncString(string(ac.Holding.Direction))...)
		data = append(data, rezi.EncString(ac.Holding.Leg)...)
	}

	return data, nil
}

func (ac *Aircraft) UnmarshalBinary(data []byte) error {
	d := &decoder{data: data}

	var dec Aircraft
	dec.Callsign = d.str("callsign")
	dec.Heading = d.int("heading")
	dec.Altitude = d.int("altitude")
	dec.Speed = d.int("speed")
	dec.AssignedHeading = d.int("assigned heading")
	dec.AssignedAltitude = d.int("assigned altitude")
	dec.AssignedSpeed = d.int("assigned speed")
	dec.Expedite = d.bool("expedite")
	dec.ViaProcedure = d.bool("via procedure")
	dec.Squawk = d.str("squawk")

	routeLen := d.int("route length")
	if d.err == nil && routeLen < 0 {
		return fmt.Errorf("route length < 0")
	}
	for i := 0; i < routeLen && d.err == nil; i++ {
		dec.Route = append(dec.Route, d.str(fmt.Sprintf("route fix %d", i)))
	}

	dec.DirectTo = d.str("direct fix")
	dec.SID = d.str("SID")
	dec.STAR = d.str("STAR")
	dec.Runway = d.str("runway")
	dec.ArrivalRunway = d.str("arrival runway")
	dec.ClearedAsFiled = d.bool("cleared as filed")
	dec.Phase = Phase(d.int("phase"))

	if d.bool("holding") {
		dec.Holding = &Hold{
			Fix:       d.str("hold fix"),
			Direction: command.Direction(d.str("hold direction")),
			Leg:       d.str("hold leg"),
		}
	}

	if d.err != nil {
		return d.err
	}
	if _, ok := phaseNames[dec.Phase]; !ok {
		return fmt.Errorf("unknown phase %d", int(dec.Phase))
	}

	*ac = dec
	return nil
}

func (s State) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(s.Airport)...)
	data = append(data, rezi.EncString(s.AIRAC)...)
	data = append(data, rezi.EncInt(s.TimeWarp)...)
	data = append(data, rezi.EncString(strconv.FormatFloat(s.UpdateRate, 'g', -1, 64))...)
	data = append(data, rezi.EncBool(s.Paused)...)
	data = append(data, rezi.EncBool(s.Auto)...)
	data = append(data, rezi.EncBool(s.Tutorial)...)

	data = append(data, rezi.EncInt(len(s.Aircraft))...)
	for _, cs := range util.OrderedKeys(s.Aircraft) {
		data = append(data, rezi.EncBinary(*s.Aircraft[cs])...)
	}

	return data, nil
}

func (s *State) UnmarshalBinary(data []byte) error {
	d := &decoder{data: data}

	dec := State{
		Aircraft: make(map[string]*Aircraft),
	}
	dec.Airport = d.str("airport")
	dec.AIRAC = d.str("AIRAC")
	dec.TimeWarp = d.int("time warp")
	rate := d.str("update rate")
	dec.Paused = d.bool("paused")
	dec.Auto = d.bool("auto")
	dec.Tutorial = d.bool("tutorial")

	count := d.int("aircraft count")
	for i := 0; i < count && d.err == nil; i++ {
		var ac Aircraft
		d.binary(fmt.Sprintf("aircraft %d", i), &ac)
		dec.Aircraft[ac.Callsign] = &ac
	}

	if d.err != nil {
		return d.err
	}

	var err error
	dec.UpdateRate, err = strconv.ParseFloat(rate, 64)
	if err != nil {
		return fmt.Errorf("update rate: %w", err)
	}

	*s = dec
	return nil
}
