package sim

import (
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/scoperr"
)

// DefaultWidth is the width help text is wrapped to when nothing else is
// known about the output.
const DefaultWidth = 80

var textFormatOptions = rosed.Options{
	PreserveParagraphs: true,
	IndentStr:          "  ",
}

// commandHelp gives the usage and description of each command. Usage does
// not include the command word itself.
var commandHelp = map[command.Name][2]string{
	command.Airac:    {"", "show the navigation data cycle in use"},
	command.Airport:  {"[ICAO]", "show the airport being controlled, or switch to another one"},
	command.Auto:     {"", "turn automatic control of traffic on or off"},
	command.Clear:    {"", "clear the console"},
	command.Help:     {"[COMMAND]", "list the commands, or show help on one of them"},
	command.Pause:    {"", "pause or resume the simulation"},
	command.Quit:     {"", "end the session"},
	command.Rate:     {"RATE", "set how many times per second the scope is redrawn"},
	command.Timewarp: {"[N]", "run the simulation N times faster, or at normal speed if N is left out"},
	command.Tutorial: {"", "turn the tutorial on or off"},

	command.Abort:                {"", "abort a takeoff or landing"},
	command.Altitude:             {"ALT [X]", "climb or descend to ALT hundred feet, expedited if X is given"},
	command.ClearedAsFiled:       {"", "clear to the destination as filed"},
	command.ClimbViaSID:          {"[ALT]", "climb via the SID, optionally maintaining ALT hundred feet"},
	command.Delete:               {"", "remove the aircraft from the simulation"},
	command.DescendViaSTAR:       {"[ALT]", "descend via the STAR, optionally maintaining ALT hundred feet"},
	command.Direct:               {"FIX", "proceed direct to a fix on the route"},
	command.ExpectArrivalRunway:  {"RWY", "expect to land on runway RWY"},
	command.FlyPresentHeading:    {"", "stop turning and fly the present heading"},
	command.Heading:              {"[L|R] HDG", "fly heading HDG, or turn left or right by HDG degrees if it has fewer than three digits"},
	command.Hold:                 {"[FIX] [L|R] [LEG]", "hold at a fix with the given turns and leg length, such as 1MIN or 4NM"},
	command.Land:                 {"RWY", "clear for the ILS approach to runway RWY"},
	command.Reroute:              {"ROUTE", "replace the route, given as fixes joined by dots"},
	command.Route:                {"ROUTE", "amend the route from its first fix onwards"},
	command.SayAltitude:          {"", "report the current altitude"},
	command.SayAssignedAltitude:  {"", "report the assigned altitude"},
	command.SayAssignedHeading:   {"", "report the assigned heading"},
	command.SayAssignedSpeed:     {"", "report the assigned speed"},
	command.SayHeading:           {"", "report the current heading"},
	command.SayIndicatedAirspeed: {"", "report the indicated airspeed"},
	command.SayRoute:             {"", "report the route"},
	command.SID:                  {"SID", "assign a standard instrument departure"},
	command.Speed:                {"KTS", "fly at KTS knots"},
	command.Squawk:               {"CODE", "set the transponder code"},
	command.STAR:                 {"STAR", "assign a standard terminal arrival"},
	command.Takeoff:              {"", "clear for takeoff from the runway being waited at"},
	command.Taxi:                 {"[RWY]", "taxi to and wait at runway RWY, or the assigned runway"},
}

// HelpText gives help wrapped to width. With no alias, every command is
// listed; otherwise the command the alias belongs to is described.
func HelpText(alias string, width int) (string, error) {
	if width < 2 {
		width = DefaultWidth
	}
	opts := textFormatOptions.
		WithParagraphSeparator("\n").
		WithNoTrailingLineSeparators(true)

	if alias == "" {
		ed := rosed.Edit("").WithOptions(opts).
			Insert(rosed.End, "System commands:\n").
			InsertDefinitionsTable(rosed.End, helpRows(command.SystemCommands), width).
			Insert(rosed.End, "\n\nAircraft commands, given after a callsign as in AA777 FH 270 C 120:\n").
			InsertDefinitionsTable(rosed.End, helpRows(command.EntityCommands), width)
		return ed.String(), nil
	}

	alias = command.Normalize(alias)
	reg := command.SystemCommands
	prefix := ""
	name, ok := reg.Resolve(alias)
	if !ok {
		reg = command.EntityCommands
		prefix = "CALLSIGN "
		name, ok = reg.Resolve(alias)
	}
	if !ok {
		return "", scoperr.Interpreterf("There is no %q command; type HELP to list them", strings.ToUpper(alias))
	}

	usage := prefix + strings.ToUpper(alias)
	if h := commandHelp[name]; h[0] != "" {
		usage += " " + h[0]
	}

	ed := rosed.Edit("").WithOptions(opts).
		Insert(rosed.End, "Usage: "+usage+"\n").
		Insert(rosed.End, "Also typed as: "+strings.ToUpper(strings.Join(reg.Aliases(name), ", "))+"\n").
		CharsFrom(rosed.End).
		Insert(rosed.End, commandHelp[name][1]).
		Wrap(width).
		Commit()
	return ed.String(), nil
}

func helpRows(reg *command.Registry) [][2]string {
	var rows [][2]string
	for _, name := range reg.Names() {
		term := strings.ToUpper(strings.Join(reg.Aliases(name), "/"))
		if usage := commandHelp[name][0]; usage != "" {
			term += " " + usage
		}
		rows = append(rows, [2]string{term, commandHelp[name][1]})
	}
	return rows
}
