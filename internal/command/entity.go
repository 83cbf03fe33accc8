package command

import "fmt"

// Entity command names.
const (
	Abort                Name = "abort"
	Altitude             Name = "altitude"
	ClearedAsFiled       Name = "clearedAsFiled"
	ClimbViaSID          Name = "climbViaSid"
	Delete               Name = "delete"
	DescendViaSTAR       Name = "descendViaStar"
	Direct               Name = "direct"
	ExpectArrivalRunway  Name = "expectArrivalRunway"
	FlyPresentHeading    Name = "flyPresentHeading"
	Heading              Name = "heading"
	Hold                 Name = "hold"
	Land                 Name = "land"
	Reroute              Name = "reroute"
	Route                Name = "route"
	SayAltitude          Name = "sayAltitude"
	SayAssignedAltitude  Name = "sayAssignedAltitude"
	SayAssignedHeading   Name = "sayAssignedHeading"
	SayAssignedSpeed     Name = "sayAssignedSpeed"
	SayHeading           Name = "sayHeading"
	SayIndicatedAirspeed Name = "sayIndicatedAirspeed"
	SayRoute             Name = "sayRoute"
	SID                  Name = "sid"
	Speed                Name = "speed"
	Squawk               Name = "squawk"
	STAR                 Name = "star"
	Takeoff              Name = "takeoff"
	Taxi                 Name = "taxi"
)

// EntityCommands is the registry of commands addressed to an aircraft.
var EntityCommands *Registry

func entityDefinitions() []Definition {
	none := takeArgs(0, 0)
	one := takeArgs(1, 0)

	return []Definition{
		{Name: Abort, Aliases: []string{"abort"}, Parse: none, Validate: PassThrough},
		{Name: Altitude, Aliases: []string{"a", "altitude", "c", "climb", "d", "descend"}, Parse: takeArgs(1, 1), Validate: validateAltitude},
		{Name: ClearedAsFiled, Aliases: []string{"caf"}, Parse: none, Validate: PassThrough},
		{Name: ClimbViaSID, Aliases: []string{"cvs"}, Parse: takeArgs(0, 1), Validate: validateViaProcedure},
		{Name: Delete, Aliases: []string{"del", "delete", "kill"}, Parse: none, Validate: PassThrough},
		{Name: DescendViaSTAR, Aliases: []string{"dvs"}, Parse: takeArgs(0, 1), Validate: validateViaProcedure},
		{Name: Direct, Aliases: []string{"dct", "direct", "pd"}, Parse: one, Validate: matching(fixPat, "fix name")},
		{Name: ExpectArrivalRunway, Aliases: []string{"e"}, Parse: one, Validate: matching(runwayPat, "runway")},
		{Name: FlyPresentHeading, Aliases: []string{"fph"}, Parse: none, Validate: PassThrough},
		{Name: Heading, Aliases: []string{"fh", "h", "heading", "t", "turn"}, Parse: takeArgs(1, 1), Validate: validateHeading},
		{Name: Hold, Aliases: []string{"hold"}, Parse: takeArgs(0, 3), Validate: validateHold},
		{Name: Land, Aliases: []string{"i", "ils", "land"}, Parse: one, Validate: matching(runwayPat, "runway")},
		{Name: Reroute, Aliases: []string{"rr", "reroute"}, Parse: one, Validate: matching(routePat, "route")},
		{Name: Route, Aliases: []string{"route"}, Parse: one, Validate: matching(routePat, "route")},
		{Name: SayAltitude, Aliases: []string{"sa"}, Parse: none, Validate: PassThrough},
		{Name: SayAssignedAltitude, Aliases: []string{"saa"}, Parse: none, Validate: PassThrough},
		{Name: SayAssignedHeading, Aliases: []string{"sah"}, Parse: none, Validate: PassThrough},
		{Name: SayAssignedSpeed, Aliases: []string{"sas"}, Parse: none, Validate: PassThrough},
		{Name: SayHeading, Aliases: []string{"sh"}, Parse: none, Validate: PassThrough},
		{Name: SayIndicatedAirspeed, Aliases: []string{"si"}, Parse: none, Validate: PassThrough},
		{Name: SayRoute, Aliases: []string{"sr"}, Parse: none, Validate: PassThrough},
		{Name: SID, Aliases: []string{"sid"}, Parse: one, Validate: matching(procedurePat, "SID")},
		{Name: Speed, Aliases: []string{"-", "+", "slow", "sp", "speed"}, Parse: one, Validate: validateSpeed},
		{Name: Squawk, Aliases: []string{"sq", "squawk"}, Parse: one, Validate: matching(squawkPat, "squawk code")},
		{Name: STAR, Aliases: []string{"star"}, Parse: one, Validate: matching(procedurePat, "STAR")},
		{Name: Takeoff, Aliases: []string{"cto", "takeoff", "to"}, Parse: none, Validate: PassThrough},
		{Name: Taxi, Aliases: []string{"taxi", "w", "wait"}, Parse: takeArgs(0, 1), Validate: optionalMatching(runwayPat, "runway")},
	}
}

func init() {
	// built here rather than in var initializers since takeArgs consults
	// EntityCommands
	SystemCommands = MustRegistry("system", systemDefinitions()...)
	EntityCommands = MustRegistry("entity", entityDefinitions()...)
}

// validateAltitude gives [feet int, expedite bool].
func validateAltitude(args []string) ([]any, error) {
	if err := checkArity(args, 1, 2); err != nil {
		return nil, err
	}
	alt, err := parseAltitude(args[0])
	if err != nil {
		return nil, err
	}
	expedite := false
	if len(args) == 2 {
		if !expediteWords[args[1]] {
			return nil, invalid(args[1], "expected X or EX to expedite")
		}
		expedite = true
	}
	return []any{alt, expedite}, nil
}

// validateViaProcedure gives [] or [feet int] for climb-via-SID and
// descend-via-STAR.
func validateViaProcedure(args []string) ([]any, error) {
	if err := checkArity(args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return []any{}, nil
	}
	alt, err := parseAltitude(args[0])
	if err != nil {
		return nil, err
	}
	return []any{alt}, nil
}

// validateHeading gives [direction Direction, degrees int, incremental bool].
//
// With only a heading, the heading is absolute. With a direction first, a
// three-digit value is an absolute heading to turn to in that direction and a
// shorter one is a number of degrees to turn by.
func validateHeading(args []string) ([]any, error) {
	if err := checkArity(args, 1, 2); err != nil {
		return nil, err
	}

	dir := NoDirection
	hdgTok := args[0]
	if len(args) == 2 {
		var ok bool
		dir, ok = directionWords[args[0]]
		if !ok {
			return nil, invalid(args[0], "expected L or R for turn direction")
		}
		hdgTok = args[1]
	}

	deg, err := parseInt(hdgTok, "heading")
	if err != nil {
		return nil, err
	}

	incremental := dir != NoDirection && len(hdgTok) < 3
	if incremental {
		if deg < 1 || deg > 359 {
			return nil, invalid(hdgTok, "turn must be between 1 and 359 degrees")
		}
	} else if deg < 1 || deg > 360 {
		return nil, invalid(hdgTok, "heading must be between 001 and 360")
	}

	return []any{dir, deg, incremental}, nil
}

// validateHold gives [fix string, direction Direction, leg string]. Every
// part is optional and may be given in any order; missing parts are empty.
func validateHold(args []string) ([]any, error) {
	if err := checkArity(args, 0, 3); err != nil {
		return nil, err
	}

	var fix, leg string
	dir := NoDirection
	for _, a := range args {
		if d, ok := directionWords[a]; ok {
			if dir != NoDirection {
				return nil, invalid(a, "turn direction given twice")
			}
			dir = d
		} else if legPat.MatchString(a) {
			if leg != "" {
				return nil, invalid(a, "leg length given twice")
			}
			leg = a
		} else if fixPat.MatchString(a) {
			if fix != "" {
				return nil, invalid(a, "holding fix given twice")
			}
			fix = a
		} else {
			return nil, invalid(a, "expected a fix, turn direction, or leg length such as 1MIN or 4NM")
		}
	}

	return []any{fix, dir, leg}, nil
}

// validateSpeed gives [knots int].
func validateSpeed(args []string) ([]any, error) {
	if err := checkArity(args, 1, 1); err != nil {
		return nil, err
	}
	kts, err := parseInt(args[0], "speed")
	if err != nil {
		return nil, err
	}
	if kts < 1 || kts > 999 {
		return nil, invalid(args[0], fmt.Sprintf("speed must be between 1 and 999 knots, got %d", kts))
	}
	return []any{kts}, nil
}
