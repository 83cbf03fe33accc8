package command

import (
	"math"
	"strconv"
)

// System command names.
const (
	Airac    Name = "airac"
	Airport  Name = "airport"
	Auto     Name = "auto"
	Clear    Name = "clear"
	Help     Name = "help"
	Pause    Name = "pause"
	Quit     Name = "quit"
	Rate     Name = "rate"
	Timewarp Name = "timewarp"
	Tutorial Name = "tutorial"
)

// SystemCommands is the registry of commands that control the simulation.
// A line is a System line if and only if its first token is an alias in this
// registry.
var SystemCommands *Registry

func systemDefinitions() []Definition {
	return []Definition{
		{Name: Airac, Aliases: []string{"airac"}, Parse: takeAll, Validate: zeroArgs},
		{Name: Airport, Aliases: []string{"airport"}, Parse: takeAll, Validate: optionalMatching(icaoPat, "ICAO airport code")},
		{Name: Auto, Aliases: []string{"auto"}, Parse: takeAll, Validate: zeroArgs},
		{Name: Clear, Aliases: []string{"clear"}, Parse: takeAll, Validate: zeroArgs},
		{Name: Help, Aliases: []string{"help", "?"}, Parse: takeAll, Validate: validateHelp},
		{Name: Pause, Aliases: []string{"pause"}, Parse: takeAll, Validate: zeroArgs},
		{Name: Quit, Aliases: []string{"quit", "exit", "bye"}, Parse: takeAll, Validate: zeroArgs},
		{Name: Rate, Aliases: []string{"rate"}, Parse: takeAll, Validate: validateRate},
		{Name: Timewarp, Aliases: []string{"timewarp", "tw"}, Parse: takeAll, Validate: validateTimewarp},
		{Name: Tutorial, Aliases: []string{"tutorial"}, Parse: takeAll, Validate: zeroArgs},
	}
}

// validateHelp accepts an optional command alias to get help on. Whether it
// names a real command is left to whoever prints the help.
func validateHelp(args []string) ([]any, error) {
	if err := checkArity(args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return []any{}, nil
	}
	return []any{args[0]}, nil
}

// validateTimewarp takes an optional whole-number multiplier. With no
// argument the executor decides what to do, typically resetting to 1x.
func validateTimewarp(args []string) ([]any, error) {
	if err := checkArity(args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return []any{}, nil
	}
	n, err := parseInt(args[0], "time warp")
	if err != nil {
		return nil, err
	}
	return []any{n}, nil
}

func validateRate(args []string) ([]any, error) {
	if err := checkArity(args, 1, 1); err != nil {
		return nil, err
	}
	r, err := strconv.ParseFloat(args[0], 64)
	if err != nil || !(r > 0) || math.IsInf(r, 0) {
		return nil, invalid(args[0], "rate must be a number greater than zero")
	}
	return []any{r}, nil
}
