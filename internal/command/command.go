// Package command turns lines typed at the scope console into Commands and
// defines the registries of system and entity commands that lines are
// resolved against.
package command

import "fmt"

// Category says what a Command is addressed to.
type Category int

const (
	// System commands control the simulation itself.
	System Category = iota

	// Entity commands are addressed to a single aircraft, identified by the
	// first word of the line.
	Entity
)

func (c Category) String() string {
	switch c {
	case System:
		return "system"
	case Entity:
		return "entity"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Command is a validated instruction parsed from console input. A Command is
// immutable once built; it is created by Parse and handed straight to
// whatever executes it.
type Command struct {
	name     Name
	category Category
	target   string
	args     []any
}

// New builds a Command. It is exported for executors and tests that need to
// construct commands without going through Parse. The args slice is copied.
func New(name Name, cat Category, target string, args ...any) Command {
	return Command{
		name:     name,
		category: cat,
		target:   target,
		args:     append([]any{}, args...),
	}
}

// Name is the canonical name of the command, regardless of which alias was
// typed to invoke it.
func (c Command) Name() Name {
	return c.name
}

// Category is whether the command is a System or an Entity command.
func (c Command) Category() Category {
	return c.category
}

// Target is the callsign the command is addressed to, in upper case. It is
// empty for System commands. Whether an aircraft with that callsign exists is
// not checked during parsing.
func (c Command) Target() string {
	return c.target
}

// Args returns a copy of the validated arguments of the command. Each element
// has the Go type documented for its command in the registry catalog.
func (c Command) Args() []any {
	return append([]any{}, c.args...)
}

// Call gives the command as a uniform call signature: the canonical name
// followed by the arguments.
func (c Command) Call() []any {
	call := make([]any, 0, len(c.args)+1)
	call = append(call, c.name)
	return append(call, c.args...)
}

func (c Command) String() string {
	if c.category == Entity {
		return fmt.Sprintf("%s %s%v", c.target, c.name, c.args)
	}
	return fmt.Sprintf("%s%v", c.name, c.args)
}
