package command

import (
	"fmt"
	"sort"
)

// Name is the canonical name of a command. Every command has exactly one
// Name, shared by all of its aliases.
type Name string

// ParseFunc takes the tokens that follow a command's alias and splits off the
// ones that belong to the command. It returns the arguments it took and the
// tokens it left behind. It must not modify the given slice.
//
// System commands are handed every token after the alias; Entity commands
// are handed the rest of the line and are expected to stop at the start of
// the next chained command.
type ParseFunc func(tokens []string) (args []string, rest []string)

// ValidateFunc checks the arguments taken by a ParseFunc and converts them to
// their validated values. Errors should be *scoperr.ArityError or
// *scoperr.ValidationError.
type ValidateFunc func(args []string) ([]any, error)

// Definition is one entry in a Registry.
type Definition struct {
	Name     Name
	Aliases  []string
	Parse    ParseFunc
	Validate ValidateFunc
}

// Registry maps aliases to command Definitions. A Registry is read-only once
// created and is safe for concurrent use.
type Registry struct {
	label   string
	defs    map[Name]Definition
	byAlias map[string]Name
}

// NewRegistry creates a Registry from the given definitions. It returns an
// error if any alias is claimed by two definitions, a name is defined twice,
// or a definition is missing its Parse or Validate function.
func NewRegistry(label string, defs ...Definition) (*Registry, error) {
	reg := &Registry{
		label:   label,
		defs:    make(map[Name]Definition, len(defs)),
		byAlias: make(map[string]Name),
	}

	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%s registry: definition with empty name", label)
		}
		if _, ok := reg.defs[d.Name]; ok {
			return nil, fmt.Errorf("%s registry: %q defined more than once", label, d.Name)
		}
		if d.Parse == nil {
			return nil, fmt.Errorf("%s registry: %q has no parse function", label, d.Name)
		}
		if d.Validate == nil {
			return nil, fmt.Errorf("%s registry: %q has no validate function; use PassThrough for commands that need none", label, d.Name)
		}
		if len(d.Aliases) < 1 {
			return nil, fmt.Errorf("%s registry: %q has no aliases", label, d.Name)
		}

		for _, a := range d.Aliases {
			if a != Normalize(a) {
				return nil, fmt.Errorf("%s registry: alias %q of %q is not normalized", label, a, d.Name)
			}
			if other, ok := reg.byAlias[a]; ok {
				return nil, fmt.Errorf("%s registry: alias %q claimed by both %q and %q", label, a, other, d.Name)
			}
			reg.byAlias[a] = d.Name
		}

		d.Aliases = append([]string{}, d.Aliases...)
		reg.defs[d.Name] = d
	}

	return reg, nil
}

// MustRegistry is like NewRegistry but panics on error. It is meant for
// building the static registries at startup.
func MustRegistry(label string, defs ...Definition) *Registry {
	reg, err := NewRegistry(label, defs...)
	if err != nil {
		panic(err.Error())
	}
	return reg
}

// Resolve gives the canonical name that alias belongs to. The bool is false
// if no definition has the alias.
func (reg *Registry) Resolve(alias string) (Name, bool) {
	name, ok := reg.byAlias[alias]
	return name, ok
}

// Has returns whether alias is an alias of any command in the registry.
func (reg *Registry) Has(alias string) bool {
	_, ok := reg.byAlias[alias]
	return ok
}

// Lookup returns the definition for the given canonical name.
func (reg *Registry) Lookup(name Name) (Definition, bool) {
	d, ok := reg.defs[name]
	if ok {
		d.Aliases = append([]string{}, d.Aliases...)
	}
	return d, ok
}

// Names returns the canonical names in the registry in alphabetical order.
func (reg *Registry) Names() []Name {
	names := make([]Name, 0, len(reg.defs))
	for n := range reg.defs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i] < names[j]
	})
	return names
}

// Aliases returns the aliases of the named command, sorted. It returns nil
// if there is no such command.
func (reg *Registry) Aliases(name Name) []string {
	d, ok := reg.defs[name]
	if !ok {
		return nil
	}
	aliases := append([]string{}, d.Aliases...)
	sort.Strings(aliases)
	return aliases
}

// Label is the human-readable label given at creation, such as "system".
func (reg *Registry) Label() string {
	return reg.label
}
