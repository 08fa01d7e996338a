/*
Package alias defines the core domain entities for aliases: the validated
alias model loaded from a configuration source and the request to run one
of its aliases.
*/
package alias

import (
	"fmt"
	"sort"
	"time"
)

// ScriptsSection is the configuration section that holds alias definitions.
const ScriptsSection = "scripts"

/*
Alias pairs a short name with the ordered commands it expands to.
It is the display form of one model entry.
*/
type Alias struct {
	Name     string   `yaml:"alias" json:"alias"`
	Commands []string `yaml:"commands" json:"commands"`
}

/*
Model is the normalized mapping of alias name to its ordered command list.
A Model is immutable once built: accessors hand out copies.
*/
type Model struct {
	scripts map[string][]string
}

// NewModel validates scripts and builds a Model from a copy of it.
// Every alias name must be non-empty and every alias must hold at least one non-empty command.
func NewModel(scripts map[string][]string) (Model, error) {
	m := Model{scripts: make(map[string][]string, len(scripts))}
	for name, commands := range scripts {
		if name == "" {
			return Model{}, fmt.Errorf("alias name cannot be empty")
		}
		if len(commands) == 0 {
			return Model{}, fmt.Errorf("alias %q has no commands", name)
		}
		for i, c := range commands {
			if c == "" {
				return Model{}, fmt.Errorf("alias %q has an empty command at position %d", name, i+1)
			}
		}
		m.scripts[name] = append([]string(nil), commands...)
	}
	return m, nil
}

// Empty returns a Model with no aliases.
func Empty() Model {
	return Model{scripts: map[string][]string{}}
}

// Commands returns the commands for name in declared order.
func (m Model) Commands(name string) ([]string, bool) {
	commands, ok := m.scripts[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), commands...), true
}

// Has reports whether name is a known alias.
func (m Model) Has(name string) bool {
	_, ok := m.scripts[name]
	return ok
}

// Names returns all alias names, sorted.
func (m Model) Names() []string {
	names := make([]string, 0, len(m.scripts))
	for name := range m.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of aliases.
func (m Model) Len() int {
	return len(m.scripts)
}

// Scripts returns a deep copy of the underlying mapping.
func (m Model) Scripts() map[string][]string {
	out := make(map[string][]string, len(m.scripts))
	for name, commands := range m.scripts {
		out[name] = append([]string(nil), commands...)
	}
	return out
}

// Aliases returns the model as a list of Alias, sorted by name.
func (m Model) Aliases() []Alias {
	aliases := make([]Alias, 0, len(m.scripts))
	for _, name := range m.Names() {
		commands, _ := m.Commands(name)
		aliases = append(aliases, Alias{Name: name, Commands: commands})
	}
	return aliases
}

/*
Request asks for one alias to be run.
A zero Timeout means each command may run for as long as it needs.
*/
type Request struct {
	Alias   string
	Timeout time.Duration
}
