// Package agent provides the players for self-play simulation and the
// registry the command line selects them from.
package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/metikumi/metikoro/game"
)

// Builder creates fresh instances of one agent type.
type Builder struct {
	Create func() game.Agent
	Help   string
}

// Registry maps agent names to their builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a registry with all built-in agents.
func NewRegistry() *Registry {
	r := &Registry{builders: map[string]Builder{}}
	r.Add("random", Builder{
		Create: func() game.Agent { return NewRandom() },
		Help:   "  --seed=<rng seed>    A positive 64-bit number as seed for the prng. 0 = random seed.",
	})
	return r
}

// Add registers a builder under a name.
func (r *Registry) Add(name string, builder Builder) {
	r.builders[name] = builder
}

// HasName reports whether an agent with this name is registered.
func (r *Registry) HasName(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns the registered names in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds a new agent of the named type.
func (r *Registry) Create(name string) (game.Agent, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q", name)
	}
	return builder.Create(), nil
}

// Help lists the options of every registered agent.
func (r *Registry) Help() string {
	var sb strings.Builder
	for _, name := range r.Names() {
		fmt.Fprintf(&sb, "Options for Agent %q:\n", name)
		if help := r.builders[name].Help; help != "" {
			sb.WriteString(help)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
