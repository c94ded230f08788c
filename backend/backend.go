// Package backend stores the rated game states produced by self-play:
// in memory for experiments, or in a SQLite database for long runs.
package backend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/metikumi/metikoro/game"
)

// Backend accumulates finished games. AddGame and Status are called from
// the simulation workers and must be thread safe.
type Backend interface {
	// Initialize configures the backend from its command line arguments.
	Initialize(args []string) error
	// DisplayConfiguration logs the effective configuration.
	DisplayConfiguration()
	// Load opens the store and restores previous data.
	Load() error
	// AddGame folds a finished game into the store.
	AddGame(log *game.Log) error
	// Status returns a short status line.
	Status() string
	// Shutdown drains pending work and releases the store. It is called
	// after all simulation workers stopped.
	Shutdown() error
}

// Builder creates fresh instances of one backend type.
type Builder struct {
	Create func() Backend
	Help   string
}

// Registry maps backend names to their builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a registry with all built-in backends.
func NewRegistry() *Registry {
	r := &Registry{builders: map[string]Builder{}}
	r.Add("memory", Builder{
		Create: func() Backend { return NewMemory() },
		Help:   "  --output=<file>      Write the rating table as YAML on shutdown.",
	})
	r.Add("sqlite", Builder{
		Create: func() Backend { return NewSQLite() },
		Help:   sqliteHelp,
	})
	return r
}

// Add registers a builder under a name.
func (r *Registry) Add(name string, builder Builder) {
	r.builders[name] = builder
}

// HasName reports whether a backend with this name is registered.
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

// Create builds a new backend of the named type.
func (r *Registry) Create(name string) (Backend, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q", name)
	}
	return builder.Create(), nil
}

// Help lists the options of every registered backend.
func (r *Registry) Help() string {
	var sb strings.Builder
	for _, name := range r.Names() {
		fmt.Fprintf(&sb, "Options for Backend %q:\n", name)
		if help := r.builders[name].Help; help != "" {
			sb.WriteString(help)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
