package backend

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/rating"
)

// Memory keeps all rated states in a map. Nothing survives the process
// unless an output file is configured; it exists for tests and short
// experiments.
type Memory struct {
	mu         sync.Mutex
	gameStates map[game.State]*rating.Game
	outputPath string
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{gameStates: map[game.State]*rating.Game{}}
}

// Initialize accepts --output=<file> to write the rating table as YAML
// on shutdown.
func (m *Memory) Initialize(args []string) error {
	for _, arg := range args {
		if path, ok := strings.CutPrefix(arg, "--output="); ok && path != "" {
			m.outputPath = path
			continue
		}
		return fmt.Errorf("unknown memory backend option: %s", arg)
	}
	return nil
}

// DisplayConfiguration is unused.
func (m *Memory) DisplayConfiguration() {}

// Load is unused.
func (m *Memory) Load() error { return nil }

// AddGame folds every logged turn of the game into the state map.
func (m *Memory) AddGame(log *game.Log) error {
	if log.IsEmpty() {
		return nil
	}
	adjustments := rating.AdjustmentsForLog(log)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, turn := range log.Turns() {
		entry := m.gameStates[turn.State]
		if entry == nil {
			entry = &rating.Game{}
			m.gameStates[turn.State] = entry
		}
		entry.ApplyAdjustment(adjustments[i])
	}
	return nil
}

// Status reports the number of distinct states.
func (m *Memory) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("OK: %d states in memory.", len(m.gameStates))
}

// Shutdown writes the configured output file, if any.
func (m *Memory) Shutdown() error {
	if m.outputPath == "" {
		return nil
	}
	file, err := os.Create(m.outputPath)
	if err != nil {
		return fmt.Errorf("creating rating export failed: %w", err)
	}
	if err := m.ExportYAML(file); err != nil {
		file.Close()
		return fmt.Errorf("writing rating export failed: %w", err)
	}
	return file.Close()
}

// StateCount returns the number of distinct rated states.
func (m *Memory) StateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.gameStates)
}

// Rating returns a copy of the accumulated rating for a state.
func (m *Memory) Rating(state game.State) (rating.Game, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.gameStates[state]
	if !ok {
		return rating.Game{}, false
	}
	return *entry, true
}

// TotalGameCount sums the adjustment counts over all states.
func (m *Memory) TotalGameCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total uint64
	for _, entry := range m.gameStates {
		total += entry.Count
	}
	return total
}

// exportEntry is the YAML shape of one rated state.
type exportEntry struct {
	State   string    `yaml:"state"`
	Count   uint64    `yaml:"count"`
	Draws   float64   `yaml:"draws"`
	Players []float64 `yaml:"players,flow"`
}

// ExportYAML writes every rated state with its accumulated scores, the
// per-seat values flattened as combined, win, loss triplets.
func (m *Memory) ExportYAML(w io.Writer) error {
	m.mu.Lock()
	entries := make([]exportEntry, 0, len(m.gameStates))
	for state, entry := range m.gameStates {
		players := make([]float64, 0, len(entry.Players)*3)
		for _, p := range entry.Players {
			players = append(players, p.Combined, p.Win, p.Loss)
		}
		entries = append(entries, exportEntry{
			State:   state.Data(),
			Count:   entry.Count,
			Draws:   entry.Draws,
			Players: players,
		})
	}
	m.mu.Unlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].State < entries[j].State })
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(entries)
}
