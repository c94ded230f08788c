package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func isAgent(name string) bool   { return name == "random" }
func isBackend(name string) bool { return name == "memory" || name == "sqlite" }

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := New()
	is.Equal(cfg.Threads, 16)
	is.Equal(cfg.MaximumGames, uint64(0))
	is.Equal(cfg.StatusUpdateInterval, 250*time.Millisecond)
	is.Equal(cfg.ConsoleWidth, 100)
	is.True(!cfg.PlainStatus)
}

func TestEnvironmentOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("METIKORO_THREADS", "4")
	t.Setenv("METIKORO_GAMES", "1000")
	cfg := New()
	is.Equal(cfg.Threads, 4)
	is.Equal(cfg.MaximumGames, uint64(1000))
}

func TestParseMainOptions(t *testing.T) {
	is := is.New(t)
	cfg := New()
	result, err := cfg.Parse(
		[]string{"--threads=8", "-g=500", "--status-update-interval=1000", "memory"},
		isAgent, isBackend)
	is.NoErr(err)
	is.Equal(result, StartSimulation)
	is.Equal(cfg.Threads, 8)
	is.Equal(cfg.MaximumGames, uint64(500))
	is.Equal(cfg.StatusUpdateInterval, time.Second)
	is.Equal(cfg.Backend.Name, "memory")
	for _, agent := range cfg.Agents {
		is.Equal(agent.Name, "random")
	}
}

func TestParseClampsValues(t *testing.T) {
	is := is.New(t)
	cfg := New()
	_, err := cfg.Parse(
		[]string{"--threads=1000", "--status-update-interval=1", "--console-width=5", "memory"},
		isAgent, isBackend)
	is.NoErr(err)
	is.Equal(cfg.Threads, 100)
	is.Equal(cfg.StatusUpdateInterval, 100*time.Millisecond)
	is.Equal(cfg.ConsoleWidth, 10)
}

func TestParseHelpAndVersion(t *testing.T) {
	is := is.New(t)
	cfg := New()
	result, err := cfg.Parse([]string{"--help"}, isAgent, isBackend)
	is.NoErr(err)
	is.Equal(result, DisplayedHelp)

	result, err = cfg.Parse([]string{"-v"}, isAgent, isBackend)
	is.NoErr(err)
	is.Equal(result, DisplayedVersion)
}

func TestParseSelections(t *testing.T) {
	is := is.New(t)
	cfg := New()
	args := []string{
		"0:random", "--seed=1",
		"2:random", "--seed=2",
		"sqlite", "--data-dir=/tmp", "--fast-unsafe",
	}
	_, err := cfg.Parse(args, isAgent, isBackend)
	is.NoErr(err)
	is.Equal(cfg.Agents[0], Selection{Name: "random", Args: []string{"--seed=1"}})
	is.Equal(cfg.Agents[1], Selection{Name: "random"})
	is.Equal(cfg.Agents[2], Selection{Name: "random", Args: []string{"--seed=2"}})
	is.Equal(cfg.Backend, Selection{Name: "sqlite", Args: []string{"--data-dir=/tmp", "--fast-unsafe"}})
}

func TestParseErrors(t *testing.T) {
	cases := [][]string{
		{},                                 // no backend
		{"--bogus", "memory"},              // unknown main option
		{"0:alphabeta", "memory"},          // unknown agent
		{"0:random", "0:random", "memory"}, // duplicate seat
		{"memory", "sqlite"},               // two backends
		{"postgres"},                       // unknown backend
		{"--threads=many", "memory"},       // bad number
	}
	for _, args := range cases {
		cfg := New()
		_, err := cfg.Parse(args, isAgent, isBackend)
		if err == nil {
			t.Fatalf("expected %v to be rejected", args)
		}
	}
}

func TestNoColorForcesPlainStatus(t *testing.T) {
	is := is.New(t)
	cfg := New()
	_, err := cfg.Parse([]string{"--no-color", "memory"}, isAgent, isBackend)
	is.NoErr(err)
	is.True(cfg.PlainStatus)
	is.True(cfg.StatusUpdateInterval >= time.Second)
}
