package agent

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/metikumi/metikoro/game"
)

func TestRegistry(t *testing.T) {
	is := is.New(t)
	registry := NewRegistry()
	is.True(registry.HasName("random"))
	is.True(!registry.HasName("alphabeta"))
	is.Equal(registry.Names(), []string{"random"})

	agent, err := registry.Create("random")
	is.NoErr(err)
	is.True(agent != nil)

	_, err = registry.Create("alphabeta")
	is.True(err != nil)

	is.True(strings.Contains(registry.Help(), "--seed"))
}

func TestRandomInitialize(t *testing.T) {
	is := is.New(t)
	agent := NewRandom()
	is.NoErr(agent.Initialize(nil))
	is.Equal(agent.ConfigurationString(), "seed = random")

	is.NoErr(agent.Initialize([]string{"--seed=42"}))
	is.Equal(agent.ConfigurationString(), "seed = 42")

	is.True(agent.Initialize([]string{"--depth=3"}) != nil)
	is.True(agent.Initialize([]string{"--seed=banana"}) != nil)
}

func TestRandomIsDeterministicWithSeed(t *testing.T) {
	is := is.New(t)
	first := NewRandom()
	is.NoErr(first.Initialize([]string{"--seed=7"}))
	second := NewRandom()
	is.NoErr(second.Initialize([]string{"--seed=7"}))

	state := game.NewStartingState()
	var log game.Log
	for i := 0; i < 5; i++ {
		moveA, err := first.NextMove(&state, &log)
		is.NoErr(err)
		moveB, err := second.NextMove(&state, &log)
		is.NoErr(err)
		is.Equal(moveA, moveB)
	}
}

func TestRandomCopyForThread(t *testing.T) {
	is := is.New(t)
	agent := NewRandom()
	is.NoErr(agent.Initialize([]string{"--seed=9"}))
	clone := agent.CopyForThread()
	is.Equal(clone.ConfigurationString(), "seed = 9")

	state := game.NewStartingState()
	var log game.Log
	moveA, err := agent.NextMove(&state, &log)
	is.NoErr(err)
	moveB, err := clone.NextMove(&state, &log)
	is.NoErr(err)
	// A fresh copy restarts the generator from the seed.
	is.Equal(moveA, moveB)
}

func TestRandomPlaysLegalMoves(t *testing.T) {
	is := is.New(t)
	agent := NewRandom()
	is.NoErr(agent.Initialize([]string{"--seed=3"}))
	state := game.NewStartingState()
	var log game.Log
	for i := 0; i < 20; i++ {
		m, err := agent.NextMove(&state, &log)
		is.NoErr(err)
		is.NoErr(state.ExecuteMove(m))
	}
}

func TestNewPlayerAgents(t *testing.T) {
	is := is.New(t)
	prototype := NewRandom()
	is.NoErr(prototype.Initialize([]string{"--seed=1"}))
	agents := NewPlayerAgents(prototype)
	for _, a := range agents {
		is.True(a != nil)
		is.Equal(a.ConfigurationString(), "seed = 1")
	}
}
