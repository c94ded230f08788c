package backend

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/move"
)

// finishedLog builds a short game won by seat 1.
func finishedLog(t *testing.T) *game.Log {
	t.Helper()
	is := is.New(t)
	var log game.Log
	state := game.NewStartingState()
	log.AddTurn(0, 0, state, move.GameMove{})
	log.AddTurn(1, 1, state, move.GameMove{})
	winState := state
	for _, pos := range board.HouseOrbPositions(0) {
		is.NoErr(winState.OrbPositions.MoveOrb(board.InvalidPosition(), pos))
	}
	log.AddLastState(2, 2, winState)
	return &log
}

func TestRegistry(t *testing.T) {
	is := is.New(t)
	registry := NewRegistry()
	is.True(registry.HasName("memory"))
	is.True(registry.HasName("sqlite"))
	is.True(!registry.HasName("postgres"))
	is.Equal(registry.Names(), []string{"memory", "sqlite"})

	store, err := registry.Create("memory")
	is.NoErr(err)
	is.True(store != nil)

	_, err = registry.Create("postgres")
	is.True(err != nil)

	help := registry.Help()
	is.True(strings.Contains(help, "memory"))
	is.True(strings.Contains(help, "--data-dir"))
}
