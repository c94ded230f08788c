package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/move"
)

// winningStateFor returns a state where the given seat, in the stored
// frame, holds three house orbs.
func winningStateFor(seat board.Player) State {
	state := NewStartingState()
	for _, pos := range board.HouseOrbPositions(seat) {
		if err := state.OrbPositions.MoveOrb(board.InvalidPosition(), pos); err != nil {
			panic(err)
		}
	}
	return state
}

func TestLogWinningPlayer(t *testing.T) {
	is := is.New(t)
	var log Log
	_, ok := log.WinningPlayer()
	is.True(!ok)

	log.AddTurn(0, 2, NewStartingState(), move.GameMove{})
	_, ok = log.WinningPlayer()
	is.True(!ok)

	// The final state is relative to the executing player's viewpoint.
	log.AddLastState(1, 3, winningStateFor(0))
	winner, ok := log.WinningPlayer()
	is.True(ok)
	is.Equal(winner, board.Player(2))
}

func TestLogWinningPlayerOffset(t *testing.T) {
	is := is.New(t)
	var log Log
	log.AddTurn(0, 3, NewStartingState(), move.GameMove{})
	log.AddLastState(1, 0, winningStateFor(1))
	winner, ok := log.WinningPlayer()
	is.True(ok)
	is.Equal(winner, board.Player(0))
}

func TestLogWithoutWinner(t *testing.T) {
	is := is.New(t)
	var log Log
	log.AddTurn(0, 0, NewStartingState(), move.GameMove{})
	log.AddLastState(1, 1, NewStartingState())
	_, ok := log.WinningPlayer()
	is.True(!ok)
	is.Equal(log.Size(), 2)
	is.True(!log.IsEmpty())
}
