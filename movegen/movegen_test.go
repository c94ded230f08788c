package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/move"
)

func TestOrbMovesOnStartingState(t *testing.T) {
	is := is.New(t)
	state := game.NewStartingState()
	moves, err := AllOrbMoves(&state)
	is.NoErr(err)
	// Without tracks the only choice is to leave all orbs in place.
	is.Equal(moves, []move.OrbMove{move.NoOrbMove()})
}

// buildTrack lays a track from the top left source to the stop at (2,2).
func buildTrack(t *testing.T, state *game.State) {
	t.Helper()
	is := is.New(t)
	is.NoErr(state.Board.SetField(board.Position{X: 3, Y: 4}, board.Crossing, board.North))
	is.NoErr(state.Board.SetField(board.Position{X: 2, Y: 4}, board.TwoCurves, board.North))
	is.NoErr(state.Board.SetField(board.Position{X: 2, Y: 3}, board.Crossing, board.North))
	is.NoErr(state.Board.SetField(board.Position{X: 2, Y: 2}, board.CrossingWithStop, board.North))
}

func TestOrbMovesAlongTrack(t *testing.T) {
	is := is.New(t)
	state := game.NewStartingState()
	buildTrack(t, &state)
	moves, err := AllOrbMoves(&state)
	is.NoErr(err)
	is.Equal(moves, []move.OrbMove{
		move.NoOrbMove(),
		move.NewOrbMove(board.Position{X: 4, Y: 4}, board.Position{X: 2, Y: 2}),
	})
}

func TestOrbMovesSkipOccupiedStops(t *testing.T) {
	is := is.New(t)
	state := game.NewStartingState()
	buildTrack(t, &state)
	is.NoErr(state.ApplyOrbMove(move.NewOrbMove(board.Position{X: 4, Y: 4}, board.Position{X: 2, Y: 2})))
	moves, err := AllOrbMoves(&state)
	is.NoErr(err)
	// The stop is taken and the respawned orb has the same track, so only
	// the no-move remains.
	is.Equal(moves, []move.OrbMove{move.NoOrbMove()})
}

func TestOrbMovesRespectKoLock(t *testing.T) {
	is := is.New(t)
	state := game.NewStartingState()
	buildTrack(t, &state)
	is.NoErr(state.Board.SetField(board.Position{X: 3, Y: 2}, board.CrossingWithStop, board.North))
	is.NoErr(state.ApplyOrbMove(move.NewOrbMove(board.Position{X: 4, Y: 4}, board.Position{X: 2, Y: 2})))
	is.NoErr(state.ApplyOrbMove(move.NewOrbMove(board.Position{X: 2, Y: 2}, board.Position{X: 3, Y: 2})))

	moves, err := AllOrbMoves(&state)
	is.NoErr(err)
	// Returning to (2,2) would reverse the previous move.
	for _, m := range moves {
		is.True(m != move.NewOrbMove(board.Position{X: 3, Y: 2}, board.Position{X: 2, Y: 2}))
	}

	state.NextTurn()
	state.NextTurn()
	state.NextTurn()
	moves, err = AllOrbMoves(&state)
	is.NoErr(err)
	found := false
	for _, m := range moves {
		if m == move.NewOrbMove(board.Position{X: 3, Y: 2}, board.Position{X: 2, Y: 2}) {
			found = true
		}
	}
	is.True(found)
}

func TestActionSequencesOnStartingState(t *testing.T) {
	is := is.New(t)
	state := game.NewStartingState()
	generator := NewActionGenerator(&state)
	sequences := generator.All()
	is.Equal(len(sequences), generator.Count())

	singlePlaces := 0
	doublePlaces := 0
	for _, seq := range sequences {
		is.True(!seq.HasNoActions())
		switch {
		case seq[0].Type == move.PlaceStone && seq[1].IsNone():
			singlePlaces++
		case seq[0].Type == move.PlaceStone && seq[1].Type == move.PlaceStone:
			doublePlaces++
		default:
			// A full hand on an empty board allows placements only.
			t.Fatalf("unexpected sequence %s", seq)
		}
	}
	// 42 open cells (the interior without sources and foreign gardens)
	// times 4 distinct stone orientations in the starting hand.
	is.Equal(singlePlaces, 42*4)
	is.True(doublePlaces > 0)
}

func TestActionSequencesIncludeRotationsAndDraws(t *testing.T) {
	is := is.New(t)
	state := game.NewStartingState()
	pool := state.ActionPools.Active()
	for pool.StoneCount() > 1 {
		is.NoErr(pool.Take(pool.At(0)))
	}
	is.Equal(pool.UniqueStones(), []board.Stone{board.Crossing})
	buildTrack(t, &state)

	rotations := 0
	singleDraws := 0
	doubleDraws := 0
	replaces := 0
	NewActionGenerator(&state).AddAll(func(seq move.ActionSequence) {
		switch seq[0].Type {
		case move.RotateStone:
			rotations++
		case move.DrawStone:
			if seq[1].IsNone() {
				singleDraws++
			} else {
				doubleDraws++
			}
		case move.ReplaceStone:
			replaces++
		}
	})
	// Only the two-curve stone on the track has a second distinct facing.
	is.Equal(rotations, 1)
	// Seven stone kinds remain in the supply, each at least twice.
	is.Equal(singleDraws, 7)
	is.Equal(doubleDraws, 28)
	// A replacement needs two pool stones.
	is.Equal(replaces, 0)
}

func TestAllMovesAreExecutable(t *testing.T) {
	is := is.New(t)
	state := game.NewStartingState()
	pool := state.ActionPools.Active()
	for pool.StoneCount() > 1 {
		is.NoErr(pool.Take(pool.At(0)))
	}
	buildTrack(t, &state)

	moves, err := AllMoves(&state)
	is.NoErr(err)
	is.True(len(moves) > 0)
	for _, m := range moves {
		is.True(!m.DrawnStone.IsEmpty())
		next := state
		if err := next.ExecuteMove(m); err != nil {
			t.Fatalf("move %s failed: %v", m, err)
		}
	}
}
