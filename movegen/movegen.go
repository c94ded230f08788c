package movegen

import (
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/move"
)

// AllActionSequences lists every valid action sequence for the state.
func AllActionSequences(state *game.State) []move.ActionSequence {
	return NewActionGenerator(state).All()
}

// AllOrbMoves lists every valid orb move for the state, the no-move
// first. Apply the chosen actions before calling this.
func AllOrbMoves(state *game.State) ([]move.OrbMove, error) {
	return NewOrbMoveGenerator(state).AllMoves()
}

// AllMoves lists every complete move of the active player: each action
// sequence combined with each regular draw and orb move valid in the
// state after the actions.
func AllMoves(state *game.State) ([]move.GameMove, error) {
	var moves []move.GameMove
	for _, actionSeq := range AllActionSequences(state) {
		stateAfterAction, err := state.AfterActions(actionSeq)
		if err != nil {
			return nil, err
		}
		orbMoves, err := AllOrbMoves(&stateAfterAction)
		if err != nil {
			return nil, err
		}
		for _, drawStone := range stateAfterAction.AllRegularDraws() {
			for _, orbMove := range orbMoves {
				moves = append(moves, move.GameMove{
					Actions:    actionSeq,
					DrawnStone: drawStone,
					OrbMove:    orbMove,
				})
			}
		}
	}
	return moves, nil
}
