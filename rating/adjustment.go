package rating

import (
	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/game"
)

// finalStateFactor weighs the final log entry. It carries the end state
// with no move attached and only registers with a token weight.
const finalStateFactor = 0.0001

// Adjustment is the rating delta one logged turn contributes. The seat
// indices are relative to the turn's active player, matching the rotated
// state stored with the turn.
type Adjustment struct {
	Rating
}

// NewAdjustment values one logged turn of a finished game.
func NewAdjustment(turn game.Turn, totalTurnCount int, winner board.Player, hasWinner bool) Adjustment {
	var result Adjustment
	factor := adjustmentFactor(turn.Turn, totalTurnCount)
	if !hasWinner {
		result.Draws += ratingBase
		for i := range result.Players {
			result.Players[i].Combined += CombinedDeltaForDraw * factor
		}
		return result
	}
	actualPlayer := turn.ActivePlayer
	for i := range result.Players {
		if actualPlayer == winner {
			result.Players[i].Combined += CombinedDeltaForWin * factor
			result.Players[i].Win += DeltaForWin
		} else {
			result.Players[i].Combined += CombinedDeltaForLoss * factor
			result.Players[i].Loss += DeltaForLoss
		}
		actualPlayer = actualPlayer.Next()
	}
	return result
}

// NewManualAdjustment values a game outcome with full weight, outside of
// any log.
func NewManualAdjustment(winner board.Player, hasWinner bool) Adjustment {
	var result Adjustment
	if !hasWinner {
		result.Draws += ratingBase
		for i := range result.Players {
			result.Players[i].Combined += CombinedDeltaForDraw
		}
		return result
	}
	for i := range result.Players {
		if board.Player(i) == winner {
			result.Players[i].Combined += CombinedDeltaForWin
			result.Players[i].Win += DeltaForWin
		} else {
			result.Players[i].Combined += CombinedDeltaForLoss
			result.Players[i].Loss += DeltaForLoss
		}
	}
	return result
}

// adjustmentFactor weighs a turn by its log position. Played turns count
// in full; the trailing end-state entry nearly vanishes.
func adjustmentFactor(turn, totalTurnCount int) float64 {
	if turn >= totalTurnCount {
		return finalStateFactor
	}
	return 1.0
}

// AdjustmentsForLog values every logged turn of a finished game. The
// trailing state entry sits past the played turns and gets the token
// weight.
func AdjustmentsForLog(log *game.Log) []Adjustment {
	winner, hasWinner := log.WinningPlayer()
	playedTurnCount := log.Size() - 1
	result := make([]Adjustment, 0, log.Size())
	for _, turn := range log.Turns() {
		result = append(result, NewAdjustment(turn, playedTurnCount, winner, hasWinner))
	}
	return result
}
