// Package rating accumulates the value of game states over many
// self-play games: per seat a combined score with win and loss counters,
// plus a shared draw counter.
package rating

import (
	"fmt"
	"strings"

	"github.com/metikumi/metikoro/board"
)

const (
	ratingBase = 1.0
	// DeltaForWin is added to the win counter of the winning seat.
	DeltaForWin = ratingBase
	// DeltaForLoss is added to the loss counter of every losing seat.
	DeltaForLoss = ratingBase / float64(board.PlayerCount-1)
	// CombinedDeltaForWin raises the combined score of the winning seat.
	CombinedDeltaForWin = ratingBase
	// CombinedDeltaForDraw raises every combined score slightly on a draw.
	CombinedDeltaForDraw = ratingBase / float64(board.PlayerCount) * 0.1
	// CombinedDeltaForLoss lowers the combined score of every losing seat.
	CombinedDeltaForLoss = -ratingBase / float64(board.PlayerCount-1)
)

// Player is the rating of one seat.
type Player struct {
	Combined float64
	Win      float64
	Loss     float64
}

// Add sums two per-seat ratings.
func (p Player) Add(other Player) Player {
	return Player{
		Combined: p.Combined + other.Combined,
		Win:      p.Win + other.Win,
		Loss:     p.Loss + other.Loss,
	}
}

// Div scales the rating down, usually by a game count.
func (p Player) Div(divisor float64) Player {
	return Player{
		Combined: p.Combined / divisor,
		Win:      p.Win / divisor,
		Loss:     p.Loss / divisor,
	}
}

// Rating values one state: a draw score and one rating per seat.
type Rating struct {
	Draws   float64
	Players [board.PlayerCount]Player
}

// Add sums two ratings.
func (r Rating) Add(other Rating) Rating {
	result := Rating{Draws: r.Draws + other.Draws}
	for i := range r.Players {
		result.Players[i] = r.Players[i].Add(other.Players[i])
	}
	return result
}

// String formats the rating as percentages of the given game total.
func (r Rating) String(totalGames float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "D:%6.2f%%", r.Draws/totalGames*100.0)
	for i, p := range r.Players {
		fmt.Fprintf(&sb, " P%d:%4.2f%% W:%3.2f%% L:%3.2f%%",
			i, p.Combined/totalGames*100.0, p.Win/totalGames*100.0, p.Loss/totalGames*100.0)
	}
	return sb.String()
}

// Game is the accumulated rating of one state with the number of
// adjustments applied to it.
type Game struct {
	Rating
	Count uint64
}

// ApplyAdjustment folds one adjustment into the accumulated rating.
func (g *Game) ApplyAdjustment(adjustment Adjustment) {
	g.Count++
	g.Rating = g.Rating.Add(adjustment.Rating)
}

// NormalDraws returns the draw score per game.
func (g *Game) NormalDraws() float64 {
	return g.Draws / float64(g.Count)
}

// NormalPlayer returns one seat's rating per game.
func (g *Game) NormalPlayer(index int) Player {
	return g.Players[index].Div(float64(g.Count))
}

func (g *Game) String() string {
	return fmt.Sprintf("C:%5d %s", g.Count, g.Rating.String(float64(g.Count)))
}
