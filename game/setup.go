// Package game holds the full game state: the board, the per-player
// action pools, the orbs and the shared resource pool, plus move
// execution, the game log and the self-play simulator.
package game

import "github.com/metikumi/metikoro/board"

const (
	// ActionPoolSize is the number of slots in a player's action pool.
	ActionPoolSize = 6
	// OrbCount is the total number of orbs in the game, spares included.
	OrbCount = 9
	// OrbCountToWin is the number of house orbs that wins the game.
	OrbCountToWin = 3
	// LoopCountForDraw is the number of repeated positions that ends the
	// game in a draw.
	LoopCountForDraw = 10
)

type stoneCount struct {
	count uint8
	stone board.Stone
}

// resourcePoolStones is the multiset seeding the shared resource pool.
var resourcePoolStones = []stoneCount{
	{20, board.Crossing},
	{20, board.TwoCurves},
	{8, board.CrossingWithStop},
	{8, board.SwitchA},
	{8, board.SwitchB},
	{8, board.SwitchC},
	{8, board.CurveWithBounces},
}

// actionPoolStones is the starting hand dealt to every player.
var actionPoolStones = []stoneCount{
	{3, board.Crossing},
	{2, board.TwoCurves},
	{1, board.CrossingWithStop},
}
