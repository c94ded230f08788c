// Package movegen enumerates the legal moves of a game state: the action
// sequences on the pools and the board, the extra draws, and the orb
// travel paths along the placed tracks.
package movegen

import (
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/move"
)

// ActionGenerator enumerates the valid action sequences of a state.
type ActionGenerator struct {
	state *game.State
}

// NewActionGenerator creates a generator over the given state.
func NewActionGenerator(state *game.State) *ActionGenerator {
	return &ActionGenerator{state: state}
}

// All lists every valid action sequence, single and double actions alike.
func (g *ActionGenerator) All() []move.ActionSequence {
	var result []move.ActionSequence
	g.AddAll(func(seq move.ActionSequence) {
		result = append(result, seq)
	})
	return result
}

// Count returns the number of valid action sequences without storing
// them.
func (g *ActionGenerator) Count() int {
	count := 0
	g.AddAll(func(move.ActionSequence) { count++ })
	return count
}

// AddAll reports every valid action sequence to the callback.
func (g *ActionGenerator) AddAll(add func(move.ActionSequence)) {
	stoneCount := g.state.ActionPools.Active().StoneCount()
	g.addPlaceActions(add, stoneCount)
	g.addReplaceActions(add, stoneCount)
	g.addRotateActions(add, stoneCount)
	g.addExtraDrawActions(add)
}

func (g *ActionGenerator) addPlaceActions(add func(move.ActionSequence), stoneCount int) {
	if stoneCount < 1 {
		return
	}
	pool := g.state.ActionPools.Active()
	for _, pos := range g.state.Board.AllPlaceOnePositions() {
		for _, stone := range pool.UniqueStones() {
			for _, orientation := range stone.UniqueOrientations().Slice() {
				add(move.NewSequence(move.NewPlace(pos, stone, orientation)))
			}
		}
	}
	if stoneCount < 2 {
		return
	}
	for _, positions := range g.state.Board.AllPlaceTwoPositions() {
		for _, stones := range pool.UniqueStonePairs() {
			for _, orientationA := range stones[0].UniqueOrientations().Slice() {
				for _, orientationB := range stones[1].UniqueOrientations().Slice() {
					add(move.ActionSequence{
						move.NewPlace(positions[0], stones[0], orientationA),
						move.NewPlace(positions[1], stones[1], orientationB),
					})
				}
			}
		}
	}
}

func (g *ActionGenerator) addReplaceActions(add func(move.ActionSequence), stoneCount int) {
	if stoneCount < 2 {
		return
	}
	pool := g.state.ActionPools.Active()
	for _, pos := range g.state.Board.AllReplaceOnePositions() {
		if g.state.OrbPositions.IsOrbAt(pos) {
			continue
		}
		for _, stones := range pool.UniqueStonePairs() {
			for _, orientation := range stones[0].UniqueOrientations().Slice() {
				if g.state.Board.CanPlayerReplaceStone(pos, stones[0], orientation) {
					add(move.NewSequence(move.NewReplace(pos, stones[0], orientation, stones[1])))
				}
			}
		}
	}
	if stoneCount < 4 {
		return
	}
	for _, positions := range g.state.Board.AllReplaceTwoPositions() {
		if g.state.OrbPositions.IsOrbAt(positions[0]) || g.state.OrbPositions.IsOrbAt(positions[1]) {
			continue
		}
		for _, stones := range pool.UniqueStoneQuads() {
			for _, orientationA := range stones[0].UniqueOrientations().Slice() {
				for _, orientationB := range stones[1].UniqueOrientations().Slice() {
					if g.state.Board.CanPlayerReplaceStone(positions[0], stones[0], orientationA) &&
						g.state.Board.CanPlayerReplaceStone(positions[1], stones[1], orientationB) {
						add(move.ActionSequence{
							move.NewReplace(positions[0], stones[0], orientationA, stones[2]),
							move.NewReplace(positions[1], stones[1], orientationB, stones[3]),
						})
					}
				}
			}
		}
	}
}

func (g *ActionGenerator) addRotateActions(add func(move.ActionSequence), stoneCount int) {
	if stoneCount < 1 {
		return
	}
	pool := g.state.ActionPools.Active()
	for _, pos := range g.state.Board.AllRotateOnePositions() {
		if g.state.OrbPositions.IsOrbAt(pos) {
			continue
		}
		field := g.state.Board.FieldAt(pos)
		current := field.Orientation()
		for _, orientation := range field.Stone().UniqueOrientations().Slice() {
			if orientation == current || !g.state.Board.CanPlayerRotateStone(pos, orientation) {
				continue
			}
			for _, dropped := range pool.UniqueStones() {
				add(move.NewSequence(move.NewRotate(pos, orientation, dropped)))
			}
		}
	}
	if stoneCount < 2 {
		return
	}
	for _, positions := range g.state.Board.AllRotateTwoPositions() {
		if g.state.OrbPositions.IsOrbAt(positions[0]) || g.state.OrbPositions.IsOrbAt(positions[1]) {
			continue
		}
		fieldA := g.state.Board.FieldAt(positions[0])
		fieldB := g.state.Board.FieldAt(positions[1])
		currentA := fieldA.Orientation()
		currentB := fieldB.Orientation()
		for _, orientationA := range fieldA.Stone().UniqueOrientations().Slice() {
			if orientationA == currentA || !g.state.Board.CanPlayerRotateStone(positions[0], orientationA) {
				continue
			}
			for _, orientationB := range fieldB.Stone().UniqueOrientations().Slice() {
				if orientationB == currentB || !g.state.Board.CanPlayerRotateStone(positions[1], orientationB) {
					continue
				}
				for _, dropped := range pool.UniqueStonePairs() {
					add(move.ActionSequence{
						move.NewRotate(positions[0], orientationA, dropped[0]),
						move.NewRotate(positions[1], orientationB, dropped[1]),
					})
				}
			}
		}
	}
}

// addExtraDrawActions lists the draw actions; an extra draw keeps one
// free slot for the regular draw, two extra draws keep two.
func (g *ActionGenerator) addExtraDrawActions(add func(move.ActionSequence)) {
	freeSlots := g.state.ActionPools.Active().FreeSlots()
	if freeSlots > 1 {
		for _, stone := range g.state.ResourcePool.AllActionOneExtraDraw() {
			add(move.NewSequence(move.NewDraw(stone)))
		}
	}
	if freeSlots > 2 {
		for _, stones := range g.state.ResourcePool.AllActionTwoExtraDraws() {
			add(move.ActionSequence{move.NewDraw(stones[0]), move.NewDraw(stones[1])})
		}
	}
}
