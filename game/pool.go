package game

import (
	"errors"
	"fmt"

	"github.com/metikumi/metikoro/board"
)

var (
	// ErrPoolFull is returned when adding to a full action pool.
	ErrPoolFull = errors.New("stone pool is full")
	// ErrStoneNotInPool is returned when taking a stone that is absent.
	ErrStoneNotInPool = errors.New("stone not found in pool")
	// ErrEmptyStone is returned when an operation names the empty stone.
	ErrEmptyStone = errors.New("operation on the empty stone")
)

// ActionPool is a player's hand of up to six stones, kept in descending
// kind order with empty slots trailing.
type ActionPool [ActionPoolSize]board.Stone

// StonePair is an ordered pair of pool stones.
type StonePair [2]board.Stone

// StoneQuad is an ordered quadruple of pool stones.
type StoneQuad [4]board.Stone

// At returns the stone in the given slot.
func (p *ActionPool) At(index int) board.Stone {
	return p[index]
}

// HasStone reports whether the stone is in the pool.
func (p *ActionPool) HasStone(stone board.Stone) bool {
	for _, s := range p {
		if s == stone {
			return true
		}
	}
	return false
}

// HasStones reports whether both stones are in the pool; a duplicated
// stone needs two copies.
func (p *ActionPool) HasStones(stoneA, stoneB board.Stone) bool {
	if stoneA == stoneB {
		count := 0
		for _, s := range p {
			if s == stoneA {
				count++
			}
		}
		return count >= 2
	}
	return p.HasStone(stoneA) && p.HasStone(stoneB)
}

// IsEmpty reports whether the pool holds no stones.
func (p *ActionPool) IsEmpty() bool {
	return p[0].IsEmpty()
}

// IsFull reports whether no slot is free.
func (p *ActionPool) IsFull() bool {
	return !p[ActionPoolSize-1].IsEmpty()
}

// StoneCount returns the number of held stones.
func (p *ActionPool) StoneCount() int {
	for i, s := range p {
		if s.IsEmpty() {
			return i
		}
	}
	return ActionPoolSize
}

// FreeSlots returns the number of empty slots.
func (p *ActionPool) FreeSlots() int {
	return ActionPoolSize - p.StoneCount()
}

// Add inserts the stone at its ordered slot, shifting lesser stones
// right.
func (p *ActionPool) Add(stone board.Stone) error {
	if p.IsFull() {
		return ErrPoolFull
	}
	if stone.IsEmpty() {
		return ErrEmptyStone
	}
	if p.IsEmpty() {
		p[0] = stone
		return nil
	}
	for i, s := range p {
		if s < stone {
			copy(p[i+1:], p[i:ActionPoolSize-1])
			p[i] = stone
			return nil
		}
	}
	return errors.New("no insert position found")
}

// Take removes the first occurrence of the stone, shifting the tail left.
func (p *ActionPool) Take(stone board.Stone) error {
	for i, s := range p {
		if s == stone {
			copy(p[i:], p[i+1:])
			p[ActionPoolSize-1] = board.Empty
			return nil
		}
	}
	return ErrStoneNotInPool
}

// UniqueStones returns the distinct held stones in pool order.
func (p *ActionPool) UniqueStones() []board.Stone {
	if p.IsEmpty() {
		return nil
	}
	result := make([]board.Stone, 0, ActionPoolSize)
	for _, stone := range p {
		if stone.IsEmpty() {
			break
		}
		if !containsStone(result, stone) {
			result = append(result, stone)
		}
	}
	return result
}

// UniqueStonePairs returns every distinct ordered pair of stones held in
// different slots.
func (p *ActionPool) UniqueStonePairs() []StonePair {
	if p.StoneCount() < 2 {
		return nil
	}
	var result []StonePair
	for i := 0; i < ActionPoolSize && !p[i].IsEmpty(); i++ {
		for j := 0; j < ActionPoolSize && !p[j].IsEmpty(); j++ {
			if i == j {
				continue
			}
			pair := StonePair{p[i], p[j]}
			if !containsPair(result, pair) {
				result = append(result, pair)
			}
		}
	}
	return result
}

// UniqueStoneQuads returns every distinct ordered quadruple of stones
// held in four different slots.
func (p *ActionPool) UniqueStoneQuads() []StoneQuad {
	count := p.StoneCount()
	if count < 4 {
		return nil
	}
	var result []StoneQuad
	for a := 0; a < count; a++ {
		for b := 0; b < count; b++ {
			if b == a {
				continue
			}
			for c := 0; c < count; c++ {
				if c == a || c == b {
					continue
				}
				for d := 0; d < count; d++ {
					if d == a || d == b || d == c {
						continue
					}
					quad := StoneQuad{p[a], p[b], p[c], p[d]}
					if !containsQuad(result, quad) {
						result = append(result, quad)
					}
				}
			}
		}
	}
	return result
}

func containsStone(list []board.Stone, stone board.Stone) bool {
	for _, s := range list {
		if s == stone {
			return true
		}
	}
	return false
}

func containsPair(list []StonePair, pair StonePair) bool {
	for _, p := range list {
		if p == pair {
			return true
		}
	}
	return false
}

func containsQuad(list []StoneQuad, quad StoneQuad) bool {
	for _, q := range list {
		if q == quad {
			return true
		}
	}
	return false
}

// ActionPoolDataSize is the serialized length of one pool.
const ActionPoolDataSize = ActionPoolSize * board.StoneDataSize

// AppendData appends one stone character per slot.
func (p *ActionPool) AppendData(data []byte) []byte {
	for _, stone := range p {
		data = stone.AppendData(data)
	}
	return data
}

// ActionPoolFromData decodes a serialized pool.
func ActionPoolFromData(data []byte) (ActionPool, error) {
	var result ActionPool
	if len(data) != ActionPoolDataSize {
		return result, fmt.Errorf("action pool: invalid data size %d", len(data))
	}
	for i := range result {
		result[i] = board.StoneFromChar(data[i])
	}
	return result, nil
}

// ActionPools holds one pool per seat, index 0 being the active player.
type ActionPools [board.PlayerCount]ActionPool

// Active returns the active player's pool.
func (p *ActionPools) Active() *ActionPool {
	return &p[0]
}

// Rotated shifts the pools so that the seat r steps ahead becomes active.
func (p ActionPools) Rotated(r board.Rotation) ActionPools {
	shift := int(r.WrapToClockwise())
	if shift == 0 {
		return p
	}
	var result ActionPools
	for i := range p {
		result[i] = p[(i+shift)%board.PlayerCount]
	}
	return result
}

// ActionPoolsDataSize is the serialized length of all pools.
const ActionPoolsDataSize = ActionPoolDataSize * board.PlayerCount

// AppendData appends all pools in seat order.
func (p *ActionPools) AppendData(data []byte) []byte {
	for i := range p {
		data = p[i].AppendData(data)
	}
	return data
}

// ActionPoolsFromData decodes all serialized pools.
func ActionPoolsFromData(data []byte) (ActionPools, error) {
	var result ActionPools
	if len(data) != ActionPoolsDataSize {
		return result, fmt.Errorf("action pools: invalid data size %d", len(data))
	}
	for i := range result {
		pool, err := ActionPoolFromData(data[i*ActionPoolDataSize : (i+1)*ActionPoolDataSize])
		if err != nil {
			return result, err
		}
		result[i] = pool
	}
	return result, nil
}
