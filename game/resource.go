package game

import (
	"errors"
	"fmt"

	"github.com/metikumi/metikoro/board"
)

// ErrResourceExhausted is returned when taking more stones of a kind than
// the resource pool holds.
var ErrResourceExhausted = errors.New("not enough stones in the resource pool")

// ResourcePool is the shared stone supply, one counter per stone kind.
type ResourcePool [board.StoneCount - 1]uint8

// NewResourcePool returns the seeded supply of a fresh game.
func NewResourcePool() ResourcePool {
	var result ResourcePool
	for _, sc := range resourcePoolStones {
		result[sc.stone-1] = sc.count
	}
	return result
}

// Count returns the number of stones of the given kind.
func (p *ResourcePool) Count(stone board.Stone) uint8 {
	if stone.IsEmpty() {
		return 0
	}
	return p[stone-1]
}

// Has reports whether at least count stones of the kind remain.
func (p *ResourcePool) Has(stone board.Stone, count uint8) bool {
	return !stone.IsEmpty() && p[stone-1] >= count
}

// IsEmpty reports whether the supply is exhausted.
func (p *ResourcePool) IsEmpty() bool {
	for _, c := range p {
		if c > 0 {
			return false
		}
	}
	return true
}

// Add returns count stones of the kind to the supply.
func (p *ResourcePool) Add(stone board.Stone, count uint8) error {
	if stone.IsEmpty() {
		return ErrEmptyStone
	}
	p[stone-1] += count
	return nil
}

// Take removes count stones of the kind from the supply.
func (p *ResourcePool) Take(stone board.Stone, count uint8) error {
	if stone.IsEmpty() {
		return ErrEmptyStone
	}
	if p[stone-1] < count {
		return ErrResourceExhausted
	}
	p[stone-1] -= count
	return nil
}

// AllActionOneExtraDraw lists every kind a single extra draw may take.
func (p *ResourcePool) AllActionOneExtraDraw() []board.Stone {
	var result []board.Stone
	for _, stone := range board.AllNonEmptyStones {
		if p.Has(stone, 1) {
			result = append(result, stone)
		}
	}
	return result
}

// AllActionTwoExtraDraws lists every kind pair two extra draws may take.
func (p *ResourcePool) AllActionTwoExtraDraws() []StonePair {
	var result []StonePair
	for _, a := range board.AllNonEmptyStones {
		for _, b := range board.AllNonEmptyStones {
			if b < a {
				continue
			}
			if a == b {
				if p.Has(a, 2) {
					result = append(result, StonePair{a, b})
				}
			} else if p.Has(a, 1) && p.Has(b, 1) {
				result = append(result, StonePair{a, b})
			}
		}
	}
	return result
}

// AllRegularDraws lists every kind the regular end-of-turn draw may take.
func (p *ResourcePool) AllRegularDraws() []board.Stone {
	return p.AllActionOneExtraDraw()
}

// ResourcePoolDataSize is the serialized length of the supply.
const ResourcePoolDataSize = (int(board.StoneCount) - 1) * 2

// AppendData appends two hex digits per stone kind.
func (p *ResourcePool) AppendData(data []byte) []byte {
	for _, c := range p {
		data = append(data, board.HexDigit(c>>4), board.HexDigit(c&0x0f))
	}
	return data
}

// ResourcePoolFromData decodes a serialized supply.
func ResourcePoolFromData(data []byte) (ResourcePool, error) {
	var result ResourcePool
	if len(data) != ResourcePoolDataSize {
		return result, fmt.Errorf("resource pool: invalid data size %d", len(data))
	}
	for i := range result {
		result[i] = board.HexValue(data[i*2])<<4 | board.HexValue(data[i*2+1])
	}
	return result, nil
}
