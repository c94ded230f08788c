package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/metikumi/metikoro/board"
)

var (
	// ErrNoOrbAtPosition is returned when moving an orb from an empty cell.
	ErrNoOrbAtPosition = errors.New("no orb at the given position")
	// ErrOrbAtTarget is returned when moving an orb onto an occupied cell.
	ErrOrbAtTarget = errors.New("an orb already occupies the target")
	// ErrInvalidOrbTarget is returned when moving an orb off the board.
	ErrInvalidOrbTarget = errors.New("invalid orb target position")
)

// OrbPosition is one orb: its cell, and while ko-locked the cell it came
// from. An invalid position marks a spare orb waiting to enter the game.
type OrbPosition struct {
	Position   board.Position
	KoLock     uint8
	KoPosition board.Position
}

// NewOrbPosition returns a spare orb.
func NewOrbPosition() OrbPosition {
	return OrbPosition{
		Position:   board.InvalidPosition(),
		KoPosition: board.InvalidPosition(),
	}
}

// IsInGame reports whether the orb sits on the board.
func (o OrbPosition) IsInGame() bool {
	return !o.Position.IsInvalid()
}

// OrbPositionDataSize is the serialized length of one orb.
const OrbPositionDataSize = board.PositionDataSize + 1 + board.PositionDataSize

// AppendData appends the cell, and the ko countdown with its origin cell
// while locked.
func (o OrbPosition) AppendData(data []byte) []byte {
	data = o.Position.AppendData(data)
	if o.KoLock == 0 {
		return append(data, '_', '_', '_')
	}
	data = append(data, board.HexDigit(o.KoLock))
	return o.KoPosition.AppendData(data)
}

// OrbPositionFromData decodes one serialized orb.
func OrbPositionFromData(data []byte) (OrbPosition, error) {
	if len(data) != OrbPositionDataSize {
		return OrbPosition{}, fmt.Errorf("orb position: invalid data size %d", len(data))
	}
	return OrbPosition{
		Position:   board.PositionFromData(data[0:2]),
		KoLock:     board.HexValue(data[2]),
		KoPosition: board.PositionFromData(data[3:5]),
	}, nil
}

// OrbPositions tracks all orbs of the game, kept sorted by cell with the
// spares at the tail.
type OrbPositions [OrbCount]OrbPosition

func (o *OrbPositions) sortOrbs() {
	sort.SliceStable(o[:], func(i, j int) bool {
		return o[i].Position.Less(o[j].Position)
	})
}

// IsOrbAt reports whether an orb occupies the cell.
func (o *OrbPositions) IsOrbAt(pos board.Position) bool {
	if pos.IsInvalid() {
		return false
	}
	for _, orb := range o {
		if orb.Position == pos {
			return true
		}
	}
	return false
}

// KoPosition returns the ko-locked origin of the orb on the cell, or the
// invalid position.
func (o *OrbPositions) KoPosition(pos board.Position) board.Position {
	for _, orb := range o {
		if orb.Position == pos && orb.KoLock > 0 {
			return orb.KoPosition
		}
	}
	return board.InvalidPosition()
}

// InGameCount returns the number of orbs on the board.
func (o *OrbPositions) InGameCount() int {
	count := 0
	for _, orb := range o {
		if orb.IsInGame() {
			count++
		}
	}
	return count
}

// HasSpare reports whether an orb waits to enter the game.
func (o *OrbPositions) HasSpare() bool {
	return o.InGameCount() < OrbCount
}

// MoveOrb moves the orb at oldPos to newPos and ko-locks it. An invalid
// oldPos brings a spare orb into the game.
func (o *OrbPositions) MoveOrb(oldPos, newPos board.Position) error {
	if newPos.IsInvalid() {
		return ErrInvalidOrbTarget
	}
	if o.IsOrbAt(newPos) {
		return ErrOrbAtTarget
	}
	for i := range o {
		if o[i].Position == oldPos {
			o[i].KoPosition = o[i].Position
			o[i].KoLock = board.MaxKoLock
			o[i].Position = newPos
			o.sortOrbs()
			return nil
		}
	}
	return ErrNoOrbAtPosition
}

// NextTurn counts down every ko lock.
func (o *OrbPositions) NextTurn() {
	for i := range o {
		if o[i].KoLock > 0 {
			o[i].KoLock--
			if o[i].KoLock == 0 {
				o[i].KoPosition = board.InvalidPosition()
			}
		}
	}
}

// Rotated rotates every orb cell and ko origin with the board.
func (o OrbPositions) Rotated(r board.Rotation) OrbPositions {
	result := o
	for i := range result {
		result[i].Position = result[i].Position.Rotated(r, board.Size)
		result[i].KoPosition = result[i].KoPosition.Rotated(r, board.Size)
	}
	result.sortOrbs()
	return result
}

// OrbPositionsDataSize is the serialized length of all orbs.
const OrbPositionsDataSize = OrbCount * OrbPositionDataSize

// AppendData appends every orb in sorted order.
func (o *OrbPositions) AppendData(data []byte) []byte {
	for _, orb := range o {
		data = orb.AppendData(data)
	}
	return data
}

// OrbPositionsFromData decodes all serialized orbs.
func OrbPositionsFromData(data []byte) (OrbPositions, error) {
	var result OrbPositions
	if len(data) != OrbPositionsDataSize {
		return result, fmt.Errorf("orb positions: invalid data size %d", len(data))
	}
	for i := range result {
		orb, err := OrbPositionFromData(data[i*OrbPositionDataSize : (i+1)*OrbPositionDataSize])
		if err != nil {
			return result, err
		}
		result[i] = orb
	}
	return result, nil
}
