package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStaticField is returned when a mutation targets a frame cell.
	ErrStaticField = errors.New("tried to change a static field")
	// ErrNotRotatable is returned when a rotation targets a field whose
	// stone has only one wiring.
	ErrNotRotatable = errors.New("field is not rotatable")
)

// Board is the mutable interior overlaid by the static frame. Interior
// cells are addressed with absolute board positions (1..8 on both axes).
type Board struct {
	state [InteriorSize * InteriorSize]Field
}

// interiorIndex converts an absolute position to a state slot.
func interiorIndex(pos Position) int {
	return int(pos.Y-1)*InteriorSize + int(pos.X-1)
}

// FieldAt returns the effective field: the frame wins on static cells.
func (b *Board) FieldAt(pos Position) Field {
	if ff := frame.at(pos); ff.isStatic() {
		return ff.field
	}
	return b.state[interiorIndex(pos)]
}

// StateFieldAt returns the interior field, ignoring the frame overlay.
func (b *Board) StateFieldAt(pos Position) Field {
	return b.state[interiorIndex(pos)]
}

// SetField places a stone on a non-static cell.
func (b *Board) SetField(pos Position, stone Stone, orientation Orientation) error {
	if IsStatic(pos) {
		return ErrStaticField
	}
	f := &b.state[interiorIndex(pos)]
	*f = f.WithStone(stone, orientation)
	return nil
}

// SetNewOrientation turns the stone on a non-static, rotatable cell.
func (b *Board) SetNewOrientation(pos Position, orientation Orientation) error {
	if IsStatic(pos) {
		return ErrStaticField
	}
	f := &b.state[interiorIndex(pos)]
	if !f.CanRotate() {
		return ErrNotRotatable
	}
	*f = f.WithOrientation(orientation)
	return nil
}

// SetKoLock marks a non-static cell with a ko countdown.
func (b *Board) SetKoLock(pos Position, koLock uint8) error {
	if IsStatic(pos) {
		return ErrStaticField
	}
	f := &b.state[interiorIndex(pos)]
	*f = f.WithKoLock(koLock)
	return nil
}

// Rotated rotates the interior grid; the frame is invariant under quarter
// turns by construction.
func (b *Board) Rotated(r Rotation) Board {
	var result Board
	for y := uint8(0); y < InteriorSize; y++ {
		for x := uint8(0); x < InteriorSize; x++ {
			source := Position{x, y}
			target := source.Rotated(r, InteriorSize)
			result.state[int(target.Y)*InteriorSize+int(target.X)] =
				b.state[int(source.Y)*InteriorSize+int(source.X)].Rotated(r)
		}
	}
	return result
}

// CanPlayerPlaceStone reports whether the active player may place on the
// cell: non-static, empty, and not a garden of another player.
func (b *Board) CanPlayerPlaceStone(pos Position) bool {
	return !IsStatic(pos) && b.FieldAt(pos).IsEmpty() &&
		!(IsGarden(pos) && PlayerForField(pos) != 0)
}

// CanPlayerReplaceStone reports whether the replacement creates a valid
// new situation on the cell.
func (b *Board) CanPlayerReplaceStone(pos Position, newStone Stone, orientation Orientation) bool {
	if IsStatic(pos) {
		return false
	}
	return b.state[interiorIndex(pos)].IsValidChange(newStone, orientation)
}

// CanPlayerRotateStone reports whether turning the stone on the cell
// creates a valid new situation.
func (b *Board) CanPlayerRotateStone(pos Position, newOrientation Orientation) bool {
	if IsStatic(pos) {
		return false
	}
	f := b.state[interiorIndex(pos)]
	return f.IsValidChange(f.Stone(), newOrientation)
}

// allNonStaticPositions is fixed for the lifetime of the process.
var allNonStaticPositions = func() []Position {
	var result []Position
	for y := uint8(1); y <= InteriorSize; y++ {
		for x := uint8(1); x <= InteriorSize; x++ {
			if pos := (Position{x, y}); !IsStatic(pos) {
				result = append(result, pos)
			}
		}
	}
	return result
}()

func (b *Board) nonStaticPositionsIf(test func(Field) bool) []Position {
	var result []Position
	for _, pos := range allNonStaticPositions {
		if test(b.state[interiorIndex(pos)]) {
			result = append(result, pos)
		}
	}
	return result
}

// AllPlaceOnePositions lists the cells a single placement may target.
func (b *Board) AllPlaceOnePositions() []Position {
	var result []Position
	for _, pos := range allNonStaticPositions {
		if b.CanPlayerPlaceStone(pos) {
			result = append(result, pos)
		}
	}
	return result
}

// AllPlaceTwoPositions lists the unordered cell pairs for two placements.
func (b *Board) AllPlaceTwoPositions() [][2]Position {
	return combinedPositionPairs(b.AllPlaceOnePositions())
}

// AllReplaceOnePositions lists the cells a single replacement may target.
func (b *Board) AllReplaceOnePositions() []Position {
	return b.nonStaticPositionsIf(func(f Field) bool {
		return !f.IsEmpty() && !f.HasKoLock()
	})
}

// AllReplaceTwoPositions lists the unordered cell pairs for two
// replacements.
func (b *Board) AllReplaceTwoPositions() [][2]Position {
	return combinedPositionPairs(b.AllReplaceOnePositions())
}

// AllRotateOnePositions lists the cells a single rotation may target.
func (b *Board) AllRotateOnePositions() []Position {
	return b.nonStaticPositionsIf(func(f Field) bool {
		return !f.IsEmpty() && f.CanRotate()
	})
}

// AllRotateTwoPositions lists the unordered cell pairs for two rotations.
func (b *Board) AllRotateTwoPositions() [][2]Position {
	return combinedPositionPairs(b.AllRotateOnePositions())
}

func combinedPositionPairs(positions []Position) [][2]Position {
	if len(positions) < 2 {
		return nil
	}
	result := make([][2]Position, 0, len(positions)*(len(positions)-1)/2)
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			result = append(result, [2]Position{positions[i], positions[j]})
		}
	}
	return result
}

// NextTurn counts down every interior ko lock.
func (b *Board) NextTurn() {
	for i := range b.state {
		b.state[i] = b.state[i].NextTurn()
	}
}

// BoardDataSize is the serialized length of the interior grid.
const BoardDataSize = InteriorSize * InteriorSize * FieldDataSize

// AppendData appends the interior fields in row-major order.
func (b *Board) AppendData(data []byte) []byte {
	for _, f := range b.state {
		data = f.AppendData(data)
	}
	return data
}

// BoardFromData decodes a serialized interior grid.
func BoardFromData(data []byte) (Board, error) {
	var result Board
	if len(data) != BoardDataSize {
		return result, fmt.Errorf("board: invalid data size %d", len(data))
	}
	for i := range result.state {
		f, err := FieldFromData(data[i*FieldDataSize : (i+1)*FieldDataSize])
		if err != nil {
			return result, err
		}
		result.state[i] = f
	}
	return result, nil
}

// String renders a compact text view with area markers and stones.
func (b *Board) String() string {
	var sb strings.Builder
	for y := uint8(0); y < Size; y++ {
		for x := uint8(0); x < Size; x++ {
			pos := Position{x, y}
			f := b.FieldAt(pos)
			sb.WriteString(AreaAt(pos).String())
			if f.IsEmpty() {
				sb.WriteString("__ ")
			} else {
				sb.WriteString(f.Stone().String())
				sb.WriteString(f.Orientation().String())
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
