package board

import "fmt"

// Field is one mutable cell of the interior, packed into a single byte:
// stone kind in the low 4 bits, orientation in 2, ko lock countdown in 2.
type Field uint8

const (
	fieldStoneMask   = 0x0f
	fieldOrientShift = 4
	fieldOrientMask  = 0x03
	fieldKoShift     = 6
	fieldKoMask      = 0x03
)

// MaxKoLock is the highest representable ko countdown.
const MaxKoLock = 3

// NewField packs a stone with a normalized orientation and a ko lock.
func NewField(stone Stone, orientation Orientation, koLock uint8) Field {
	if koLock > MaxKoLock {
		koLock = MaxKoLock
	}
	normalized := stone.NormalizedOrientation(orientation)
	return Field(uint8(stone)&fieldStoneMask |
		(uint8(normalized)&fieldOrientMask)<<fieldOrientShift |
		(koLock&fieldKoMask)<<fieldKoShift)
}

// Stone returns the stone kind on the field.
func (f Field) Stone() Stone {
	return Stone(uint8(f) & fieldStoneMask)
}

// Orientation returns the stored orientation.
func (f Field) Orientation() Orientation {
	return Orientation(uint8(f) >> fieldOrientShift & fieldOrientMask)
}

// KoLock returns the remaining ko countdown.
func (f Field) KoLock() uint8 {
	return uint8(f) >> fieldKoShift & fieldKoMask
}

// HasKoLock reports whether the field is still ko-locked.
func (f Field) HasKoLock() bool {
	return f.KoLock() != 0
}

// IsEmpty reports whether no stone is placed.
func (f Field) IsEmpty() bool {
	return f.Stone().IsEmpty()
}

// HasStop reports whether the placed stone carries a stop.
func (f Field) HasStop() bool {
	return f.Stone().HasStop()
}

// CanRotate reports whether the placed stone is rotatable.
func (f Field) CanRotate() bool {
	return f.Stone().CanRotate()
}

// WithStone returns the field with a new stone and normalized orientation,
// keeping the ko lock.
func (f Field) WithStone(stone Stone, orientation Orientation) Field {
	return NewField(stone, orientation, f.KoLock())
}

// WithOrientation returns the field with a new normalized orientation.
func (f Field) WithOrientation(orientation Orientation) Field {
	return NewField(f.Stone(), orientation, f.KoLock())
}

// WithKoLock returns the field with the given ko countdown.
func (f Field) WithKoLock(koLock uint8) Field {
	return NewField(f.Stone(), f.Orientation(), koLock)
}

// Rotated returns the field as seen after rotating the whole board.
// Fields whose stone cannot rotate are unchanged. The position map for a
// positive quarter turn sends an east step to a north step, so the stored
// wiring must turn by the reversed angle to keep tracks connected.
func (f Field) Rotated(r Rotation) Field {
	if f.IsEmpty() || !f.CanRotate() {
		return f
	}
	return NewField(f.Stone(), f.Orientation().Rotated(r.Reversed()), f.KoLock())
}

// ConnectionsFrom resolves the stone wiring through the stored
// orientation: the entry anchor is normalized into stone space and the
// resulting set rotated back into board space.
func (f Field) ConnectionsFrom(entry Anchor) Anchors {
	return f.Stone().ConnectionsFrom(entry.Normalized(f.Orientation())).RotatedBy(f.Orientation())
}

// IsValidChange reports whether replacing the stone (or its orientation)
// creates a genuinely new situation on a replaceable field.
func (f Field) IsValidChange(newStone Stone, newOrientation Orientation) bool {
	if f.IsEmpty() || f.HasKoLock() {
		return false
	}
	if f.Stone() != newStone {
		return true
	}
	return !f.Stone().WiringEqual(f.Orientation(), newOrientation)
}

// NextTurn counts the ko lock down by one turn.
func (f Field) NextTurn() Field {
	if f.HasKoLock() {
		return f.WithKoLock(f.KoLock() - 1)
	}
	return f
}

// FieldDataSize is the serialized length of one field.
const FieldDataSize = StoneDataSize + 1 + 1

// AppendData appends the three-character field form, "___" when empty.
func (f Field) AppendData(data []byte) []byte {
	if f.IsEmpty() {
		return append(data, '_', '_', '_')
	}
	data = f.Stone().AppendData(data)
	data = append(data, f.Orientation().String()[0])
	if f.HasKoLock() {
		return append(data, HexDigit(f.KoLock()))
	}
	return append(data, '_')
}

// FieldFromData decodes a serialized field.
func FieldFromData(data []byte) (Field, error) {
	if len(data) != FieldDataSize {
		return 0, fmt.Errorf("field: invalid data size %d", len(data))
	}
	if data[0] == '_' {
		return 0, nil
	}
	return NewField(StoneFromChar(data[0]), ParseOrientation(data[1]), HexValue(data[2])), nil
}
