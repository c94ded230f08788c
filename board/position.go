package board

import "fmt"

const maxCoordinate = 0x0f

// Position is a grid coordinate with 4-bit components. The sentinel
// (15,15) marks an invalid or unused position; coordinate arithmetic wraps
// at 4 bits so stepping off the grid lands on an invalid coordinate.
type Position struct {
	X uint8
	Y uint8
}

// InvalidPosition returns the sentinel position.
func InvalidPosition() Position {
	return Position{maxCoordinate, maxCoordinate}
}

// NewPosition masks both coordinates to 4 bits.
func NewPosition(x, y uint8) Position {
	return Position{x & maxCoordinate, y & maxCoordinate}
}

// IsInvalid reports whether either coordinate carries the sentinel value.
func (p Position) IsInvalid() bool {
	return p.X == maxCoordinate || p.Y == maxCoordinate
}

// IsOnBoard reports whether the position lies on the playing grid.
func (p Position) IsOnBoard() bool {
	return p.X < Size && p.Y < Size
}

// Less orders positions row-major, y before x.
func (p Position) Less(other Position) bool {
	return p.Y < other.Y || (p.Y == other.Y && p.X < other.X)
}

// Offset adds the given deltas with 4-bit wraparound.
func (p Position) Offset(dx, dy int8) Position {
	return Position{
		uint8(int8(p.X)+dx) & maxCoordinate,
		uint8(int8(p.Y)+dy) & maxCoordinate,
	}
}

// Rotated rotates the position on a square grid of the given size. The
// invalid position is fixed under rotation.
func (p Position) Rotated(r Rotation, size uint8) Position {
	if p.IsInvalid() {
		return InvalidPosition()
	}
	switch r.WrapToClockwise() {
	case Clockwise90:
		return Position{p.Y, size - 1 - p.X}
	case Clockwise180:
		return Position{size - 1 - p.X, size - 1 - p.Y}
	case Clockwise270:
		return Position{size - 1 - p.Y, p.X}
	}
	return p
}

func (p Position) String() string {
	if p.IsInvalid() {
		return "[-,-]"
	}
	return fmt.Sprintf("[%d,%d]", p.X, p.Y)
}

// PositionDataSize is the serialized length of one position.
const PositionDataSize = 2

// AppendData appends the two-hex-digit form, "__" when invalid.
func (p Position) AppendData(data []byte) []byte {
	if p.IsInvalid() {
		return append(data, '_', '_')
	}
	return append(data, HexDigit(p.X), HexDigit(p.Y))
}

// PositionFromData decodes a serialized position. Anything that is not two
// hex digits decodes to the invalid position.
func PositionFromData(data []byte) Position {
	if len(data) != PositionDataSize || !IsHexDigit(data[0]) || !IsHexDigit(data[1]) {
		return InvalidPosition()
	}
	return Position{HexValue(data[0]), HexValue(data[1])}
}

const hexDigits = "0123456789abcdef"

// HexDigit returns the lowercase hex digit for a value in 0..15.
func HexDigit(v uint8) byte {
	return hexDigits[v&0x0f]
}

// HexValue decodes a single hex digit. Non-hex bytes decode to zero, which
// is how '_' placeholders are read back.
func HexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsHexDigit reports whether c is a hex digit.
func IsHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
