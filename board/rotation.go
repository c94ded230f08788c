// Package board implements the playing field: the geometry primitives,
// the stone wiring tables, the bit-packed fields of the mutable interior,
// and the static frame with its houses, gardens and sources.
package board

// Rotation is a clockwise quarter-turn angle. Negative values rotate
// counter-clockwise; all arithmetic wraps mod 4.
type Rotation int8

const (
	NoRotation         Rotation = 0
	Clockwise90        Rotation = 1
	Clockwise180       Rotation = 2
	Clockwise270       Rotation = 3
	CounterClockwise90 Rotation = -1
)

// AllClockwise lists the four clockwise rotations in order.
var AllClockwise = [4]Rotation{NoRotation, Clockwise90, Clockwise180, Clockwise270}

func wrapRotation(v int8) Rotation {
	for v <= -4 {
		v += 4
	}
	for v >= 4 {
		v -= 4
	}
	return Rotation(v)
}

// Add composes two rotations.
func (r Rotation) Add(other Rotation) Rotation {
	return wrapRotation(int8(r) + int8(other))
}

// Reversed returns the opposite rotation.
func (r Rotation) Reversed() Rotation {
	return Rotation(-int8(r))
}

// WrapToClockwise maps the rotation onto the range 0..3.
func (r Rotation) WrapToClockwise() Rotation {
	if r >= 0 {
		return r
	}
	return wrapRotation(int8(r) + 4)
}

func (r Rotation) String() string {
	switch r.WrapToClockwise() {
	case NoRotation:
		return "0"
	case Clockwise90:
		return "90cw"
	case Clockwise180:
		return "180cw"
	case Clockwise270:
		return "270cw"
	}
	return ""
}

// Orientation is the facing of a stone on the board.
type Orientation uint8

const (
	North Orientation = 0
	East  Orientation = 1
	South Orientation = 2
	West  Orientation = 3
)

const OrientationCount = 4

// AllOrientations lists the orientations in serialization order.
var AllOrientations = [OrientationCount]Orientation{North, East, South, West}

// Rotated applies a rotation to the orientation.
func (o Orientation) Rotated(r Rotation) Orientation {
	return Orientation((int8(o) + 4 + int8(r.WrapToClockwise())) % 4)
}

// ToRotation converts the orientation into its clockwise angle from north.
func (o Orientation) ToRotation() Rotation {
	return Rotation(o)
}

func (o Orientation) flag() uint8 {
	return 1 << o
}

func (o Orientation) String() string {
	switch o {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return ""
}

// ParseOrientation decodes a serialized orientation. Unknown bytes decode
// to north.
func ParseOrientation(c byte) Orientation {
	switch c {
	case 'E':
		return East
	case 'S':
		return South
	case 'W':
		return West
	}
	return North
}

// Orientations is a small set of orientations.
type Orientations uint8

// NewOrientations builds a set from the given members.
func NewOrientations(members ...Orientation) Orientations {
	var s Orientations
	for _, o := range members {
		s |= Orientations(o.flag())
	}
	return s
}

func (s Orientations) Empty() bool { return s == 0 }

func (s Orientations) Contains(o Orientation) bool {
	return s&Orientations(o.flag()) != 0
}

func (s *Orientations) Insert(o Orientation) {
	*s |= Orientations(o.flag())
}

// Slice returns the members in ascending order.
func (s Orientations) Slice() []Orientation {
	result := make([]Orientation, 0, OrientationCount)
	for _, o := range AllOrientations {
		if s.Contains(o) {
			result = append(result, o)
		}
	}
	return result
}
