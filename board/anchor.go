package board

// Anchor is one of the four sides of a field, or the stop in its center.
// Track wiring connects anchors; an orb enters a field through one anchor
// and leaves through a connected one.
type Anchor uint8

const (
	AnchorNorth Anchor = 0
	AnchorEast  Anchor = 1
	AnchorSouth Anchor = 2
	AnchorWest  Anchor = 3
	AnchorStop  Anchor = 4
)

const (
	AnchorCount = 5
	sideCount   = 4
	sideMask    = 0x0f
	centerMask  = 0x10
)

// AllAnchors lists the anchors in bit order.
var AllAnchors = [AnchorCount]Anchor{AnchorNorth, AnchorEast, AnchorSouth, AnchorWest, AnchorStop}

func (a Anchor) flag() uint8 {
	return 1 << a
}

// IsSide reports whether the anchor is one of the four sides.
func (a Anchor) IsSide() bool {
	return a < AnchorStop
}

// Rotated rotates a side anchor; the stop is fixed.
func (a Anchor) Rotated(r Rotation) Anchor {
	if a == AnchorStop {
		return a
	}
	return Anchor((uint8(a) + uint8(r.WrapToClockwise())) % sideCount)
}

// RotatedBy rotates the anchor into the given stone orientation.
func (a Anchor) RotatedBy(o Orientation) Anchor {
	return a.Rotated(o.ToRotation())
}

// Normalized maps a board-space anchor back into stone space for a stone
// with the given orientation.
func (a Anchor) Normalized(o Orientation) Anchor {
	return a.Rotated(o.ToRotation().Reversed())
}

// Opposite returns the anchor on the facing side; the stop is fixed.
func (a Anchor) Opposite() Anchor {
	return a.Rotated(Clockwise180)
}

// Step returns the neighboring position in the anchor's direction and the
// anchor through which that neighbor is entered. Stepping from the stop
// stays in place.
func (a Anchor) Step(pos Position) (Position, Anchor) {
	switch a {
	case AnchorNorth:
		return pos.Offset(0, -1), AnchorSouth
	case AnchorEast:
		return pos.Offset(1, 0), AnchorWest
	case AnchorSouth:
		return pos.Offset(0, 1), AnchorNorth
	case AnchorWest:
		return pos.Offset(-1, 0), AnchorEast
	}
	return pos, AnchorStop
}

func (a Anchor) String() string {
	switch a {
	case AnchorNorth:
		return "N"
	case AnchorEast:
		return "E"
	case AnchorSouth:
		return "S"
	case AnchorWest:
		return "W"
	case AnchorStop:
		return "O"
	}
	return "-"
}

// Anchors is a bitmask of anchors.
type Anchors uint8

// NewAnchors builds a set from the given members.
func NewAnchors(members ...Anchor) Anchors {
	var s Anchors
	for _, a := range members {
		s |= Anchors(a.flag())
	}
	return s
}

func (s Anchors) Empty() bool { return s == 0 }

func (s Anchors) Contains(a Anchor) bool {
	return s&Anchors(a.flag()) != 0
}

func (s *Anchors) Insert(a Anchor) {
	*s |= Anchors(a.flag())
}

func (s *Anchors) Remove(a Anchor) {
	*s &^= Anchors(a.flag())
}

// First returns the member with the lowest bit, or the stop for an empty
// set.
func (s Anchors) First() (Anchor, bool) {
	for _, a := range AllAnchors {
		if s.Contains(a) {
			return a, true
		}
	}
	return AnchorNorth, false
}

// Rotated cycles the four side bits; the stop bit is fixed.
func (s Anchors) Rotated(r Rotation) Anchors {
	sides := uint8(s) & sideMask
	shift := uint8(r.WrapToClockwise()) & 0x03
	rotated := ((sides << shift) | (sides >> (sideCount - shift))) & sideMask
	return Anchors(rotated | (uint8(s) & centerMask))
}

// RotatedBy rotates the set into the given stone orientation.
func (s Anchors) RotatedBy(o Orientation) Anchors {
	return s.Rotated(o.ToRotation())
}

// Normalized maps board-space anchors back into stone space.
func (s Anchors) Normalized(o Orientation) Anchors {
	return s.Rotated(o.ToRotation().Reversed())
}

// Slice returns the members in bit order.
func (s Anchors) Slice() []Anchor {
	result := make([]Anchor, 0, AnchorCount)
	for _, a := range AllAnchors {
		if s.Contains(a) {
			result = append(result, a)
		}
	}
	return result
}

func (s Anchors) String() string {
	var result []byte
	for _, a := range AllAnchors {
		if s.Contains(a) {
			result = append(result, a.String()[0])
		}
	}
	return string(result)
}
