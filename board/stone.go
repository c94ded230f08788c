package board

// Stone is one of the track tile kinds.
//
// _: empty field
// A: crossing of two straight tracks
// B: crossing with a stop in the center
// C: two opposing curves
// D: straight track with a parallel pair of curves
// E: straight track with two curves joining it
// F: four curves
// G: one curve with two bounce ends
// H: three-way junction with a stop
// I: one curve ending in a stop
// J: one curve
type Stone uint8

const (
	Empty Stone = iota
	Crossing
	CrossingWithStop
	TwoCurves
	SwitchA
	SwitchB
	SwitchC
	CurveWithBounces
	SwitchWithStop
	OneCurveWithStop
	OneCurve

	StoneCount
)

// AllStones lists every stone kind including the empty one.
var AllStones = [StoneCount]Stone{
	Empty, Crossing, CrossingWithStop, TwoCurves, SwitchA, SwitchB, SwitchC,
	CurveWithBounces, SwitchWithStop, OneCurveWithStop, OneCurve,
}

// AllNonEmptyStones lists every placeable stone kind.
var AllNonEmptyStones = [StoneCount - 1]Stone{
	Crossing, CrossingWithStop, TwoCurves, SwitchA, SwitchB, SwitchC,
	CurveWithBounces, SwitchWithStop, OneCurveWithStop, OneCurve,
}

const stoneChars = "_ABCDEFGHIJ"

// elementType is a wiring building block rooted at an orientation.
type elementType uint8

const (
	elementStraight elementType = iota
	elementStop
	elementCurve
	elementBounce
)

type element struct {
	typ         elementType
	orientation Orientation
}

// connection resolves the element into its (source, target) anchor pair.
// Rooted at north, a straight runs to the south anchor, a stop to the
// center, a curve to the east anchor and a bounce back onto itself.
func (e element) connection() (Anchor, Anchor) {
	targets := [4]Anchor{AnchorSouth, AnchorStop, AnchorEast, AnchorNorth}
	r := e.orientation.ToRotation()
	return AnchorNorth.Rotated(r), targets[e.typ].Rotated(r)
}

// stoneWiring is the per-kind connection table plus the precomputed set of
// orientations that produce distinct tables.
type stoneWiring struct {
	connections        [AnchorCount]Anchors
	uniqueOrientations Orientations
}

func (w *stoneWiring) add(e element) {
	source, target := e.connection()
	w.connections[source].Insert(target)
	w.connections[target].Insert(source)
}

func (w *stoneWiring) hasStop() bool {
	return !w.connections[AnchorStop].Empty()
}

func (w *stoneWiring) rotatedConnections(r Rotation) [AnchorCount]Anchors {
	if r.WrapToClockwise() == NoRotation {
		return w.connections
	}
	var result [AnchorCount]Anchors
	for _, a := range AllAnchors {
		result[a.Rotated(r)] = w.connections[a].Rotated(r)
	}
	return result
}

func (w *stoneWiring) isEqual(a, b Orientation) bool {
	return w.rotatedConnections(a.ToRotation()) == w.rotatedConnections(b.ToRotation())
}

func (w *stoneWiring) updateUniqueOrientations() {
	w.uniqueOrientations = NewOrientations(North)
	if !w.isEqual(North, East) {
		w.uniqueOrientations.Insert(East)
	}
	if !w.isEqual(North, South) {
		w.uniqueOrientations.Insert(South)
	}
	if !w.isEqual(North, West) && !w.isEqual(East, West) {
		w.uniqueOrientations.Insert(West)
	}
}

func buildWiring(elements ...element) stoneWiring {
	var w stoneWiring
	for _, e := range elements {
		w.add(e)
	}
	w.updateUniqueOrientations()
	return w
}

var stoneWirings = [StoneCount]stoneWiring{
	Empty: {uniqueOrientations: 1 << North},
	Crossing: buildWiring(
		element{elementStraight, North},
		element{elementStraight, East},
	),
	CrossingWithStop: buildWiring(
		element{elementStop, North},
		element{elementStop, East},
		element{elementStop, South},
		element{elementStop, West},
	),
	TwoCurves: buildWiring(
		element{elementCurve, North},
		element{elementCurve, South},
	),
	SwitchA: buildWiring(
		element{elementStraight, North},
		element{elementCurve, North},
		element{elementCurve, South},
	),
	SwitchB: buildWiring(
		element{elementStraight, North},
		element{elementCurve, North},
		element{elementCurve, West},
	),
	SwitchC: buildWiring(
		element{elementCurve, North},
		element{elementCurve, East},
		element{elementCurve, South},
		element{elementCurve, West},
	),
	CurveWithBounces: buildWiring(
		element{elementCurve, West},
		element{elementBounce, East},
		element{elementBounce, South},
	),
	SwitchWithStop: buildWiring(
		element{elementStop, North},
		element{elementStop, East},
		element{elementStop, South},
	),
	OneCurveWithStop: buildWiring(
		element{elementStop, North},
		element{elementStop, East},
	),
	OneCurve: buildWiring(
		element{elementCurve, North},
	),
}

func (s Stone) wiring() *stoneWiring {
	return &stoneWirings[s]
}

// IsEmpty reports whether this is the empty stone.
func (s Stone) IsEmpty() bool {
	return s == Empty
}

// HasStop reports whether the stone carries a stop anchor.
func (s Stone) HasStop() bool {
	return s.wiring().hasStop()
}

// ConnectionsFrom returns the anchors reachable from the given anchor in
// stone space (orientation north).
func (s Stone) ConnectionsFrom(a Anchor) Anchors {
	return s.wiring().connections[a]
}

// UniqueOrientations returns the orientations with distinct wiring.
func (s Stone) UniqueOrientations() Orientations {
	return s.wiring().uniqueOrientations
}

// CanRotate reports whether rotating the stone can change its wiring.
func (s Stone) CanRotate() bool {
	u := s.UniqueOrientations()
	return !u.Empty() && u != NewOrientations(North)
}

// AllOrientationsAreUnique reports whether all four orientations wire
// differently.
func (s Stone) AllOrientationsAreUnique() bool {
	return s.UniqueOrientations() == NewOrientations(North, East, South, West)
}

// WiringEqual reports whether the stone wires identically under the two
// orientations.
func (s Stone) WiringEqual(a, b Orientation) bool {
	if a == b {
		return true
	}
	return s.wiring().isEqual(a, b)
}

// NormalizedOrientation maps an orientation onto the stone's canonical
// representative. Stones that cannot rotate collapse to north; stones
// whose half-turn is a self-symmetry fold south and west back.
func (s Stone) NormalizedOrientation(o Orientation) Orientation {
	if s.IsEmpty() || !s.CanRotate() {
		return North
	}
	if !s.AllOrientationsAreUnique() && (o == South || o == West) {
		return o.Rotated(Clockwise180)
	}
	return o
}

func (s Stone) String() string {
	if s >= StoneCount {
		return " "
	}
	return string(stoneChars[s])
}

// LongString returns the spelled-out kind name.
func (s Stone) LongString() string {
	switch s {
	case Empty:
		return "Empty"
	case Crossing:
		return "Crossing"
	case CrossingWithStop:
		return "CrossingWithStop"
	case TwoCurves:
		return "TwoCurves"
	case SwitchA:
		return "SwitchA"
	case SwitchB:
		return "SwitchB"
	case SwitchC:
		return "SwitchC"
	case CurveWithBounces:
		return "CurveWithBounces"
	case SwitchWithStop:
		return "SwitchWithStop"
	case OneCurveWithStop:
		return "OneCurveWithStop"
	case OneCurve:
		return "OneCurve"
	}
	return ""
}

// StoneDataSize is the serialized length of one stone.
const StoneDataSize = 1

// AppendData appends the single-character stone code.
func (s Stone) AppendData(data []byte) []byte {
	return append(data, stoneChars[s])
}

// StoneFromChar decodes a stone code; unknown bytes decode to empty.
func StoneFromChar(c byte) Stone {
	if c >= 'A' && c <= 'J' {
		return Stone(c - 'A' + 1)
	}
	return Empty
}
