package board

// Size is the full side length of the board including the frame.
const Size = 10

// InteriorSize is the side length of the mutable interior.
const InteriorSize = Size - 2

// SourceOffset is the distance from the top left corner to the first
// source cell.
const SourceOffset = 4

// HouseOrbCount is the number of orb cells per house.
const HouseOrbCount = 3

// SourceOrbCount is the number of source cells.
const SourceOrbCount = 4

// Area classifies a frame cell.
type Area uint8

const (
	AreaPlayer Area = iota // playable interior
	AreaFrame              // border without function
	AreaHouse              // home cells of one player
	AreaGarden             // garden cells of one player
	AreaSource             // the central source
)

func (a Area) String() string {
	switch a {
	case AreaFrame:
		return "F"
	case AreaHouse:
		return "H"
	case AreaGarden:
		return "G"
	case AreaSource:
		return "S"
	}
	return " "
}

// frameField is one cell of the static frame overlay.
type frameField struct {
	field  Field
	area   Area
	player Player
}

func (f frameField) isStatic() bool {
	return f.area == AreaFrame || f.area == AreaHouse || f.area == AreaSource
}

// boardFrame is the static 10x10 overlay: houses and gardens in the four
// corners, a blank border, and the four source cells in the center. It is
// built once and never mutated.
type boardFrame struct {
	fields             [Size * Size]frameField
	houseOrbPositions  [PlayerCount][HouseOrbCount]Position
	sourceOrbPositions [SourceOrbCount]Position
}

func (bf *boardFrame) at(pos Position) *frameField {
	return &bf.fields[int(pos.Y)*Size+int(pos.X)]
}

// frame is the singleton overlay shared by all boards.
var frame = buildFrame()

// buildFrame lays out one corner and stamps it under all four rotations.
// Stone orientations turn by the reversed angle, matching Field.Rotated,
// which makes the frame invariant under quarter turns of the whole board.
func buildFrame() *boardFrame {
	bf := &boardFrame{}
	corner := []struct {
		pos         Position
		stone       Stone
		orientation Orientation
		area        Area
	}{
		{Position{0, 0}, OneCurveWithStop, East, AreaHouse},
		{Position{0, 1}, SwitchWithStop, North, AreaHouse},
		{Position{0, 2}, OneCurve, North, AreaHouse},
		{Position{0, 3}, Empty, North, AreaFrame},
		{Position{0, 4}, Empty, North, AreaFrame},
		{Position{1, 0}, SwitchWithStop, East, AreaHouse},
		{Position{2, 0}, OneCurve, South, AreaHouse},
		{Position{3, 0}, Empty, North, AreaFrame},
		{Position{4, 0}, Empty, North, AreaFrame},
		{Position{1, 1}, Empty, North, AreaGarden},
		{Position{2, 1}, Empty, North, AreaGarden},
		{Position{3, 1}, Empty, North, AreaGarden},
		{Position{1, 2}, Empty, North, AreaGarden},
		{Position{2, 2}, Empty, North, AreaGarden},
		{Position{1, 3}, Empty, North, AreaGarden},
		{Position{SourceOffset, SourceOffset}, OneCurveWithStop, West, AreaSource},
	}
	for player, rotation := range AllClockwise {
		for _, c := range corner {
			pos := c.pos.Rotated(rotation, Size)
			f := bf.at(pos)
			f.field = NewField(c.stone, c.orientation.Rotated(rotation.Reversed()), 0)
			f.area = c.area
		}
		source := Position{SourceOffset, SourceOffset}.Rotated(rotation, Size)
		bf.sourceOrbPositions[rotation] = source
		bf.houseOrbPositions[player] = [HouseOrbCount]Position{
			Position{0, 0}.Rotated(rotation, Size),
			Position{1, 0}.Rotated(rotation, Size),
			Position{0, 1}.Rotated(rotation, Size),
		}
		for x := uint8(0); x < Size/2; x++ {
			for y := uint8(0); y < Size/2; y++ {
				bf.at(Position{x, y}.Rotated(rotation, Size)).player = Player(player)
			}
		}
	}
	return bf
}

// AreaAt returns the frame classification of a cell.
func AreaAt(pos Position) Area {
	return frame.at(pos).area
}

// IsStatic reports whether a cell belongs to the immutable frame overlay.
func IsStatic(pos Position) bool {
	return frame.at(pos).isStatic()
}

// IsSource reports whether the cell is one of the four source cells.
func IsSource(pos Position) bool {
	return frame.at(pos).area == AreaSource
}

// IsHouse reports whether the cell belongs to a house.
func IsHouse(pos Position) bool {
	return frame.at(pos).area == AreaHouse
}

// IsGarden reports whether the cell belongs to a garden.
func IsGarden(pos Position) bool {
	return frame.at(pos).area == AreaGarden
}

// PlayerForField returns the seat owning the cell's quadrant.
func PlayerForField(pos Position) Player {
	return frame.at(pos).player
}

// HouseOrbPositions returns the three scoring cells of a player's house.
func HouseOrbPositions(player Player) [HouseOrbCount]Position {
	return frame.houseOrbPositions[player]
}

// SourceOrbPositions returns the four source cells.
func SourceOrbPositions() [SourceOrbCount]Position {
	return frame.sourceOrbPositions
}
