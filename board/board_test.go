package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestRotationComposition(t *testing.T) {
	is := is.New(t)
	is.Equal(Clockwise90.Add(Clockwise90), Clockwise180)
	is.Equal(Clockwise270.Add(Clockwise90), NoRotation)
	is.Equal(Clockwise90.Reversed(), CounterClockwise90)
	is.Equal(CounterClockwise90.WrapToClockwise(), Clockwise270)
	for _, r := range AllClockwise {
		is.Equal(r.Add(r.Reversed()), NoRotation)
	}
}

func TestOrientationRotation(t *testing.T) {
	is := is.New(t)
	is.Equal(North.Rotated(Clockwise90), East)
	is.Equal(West.Rotated(Clockwise90), North)
	is.Equal(South.Rotated(CounterClockwise90), East)
	for _, o := range AllOrientations {
		is.Equal(o.Rotated(NoRotation), o)
		is.Equal(o.Rotated(Clockwise90).Rotated(CounterClockwise90), o)
	}
}

func TestPositionRotation(t *testing.T) {
	is := is.New(t)
	is.Equal(Position{0, 0}.Rotated(Clockwise90, Size), Position{0, 9})
	is.Equal(Position{0, 0}.Rotated(Clockwise180, Size), Position{9, 9})
	is.Equal(Position{0, 0}.Rotated(Clockwise270, Size), Position{9, 0})
	is.Equal(InvalidPosition().Rotated(Clockwise90, Size), InvalidPosition())
	for _, r := range AllClockwise {
		p := Position{3, 7}
		is.Equal(p.Rotated(r, Size).Rotated(r.Reversed(), Size), p)
	}
}

func TestPositionCodec(t *testing.T) {
	is := is.New(t)
	is.Equal(string(Position{3, 10}.AppendData(nil)), "3a")
	is.Equal(string(InvalidPosition().AppendData(nil)), "__")
	is.Equal(PositionFromData([]byte("3a")), Position{3, 10})
	is.Equal(PositionFromData([]byte("__")), InvalidPosition())
	is.Equal(PositionFromData([]byte("x1")), InvalidPosition())
}

func TestPositionStepWrapsOffGrid(t *testing.T) {
	is := is.New(t)
	next, entry := AnchorNorth.Step(Position{4, 0})
	is.Equal(entry, AnchorSouth)
	is.True(next.IsInvalid())
	next, entry = AnchorEast.Step(Position{4, 4})
	is.Equal(next, Position{5, 4})
	is.Equal(entry, AnchorWest)
}

func TestAnchorsRotation(t *testing.T) {
	is := is.New(t)
	s := NewAnchors(AnchorNorth, AnchorEast, AnchorStop)
	is.Equal(s.Rotated(Clockwise90), NewAnchors(AnchorEast, AnchorSouth, AnchorStop))
	is.Equal(s.Rotated(Clockwise90).Rotated(Clockwise270), s)
	first, ok := s.First()
	is.True(ok)
	is.Equal(first, AnchorNorth)
	s.Remove(AnchorNorth)
	s.Remove(AnchorEast)
	first, ok = s.First()
	is.True(ok)
	is.Equal(first, AnchorStop)
}

func TestStoneUniqueOrientations(t *testing.T) {
	is := is.New(t)
	is.Equal(Empty.UniqueOrientations(), NewOrientations(North))
	is.Equal(Crossing.UniqueOrientations(), NewOrientations(North))
	is.Equal(CrossingWithStop.UniqueOrientations(), NewOrientations(North))
	is.Equal(SwitchC.UniqueOrientations(), NewOrientations(North))
	is.Equal(TwoCurves.UniqueOrientations(), NewOrientations(North, East))
	is.Equal(SwitchA.UniqueOrientations(), NewOrientations(North, East))
	is.True(OneCurve.AllOrientationsAreUnique())
	is.True(OneCurveWithStop.AllOrientationsAreUnique())
	is.True(SwitchB.AllOrientationsAreUnique())
	is.True(!Crossing.CanRotate())
	is.True(TwoCurves.CanRotate())
}

func TestStoneWiring(t *testing.T) {
	is := is.New(t)
	is.Equal(Crossing.ConnectionsFrom(AnchorNorth), NewAnchors(AnchorSouth))
	is.Equal(Crossing.ConnectionsFrom(AnchorEast), NewAnchors(AnchorWest))
	is.Equal(OneCurve.ConnectionsFrom(AnchorNorth), NewAnchors(AnchorEast))
	is.Equal(OneCurve.ConnectionsFrom(AnchorSouth), Anchors(0))
	is.Equal(CrossingWithStop.ConnectionsFrom(AnchorStop),
		NewAnchors(AnchorNorth, AnchorEast, AnchorSouth, AnchorWest))
	is.True(CrossingWithStop.HasStop())
	is.True(SwitchWithStop.HasStop())
	is.True(!Crossing.HasStop())
	// A bounce sends the orb back out the way it came in.
	is.True(CurveWithBounces.ConnectionsFrom(AnchorEast).Contains(AnchorEast))
}

func TestFieldPacking(t *testing.T) {
	is := is.New(t)
	f := NewField(TwoCurves, East, 2)
	is.Equal(f.Stone(), TwoCurves)
	is.Equal(f.Orientation(), East)
	is.Equal(f.KoLock(), uint8(2))
	is.True(f.HasKoLock())
	is.Equal(f.NextTurn().KoLock(), uint8(1))
	is.Equal(f.NextTurn().NextTurn().NextTurn().KoLock(), uint8(0))

	// Orientations fold onto the stone's canonical representative.
	is.Equal(NewField(Crossing, East, 0).Orientation(), North)
	is.Equal(NewField(TwoCurves, South, 0).Orientation(), North)
	is.Equal(NewField(OneCurve, West, 0).Orientation(), West)
}

func TestFieldConnections(t *testing.T) {
	is := is.New(t)
	// A curve turned east connects east to south in board space.
	f := NewField(OneCurve, East, 0)
	is.Equal(f.ConnectionsFrom(AnchorEast), NewAnchors(AnchorSouth))
	is.Equal(f.ConnectionsFrom(AnchorSouth), NewAnchors(AnchorEast))
	is.Equal(f.ConnectionsFrom(AnchorNorth), Anchors(0))
}

func TestFieldRotationRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, stone := range AllNonEmptyStones {
		for _, o := range stone.UniqueOrientations().Slice() {
			f := NewField(stone, o, 1)
			for _, r := range AllClockwise {
				is.Equal(f.Rotated(r).Rotated(r.Reversed()), f)
			}
		}
	}
}

func TestFieldCodec(t *testing.T) {
	is := is.New(t)
	f := NewField(TwoCurves, East, 3)
	data := f.AppendData(nil)
	is.Equal(string(data), "CE3")
	decoded, err := FieldFromData(data)
	is.NoErr(err)
	is.Equal(decoded, f)

	empty, err := FieldFromData([]byte("___"))
	is.NoErr(err)
	is.True(empty.IsEmpty())

	_, err = FieldFromData([]byte("CE"))
	is.True(err != nil)
}

func TestFieldIsValidChange(t *testing.T) {
	is := is.New(t)
	f := NewField(TwoCurves, North, 0)
	is.True(f.IsValidChange(Crossing, North))
	is.True(f.IsValidChange(TwoCurves, East))
	is.True(!f.IsValidChange(TwoCurves, North))
	is.True(!f.IsValidChange(TwoCurves, South)) // same wiring as north
	is.True(!NewField(TwoCurves, North, 2).IsValidChange(Crossing, North))
	is.True(!Field(0).IsValidChange(Crossing, North))
}

func TestFrameLayout(t *testing.T) {
	is := is.New(t)
	is.Equal(AreaAt(Position{0, 0}), AreaHouse)
	is.Equal(AreaAt(Position{9, 9}), AreaHouse)
	is.Equal(AreaAt(Position{1, 1}), AreaGarden)
	is.Equal(AreaAt(Position{4, 4}), AreaSource)
	is.Equal(AreaAt(Position{3, 0}), AreaFrame)
	is.Equal(AreaAt(Position{4, 3}), AreaPlayer)
	is.True(IsStatic(Position{0, 0}))
	is.True(IsStatic(Position{4, 4}))
	is.True(!IsStatic(Position{1, 1})) // gardens are playable for their owner
	is.True(!IsStatic(Position{4, 3}))
	is.Equal(PlayerForField(Position{1, 1}), Player(0))
	is.Equal(PlayerForField(Position{1, 8}), Player(1))
	is.Equal(PlayerForField(Position{8, 8}), Player(2))
	is.Equal(PlayerForField(Position{8, 1}), Player(3))
	is.Equal(HouseOrbPositions(0), [HouseOrbCount]Position{{0, 0}, {1, 0}, {0, 1}})
	is.Equal(SourceOrbPositions(), [SourceOrbCount]Position{{4, 4}, {4, 5}, {5, 5}, {5, 4}})
}

func TestFrameIsRotationInvariant(t *testing.T) {
	is := is.New(t)
	var b Board
	for y := uint8(0); y < Size; y++ {
		for x := uint8(0); x < Size; x++ {
			pos := Position{x, y}
			if !IsStatic(pos) {
				continue
			}
			for _, r := range AllClockwise {
				rotated := pos.Rotated(r, Size)
				is.True(IsStatic(rotated))
				is.Equal(b.FieldAt(rotated), b.FieldAt(pos).Rotated(r))
			}
		}
	}
}

func TestBoardSetAndRotate(t *testing.T) {
	is := is.New(t)
	var b Board
	is.NoErr(b.SetField(Position{3, 4}, OneCurve, East))
	is.Equal(b.FieldAt(Position{3, 4}).Stone(), OneCurve)
	is.True(b.SetField(Position{0, 0}, Crossing, North) != nil)

	rotated := b.Rotated(Clockwise90)
	target := Position{3, 4}.Rotated(Clockwise90, Size)
	is.Equal(rotated.FieldAt(target).Stone(), OneCurve)
	is.Equal(rotated.FieldAt(target).Orientation(), East.Rotated(CounterClockwise90))
	back := rotated.Rotated(Clockwise270)
	is.Equal(back, b)
}

func TestBoardPlacementRules(t *testing.T) {
	is := is.New(t)
	var b Board
	is.True(b.CanPlayerPlaceStone(Position{4, 3}))
	is.True(b.CanPlayerPlaceStone(Position{1, 1}))  // own garden
	is.True(!b.CanPlayerPlaceStone(Position{8, 1})) // foreign garden
	is.True(!b.CanPlayerPlaceStone(Position{4, 4})) // source
	is.NoErr(b.SetField(Position{4, 3}, Crossing, North))
	is.True(!b.CanPlayerPlaceStone(Position{4, 3}))
	is.True(b.CanPlayerReplaceStone(Position{4, 3}, TwoCurves, North))
	is.True(!b.CanPlayerReplaceStone(Position{4, 3}, Crossing, East))
	is.True(!b.CanPlayerRotateStone(Position{4, 3}, East))
	is.NoErr(b.SetField(Position{5, 3}, OneCurve, North))
	is.True(b.CanPlayerRotateStone(Position{5, 3}, East))
}

func TestBoardCodec(t *testing.T) {
	is := is.New(t)
	var b Board
	is.NoErr(b.SetField(Position{2, 6}, SwitchB, West))
	is.NoErr(b.SetField(Position{7, 2}, TwoCurves, East))
	is.NoErr(b.SetKoLock(Position{7, 2}, 2))
	data := b.AppendData(nil)
	is.Equal(len(data), BoardDataSize)
	decoded, err := BoardFromData(data)
	is.NoErr(err)
	is.Equal(decoded, b)
}
