package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/metikumi/metikoro/board"
)

func TestActionPoolAddKeepsOrder(t *testing.T) {
	is := is.New(t)
	var pool ActionPool
	is.True(pool.IsEmpty())
	is.NoErr(pool.Add(board.Crossing))
	is.NoErr(pool.Add(board.TwoCurves))
	is.NoErr(pool.Add(board.SwitchA))
	is.Equal(pool, ActionPool{board.SwitchA, board.TwoCurves, board.Crossing})
	is.NoErr(pool.Add(board.TwoCurves))
	is.Equal(pool, ActionPool{board.SwitchA, board.TwoCurves, board.TwoCurves, board.Crossing})
	is.Equal(pool.StoneCount(), 4)
	is.Equal(pool.FreeSlots(), 2)

	is.Equal(pool.Add(board.Empty), ErrEmptyStone)
	is.NoErr(pool.Add(board.OneCurve))
	is.NoErr(pool.Add(board.Crossing))
	is.True(pool.IsFull())
	is.Equal(pool.Add(board.Crossing), ErrPoolFull)
}

func TestActionPoolTake(t *testing.T) {
	is := is.New(t)
	var pool ActionPool
	is.NoErr(pool.Add(board.TwoCurves))
	is.NoErr(pool.Add(board.Crossing))
	is.NoErr(pool.Add(board.TwoCurves))
	is.NoErr(pool.Take(board.TwoCurves))
	is.Equal(pool, ActionPool{board.TwoCurves, board.Crossing})
	is.Equal(pool.Take(board.SwitchB), ErrStoneNotInPool)
}

func TestActionPoolHasStones(t *testing.T) {
	is := is.New(t)
	var pool ActionPool
	is.NoErr(pool.Add(board.Crossing))
	is.NoErr(pool.Add(board.TwoCurves))
	is.True(pool.HasStones(board.Crossing, board.TwoCurves))
	is.True(!pool.HasStones(board.Crossing, board.Crossing))
	is.NoErr(pool.Add(board.Crossing))
	is.True(pool.HasStones(board.Crossing, board.Crossing))
}

func TestActionPoolUniqueStones(t *testing.T) {
	is := is.New(t)
	var pool ActionPool
	is.Equal(pool.UniqueStones(), nil)
	is.NoErr(pool.Add(board.TwoCurves))
	is.NoErr(pool.Add(board.TwoCurves))
	is.NoErr(pool.Add(board.Crossing))
	is.Equal(pool.UniqueStones(), []board.Stone{board.TwoCurves, board.Crossing})
	is.Equal(len(pool.UniqueStonePairs()), 3)
	is.Equal(pool.UniqueStoneQuads(), nil)
}

func TestActionPoolCodec(t *testing.T) {
	is := is.New(t)
	var pool ActionPool
	is.NoErr(pool.Add(board.Crossing))
	is.NoErr(pool.Add(board.CurveWithBounces))
	data := pool.AppendData(nil)
	is.Equal(string(data), "GA____")
	decoded, err := ActionPoolFromData(data)
	is.NoErr(err)
	is.Equal(decoded, pool)
}

func TestActionPoolsRotated(t *testing.T) {
	is := is.New(t)
	var pools ActionPools
	for i := range pools {
		is.NoErr(pools[i].Add(board.Stone(i + 1)))
	}
	rotated := pools.Rotated(board.Clockwise90)
	is.Equal(rotated[0], pools[1])
	is.Equal(rotated[3], pools[0])
	is.Equal(pools.Rotated(board.NoRotation), pools)
	back := rotated.Rotated(board.Clockwise270)
	is.Equal(back, pools)
}

func TestResourcePool(t *testing.T) {
	is := is.New(t)
	pool := NewResourcePool()
	is.Equal(pool.Count(board.Crossing), uint8(20))
	is.Equal(pool.Count(board.CrossingWithStop), uint8(8))
	is.Equal(pool.Count(board.OneCurve), uint8(0))
	is.True(pool.Has(board.Crossing, 20))
	is.True(!pool.Has(board.Crossing, 21))
	is.NoErr(pool.Take(board.Crossing, 20))
	is.Equal(pool.Take(board.Crossing, 1), ErrResourceExhausted)
	is.NoErr(pool.Add(board.Crossing, 2))
	is.Equal(pool.Count(board.Crossing), uint8(2))
	is.Equal(pool.Add(board.Empty, 1), ErrEmptyStone)
}

func TestResourcePoolDraws(t *testing.T) {
	is := is.New(t)
	var pool ResourcePool
	is.NoErr(pool.Add(board.Crossing, 1))
	is.NoErr(pool.Add(board.TwoCurves, 2))
	is.Equal(pool.AllActionOneExtraDraw(), []board.Stone{board.Crossing, board.TwoCurves})
	// A doubled kind needs two copies in the supply.
	is.Equal(pool.AllActionTwoExtraDraws(), []StonePair{
		{board.Crossing, board.TwoCurves},
		{board.TwoCurves, board.TwoCurves},
	})
}

func TestResourcePoolCodec(t *testing.T) {
	is := is.New(t)
	pool := NewResourcePool()
	data := pool.AppendData(nil)
	is.Equal(len(data), ResourcePoolDataSize)
	decoded, err := ResourcePoolFromData(data)
	is.NoErr(err)
	is.Equal(decoded, pool)
}
