package movegen

import (
	"errors"

	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/move"
	"github.com/samber/lo"
)

const (
	minimumStackSize = 64
	maximumStackSize = 1024
)

// ErrStackExceeded is returned when a track network is too tangled to
// search.
var ErrStackExceeded = errors.New("orb travel stack size exceeded")

// travelPoint is one position entered through one anchor.
type travelPoint struct {
	position board.Position
	anchor   board.Anchor
}

// travelNode is one field on the travel path: the entry anchor, the
// currently selected exit, and the exits not yet explored.
type travelNode struct {
	position board.Position
	begin    board.Anchor
	end      board.Anchor
	options  board.Anchors
}

// newTravelNode builds the node for entering the field through the given
// point, or a dead end if the wiring offers no way out.
func newTravelNode(point travelPoint, field board.Field) (travelNode, bool) {
	connections := field.ConnectionsFrom(point.anchor)
	if connections.Empty() {
		return travelNode{}, false
	}
	first, _ := connections.First()
	return travelNode{
		position: point.position,
		begin:    point.anchor,
		end:      first,
		options:  connections,
	}, true
}

func (n *travelNode) beginPoint() travelPoint {
	return travelPoint{n.position, n.begin}
}

func (n *travelNode) nextPoint() travelPoint {
	pos, anchor := n.end.Step(n.position)
	return travelPoint{pos, anchor}
}

func (n *travelNode) reachedStop() bool {
	return n.end == board.AnchorStop
}

func (n *travelNode) hasOptions() bool {
	return !n.options.Empty()
}

func (n *travelNode) canTravelForward() bool {
	return n.options.Contains(n.end)
}

// selectNextOption advances to the next unexplored exit. It reports false
// when every exit was tried.
func (n *travelNode) selectNextOption() bool {
	n.options.Remove(n.end)
	first, ok := n.options.First()
	if !ok {
		n.end = board.AnchorStop
		return false
	}
	n.end = first
	return true
}

func (n *travelNode) removeCurrentOption() {
	n.options.Remove(n.end)
}

// OrbMoveGenerator searches the track network for every stop an orb can
// reach.
type OrbMoveGenerator struct {
	state *game.State
	stack []travelNode
}

// NewOrbMoveGenerator creates a generator over the given state.
func NewOrbMoveGenerator(state *game.State) *OrbMoveGenerator {
	return &OrbMoveGenerator{
		state: state,
		stack: make([]travelNode, 0, minimumStackSize),
	}
}

// AllMoves lists every valid orb move, the explicit no-move first. Orbs
// resting in other players' houses stay put.
func (g *OrbMoveGenerator) AllMoves() ([]move.OrbMove, error) {
	result := []move.OrbMove{move.NoOrbMove()}
	for _, orbPosition := range g.state.OrbPositions {
		start := orbPosition.Position
		if start.IsInvalid() {
			break
		}
		if board.IsHouse(start) && board.PlayerForField(start) != 0 {
			continue
		}
		var stops []board.Position
		err := g.followAllPaths(start, func(stop board.Position) {
			stops = append(stops, stop)
		})
		if err != nil {
			return nil, err
		}
		for _, stop := range stops {
			if g.state.OrbPositions.IsOrbAt(stop) {
				continue
			}
			if g.state.OrbPositions.KoPosition(start) == stop {
				continue
			}
			orbMove := move.NewOrbMove(start, stop)
			if !lo.Contains(result, orbMove) {
				result = append(result, orbMove)
			}
		}
	}
	return result, nil
}

// followAllPaths walks every track from the start position and reports
// each reachable stop, the start's own stop excluded by the entry node.
func (g *OrbMoveGenerator) followAllPaths(start board.Position, reportStop func(board.Position)) error {
	g.stack = g.stack[:0]
	if _, err := g.pushNext(travelPoint{start, board.AnchorStop}); err != nil {
		return err
	}
	for len(g.stack) > 0 {
		node := &g.stack[len(g.stack)-1]
		if node.reachedStop() {
			reportStop(node.position)
			node.removeCurrentOption()
		} else {
			moved, err := g.travelForward(node)
			if err != nil {
				return err
			}
			if moved {
				continue
			}
		}
		if !node.hasOptions() {
			g.travelBack()
		}
	}
	return nil
}

// travelForward tries to extend the path through the node's selected
// exit. It reports false when the exit leads nowhere.
func (g *OrbMoveGenerator) travelForward(node *travelNode) (bool, error) {
	if !node.canTravelForward() {
		if !node.selectNextOption() {
			return false, nil
		}
	}
	next := node.nextPoint()
	if !g.doesLoop(next) && canTravel(node.position, next.position) {
		pushed, err := g.pushNext(next)
		if err != nil {
			return false, err
		}
		if pushed {
			return true, nil
		}
	}
	node.removeCurrentOption()
	return false, nil
}

// doesLoop reports whether the path already entered this point.
func (g *OrbMoveGenerator) doesLoop(next travelPoint) bool {
	for i := len(g.stack) - 1; i >= 0; i-- {
		if g.stack[i].beginPoint() == next {
			return true
		}
	}
	return false
}

// pushNext pushes the node for the next point, if its field carries a
// stone with a way out.
func (g *OrbMoveGenerator) pushNext(next travelPoint) (bool, error) {
	if !next.position.IsOnBoard() {
		return false, nil
	}
	field := g.state.Board.FieldAt(next.position)
	if field.IsEmpty() {
		return false, nil
	}
	node, ok := newTravelNode(next, field)
	if !ok {
		return false, nil
	}
	if len(g.stack) >= maximumStackSize {
		return false, ErrStackExceeded
	}
	g.stack = append(g.stack, node)
	return true, nil
}

// travelBack pops finished nodes until one offers another exit.
func (g *OrbMoveGenerator) travelBack() {
	for len(g.stack) > 0 {
		g.stack = g.stack[:len(g.stack)-1]
		if len(g.stack) > 0 && g.stack[len(g.stack)-1].selectNextOption() {
			break
		}
	}
}

// canTravel reports whether an orb may pass from one position to the
// next: never into a foreign house, never out of a house onto the track,
// and never back into the source.
func canTravel(start, stop board.Position) bool {
	startIsHouse := board.IsHouse(start)
	stopIsHouse := board.IsHouse(stop)
	if stopIsHouse && board.PlayerForField(stop) != 0 {
		return false
	}
	if startIsHouse && !stopIsHouse {
		return false
	}
	if !board.IsSource(start) && board.IsSource(stop) {
		return false
	}
	return true
}
