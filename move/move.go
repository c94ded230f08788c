// Package move defines the move types a player submits per turn: a
// sequence of up to two pool actions, an optional extra draw, and an
// optional orb move, with their compact text serialization.
package move

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metikumi/metikoro/board"
)

// ActionType enumerates the pool actions.
type ActionType uint8

const (
	None ActionType = iota
	PlaceStone
	ReplaceStone
	RotateStone
	DrawStone
)

// MaxActionsPerMove is the action budget of one move.
const MaxActionsPerMove = 2

// ActionTypes lists the concrete action types.
var ActionTypes = [4]ActionType{PlaceStone, ReplaceStone, RotateStone, DrawStone}

func (t ActionType) String() string {
	switch t {
	case PlaceStone:
		return "Place"
	case ReplaceStone:
		return "Replace"
	case RotateStone:
		return "Rotate"
	case DrawStone:
		return "Draw"
	}
	return ""
}

// Action is one pool action. The zero value is the none action.
type Action struct {
	Type         ActionType
	ActionStone  board.Stone
	DroppedStone board.Stone
	Orientation  board.Orientation
	Position     board.Position
}

// NewPlace places a stone from the active pool on the board.
func NewPlace(pos board.Position, stone board.Stone, orientation board.Orientation) Action {
	return Action{Type: PlaceStone, ActionStone: stone, Orientation: orientation, Position: pos}
}

// NewReplace swaps the stone on a field for one from the pool, dropping a
// second pool stone back into the resource pool.
func NewReplace(pos board.Position, stone board.Stone, orientation board.Orientation, dropped board.Stone) Action {
	return Action{Type: ReplaceStone, ActionStone: stone, DroppedStone: dropped, Orientation: orientation, Position: pos}
}

// NewRotate turns the stone on a field, dropping a pool stone back into
// the resource pool.
func NewRotate(pos board.Position, newOrientation board.Orientation, dropped board.Stone) Action {
	return Action{Type: RotateStone, DroppedStone: dropped, Orientation: newOrientation, Position: pos}
}

// NewDraw takes one stone from the resource pool into the active pool.
func NewDraw(stone board.Stone) Action {
	return Action{Type: DrawStone, ActionStone: stone, Position: board.InvalidPosition()}
}

// IsNone reports whether this is the none action.
func (a Action) IsNone() bool {
	return a.Type == None
}

func (a Action) String() string {
	if a.IsNone() {
		return ""
	}
	switch a.Type {
	case PlaceStone:
		return fmt.Sprintf("Action(Place, %s:%s => %s)", a.ActionStone, a.Orientation, a.Position)
	case ReplaceStone:
		return fmt.Sprintf("Action(Replace, %s:%s => %s, drop=%s)", a.ActionStone, a.Orientation, a.Position, a.DroppedStone)
	case RotateStone:
		return fmt.Sprintf("Action(Rotate, %s to %s, drop=%s)", a.Position, a.Orientation, a.DroppedStone)
	case DrawStone:
		return fmt.Sprintf("Action(Draw, %s)", a.ActionStone)
	}
	return ""
}

// ActionDataSize is the serialized length of one action.
const ActionDataSize = 1 + board.StoneDataSize + 1 + board.StoneDataSize + board.PositionDataSize

// AppendData appends type hex digit, action stone, orientation, dropped
// stone and position.
func (a Action) AppendData(data []byte) []byte {
	data = append(data, board.HexDigit(uint8(a.Type)))
	data = a.ActionStone.AppendData(data)
	data = append(data, a.Orientation.String()[0])
	data = a.DroppedStone.AppendData(data)
	return a.Position.AppendData(data)
}

// ActionFromData decodes a serialized action.
func ActionFromData(data []byte) (Action, error) {
	if len(data) != ActionDataSize {
		return Action{}, fmt.Errorf("action: invalid data size %d", len(data))
	}
	return Action{
		Type:         ActionType(board.HexValue(data[0])),
		ActionStone:  board.StoneFromChar(data[1]),
		Orientation:  board.ParseOrientation(data[2]),
		DroppedStone: board.StoneFromChar(data[3]),
		Position:     board.PositionFromData(data[4:6]),
	}, nil
}

// ActionSequence is up to two actions, none-padded at the tail.
type ActionSequence [MaxActionsPerMove]Action

// NewSequence wraps a single action.
func NewSequence(action Action) ActionSequence {
	return ActionSequence{action}
}

// HasNoActions reports whether the sequence is empty.
func (s ActionSequence) HasNoActions() bool {
	return s[0].IsNone()
}

func (s ActionSequence) String() string {
	if s.HasNoActions() {
		return "ActionSequence(no actions)"
	}
	var parts []string
	for _, a := range s {
		if a.IsNone() {
			break
		}
		parts = append(parts, a.String())
	}
	return "ActionSequence(" + strings.Join(parts, ", ") + ")"
}

// SequenceDataSize is the serialized length of an action sequence.
const SequenceDataSize = ActionDataSize * MaxActionsPerMove

// AppendData appends both actions.
func (s ActionSequence) AppendData(data []byte) []byte {
	for _, a := range s {
		data = a.AppendData(data)
	}
	return data
}

// SequenceFromData decodes a serialized action sequence.
func SequenceFromData(data []byte) (ActionSequence, error) {
	var result ActionSequence
	if len(data) != SequenceDataSize {
		return result, fmt.Errorf("action sequence: invalid data size %d", len(data))
	}
	for i := range result {
		a, err := ActionFromData(data[i*ActionDataSize : (i+1)*ActionDataSize])
		if err != nil {
			return result, err
		}
		result[i] = a
	}
	return result, nil
}

// OrbMove moves an orb from start to stop. Equal start and stop (the zero
// value) is the explicit no-move.
type OrbMove struct {
	Start board.Position
	Stop  board.Position
}

// NoOrbMove returns the explicit no-move.
func NoOrbMove() OrbMove {
	return OrbMove{board.InvalidPosition(), board.InvalidPosition()}
}

// NewOrbMove moves the orb at start to stop.
func NewOrbMove(start, stop board.Position) OrbMove {
	return OrbMove{start, stop}
}

// IsNoMove reports whether no orb moves.
func (m OrbMove) IsNoMove() bool {
	return m.Start == m.Stop
}

func (m OrbMove) String() string {
	if m.IsNoMove() {
		return "OrbMove(no move)"
	}
	return fmt.Sprintf("OrbMove(%s->%s)", m.Start, m.Stop)
}

// OrbMoveDataSize is the serialized length of an orb move.
const OrbMoveDataSize = board.PositionDataSize * 2

// AppendData appends start and stop, or underscores for the no-move.
func (m OrbMove) AppendData(data []byte) []byte {
	if m.IsNoMove() {
		return append(data, '_', '_', '_', '_')
	}
	data = m.Start.AppendData(data)
	return m.Stop.AppendData(data)
}

// OrbMoveFromData decodes a serialized orb move.
func OrbMoveFromData(data []byte) (OrbMove, error) {
	if len(data) != OrbMoveDataSize {
		return OrbMove{}, fmt.Errorf("orb move: invalid data size %d", len(data))
	}
	return OrbMove{
		Start: board.PositionFromData(data[0:2]),
		Stop:  board.PositionFromData(data[2:4]),
	}, nil
}

// GameMove is one complete turn: the action sequence, an optional regular
// draw (empty stone means none) and an optional orb move.
type GameMove struct {
	Actions    ActionSequence
	DrawnStone board.Stone
	OrbMove    OrbMove
}

// gameMovePrefix versions the wire format.
const gameMovePrefix = "M1:"

// GameMoveDataSize is the serialized length of a game move.
const GameMoveDataSize = len(gameMovePrefix) + SequenceDataSize + board.StoneDataSize + OrbMoveDataSize

var errMovePrefix = errors.New("game move: invalid data prefix")

// IsNoMove reports whether the move carries no actions.
func (m GameMove) IsNoMove() bool {
	return m.Actions.HasNoActions()
}

func (m GameMove) String() string {
	return fmt.Sprintf("GameMove(%s, draw=%s, %s)", m.Actions, m.DrawnStone, m.OrbMove)
}

// Data returns the serialized form.
func (m GameMove) Data() string {
	data := make([]byte, 0, GameMoveDataSize)
	data = append(data, gameMovePrefix...)
	data = m.Actions.AppendData(data)
	data = m.DrawnStone.AppendData(data)
	data = m.OrbMove.AppendData(data)
	return string(data)
}

// GameMoveFromData decodes a serialized game move.
func GameMoveFromData(data string) (GameMove, error) {
	if len(data) != GameMoveDataSize {
		return GameMove{}, fmt.Errorf("game move: invalid data size %d", len(data))
	}
	if data[:len(gameMovePrefix)] != gameMovePrefix {
		return GameMove{}, errMovePrefix
	}
	raw := []byte(data[len(gameMovePrefix):])
	actions, err := SequenceFromData(raw[:SequenceDataSize])
	if err != nil {
		return GameMove{}, err
	}
	drawn := board.StoneFromChar(raw[SequenceDataSize])
	orbMove, err := OrbMoveFromData(raw[SequenceDataSize+1:])
	if err != nil {
		return GameMove{}, err
	}
	return GameMove{Actions: actions, DrawnStone: drawn, OrbMove: orbMove}, nil
}
