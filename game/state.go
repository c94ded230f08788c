package game

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/move"
)

var (
	// ErrStoneNotInResource is returned when drawing a stone the resource
	// pool does not hold.
	ErrStoneNotInResource = errors.New("stone not available in the resource pool")
	// ErrInvalidPlacement is returned when a placement targets an occupied
	// or forbidden cell.
	ErrInvalidPlacement = errors.New("cannot place a stone on this position")
	// ErrInvalidReplacement is returned when a replacement would not change
	// the situation or targets a locked cell.
	ErrInvalidReplacement = errors.New("cannot replace the stone on this position")
	// ErrInvalidRotation is returned when a rotation would not change the
	// situation or the action names a stone.
	ErrInvalidRotation = errors.New("cannot rotate the stone on this position")
	// ErrOrbFromHouse is returned when an orb move would leave a house.
	ErrOrbFromHouse = errors.New("cannot move an orb out of a house")
	// ErrOrbToSource is returned when an orb move would enter the source.
	ErrOrbToSource = errors.New("cannot move an orb back to the source")
	// ErrOrbTargetNoStop is returned when an orb move ends on a field
	// without a stop.
	ErrOrbTargetNoStop = errors.New("orb target field has no stop")
	// ErrOrbKoLock is returned when an orb move reverses its previous move.
	ErrOrbKoLock = errors.New("orb move blocked by ko lock")
	// ErrNoOrbMove is returned when applying the explicit no-move.
	ErrNoOrbMove = errors.New("tried to apply the orb no-move")
)

// State is the complete game situation from the viewpoint of the active
// player. States are plain values and compare with ==.
type State struct {
	Board        board.Board
	ActionPools  ActionPools
	OrbPositions OrbPositions
	ResourcePool ResourcePool
}

// NewStartingState deals the starting hands from the seeded resource pool
// and places one orb on every source cell.
func NewStartingState() State {
	state := State{OrbPositions: newEmptyOrbPositions()}
	for _, sc := range resourcePoolStones {
		_ = state.ResourcePool.Add(sc.stone, sc.count)
	}
	for player := 0; player < board.PlayerCount; player++ {
		for _, sc := range actionPoolStones {
			for i := uint8(0); i < sc.count; i++ {
				if err := state.moveStoneToPlayer(sc.stone, board.Player(player)); err != nil {
					panic(err)
				}
			}
		}
	}
	for _, pos := range board.SourceOrbPositions() {
		if err := state.OrbPositions.MoveOrb(board.InvalidPosition(), pos); err != nil {
			panic(err)
		}
	}
	return state
}

func newEmptyOrbPositions() OrbPositions {
	var result OrbPositions
	for i := range result {
		result[i] = NewOrbPosition()
	}
	return result
}

func (s *State) moveStoneToPlayer(stone board.Stone, player board.Player) error {
	if !s.ResourcePool.Has(stone, 1) {
		return ErrStoneNotInResource
	}
	if s.ActionPools[player].IsFull() {
		return ErrPoolFull
	}
	if err := s.ResourcePool.Take(stone, 1); err != nil {
		return err
	}
	return s.ActionPools[player].Add(stone)
}

// OrbsInHouse counts the scored orbs per player.
func (s *State) OrbsInHouse() [board.PlayerCount]uint8 {
	var result [board.PlayerCount]uint8
	for player := 0; player < board.PlayerCount; player++ {
		for _, pos := range board.HouseOrbPositions(board.Player(player)) {
			if s.OrbPositions.IsOrbAt(pos) {
				result[player]++
			}
		}
	}
	return result
}

// HasWinner reports whether any player scored enough orbs.
func (s *State) HasWinner() bool {
	for _, count := range s.OrbsInHouse() {
		if count >= OrbCountToWin {
			return true
		}
	}
	return false
}

// WinningPlayer returns the winner, if any.
func (s *State) WinningPlayer() (board.Player, bool) {
	for player, count := range s.OrbsInHouse() {
		if count >= OrbCountToWin {
			return board.Player(player), true
		}
	}
	return 0, false
}

// NextTurn counts down the ko locks on fields and orbs.
func (s *State) NextTurn() {
	s.Board.NextTurn()
	s.OrbPositions.NextTurn()
}

// ExecuteMove advances the state by one complete turn of the active
// player.
func (s *State) ExecuteMove(m move.GameMove) error {
	s.NextTurn()
	if err := s.ApplyActions(m.Actions); err != nil {
		return err
	}
	if !m.DrawnStone.IsEmpty() {
		if err := s.moveStoneToPlayer(m.DrawnStone, 0); err != nil {
			return err
		}
	}
	if !m.OrbMove.IsNoMove() {
		if err := s.ApplyOrbMove(m.OrbMove); err != nil {
			return err
		}
	}
	return nil
}

// ApplyActions applies an action sequence in order.
func (s *State) ApplyActions(actions move.ActionSequence) error {
	for _, action := range actions {
		if action.IsNone() {
			continue
		}
		if err := s.ApplyAction(action); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAction applies one pool action.
func (s *State) ApplyAction(action move.Action) error {
	switch action.Type {
	case move.PlaceStone:
		return s.applyPlace(action)
	case move.ReplaceStone:
		return s.applyReplace(action)
	case move.RotateStone:
		return s.applyRotate(action)
	case move.DrawStone:
		return s.applyDraw(action)
	}
	return nil
}

func (s *State) applyPlace(action move.Action) error {
	pool := s.ActionPools.Active()
	if !pool.HasStone(action.ActionStone) {
		return ErrStoneNotInPool
	}
	if !s.Board.CanPlayerPlaceStone(action.Position) {
		return ErrInvalidPlacement
	}
	if err := s.Board.SetField(action.Position, action.ActionStone, action.Orientation); err != nil {
		return err
	}
	return pool.Take(action.ActionStone)
}

func (s *State) applyReplace(action move.Action) error {
	pool := s.ActionPools.Active()
	if !pool.HasStones(action.ActionStone, action.DroppedStone) {
		return ErrStoneNotInPool
	}
	if !s.Board.CanPlayerReplaceStone(action.Position, action.ActionStone, action.Orientation) {
		return ErrInvalidReplacement
	}
	if err := s.ResourcePool.Add(s.Board.FieldAt(action.Position).Stone(), 1); err != nil {
		return err
	}
	if err := pool.Take(action.ActionStone); err != nil {
		return err
	}
	if err := s.Board.SetField(action.Position, action.ActionStone, action.Orientation); err != nil {
		return err
	}
	if err := pool.Take(action.DroppedStone); err != nil {
		return err
	}
	return s.ResourcePool.Add(action.DroppedStone, 1)
}

func (s *State) applyRotate(action move.Action) error {
	pool := s.ActionPools.Active()
	if pool.IsEmpty() || !pool.HasStone(action.DroppedStone) {
		return ErrStoneNotInPool
	}
	if !action.ActionStone.IsEmpty() {
		return ErrInvalidRotation
	}
	if !s.Board.CanPlayerRotateStone(action.Position, action.Orientation) {
		return ErrInvalidRotation
	}
	if err := s.Board.SetNewOrientation(action.Position, action.Orientation); err != nil {
		return err
	}
	if err := pool.Take(action.DroppedStone); err != nil {
		return err
	}
	return s.ResourcePool.Add(action.DroppedStone, 1)
}

func (s *State) applyDraw(action move.Action) error {
	pool := s.ActionPools.Active()
	if pool.IsFull() {
		return ErrPoolFull
	}
	if !s.ResourcePool.Has(action.ActionStone, 1) {
		return ErrStoneNotInResource
	}
	if err := s.ResourcePool.Take(action.ActionStone, 1); err != nil {
		return err
	}
	return pool.Add(action.ActionStone)
}

// ApplyOrbMove moves one orb along its track, spawning a spare orb at a
// vacated source cell.
func (s *State) ApplyOrbMove(m move.OrbMove) error {
	if m.IsNoMove() {
		return ErrNoOrbMove
	}
	if !m.Start.IsOnBoard() || !m.Stop.IsOnBoard() {
		return ErrInvalidOrbTarget
	}
	oldIsSource := board.IsSource(m.Start)
	newIsSource := board.IsSource(m.Stop)
	if board.IsHouse(m.Start) && !board.IsHouse(m.Stop) {
		return ErrOrbFromHouse
	}
	if !oldIsSource && newIsSource {
		return ErrOrbToSource
	}
	if !s.Board.FieldAt(m.Stop).HasStop() {
		return ErrOrbTargetNoStop
	}
	if !s.OrbPositions.IsOrbAt(m.Start) {
		return ErrNoOrbAtPosition
	}
	if s.OrbPositions.IsOrbAt(m.Stop) {
		return ErrOrbAtTarget
	}
	if s.OrbPositions.KoPosition(m.Start) == m.Stop {
		return ErrOrbKoLock
	}
	if err := s.OrbPositions.MoveOrb(m.Start, m.Stop); err != nil {
		return err
	}
	if oldIsSource && !newIsSource && s.OrbPositions.HasSpare() {
		return s.OrbPositions.MoveOrb(board.InvalidPosition(), m.Start)
	}
	return nil
}

// AfterActions returns a copy with the action sequence applied.
func (s State) AfterActions(actions move.ActionSequence) (State, error) {
	err := s.ApplyActions(actions)
	return s, err
}

// AfterMove returns a copy with the move executed.
func (s State) AfterMove(m move.GameMove) (State, error) {
	err := s.ExecuteMove(m)
	return s, err
}

// AllRegularDraws lists the stones the end-of-turn draw may take. Apply
// the chosen actions first.
func (s *State) AllRegularDraws() []board.Stone {
	if s.ActionPools.Active().IsFull() {
		return nil
	}
	return s.ResourcePool.AllRegularDraws()
}

// Rotated rotates the whole state by a quarter turn; the resource pool
// has no orientation.
func (s State) Rotated(r board.Rotation) State {
	return State{
		Board:        s.Board.Rotated(r),
		ActionPools:  s.ActionPools.Rotated(r),
		OrbPositions: s.OrbPositions.Rotated(r),
		ResourcePool: s.ResourcePool,
	}
}

// RotatedForPlayer rotates the state so that the given seat plays the top
// left corner.
func (s State) RotatedForPlayer(player board.Player) State {
	switch player {
	case 1:
		return s.Rotated(board.Clockwise270)
	case 2:
		return s.Rotated(board.Clockwise180)
	case 3:
		return s.Rotated(board.Clockwise90)
	}
	return s
}

// statePrefix versions the wire format.
const statePrefix = "S1:"

// StateDataSize is the serialized length of a state.
const StateDataSize = len(statePrefix) + board.BoardDataSize + ActionPoolsDataSize +
	OrbPositionsDataSize + ResourcePoolDataSize

var errStatePrefix = errors.New("game state: invalid data prefix")

// Data returns the serialized form.
func (s *State) Data() string {
	data := make([]byte, 0, StateDataSize)
	data = append(data, statePrefix...)
	data = s.Board.AppendData(data)
	data = s.ActionPools.AppendData(data)
	data = s.OrbPositions.AppendData(data)
	data = s.ResourcePool.AppendData(data)
	return string(data)
}

// Hash returns a stable 64-bit digest of the serialized state.
func (s *State) Hash() uint64 {
	return xxhash.Sum64String(s.Data())
}

// StateFromData decodes a serialized state.
func StateFromData(data string) (State, error) {
	if len(data) != StateDataSize {
		return State{}, fmt.Errorf("game state: invalid data size %d", len(data))
	}
	if data[:len(statePrefix)] != statePrefix {
		return State{}, errStatePrefix
	}
	raw := []byte(data[len(statePrefix):])
	b, err := board.BoardFromData(raw[:board.BoardDataSize])
	if err != nil {
		return State{}, err
	}
	raw = raw[board.BoardDataSize:]
	pools, err := ActionPoolsFromData(raw[:ActionPoolsDataSize])
	if err != nil {
		return State{}, err
	}
	raw = raw[ActionPoolsDataSize:]
	orbs, err := OrbPositionsFromData(raw[:OrbPositionsDataSize])
	if err != nil {
		return State{}, err
	}
	raw = raw[OrbPositionsDataSize:]
	resource, err := ResourcePoolFromData(raw)
	if err != nil {
		return State{}, err
	}
	return State{Board: b, ActionPools: pools, OrbPositions: orbs, ResourcePool: resource}, nil
}
