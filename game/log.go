package game

import (
	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/move"
)

// usualMaxTurns sizes the log's initial allocation.
const usualMaxTurns = 256

// Turn is one logged turn: the state the active player saw, rotated so
// that seat sits top left, and the move they chose. A no-move marks the
// final state entry.
type Turn struct {
	Turn         int
	ActivePlayer board.Player
	State        State
	Move         move.GameMove
}

// Log records a complete game, turn by turn.
type Log struct {
	turns []Turn
}

// Turns returns the logged turns in order.
func (l *Log) Turns() []Turn {
	return l.turns
}

// Size returns the number of logged turns.
func (l *Log) Size() int {
	return len(l.turns)
}

// IsEmpty reports whether nothing was logged yet.
func (l *Log) IsEmpty() bool {
	return len(l.turns) == 0
}

// AddTurn appends one played turn.
func (l *Log) AddTurn(turn int, player board.Player, state State, gameMove move.GameMove) {
	if l.turns == nil {
		l.turns = make([]Turn, 0, usualMaxTurns)
	}
	l.turns = append(l.turns, Turn{Turn: turn, ActivePlayer: player, State: state, Move: gameMove})
}

// AddLastState appends the final state with no move attached.
func (l *Log) AddLastState(turn int, player board.Player, state State) {
	l.turns = append(l.turns, Turn{Turn: turn, ActivePlayer: player, State: state})
}

// WinningPlayer resolves the winner in the unrotated seating. The final
// state is rotated to the last active player's viewpoint, so the winning
// seat is offset by the player who executed the winning move.
func (l *Log) WinningPlayer() (board.Player, bool) {
	if len(l.turns) < 2 {
		return 0, false
	}
	lastState := &l.turns[len(l.turns)-1].State
	winner, ok := lastState.WinningPlayer()
	if !ok {
		return 0, false
	}
	executedBy := l.turns[len(l.turns)-2].ActivePlayer
	return executedBy.OffsetWith(winner), true
}
