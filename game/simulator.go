package game

import (
	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/move"
)

// Agent chooses moves for one seat. NextMove is called from all
// simulation workers and must be safe on the per-thread copy.
type Agent interface {
	// Initialize configures the agent from its command line arguments.
	Initialize(args []string) error
	// ConfigurationString returns a line shown at startup, or "".
	ConfigurationString() string
	// CopyForThread returns the instance a single worker uses. Stateless
	// agents may return themselves.
	CopyForThread() Agent
	// GameStart is called before every game.
	GameStart()
	// NextMove chooses the move for the state, which is rotated so this
	// agent plays the top left corner.
	NextMove(state *State, log *Log) (move.GameMove, error)
	// GameEnd is called with the complete log after every game.
	GameEnd(log *Log)
	// Shutdown releases the agent's resources.
	Shutdown()
}

// PlayerAgents assigns one agent per seat.
type PlayerAgents [board.PlayerCount]Agent

// Result classifies the outcome of a finished simulation.
type Result uint8

const (
	ResultNone Result = iota
	ResultWin
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "Win"
	case ResultDraw:
		return "Draw"
	}
	return "None"
}

// Simulator plays one game of self-play between four agents.
type Simulator struct {
	agents PlayerAgents
	log    Log
}

// NewSimulator creates a simulator for the given seat assignment.
func NewSimulator(agents PlayerAgents) *Simulator {
	return &Simulator{agents: agents}
}

// Log returns the record of the last run.
func (s *Simulator) Log() *Log {
	return &s.log
}

// Run plays one game from the starting state until a player wins or the
// position repeats often enough for a draw. It returns the final state
// rotated back into the original seating.
func (s *Simulator) Run() (State, Result, error) {
	for _, agent := range s.agents {
		agent.GameStart()
	}
	state := NewStartingState()
	currentPlayer := board.Player(0)
	seenStates := make(map[State]struct{})
	loopCount := 0
	turnCount := 0
	result := ResultNone
	for !state.HasWinner() && loopCount < LoopCountForDraw {
		nextMove, err := s.agents[currentPlayer].NextMove(&state, &s.log)
		if err != nil {
			return state, ResultNone, err
		}
		s.log.AddTurn(turnCount, currentPlayer, state, nextMove)
		if err := state.ExecuteMove(nextMove); err != nil {
			return state, ResultNone, err
		}
		turnCount++
		if state.HasWinner() {
			result = ResultWin
			break
		}
		state = state.Rotated(board.Clockwise90)
		currentPlayer = currentPlayer.Next()
		if _, seen := seenStates[state]; seen {
			loopCount++
		}
		seenStates[state] = struct{}{}
	}
	if result == ResultNone && !state.HasWinner() {
		result = ResultDraw
	}
	s.log.AddLastState(turnCount, currentPlayer, state)
	for _, agent := range s.agents {
		agent.GameEnd(&s.log)
	}
	return state.RotatedForPlayer(currentPlayer), result, nil
}
