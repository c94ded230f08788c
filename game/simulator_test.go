package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/metikumi/metikoro/move"
)

// passAgent always submits the empty move.
type passAgent struct{}

func (passAgent) Initialize([]string) error   { return nil }
func (passAgent) ConfigurationString() string { return "" }
func (a passAgent) CopyForThread() Agent      { return a }
func (passAgent) GameStart()                  {}
func (passAgent) GameEnd(*Log)                {}
func (passAgent) Shutdown()                   {}
func (passAgent) NextMove(*State, *Log) (move.GameMove, error) {
	return move.GameMove{OrbMove: move.NoOrbMove()}, nil
}

type failingAgent struct {
	passAgent
	err error
}

func (a failingAgent) CopyForThread() Agent { return a }

func (a failingAgent) NextMove(*State, *Log) (move.GameMove, error) {
	return move.GameMove{}, a.err
}

func TestSimulatorEndsInDrawOnRepetition(t *testing.T) {
	is := is.New(t)
	simulator := NewSimulator(PlayerAgents{passAgent{}, passAgent{}, passAgent{}, passAgent{}})
	finalState, result, err := simulator.Run()
	is.NoErr(err)
	is.Equal(result, ResultDraw)
	is.True(!finalState.HasWinner())

	log := simulator.Log()
	is.True(log.Size() > LoopCountForDraw)
	_, ok := log.WinningPlayer()
	is.True(!ok)
	// The last entry carries the final state with no move attached.
	last := log.Turns()[log.Size()-1]
	is.True(last.Move.IsNoMove())
}

func TestSimulatorPropagatesAgentErrors(t *testing.T) {
	is := is.New(t)
	sentinel := errors.New("agent gave up")
	agent := failingAgent{err: sentinel}
	simulator := NewSimulator(PlayerAgents{agent, agent, agent, agent})
	_, result, err := simulator.Run()
	is.Equal(err, sentinel)
	is.Equal(result, ResultNone)
}

func TestResultString(t *testing.T) {
	is := is.New(t)
	is.Equal(ResultWin.String(), "Win")
	is.Equal(ResultDraw.String(), "Draw")
	is.Equal(ResultNone.String(), "None")
}
