package automatic

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metikumi/metikoro/backend"
	"github.com/metikumi/metikoro/config"
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/move"
)

// passAgent never moves, so every game ends in a repetition draw.
type passAgent struct{}

func (a *passAgent) Initialize(args []string) error { return nil }
func (a *passAgent) ConfigurationString() string    { return "" }
func (a *passAgent) CopyForThread() game.Agent      { return &passAgent{} }
func (a *passAgent) GameStart()                     {}
func (a *passAgent) GameEnd(log *game.Log)          {}
func (a *passAgent) Shutdown()                      {}

func (a *passAgent) NextMove(state *game.State, log *game.Log) (move.GameMove, error) {
	return move.GameMove{OrbMove: move.NoOrbMove()}, nil
}

func testSupervisor(t *testing.T, maximumGames uint64, out *bytes.Buffer) *Supervisor {
	t.Helper()
	cfg := config.New()
	cfg.Threads = 2
	cfg.MaximumGames = maximumGames
	cfg.PlainStatus = true
	store := backend.NewMemory()
	require.NoError(t, store.Load())
	agents := game.PlayerAgents{&passAgent{}, &passAgent{}, &passAgent{}, &passAgent{}}
	return NewSupervisor(cfg, store, agents, out)
}

func TestSupervisorRunsToMaximumGames(t *testing.T) {
	var out bytes.Buffer
	supervisor := testSupervisor(t, 3, &out)
	require.NoError(t, supervisor.Run(context.Background()))
	assert.GreaterOrEqual(t, supervisor.GameCount(), uint64(3))
	assert.Contains(t, out.String(), "games ")
}

func TestSupervisorStopsOnRequest(t *testing.T) {
	var out bytes.Buffer
	supervisor := testSupervisor(t, 0, &out)
	go func() {
		time.Sleep(50 * time.Millisecond)
		supervisor.RequestStop()
	}()
	require.NoError(t, supervisor.Run(context.Background()))
	assert.Greater(t, supervisor.GameCount(), uint64(0))
}

func TestStatusLineBeforeAnyGames(t *testing.T) {
	var out bytes.Buffer
	supervisor := testSupervisor(t, 1, &out)
	supervisor.PrintStatus()
	line := out.String()
	assert.Contains(t, line, "games 0")
	assert.Contains(t, line, "no games yet")
}
