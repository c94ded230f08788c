package agent

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/frand"

	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/move"
	"github.com/metikumi/metikoro/movegen"
)

// ErrNoChoice is returned when the game offers nothing to select from;
// the rules always leave at least one action and the orb no-move.
var ErrNoChoice = errors.New("no possible choice to select from")

// Random plays uniformly random moves. Each worker gets its own copy
// with an independent generator.
type Random struct {
	seed uint64
	rng  *frand.RNG
}

// NewRandom creates an unseeded random agent.
func NewRandom() *Random {
	return &Random{rng: frand.New()}
}

// Initialize reads the --seed option.
func (a *Random) Initialize(args []string) error {
	for _, arg := range args {
		value, ok := strings.CutPrefix(arg, "--seed=")
		if !ok {
			return fmt.Errorf("unknown random agent option: %s", arg)
		}
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", value, err)
		}
		a.seed = seed
	}
	a.rng = a.newRNG()
	return nil
}

// newRNG derives a generator from the seed; a zero seed uses system
// entropy.
func (a *Random) newRNG() *frand.RNG {
	if a.seed == 0 {
		return frand.New()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], a.seed)
	return frand.NewCustom(key[:], 1024, 12)
}

// ConfigurationString describes the seed choice.
func (a *Random) ConfigurationString() string {
	if a.seed == 0 {
		return "seed = random"
	}
	return fmt.Sprintf("seed = %d", a.seed)
}

// CopyForThread copies the configuration with a fresh generator.
func (a *Random) CopyForThread() game.Agent {
	clone := &Random{seed: a.seed}
	clone.rng = clone.newRNG()
	return clone
}

// GameStart is unused.
func (a *Random) GameStart() {}

// NextMove picks a random action sequence, then a random draw and orb
// move valid after it.
func (a *Random) NextMove(state *game.State, _ *game.Log) (move.GameMove, error) {
	allActions := movegen.AllActionSequences(state)
	actionSequence, err := selectRandom(a.rng, allActions)
	if err != nil {
		return move.GameMove{}, fmt.Errorf("selecting action: %w", err)
	}
	tempState, err := state.AfterActions(actionSequence)
	if err != nil {
		return move.GameMove{}, err
	}
	drawStone, err := selectRandom(a.rng, tempState.AllRegularDraws())
	if err != nil {
		return move.GameMove{}, fmt.Errorf("selecting draw: %w", err)
	}
	allOrbMoves, err := movegen.AllOrbMoves(&tempState)
	if err != nil {
		return move.GameMove{}, err
	}
	orbMove, err := selectRandom(a.rng, allOrbMoves)
	if err != nil {
		return move.GameMove{}, fmt.Errorf("selecting orb move: %w", err)
	}
	return move.GameMove{Actions: actionSequence, DrawnStone: drawStone, OrbMove: orbMove}, nil
}

// GameEnd is unused.
func (a *Random) GameEnd(_ *game.Log) {}

// Shutdown is unused.
func (a *Random) Shutdown() {}

func selectRandom[T any](rng *frand.RNG, elements []T) (T, error) {
	var zero T
	if len(elements) == 0 {
		return zero, ErrNoChoice
	}
	if len(elements) == 1 {
		return elements[0], nil
	}
	return elements[rng.Intn(len(elements))], nil
}

var _ game.Agent = (*Random)(nil)

// NewPlayerAgents fills all four seats with thread copies of one agent.
func NewPlayerAgents(prototype game.Agent) game.PlayerAgents {
	var agents game.PlayerAgents
	for i := 0; i < board.PlayerCount; i++ {
		agents[i] = prototype.CopyForThread()
	}
	return agents
}
