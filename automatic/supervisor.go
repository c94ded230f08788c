// Package automatic runs the self-play simulation: a pool of workers
// that play games in parallel and feed every finished game into the
// backend, with a periodic status display.
package automatic

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/metikumi/metikoro/backend"
	"github.com/metikumi/metikoro/config"
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/rating"
	"github.com/metikumi/metikoro/stats"
)

// rollingWindow is the number of samples the throughput and game length
// averages look back on.
const rollingWindow = 100

// Supervisor owns the worker pool and the simulation statistics.
type Supervisor struct {
	cfg     *config.Config
	backend backend.Backend
	agents  game.PlayerAgents
	out     io.Writer

	stopRequested atomic.Bool

	statMu        sync.Mutex
	gameCount     uint64
	runningRating rating.Game
	gameLength    *stats.RollingAverage
	lengthStat    stats.Statistic
	gamesPerHour  *stats.RollingAverage

	printer *message.Printer
}

// NewSupervisor creates a supervisor writing status output to out.
func NewSupervisor(cfg *config.Config, store backend.Backend, agents game.PlayerAgents, out io.Writer) *Supervisor {
	return &Supervisor{
		cfg:          cfg,
		backend:      store,
		agents:       agents,
		out:          out,
		gameLength:   stats.NewRollingAverage(rollingWindow),
		gamesPerHour: stats.NewRollingAverage(rollingWindow),
		printer:      message.NewPrinter(language.English),
	}
}

// RequestStop asks all workers to finish their current game and stop.
// Safe to call from a signal handler goroutine.
func (s *Supervisor) RequestStop() {
	s.stopRequested.Store(true)
}

// PrintStatus writes one status line on demand.
func (s *Supervisor) PrintStatus() {
	s.writeStatus(false)
}

// GameCount returns the number of finished games.
func (s *Supervisor) GameCount() uint64 {
	s.statMu.Lock()
	defer s.statMu.Unlock()
	return s.gameCount
}

// DisplayConfiguration logs the effective setup before the run starts.
func (s *Supervisor) DisplayConfiguration() {
	log.Info().
		Int("threads", s.cfg.Threads).
		Uint64("maximum_games", s.cfg.MaximumGames).
		Dur("status_update_interval", s.cfg.StatusUpdateInterval).
		Str("system_memory", s.printer.Sprintf("%d MiB", memory.TotalMemory()/(1<<20))).
		Msg("simulation configuration")
	for seat, agent := range s.agents {
		if line := agent.ConfigurationString(); line != "" {
			log.Info().Int("seat", seat).Str("agent", line).Msg("agent configuration")
		}
	}
	s.backend.DisplayConfiguration()
}

// Run plays games on all workers until the maximum game count is
// reached, a stop is requested, or a worker fails.
func (s *Supervisor) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < s.cfg.Threads; i++ {
		agents := s.agents
		for seat := range agents {
			agents[seat] = agents[seat].CopyForThread()
		}
		group.Go(func() error {
			return s.worker(groupCtx, agents)
		})
	}
	statusDone := make(chan struct{})
	var statusWG sync.WaitGroup
	statusWG.Add(1)
	go func() {
		defer statusWG.Done()
		s.statusLoop(statusDone)
	}()
	err := group.Wait()
	close(statusDone)
	statusWG.Wait()
	s.writeStatus(true)
	return err
}

// worker plays games until a stop is requested.
func (s *Supervisor) worker(ctx context.Context, agents game.PlayerAgents) error {
	for !s.stopRequested.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		simulator := game.NewSimulator(agents)
		if _, _, err := simulator.Run(); err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}
		if err := s.backend.AddGame(simulator.Log()); err != nil {
			return fmt.Errorf("storing game failed: %w", err)
		}
		s.addGameStat(simulator.Log())
	}
	return nil
}

// addGameStat folds one finished game into the running statistics and
// stops the run when the configured game count is reached.
func (s *Supervisor) addGameStat(gameLog *game.Log) {
	winner, hasWinner := gameLog.WinningPlayer()
	adjustment := rating.NewManualAdjustment(winner, hasWinner)
	s.statMu.Lock()
	s.gameCount++
	count := s.gameCount
	s.runningRating.ApplyAdjustment(adjustment)
	s.gameLength.Add(float64(gameLog.Size()))
	s.lengthStat.Push(float64(gameLog.Size()))
	s.statMu.Unlock()
	if s.cfg.MaximumGames > 0 && count >= s.cfg.MaximumGames {
		s.stopRequested.Store(true)
	}
}

// statusLoop writes a status line at the configured interval until done
// is closed.
func (s *Supervisor) statusLoop(done <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.StatusUpdateInterval)
	defer ticker.Stop()
	lastCount := uint64(0)
	lastTime := time.Now()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			count := s.GameCount()
			elapsed := now.Sub(lastTime)
			if elapsed > 0 {
				perHour := float64(count-lastCount) / elapsed.Hours()
				s.statMu.Lock()
				s.gamesPerHour.Add(perHour)
				s.statMu.Unlock()
			}
			lastCount = count
			lastTime = now
			s.writeStatus(false)
		}
	}
}

// writeStatus renders one status line. In ANSI mode the line overwrites
// itself; final forces a trailing newline so the shell prompt starts
// clean.
func (s *Supervisor) writeStatus(final bool) {
	line := s.statusLine()
	if s.cfg.PlainStatus {
		fmt.Fprintln(s.out, line)
		return
	}
	if len(line) > s.cfg.ConsoleWidth {
		line = line[:s.cfg.ConsoleWidth]
	}
	fmt.Fprintf(s.out, "\r\x1b[2K%s", line)
	if final {
		fmt.Fprintln(s.out)
	}
}

// statusLine assembles game count, throughput, game length with a 95%
// confidence interval, the outcome rating, and the backend status.
func (s *Supervisor) statusLine() string {
	s.statMu.Lock()
	count := s.gameCount
	perHour := s.gamesPerHour.Average()
	length := s.gameLength.Average()
	lengthError := 0.0
	if s.lengthStat.Iterations() > 1 {
		lengthError = s.lengthStat.StandardError() * stats.ZVal(95)
	}
	ratingLine := "no games yet"
	if count > 0 {
		ratingLine = s.runningRating.String()
	}
	s.statMu.Unlock()
	return s.printer.Sprintf("games %d | %.0f/h | turns %.1f ±%.1f | %s | %s",
		count, perHour, length, lengthError, ratingLine, s.backend.Status())
}
