package backend

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/metikumi/metikoro/board"
	"github.com/metikumi/metikoro/game"
	"github.com/metikumi/metikoro/rating"
)

const sqliteHelp = `  --data-dir=<path>, -d=<path>      Path to the data directory
  --cache-size=<pages>              The size of the cache in pages.
  --journal-mode=<mode>             Set the journal mode for the db.
  --page-size=<bytes>               The size for a page.
  --synchronous-mode=<mode>         The synchronous mode.
  --maximum-update-queue-size=<n>   The maximum number of update lists in the queue.
  --fast-unsafe                     Set mode to WAL, sync OFF, cache 256k pages.
  --vacuum                          Execute VACUUM before starting.`

const (
	defaultQueueSize  = 50
	pushPollInterval  = 100 * time.Millisecond
	drainTimeout      = 10 * time.Second
	drainPollInterval = time.Second
)

// stateUpdate is the rating delta of one logged turn. The move and
// successor fields are empty on the trailing state entry.
type stateUpdate struct {
	stateData     string
	adjustment    rating.Adjustment
	moveData      string
	nextStateData string
}

// updateBatch carries the updates of one finished game; it is applied in
// a single transaction.
type updateBatch []stateUpdate

// SQLite stores rated states in a games.db file. Workers enqueue update
// batches with back-pressure; a single writer goroutine owns all
// database I/O.
type SQLite struct {
	dataDir          string
	maximumQueueSize int
	cacheSize        *int64
	journalMode      string
	pageSize         *int
	synchronousMode  string
	executeVacuum    bool

	db          *sql.DB
	queue       chan updateBatch
	stopped     chan struct{}
	stopping    atomic.Bool
	writerGroup sync.WaitGroup
	writerErr   atomic.Pointer[error]
}

// NewSQLite creates an unconfigured SQLite backend.
func NewSQLite() *SQLite {
	return &SQLite{maximumQueueSize: defaultQueueSize, stopped: make(chan struct{})}
}

var (
	validJournalModes     = []string{"WAL", "DELETE", "TRUNCATE", "OFF"}
	validSynchronousModes = []string{"OFF", "NORMAL", "FULL", "EXTRA"}
)

// Initialize parses the backend options.
func (s *SQLite) Initialize(args []string) error {
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--data-dir="), strings.HasPrefix(arg, "-d="):
			s.dataDir = arg[strings.IndexByte(arg, '=')+1:]
		case strings.HasPrefix(arg, "--cache-size="):
			size, err := strconv.ParseInt(arg[len("--cache-size="):], 10, 64)
			if err != nil || size < -1_000_000 || size > 1_000_000 {
				return fmt.Errorf("invalid cache size: %s", arg[len("--cache-size="):])
			}
			s.cacheSize = &size
		case strings.HasPrefix(arg, "--journal-mode="):
			mode := arg[len("--journal-mode="):]
			if !containsString(validJournalModes, mode) {
				return fmt.Errorf("invalid journal mode: %s", mode)
			}
			s.journalMode = mode
		case strings.HasPrefix(arg, "--page-size="):
			size, err := strconv.Atoi(arg[len("--page-size="):])
			if err != nil || size < 1024 || size > 1048576 {
				return fmt.Errorf("invalid page size: %s", arg[len("--page-size="):])
			}
			s.pageSize = &size
		case strings.HasPrefix(arg, "--synchronous-mode="):
			mode := arg[len("--synchronous-mode="):]
			if !containsString(validSynchronousModes, mode) {
				return fmt.Errorf("invalid synchronous mode: %s", mode)
			}
			s.synchronousMode = mode
		case strings.HasPrefix(arg, "--maximum-update-queue-size="):
			size, err := strconv.Atoi(arg[len("--maximum-update-queue-size="):])
			if err != nil || size < 1 || size > 10000 {
				return fmt.Errorf("invalid maximum update queue size: %s", arg[len("--maximum-update-queue-size="):])
			}
			s.maximumQueueSize = size
		case arg == "--fast-unsafe":
			cacheSize := int64(262_144)
			s.cacheSize = &cacheSize
			s.journalMode = "WAL"
			s.synchronousMode = "OFF"
		case arg == "--vacuum":
			s.executeVacuum = true
		default:
			return fmt.Errorf("unknown sqlite backend option: %s", arg)
		}
	}
	if s.dataDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		s.dataDir = wd
	}
	if _, err := os.Stat(s.dataDir); err != nil {
		return fmt.Errorf("data directory does not exist: %s", s.dataDir)
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}

// DisplayConfiguration logs the effective options.
func (s *SQLite) DisplayConfiguration() {
	log.Info().Str("data-dir", s.dataDir).Msg("sqlite configuration")
	if s.cacheSize != nil {
		log.Info().Int64("cache-size", *s.cacheSize).Msg("sqlite configuration")
	}
	if s.journalMode != "" {
		log.Info().Str("journal-mode", s.journalMode).Msg("sqlite configuration")
	}
	if s.pageSize != nil {
		log.Info().Int("page-size", *s.pageSize).Msg("sqlite configuration")
	}
	if s.synchronousMode != "" {
		log.Info().Str("synchronous-mode", s.synchronousMode).Msg("sqlite configuration")
	}
	log.Info().Int("maximum-update-queue-size", s.maximumQueueSize).Msg("sqlite configuration")
}

// Load opens the database, tunes it and starts the writer goroutine.
func (s *SQLite) Load() error {
	path := filepath.Join(s.dataDir, "games.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("could not open database %q: %w", path, err)
	}
	// The writer goroutine owns all I/O; one connection keeps the
	// prepared statements and pragmas on it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	s.db = db
	if err := s.adjustPragmas(); err != nil {
		_ = db.Close()
		return err
	}
	if s.executeVacuum {
		log.Warn().Msg("sqlite: vacuuming database")
		if _, err := db.Exec("VACUUM"); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to vacuum database: %w", err)
		}
	}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return err
	}
	s.queue = make(chan updateBatch, s.maximumQueueSize)
	s.writerGroup.Add(1)
	go s.databaseUpdateLoop()
	log.Info().Str("path", path).Msg("sqlite: processing database updates")
	return nil
}

func (s *SQLite) adjustPragmas() error {
	pragmas := [][2]string{{"busy_timeout", "5000"}}
	if s.cacheSize != nil {
		pragmas = append(pragmas, [2]string{"cache_size", strconv.FormatInt(*s.cacheSize, 10)})
	}
	if s.journalMode != "" {
		pragmas = append(pragmas, [2]string{"journal_mode", s.journalMode})
	}
	if s.pageSize != nil {
		pragmas = append(pragmas, [2]string{"page_size", strconv.Itoa(*s.pageSize)})
	}
	if s.synchronousMode != "" {
		pragmas = append(pragmas, [2]string{"synchronous", s.synchronousMode})
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA %s = %s;", pragma[0], pragma[1])); err != nil {
			return fmt.Errorf("failed to set pragma %s: %w", pragma[0], err)
		}
	}
	return nil
}

func (s *SQLite) createSchema() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS game_state (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			state_data TEXT NOT NULL,
			game_count INTEGER,
			draws REAL,
			player0_combined REAL, player0_win REAL, player0_loss REAL,
			player1_combined REAL, player1_win REAL, player1_loss REAL,
			player2_combined REAL, player2_win REAL, player2_loss REAL,
			player3_combined REAL, player3_win REAL, player3_loss REAL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_game_state_data ON game_state (state_data);
		CREATE TABLE IF NOT EXISTS game_move (
			state_id INTEGER NOT NULL,
			next_move_data TEXT NOT NULL,
			next_state_id INTEGER NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_game_move_id_data ON game_move (state_id, next_move_data);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create initial database schema: %w", err)
	}
	return nil
}

const updateStateSQL = `
	INSERT INTO game_state (
		state_data, game_count, draws,
		player0_combined, player0_win, player0_loss,
		player1_combined, player1_win, player1_loss,
		player2_combined, player2_win, player2_loss,
		player3_combined, player3_win, player3_loss)
	VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (state_data)
	DO UPDATE SET
		game_count = game_count + 1,
		draws = draws + excluded.draws,
		player0_combined = player0_combined + excluded.player0_combined,
		player0_win = player0_win + excluded.player0_win,
		player0_loss = player0_loss + excluded.player0_loss,
		player1_combined = player1_combined + excluded.player1_combined,
		player1_win = player1_win + excluded.player1_win,
		player1_loss = player1_loss + excluded.player1_loss,
		player2_combined = player2_combined + excluded.player2_combined,
		player2_win = player2_win + excluded.player2_win,
		player2_loss = player2_loss + excluded.player2_loss,
		player3_combined = player3_combined + excluded.player3_combined,
		player3_win = player3_win + excluded.player3_win,
		player3_loss = player3_loss + excluded.player3_loss;`

const insertMoveSQL = `
	INSERT OR IGNORE INTO game_move (state_id, next_move_data, next_state_id)
	SELECT a.id, ?, b.id
	FROM game_state a, game_state b
	WHERE a.state_data = ? AND b.state_data = ?;`

// AddGame enqueues the update batch of one finished game, blocking while
// the queue is at capacity.
func (s *SQLite) AddGame(gameLog *game.Log) error {
	if gameLog.IsEmpty() {
		return nil
	}
	adjustments := rating.AdjustmentsForLog(gameLog)
	turns := gameLog.Turns()
	batch := make(updateBatch, 0, len(turns))
	for i, turn := range turns {
		update := stateUpdate{
			stateData:  turn.State.Data(),
			adjustment: adjustments[i],
		}
		if i+1 < len(turns) {
			update.moveData = turn.Move.Data()
			update.nextStateData = turns[i+1].State.Data()
		}
		batch = append(batch, update)
	}
	for {
		if s.stopping.Load() {
			return nil
		}
		select {
		case s.queue <- batch:
			return nil
		case <-time.After(pushPollInterval):
		}
	}
}

// Status reports the queue fill level.
func (s *SQLite) Status() string {
	if s.queue == nil {
		return "OK"
	}
	return fmt.Sprintf("OK: %3d/%3d updates in queue.", len(s.queue), s.maximumQueueSize)
}

// Shutdown drains the queue for up to ten seconds, stops the writer and
// closes the database.
func (s *SQLite) Shutdown() error {
	if s.db == nil {
		return nil
	}
	log.Warn().Msg("sqlite: shutdown request received, waiting for queue")
	deadline := time.Now().Add(drainTimeout)
	for len(s.queue) > 0 && s.writerErr.Load() == nil && time.Now().Before(deadline) {
		log.Warn().
			Int("updates", len(s.queue)).
			Dur("remaining", time.Until(deadline)).
			Msg("sqlite: waiting for queue to drain")
		time.Sleep(drainPollInterval)
	}
	s.stopping.Store(true)
	close(s.stopped)
	s.writerGroup.Wait()
	err := s.db.Close()
	if errPtr := s.writerErr.Load(); errPtr != nil {
		err = errors.Join(*errPtr, err)
	}
	log.Info().Msg("sqlite: stopped")
	return err
}

// databaseUpdateLoop drains the queue until shutdown or the first
// failed batch. A failed batch stops the writer; producers then drop
// their games instead of queueing against a dead consumer.
func (s *SQLite) databaseUpdateLoop() {
	defer s.writerGroup.Done()
	for {
		select {
		case batch := <-s.queue:
			if err := s.writeBatch(batch); err != nil {
				log.Error().Err(err).Msg("sqlite: batch update failed, stopping writer")
				s.writerErr.Store(&err)
				s.stopping.Store(true)
				return
			}
		case <-s.stopped:
			return
		}
	}
}

// writeBatch applies one game's updates in a single transaction,
// retrying when the database is busy.
func (s *SQLite) writeBatch(batch updateBatch) error {
	return retry.Do(
		func() error {
			tx, err := s.db.Begin()
			if err != nil {
				return fmt.Errorf("failed to begin transaction: %w", err)
			}
			stmt, err := tx.Prepare(updateStateSQL)
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to prepare update statement: %w", err)
			}
			for _, update := range batch {
				args := make([]any, 0, 2+board.PlayerCount*3)
				args = append(args, update.stateData, update.adjustment.Draws)
				for _, player := range update.adjustment.Players {
					args = append(args, player.Combined, player.Win, player.Loss)
				}
				if _, err := stmt.Exec(args...); err != nil {
					_ = stmt.Close()
					_ = tx.Rollback()
					return fmt.Errorf("failed to execute update statement: %w", err)
				}
			}
			if err := stmt.Close(); err != nil {
				_ = tx.Rollback()
				return err
			}
			moveStmt, err := tx.Prepare(insertMoveSQL)
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to prepare move statement: %w", err)
			}
			for _, update := range batch {
				if update.moveData == "" {
					continue
				}
				if _, err := moveStmt.Exec(update.moveData, update.stateData, update.nextStateData); err != nil {
					_ = moveStmt.Close()
					_ = tx.Rollback()
					return fmt.Errorf("failed to execute move statement: %w", err)
				}
			}
			if err := moveStmt.Close(); err != nil {
				_ = tx.Rollback()
				return err
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit transaction: %w", err)
			}
			return nil
		},
		retry.Attempts(5),
		retry.Delay(50*time.Millisecond),
		retry.RetryIf(func(err error) bool {
			return strings.Contains(err.Error(), "busy") || strings.Contains(err.Error(), "locked")
		}),
	)
}
