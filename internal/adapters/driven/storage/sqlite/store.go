package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
	"github.com/studykit-labs/studykit-cli/internal/logger"
)

// dbFileName is the store file inside the data directory.
const dbFileName = "local.db"

// Store owns the single physical connection to the on-disk database and
// serialises every logical operation behind one exclusive lock. All
// entity repositories hand out by this store share that lock, so reads
// and writes against any relation are linearizable with respect to each
// other.
type Store struct {
	db    *sql.DB
	mu    sync.Mutex
	path  string
	clock driven.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used to stamp sync transitions.
// Tests inject a fixed clock here.
func WithClock(c driven.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// systemClock reads the real wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewStore opens (creating if necessary) the database under dataDir and
// migrates it to the current schema version. If dataDir is empty,
// defaults to ~/.studykit/data. Any failure here is fatal to startup:
// the caller must not proceed with a store that did not open and
// migrate cleanly.
func NewStore(dataDir string, opts ...Option) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: getting home directory: %v", domain.ErrPath, err)
		}
		dataDir = filepath.Join(home, ".studykit", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", domain.ErrPath, err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL for read/write concurrency and crash safety; busy timeout so
	// a second process blocks instead of failing immediately.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Foreign keys drive the parent/child cascade deletes.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// One handle, one operation at a time. The mutex in withConn guards
	// multi-statement operations; this keeps the driver honest too.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:    db,
		path:  dbPath,
		clock: systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// withConn hands fn exclusive access to the handle for the duration of
// one logical operation. The lock is released on every exit path,
// including panics inside fn.
func (s *Store) withConn(fn func(db *sql.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.db)
}

// migrate brings the store file up to schemaVersion. Safe to call on
// every start: an already-current store is a no-op, and a partially
// migrated store can be retried because every schema statement is
// re-runnable. All statements and the version write run in one
// transaction; any failure rolls the batch back and aborts startup.
func (s *Store) migrate() error {
	return s.withConn(func(db *sql.DB) error {
		current, err := storedVersion(db)
		if err != nil {
			return err
		}
		if current >= schemaVersion {
			logger.Debug("store already at version %d", current)
			return nil
		}

		logger.Section("Store Migration")
		logger.Info("migrating store: version %d -> %d", current, schemaVersion)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck

		for _, schema := range allSchemas {
			if _, err := tx.Exec(schema); err != nil {
				return fmt.Errorf("applying schema: %w", mapError(err))
			}
		}

		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO _metadata (key, value) VALUES ('db_version', ?)",
			strconv.Itoa(schemaVersion),
		); err != nil {
			return fmt.Errorf("writing store version: %w", mapError(err))
		}

		return tx.Commit()
	})
}

// storedVersion reads the persisted store version. An absent metadata
// relation, or an absent or unparsable db_version row, means version 0.
func storedVersion(db *sql.DB) (int, error) {
	var exists bool
	err := db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type='table' AND name='_metadata')",
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("checking metadata table: %w", err)
	}
	if !exists {
		return 0, nil
	}

	var value string
	err = db.QueryRow("SELECT value FROM _metadata WHERE key = 'db_version'").Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading store version: %w", err)
	}

	version, err := strconv.Atoi(value)
	if err != nil {
		return 0, nil
	}
	return version, nil
}

// Notes returns the note repository backed by this store.
func (s *Store) Notes() driven.NoteStore {
	return &entityStore[domain.Note, domain.NotePatch]{store: s, tbl: noteTable}
}

// Pages returns the page repository backed by this store.
func (s *Store) Pages() driven.PageStore {
	return &entityStore[domain.Page, domain.PagePatch]{store: s, tbl: pageTable}
}

// Decks returns the deck repository backed by this store.
func (s *Store) Decks() driven.DeckStore {
	return &entityStore[domain.Deck, domain.DeckPatch]{store: s, tbl: deckTable}
}

// Cards returns the card repository backed by this store.
func (s *Store) Cards() driven.CardStore {
	return &cardStore{&entityStore[domain.Card, domain.CardPatch]{store: s, tbl: cardTable}}
}

// StudyGoals returns the study goal repository backed by this store.
func (s *Store) StudyGoals() driven.StudyGoalStore {
	return &entityStore[domain.StudyGoal, domain.StudyGoalPatch]{store: s, tbl: studyGoalTable}
}

// Milestones returns the milestone repository backed by this store.
func (s *Store) Milestones() driven.MilestoneStore {
	return &entityStore[domain.Milestone, domain.MilestonePatch]{store: s, tbl: milestoneTable}
}

// LearningLogs returns the learning log repository backed by this store.
func (s *Store) LearningLogs() driven.LearningLogStore {
	return &entityStore[domain.LearningLog, domain.LearningLogPatch]{store: s, tbl: learningLogTable}
}

// UserSettings returns the settings repository backed by this store.
func (s *Store) UserSettings() driven.UserSettingsStore {
	return &entityStore[domain.UserSettings, domain.UserSettingsPatch]{store: s, tbl: userSettingsTable}
}
