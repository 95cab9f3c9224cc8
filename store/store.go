package store

import (
	"database/sql"
	"os"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

// MemoryPath selects SQLite's in-memory mode instead of a database file.
const MemoryPath = ":memory:"

// Default backing store used when the config leaves the fields empty.
const (
	DefaultDriver = "sqlite3"
	DefaultPath   = "test.db"
)

// Config selects the SQLite driver and the location of the backing store.
// Two drivers are registered: "sqlite3" (cgo) and "sqlite" (pure Go), so the
// same scenarios can be compared across both engines.
type Config struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	JournalMemory bool   `yaml:"journalMemory"`
}

// Session owns the single connection to one SQLite database. It is created
// at the start of a scenario and closed at its end, so every scenario starts
// from a fresh, comparably-sized store. Sessions are not safe for concurrent
// use; the harness runs scenarios strictly sequentially.
type Session struct {
	db  *sql.DB
	cfg Config
}

// Open discards any previous database file at the configured path, then
// establishes the connection. Removing the old file prevents file growth
// from earlier runs from skewing the measurements.
func Open(cfg Config) (*Session, error) {
	if cfg.Driver == "" {
		cfg.Driver = DefaultDriver
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}

	if cfg.Path != MemoryPath {
		if err := os.Remove(cfg.Path); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "removing previous database '%s'", cfg.Path)
		}
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening '%s' database", cfg.Driver)
	}

	// A single connection only. database/sql hands each pooled connection its
	// own :memory: database, and a scenario's BEGIN/COMMIT scope must stay on
	// the connection that opened it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to '%s'", cfg.Path)
	}

	zlog.Debug().Str("driver", cfg.Driver).Str("path", cfg.Path).Msg("Database opened")
	return &Session{db: db, cfg: cfg}, nil
}

// Exec runs a single statement synchronously.
func (s *Session) Exec(query string, args ...any) error {
	if _, err := s.db.Exec(query, args...); err != nil {
		return errors.Wrapf(err, "exec '%s'", query)
	}
	return nil
}

// Begin starts a transaction on the session's connection.
func (s *Session) Begin() (*sql.Tx, error) {
	tx, err := s.db.Begin()
	return tx, errors.Wrap(err, "begin transaction")
}

// DB exposes the underlying handle for queries and prepared statements.
func (s *Session) DB() *sql.DB {
	return s.db
}

// InMemory reports whether the session runs against SQLite's memory mode.
func (s *Session) InMemory() bool {
	return s.cfg.Path == MemoryPath
}

// Close releases the connection. All statements must be closed first; the
// strategies defer their statement closes for that reason.
func (s *Session) Close() error {
	return errors.Wrap(s.db.Close(), "closing database")
}
