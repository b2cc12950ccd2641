// Package sqlite provides the SQLite-backed redirect store.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// defaultRetryBudget bounds the read-then-insert retry loop in
// GetOrCreateProxy. Conflicts only occur on a lost creation race or a
// generated-code collision, both of which resolve on re-read.
const defaultRetryBudget = 10

// Store provides SQLite-backed persistence for redirect entries.
type Store struct {
	db          *sql.DB
	logger      *slog.Logger
	retryBudget int
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and creates the redirect
// tables if they are absent.
//
// retryBudget caps the get-or-create conflict retry loop; values <= 0
// select the default.
func Open(path string, retryBudget int, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Small pool; SQLite allows a single writer.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	// Create tables idempotently on first use.
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	if retryBudget <= 0 {
		retryBudget = defaultRetryBudget
	}

	return &Store{
		db:          db,
		logger:      logger,
		retryBudget: retryBudget,
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
