// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"

	_ "modernc.org/sqlite" // SQLite driver.
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when a record fails validation.
	ErrInvalid = errors.New("invalid input")
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Store wraps SQLite access for assignments, scores and practice history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// One connection serializes writers; SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assignments (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			assignment_id TEXT NOT NULL,
			student_id TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			time_elapsed REAL NOT NULL,
			user_input TEXT NOT NULL,
			skipped INTEGER NOT NULL,
			extra INTEGER NOT NULL,
			misspelled INTEGER NOT NULL,
			completed_at TEXT NOT NULL,
			UNIQUE (assignment_id, student_id)
		);`,
		`CREATE TABLE IF NOT EXISTS score_mistakes (
			score_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			expected TEXT NOT NULL,
			actual TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (score_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS practice_sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			words INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			mistakes INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_completed_at ON scores(completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_student ON scores(student_id);`,
		`CREATE INDEX IF NOT EXISTS idx_practice_sessions_ended_at ON practice_sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back when fn fails.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			// Best-effort rollback.
			_ = rerr
		}
		return err
	}
	return tx.Commit()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func closeRows(rows *sql.Rows) {
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
}

func rowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
