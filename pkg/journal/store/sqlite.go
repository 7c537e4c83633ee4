package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists listener records to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite listener store.
// The path should be a file path (e.g., "./journal.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// The primary key carries the uniqueness invariant: one subscription
	// per (path, destination) pair.
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS listeners (
			path TEXT NOT NULL,
			destination TEXT NOT NULL,
			scope TEXT NOT NULL,
			recursive INTEGER NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (path, destination)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listeners_scope
		ON listeners(scope)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// ListListeners implements Store.
func (s *SQLiteStore) ListListeners(ctx context.Context, scope string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, destination, scope, recursive, updated_at
		FROM listeners
		WHERE scope = ?
		ORDER BY path, destination
	`, scope)
	if err != nil {
		return nil, fmt.Errorf("list listeners: %w", err)
	}
	defer rows.Close()

	recs := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listeners: %w", err)
	}

	return recs, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, path, destination string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT path, destination, scope, recursive, updated_at
		FROM listeners
		WHERE path = ? AND destination = ?
	`, path, destination)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO listeners (path, destination, scope, recursive, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path, destination) DO UPDATE SET
			scope = excluded.scope,
			recursive = excluded.recursive,
			updated_at = excluded.updated_at
	`, rec.Path, rec.Destination, rec.Scope, boolToInt(rec.Recursive),
		time.Now().UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("put listener: %w", err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, path, destination string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM listeners
		WHERE path = ? AND destination = ?
	`, path, destination)
	if err != nil {
		return fmt.Errorf("delete listener: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanRecord.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var recursive int
	var updated string
	if err := row.Scan(&rec.Path, &rec.Destination, &rec.Scope, &recursive, &updated); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan listener: %w", err)
	}
	rec.Recursive = recursive != 0
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
