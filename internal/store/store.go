package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store keeps the client's only durable non-auth state: which feed
// posts the user has opened. Read marks are cosmetic, so callers treat
// failures as non-fatal.
type Store struct {
	db *sql.DB
}

// Open creates a Store backed by the SQLite database at path, applying
// recommended pragmas and creating the schema on first use.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS read_posts (
	post_id INTEGER PRIMARY KEY,
	read_at TIMESTAMP NOT NULL
);
`

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// MarkRead records that the given post was opened. Idempotent.
func (s *Store) MarkRead(ctx context.Context, postID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO read_posts (post_id, read_at) VALUES (?, ?)
		 ON CONFLICT(post_id) DO NOTHING`,
		postID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// ReadSet returns which of the given posts have been opened, batched
// for one visible page of the feed.
func (s *Store) ReadSet(ctx context.Context, postIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(postIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(postIDs))
	for i, id := range postIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT post_id FROM read_posts WHERE post_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query read set: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan read set: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

// applyPragmas configures SQLite for single-user client use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
