// Package store provides the SQLite-backed configuration blob store and the
// processed-release bookkeeping built on top of it. Profiles, custom
// formats, size tables, and dedup records are all JSON blobs addressed by
// key and instance name.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS config_blobs (
	key        TEXT NOT NULL,
	instance   TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL,
	PRIMARY KEY (key, instance)
);
`

// Store is a generic key/value JSON blob store, keyed per instance.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the blob store at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle. The config_blobs table must
// already exist.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get retrieves the raw JSON blob stored under key for an instance.
// Returns ok=false when no blob exists; absence is not an error.
func (s *Store) Get(ctx context.Context, key, instance string) (json.RawMessage, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM config_blobs WHERE key = ? AND instance = ?", key, instance,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get config %s/%s: %w", key, instance, err)
	}
	return json.RawMessage(value), true, nil
}

// GetJSON retrieves and unmarshals the blob stored under key into out.
// Returns ok=false when no blob exists or it does not parse.
func (s *Store) GetJSON(ctx context.Context, key, instance string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key, instance)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Malformed blobs behave like absent configuration.
		return false, nil
	}
	return true, nil
}

// Save marshals value and stores it under key for an instance, replacing
// any previous blob.
func (s *Store) Save(ctx context.Context, key, instance string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal config %s/%s: %w", key, instance, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO config_blobs (key, instance, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key, instance) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, instance, string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save config %s/%s: %w", key, instance, err)
	}
	return nil
}
