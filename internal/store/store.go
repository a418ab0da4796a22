// Package store caches computed query results in a local sqlite database,
// keyed by the query name and the history snapshot fingerprint.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS ResultCache (
  query TEXT,
  snapshot TEXT,
  computed DATETIME,
  payload TEXT,
  PRIMARY KEY (query, snapshot)
);
`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("creating result cache table: %w", err)
	}
	return nil
}

// Get loads a cached result into dest. Returns false when no entry exists
// for the query and snapshot pair.
func (s *Store) Get(query, snapshot string, dest interface{}) (bool, error) {
	row := s.db.QueryRow(
		"SELECT payload FROM ResultCache WHERE query = ? AND snapshot = ?",
		query, snapshot)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading result cache: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, fmt.Errorf("decoding cached result: %w", err)
	}
	return true, nil
}

// Put stores a result, replacing any earlier entry for the same pair.
func (s *Store) Put(query, snapshot string, result interface{}) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO ResultCache (query, snapshot, computed, payload) VALUES (?, ?, ?, ?)",
		query, snapshot, time.Now(), string(payload))
	if err != nil {
		return fmt.Errorf("writing result cache: %w", err)
	}
	return nil
}

// Invalidate drops every entry computed against a different snapshot. Old
// entries can never be returned anyway, so this just reclaims space.
func (s *Store) Invalidate(current string) error {
	_, err := s.db.Exec("DELETE FROM ResultCache WHERE snapshot <> ?", current)
	if err != nil {
		return fmt.Errorf("invalidating result cache: %w", err)
	}
	return nil
}
