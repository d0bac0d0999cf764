// Package sqlitestore keeps the task slot as one row of a key/value table.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/tada/internal/store"
)

const DefaultFileName = "tasks.db"

const schema = `CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Slot is a named row in the slots table.
type Slot struct {
	db  *sql.DB
	key string
}

// Open opens (or creates) the database at path and returns the slot named key.
func Open(path, key string) (*Slot, error) {
	if key == "" {
		return nil, errors.New("sqlitestore: empty slot key")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time keeps SQLite out of SQLITE_BUSY for this workload.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Slot{db: db, key: key}, nil
}

func (s *Slot) Get() ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %q: %w", s.key, err)
	}
	return value, nil
}

func (s *Slot) Put(data []byte) error {
	_, err := s.db.Exec(`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data)
	if err != nil {
		return fmt.Errorf("upsert slot %q: %w", s.key, err)
	}
	return nil
}

func (s *Slot) Close() error {
	return s.db.Close()
}
