// journal_backend.go: Storage backends for the Hestia mutation journal
//
// Two backends cover the common deployments: JSONL files are human-readable
// and ship cleanly into log aggregators; SQLite gives a queryable history
// without external services. Backend selection degrades gracefully: a SQLite
// database that cannot be opened falls back to a JSONL file beside it, so an
// enabled journal captures data whenever any storage is writable.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// journalBackend abstracts journal storage so backends can be swapped
// without touching the Journal API.
type journalBackend interface {
	// Write persists one journal entry.
	Write(entry JournalEntry) error

	// Close releases all resources. The backend must not be used after.
	Close() error
}

// createJournalBackend selects a backend from the configured output file.
// SQLite is chosen for ".db"/".sqlite" paths; open failure falls back to a
// JSONL file next to the requested database.
func createJournalBackend(config JournalConfig) (journalBackend, error) {
	ext := strings.ToLower(filepath.Ext(config.OutputFile))
	if ext == ".db" || ext == ".sqlite" {
		backend, err := newSQLiteJournalBackend(config.OutputFile)
		if err == nil {
			return backend, nil
		}
		return newJSONLJournalBackend(config.OutputFile + ".jsonl")
	}

	return newJSONLJournalBackend(config.OutputFile)
}

// sqliteJournalBackend stores entries in a single-table SQLite database.
type sqliteJournalBackend struct {
	db     *sql.DB
	insert *sql.Stmt
	mu     sync.Mutex
	closed bool
}

const journalSchema = `
CREATE TABLE IF NOT EXISTS journal_entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp  INTEGER NOT NULL,
	op         TEXT    NOT NULL,
	key        TEXT,
	old_value  TEXT,
	new_value  TEXT,
	process_id INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_timestamp ON journal_entries(timestamp);
CREATE INDEX IF NOT EXISTS idx_journal_key ON journal_entries(key);
`

func newSQLiteJournalBackend(dbPath string) (*sqliteJournalBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	// WAL keeps readers unblocked while the store writes through
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if _, err := db.Exec(journalSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	insert, err := db.Prepare(`INSERT INTO journal_entries
		(timestamp, op, key, old_value, new_value, process_id)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare journal insert: %w", err)
	}

	return &sqliteJournalBackend{db: db, insert: insert}, nil
}

func (s *sqliteJournalBackend) Write(entry JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("cannot write to closed journal database")
	}

	oldJSON, err := marshalJournalValue(entry.OldValue)
	if err != nil {
		return err
	}
	newJSON, err := marshalJournalValue(entry.NewValue)
	if err != nil {
		return err
	}

	_, err = s.insert.Exec(
		entry.Timestamp.UnixNano(),
		entry.Op,
		entry.Key,
		oldJSON,
		newJSON,
		entry.ProcessID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

func (s *sqliteJournalBackend) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.insert != nil {
		_ = s.insert.Close()
	}
	return s.db.Close()
}

// marshalJournalValue renders a value column; nil stays SQL NULL.
func marshalJournalValue(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize journal value: %w", err)
	}
	return string(data), nil
}

// jsonlJournalBackend appends one JSON object per line.
type jsonlJournalBackend struct {
	file   *os.File
	mu     sync.Mutex
	closed bool
}

func newJSONLJournalBackend(path string) (*jsonlJournalBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	// Owner read/write only: journals can carry configuration values
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- caller-configured journal location
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}

	return &jsonlJournalBackend{file: file}, nil
}

func (j *jsonlJournalBackend) Write(entry JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return fmt.Errorf("cannot write to closed journal file")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize journal entry: %w", err)
	}

	if _, err := j.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

func (j *jsonlJournalBackend) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true

	if err := j.file.Sync(); err != nil {
		_ = j.file.Close()
		return fmt.Errorf("failed to sync journal file: %w", err)
	}
	return j.file.Close()
}
