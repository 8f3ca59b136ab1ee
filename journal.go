// journal.go: Optional mutation journal for the Hestia configuration store
//
// The journal records every mutating operation (set, delete, clear, replace,
// reset) with its old and new values, giving applications an append-only
// trail of who changed what in a configuration file. Storage is pluggable:
// a JSONL file for grep-able logs, or SQLite for queryable history.
//
// Journal faults never propagate into store operations: a store with a
// broken journal keeps working, it just stops journaling.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"os"
	"sync"
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// journalOp identifies the kind of mutation recorded in a journal entry.
type journalOp string

const (
	journalOpSet     journalOp = "set"
	journalOpDelete  journalOp = "delete"
	journalOpClear   journalOp = "clear"
	journalOpReplace journalOp = "replace"
	journalOpReset   journalOp = "reset"
)

// JournalConfig configures the mutation journal.
type JournalConfig struct {
	// Enabled turns the journal on. Default: off.
	Enabled bool `json:"enabled"`

	// OutputFile is the journal location. A ".db" or ".sqlite" extension
	// selects the SQLite backend; anything else is written as JSONL.
	// Required when Enabled is true.
	OutputFile string `json:"output_file"`
}

// JournalEntry is a single recorded mutation.
type JournalEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	Op        string      `json:"op"`
	Key       string      `json:"key,omitempty"`
	OldValue  interface{} `json:"old_value,omitempty"`
	NewValue  interface{} `json:"new_value,omitempty"`
	ProcessID int         `json:"process_id"`
}

// Journal appends mutation entries to a pluggable backend.
type Journal struct {
	mu        sync.Mutex
	backend   journalBackend
	processID int
	closed    bool
}

// newJournal creates a journal with automatic backend selection.
func newJournal(config JournalConfig) (*Journal, error) {
	if config.OutputFile == "" {
		return nil, errors.New(ErrCodeJournalError, "journal output file cannot be empty")
	}

	backend, err := createJournalBackend(config)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to initialize journal backend")
	}

	return &Journal{
		backend:   backend,
		processID: os.Getpid(),
	}, nil
}

// Record appends a mutation entry. Errors are swallowed: journaling must
// never fail the store operation that triggered it.
func (j *Journal) Record(op journalOp, key string, oldValue, newValue interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || j.backend == nil {
		return
	}

	// Cached timestamp keeps the journal off the syscall path
	entry := JournalEntry{
		Timestamp: timecache.CachedTime(),
		Op:        string(op),
		Key:       key,
		OldValue:  oldValue,
		NewValue:  newValue,
		ProcessID: j.processID,
	}

	_ = j.backend.Write(entry)
}

// Close releases the backend. Safe to call multiple times.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true

	if j.backend != nil {
		if err := j.backend.Close(); err != nil {
			return errors.Wrap(err, ErrCodeJournalError, "failed to close journal backend")
		}
	}
	return nil
}
