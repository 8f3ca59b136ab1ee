// hestia: Persistent, hierarchical key-value configuration store
//
// Philosophy:
// - Dot-notation paths over a nested JSON/YAML document
// - Write-through persistence: every mutation lands on disk before returning
// - Forgiving reads: missing keys and corrupt files are never errors
// - Change notification diffs old vs. new values per watched path
//
// Example Usage:
//   store, err := hestia.New(hestia.Options{
//       ProjectName: "myapp",
//       Defaults:    map[string]interface{}{"color": "dark"},
//   })
//
//   unsubscribe, _ := store.OnDidChange("color", func(newValue, oldValue interface{}) {
//       applyTheme(newValue)
//   })
//   defer unsubscribe()
//
//   _ = store.Set("server.port", 8080)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/agilira/go-errors"
)

// Error codes for Hestia operations
const (
	ErrCodeInvalidKey         = "HESTIA_INVALID_KEY"
	ErrCodeInvalidValue       = "HESTIA_INVALID_VALUE"
	ErrCodeInvalidConfig      = "HESTIA_INVALID_CONFIG"
	ErrCodeIOError            = "HESTIA_IO_ERROR"
	ErrCodeSerializationError = "HESTIA_SERIALIZATION_ERROR"
	ErrCodeJournalError       = "HESTIA_JOURNAL_ERROR"
	ErrCodeMigrationError     = "HESTIA_MIGRATION_ERROR"
)

// internalKey is the reserved top-level key holding store bookkeeping
// (currently the migration version). It is hidden from Size and All.
const internalKey = "__internal__"

// Store is a persistent, hierarchical key-value configuration store.
//
// The in-memory document is exclusively owned by its Store instance; no two
// instances should point at the same backing file concurrently. Operations
// are synchronous and serialized by an internal mutex. Change listeners run
// after the mutex is released, so they may call back into the store.
type Store struct {
	opts     *Options
	filePath string
	notifier *notifier
	journal  *Journal

	mu  sync.RWMutex
	doc map[string]interface{}

	// Reused for dot-notation parsing under the write lock
	keyBuffer []string
}

// New creates a Store backed by a file resolved from the options: explicit
// directory, project-specific app-data directory, or a derived fallback.
// Existing content is loaded (missing or corrupt content degrades to an
// empty document), defaults are merged under the persisted values, and any
// registered migrations are applied.
//
// New fails only on malformed options or a failing migration, never because
// the project name or directory could not be resolved.
func New(opts Options) (*Store, error) {
	o := opts.WithDefaults()

	dir := resolveDir(o)
	filePath := filepath.Join(dir, o.ConfigName+o.Format.Ext())

	doc := loadDocument(filePath, o.Format)

	// Defaults merge under persisted values: persisted keys win, unrelated
	// default keys survive.
	for k, v := range o.Defaults {
		if _, exists := doc[k]; !exists {
			doc[k] = copyValue(v)
		}
	}

	store := &Store{
		opts:      o,
		filePath:  filePath,
		doc:       doc,
		notifier:  newNotifier(),
		keyBuffer: make([]string, 0, 8),
	}

	migrated, err := applyMigrations(doc, o.Migrations)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeMigrationError, "configuration migration failed").
			WithContext("path", filePath)
	}
	if migrated {
		// Best effort: a failing save here degrades to in-memory state,
		// the next mutation retries the write.
		_ = store.persist()
	}

	if o.Journal.Enabled {
		journal, err := newJournal(o.Journal)
		if err == nil {
			store.journal = journal
		}
		// Journal setup failure leaves the journal disabled; store
		// operations must not depend on it.
	}

	return store, nil
}

// Path returns the absolute path of the backing file in use.
func (s *Store) Path() string {
	return s.filePath
}

// Get returns the value at key, or nil when the key is absent.
// Absence is never an error.
func (s *Store) Get(key string) interface{} {
	v, _ := s.lookup(key)
	return v
}

// GetDefault returns the value at key, or def when the key is absent.
func (s *Store) GetDefault(key string, def interface{}) interface{} {
	v, ok := s.lookup(key)
	if !ok {
		return def
	}
	return v
}

// Has reports whether key resolves to a value in the effective document.
func (s *Store) Has(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

func (s *Store) lookup(key string) (interface{}, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := getNested(s.doc, splitKey(key, nil))
	if !ok {
		return nil, false
	}
	return copyValue(v), true
}

// Set stores value at key, creating intermediate maps as needed, persists
// the document, and notifies watchers whose value changed. A scalar sitting
// at an intermediate segment is silently shadowed by a map.
//
// A nil value is rejected: use Delete to remove a key.
func (s *Store) Set(key string, value interface{}) error {
	if key == "" {
		return errors.New(ErrCodeInvalidKey, "key cannot be empty")
	}
	if isInternalKey(key) {
		return errors.New(ErrCodeInvalidKey, "key is reserved for store bookkeeping").
			WithContext("key", key)
	}
	if value == nil {
		return errors.New(ErrCodeInvalidValue, "value cannot be nil, use Delete to remove a key").
			WithContext("key", key)
	}

	s.mu.Lock()

	snap := s.notifier.capture(s.doc)

	s.keyBuffer = s.keyBuffer[:0]
	keyPath := splitKey(key, s.keyBuffer)
	old, oldExists := getNested(s.doc, keyPath)
	if oldExists {
		old = copyValue(old)
	}

	setNested(s.doc, keyPath, copyValue(value))

	if err := s.persist(); err != nil {
		s.mu.Unlock()
		return err
	}

	pending := s.notifier.diff(snap, s.doc)
	s.mu.Unlock()

	s.record(journalOpSet, key, old, value)
	fire(pending)
	return nil
}

// SetAll stores every key/value pair of values in one operation: one
// persistence pass and one notification pass covering all affected paths.
func (s *Store) SetAll(values map[string]interface{}) error {
	for key, value := range values {
		if key == "" {
			return errors.New(ErrCodeInvalidKey, "key cannot be empty")
		}
		if isInternalKey(key) {
			return errors.New(ErrCodeInvalidKey, "key is reserved for store bookkeeping").
				WithContext("key", key)
		}
		if value == nil {
			return errors.New(ErrCodeInvalidValue, "value cannot be nil, use Delete to remove a key").
				WithContext("key", key)
		}
	}

	s.mu.Lock()

	snap := s.notifier.capture(s.doc)

	// Previous values are captured before any write lands: batch keys may
	// overlap (e.g. "a" and "a.b"), so interleaving would record post-write
	// state as the old value.
	olds := make(map[string]interface{}, len(values))
	for key := range values {
		if old, ok := getNested(s.doc, splitKey(key, nil)); ok {
			olds[key] = copyValue(old)
		}
	}

	for key, value := range values {
		setNested(s.doc, splitKey(key, nil), copyValue(value))
	}

	if err := s.persist(); err != nil {
		s.mu.Unlock()
		return err
	}

	pending := s.notifier.diff(snap, s.doc)
	s.mu.Unlock()

	for key, value := range values {
		s.record(journalOpSet, key, olds[key], value)
	}
	fire(pending)
	return nil
}

// Delete removes the value at key. Deleting an absent key is a silent no-op;
// intermediate segments are never created.
func (s *Store) Delete(key string) error {
	if key == "" {
		return errors.New(ErrCodeInvalidKey, "key cannot be empty")
	}

	s.mu.Lock()

	s.keyBuffer = s.keyBuffer[:0]
	keyPath := splitKey(key, s.keyBuffer)

	old, oldExists := getNested(s.doc, keyPath)
	if !oldExists {
		s.mu.Unlock()
		return nil
	}
	old = copyValue(old)

	snap := s.notifier.capture(s.doc)
	deleteNested(s.doc, keyPath)

	if err := s.persist(); err != nil {
		s.mu.Unlock()
		return err
	}

	pending := s.notifier.diff(snap, s.doc)
	s.mu.Unlock()

	s.record(journalOpDelete, key, old, nil)
	fire(pending)
	return nil
}

// Clear resets the document to empty, persists, and fires a change event for
// every watched path that previously had a value.
func (s *Store) Clear() error {
	s.mu.Lock()

	snap := s.notifier.capture(s.doc)
	s.doc = make(map[string]interface{})

	if err := s.persist(); err != nil {
		s.mu.Unlock()
		return err
	}

	pending := s.notifier.diff(snap, s.doc)
	s.mu.Unlock()

	s.record(journalOpClear, "", nil, nil)
	fire(pending)
	return nil
}

// Reset restores the listed keys to their configured defaults. Keys without
// a configured default are deleted. With no arguments Reset is a no-op.
func (s *Store) Reset(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	for _, key := range keys {
		if key == "" {
			return errors.New(ErrCodeInvalidKey, "key cannot be empty")
		}
	}

	s.mu.Lock()

	snap := s.notifier.capture(s.doc)

	for _, key := range keys {
		keyPath := splitKey(key, nil)
		if def, ok := getNested(s.opts.Defaults, keyPath); ok {
			setNested(s.doc, keyPath, copyValue(def))
		} else {
			deleteNested(s.doc, keyPath)
		}
	}

	if err := s.persist(); err != nil {
		s.mu.Unlock()
		return err
	}

	pending := s.notifier.diff(snap, s.doc)
	s.mu.Unlock()

	for _, key := range keys {
		s.record(journalOpReset, key, nil, nil)
	}
	fire(pending)
	return nil
}

// Size returns the number of top-level keys in the effective document.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(effectiveView(s.doc))
}

// All returns a deep copy of the effective document.
func (s *Store) All() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyDocument(effectiveView(s.doc))
}

// Keys returns every leaf key in dot notation, sorted, optionally filtered
// by prefix. Segments containing dots or backslashes come back escaped, so
// each returned key round-trips through Get.
func (s *Store) Keys(prefix string) []string {
	s.mu.RLock()
	keys := make([]string, 0, 16)
	collectLeafKeys(effectiveView(s.doc), "", &keys)
	s.mu.RUnlock()

	if prefix != "" {
		filtered := keys[:0]
		for _, k := range keys {
			if strings.HasPrefix(k, prefix) {
				filtered = append(filtered, k)
			}
		}
		keys = filtered
	}
	sort.Strings(keys)
	return keys
}

// ReplaceAll replaces the whole document, persists, and notifies watchers.
// Store bookkeeping (the migration version) is carried over.
func (s *Store) ReplaceAll(doc map[string]interface{}) error {
	if doc == nil {
		return errors.New(ErrCodeInvalidValue, "document cannot be nil")
	}

	s.mu.Lock()

	snap := s.notifier.capture(s.doc)

	next := copyDocument(doc)
	if internal, ok := s.doc[internalKey]; ok {
		if _, incoming := next[internalKey]; !incoming {
			next[internalKey] = internal
		}
	}
	s.doc = next

	if err := s.persist(); err != nil {
		s.mu.Unlock()
		return err
	}

	pending := s.notifier.diff(snap, s.doc)
	s.mu.Unlock()

	s.record(journalOpReplace, "", nil, nil)
	fire(pending)
	return nil
}

// OnDidChange subscribes to changes at key. The listener is invoked with
// (newValue, oldValue) whenever a mutation leaves a structurally different
// value at the key; a set to a deeply equal value is silent. The returned
// function removes the subscription and is idempotent.
func (s *Store) OnDidChange(key string, cb ChangeCallback) (func(), error) {
	if key == "" {
		return nil, errors.New(ErrCodeInvalidKey, "key cannot be empty")
	}
	if cb == nil {
		return nil, errors.New(ErrCodeInvalidConfig, "callback cannot be nil")
	}

	return s.notifier.subscribe(splitKey(key, nil), cb), nil
}

// OnDidAnyChange subscribes to every document change. The listener receives
// deep copies of the new and old effective documents.
func (s *Store) OnDidAnyChange(cb AnyChangeCallback) (func(), error) {
	if cb == nil {
		return nil, errors.New(ErrCodeInvalidConfig, "callback cannot be nil")
	}

	return s.notifier.subscribeAny(cb), nil
}

// Close releases the optional journal. The store itself holds no other
// resources; it remains usable after Close.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.journal != nil {
		err := s.journal.Close()
		s.journal = nil
		return err
	}
	return nil
}

// persist flushes the current document to the backing file.
// Caller must hold the write lock.
func (s *Store) persist() error {
	data, err := marshalDocument(s.doc, s.opts.Format)
	if err != nil {
		return err
	}
	return atomicWrite(s.filePath, data)
}

// record appends a mutation to the journal when one is configured.
// Journal faults never fail store operations.
func (s *Store) record(op journalOp, key string, oldValue, newValue interface{}) {
	if s.journal == nil {
		return
	}
	s.journal.Record(op, key, oldValue, newValue)
}

// fire invokes pending change notifications in subscription order.
func fire(pending []func()) {
	for _, notify := range pending {
		notify()
	}
}

// isInternalKey reports whether a key addresses the reserved bookkeeping
// subtree. Reads may see it; writes are rejected.
func isInternalKey(key string) bool {
	return key == internalKey || strings.HasPrefix(key, internalKey+".")
}

// effectiveView returns the document without the reserved bookkeeping key.
// The result aliases the input unless stripping was needed.
func effectiveView(doc map[string]interface{}) map[string]interface{} {
	if _, ok := doc[internalKey]; !ok {
		return doc
	}
	view := make(map[string]interface{}, len(doc)-1)
	for k, v := range doc {
		if k == internalKey {
			continue
		}
		view[k] = v
	}
	return view
}
