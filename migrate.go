// migrate.go: Versioned document migrations for the Hestia configuration store
//
// Migrations run once, at construction, when the persisted document is older
// than the highest registered version. The applied version is tracked inside
// the document under the reserved bookkeeping key so it travels with the
// backing file.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"sort"

	"github.com/agilira/go-errors"
)

// Migration upgrades a persisted document to a newer layout. Migrations are
// applied in ascending Version order; each one mutates the document in place.
type Migration struct {
	// Version identifies the document layout this migration produces.
	// Must be positive.
	Version int

	// Description says what the migration does, for journals and debugging.
	Description string

	// Migrate performs the upgrade. The document root is never nil.
	Migrate func(doc map[string]interface{}) error
}

// applyMigrations runs every registered migration newer than the document's
// recorded version. Returns true when the document was modified.
func applyMigrations(doc map[string]interface{}, migrations []Migration) (bool, error) {
	if len(migrations) == 0 {
		return false, nil
	}

	ordered := make([]Migration, len(migrations))
	copy(ordered, migrations)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Version < ordered[j].Version
	})

	current := migrationVersion(doc)
	changed := false

	for _, m := range ordered {
		if m.Version <= current {
			continue
		}
		if m.Version <= 0 {
			return changed, errors.New(ErrCodeInvalidConfig, "migration version must be positive")
		}
		if m.Migrate == nil {
			return changed, errors.New(ErrCodeInvalidConfig, "migration function cannot be nil").
				WithContext("version", m.Version)
		}

		if err := m.Migrate(doc); err != nil {
			return changed, errors.Wrap(err, ErrCodeMigrationError, "migration step failed").
				WithContext("version", m.Version).
				WithContext("description", m.Description)
		}

		current = m.Version
		setMigrationVersion(doc, current)
		changed = true
	}

	return changed, nil
}

// migrationVersion reads the recorded document version; 0 when untracked.
// JSON reloads turn the stored int into a float64, both are accepted.
func migrationVersion(doc map[string]interface{}) int {
	v, ok := getNested(doc, []string{internalKey, "migrations", "version"})
	if !ok {
		return 0
	}
	if n, ok := asFloat(v); ok {
		return int(n)
	}
	return 0
}

// setMigrationVersion records the document version under the bookkeeping key.
func setMigrationVersion(doc map[string]interface{}, version int) {
	setNested(doc, []string{internalKey, "migrations", "version"}, version)
}
