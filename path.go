// path.go: Dot-notation path access over nested configuration documents
//
// This file implements the path engine used by the Store for all key-based
// operations. Paths are dot-delimited ("server.port"); a literal dot inside a
// segment is escaped with a backslash ("logging\.level" is one segment).
//
// Philosophy:
// - Pre-allocated segment buffers to keep lookups allocation-free
// - Reads never fail: a missing or non-map intermediate yields "absent"
// - Writes create intermediate maps on demand and silently shadow scalars
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import "strings"

// splitKey splits a dot-notation key into path segments, honoring backslash
// escapes. "a.b" yields ["a" "b"]; "a\.b" yields ["a.b"]. Reuses the provided
// buffer to avoid allocations on the hot path.
func splitKey(key string, buffer []string) []string {
	if !strings.ContainsAny(key, `.\`) {
		// Simple key - no splitting needed
		return append(buffer, key)
	}

	var segment strings.Builder
	escaped := false
	for _, r := range key {
		switch {
		case escaped:
			segment.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '.':
			buffer = append(buffer, segment.String())
			segment.Reset()
		default:
			segment.WriteRune(r)
		}
	}
	if escaped {
		// Trailing backslash is kept literally
		segment.WriteByte('\\')
	}
	buffer = append(buffer, segment.String())

	return buffer
}

// escapeSegment renders a single document key as a dot-notation segment,
// escaping any literal dots so the result round-trips through splitKey.
func escapeSegment(key string) string {
	if !strings.ContainsAny(key, `.\`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		if r == '.' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// getNested retrieves a value from a nested map structure.
// Returns (nil, false) as soon as any intermediate segment is missing or is
// not a map. Never fails for a missing path.
func getNested(doc map[string]interface{}, keyPath []string) (interface{}, bool) {
	current := doc

	for i, key := range keyPath {
		value, exists := current[key]
		if !exists {
			return nil, false
		}

		if i == len(keyPath)-1 {
			return value, true
		}

		nextMap, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current = nextMap
	}

	return nil, false
}

// setNested sets a value in a nested map structure, creating intermediate
// maps as needed. A scalar found at an intermediate segment is replaced by a
// map (silent shadowing), matching the write semantics of the public API.
//
// Complexity: O(depth), typically 2-4 levels
func setNested(doc map[string]interface{}, keyPath []string, value interface{}) {
	current := doc

	// Navigate to parent of target key
	for i := 0; i < len(keyPath)-1; i++ {
		key := keyPath[i]

		nextMap, ok := current[key].(map[string]interface{})
		if !ok {
			// Missing or scalar intermediate: create/shadow with a map
			nextMap = make(map[string]interface{})
			current[key] = nextMap
		}
		current = nextMap
	}

	current[keyPath[len(keyPath)-1]] = value
}

// hasNested reports whether the path resolves to an entry owned by the
// document tree.
func hasNested(doc map[string]interface{}, keyPath []string) bool {
	_, ok := getNested(doc, keyPath)
	return ok
}

// deleteNested removes the entry at the final segment if the parent map
// exists. Returns true if the entry existed and was removed; a missing
// intermediate segment makes the delete a no-op.
func deleteNested(doc map[string]interface{}, keyPath []string) bool {
	current := doc

	// Navigate to parent of target key
	for i := 0; i < len(keyPath)-1; i++ {
		nextMap, ok := current[keyPath[i]].(map[string]interface{})
		if !ok {
			return false
		}
		current = nextMap
	}

	finalKey := keyPath[len(keyPath)-1]
	if _, exists := current[finalKey]; exists {
		delete(current, finalKey)
		return true
	}

	return false
}

// collectLeafKeys recursively collects all leaf keys in dot notation,
// escaping literal dots in document keys. Used by the CLI list command and
// by Reset when expanding default subtrees.
func collectLeafKeys(doc map[string]interface{}, currentPrefix string, keys *[]string) {
	for key, value := range doc {
		fullKey := escapeSegment(key)
		if currentPrefix != "" {
			fullKey = currentPrefix + "." + fullKey
		}

		if nestedMap, ok := value.(map[string]interface{}); ok && len(nestedMap) > 0 {
			collectLeafKeys(nestedMap, fullKey, keys)
		} else {
			*keys = append(*keys, fullKey)
		}
	}
}
