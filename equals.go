// equals.go: Structural deep equality for configuration values
//
// Change notification compares the value at a watched path before and after
// every mutation; a set that leaves the value deeply equal must stay silent.
// The comparison is structural over the JSON value model (maps, slices,
// scalars) and normalizes the numeric types that JSON round-trips produce.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import "reflect"

// deepEqual reports whether two configuration values are structurally equal.
//
// Maps are equal when they hold the same keys with deeply equal values,
// slices when they have the same length and pairwise equal elements.
// Numeric scalars compare by value across int, int64 and float64 so that an
// in-memory int survives a JSON reload (which yields float64) unchanged.
func deepEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v1 := range av {
			v2, exists := bv[k]
			if !exists || !deepEqual(v1, v2) {
				return false
			}
		}
		return true

	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true

	case string:
		bv, ok := b.(string)
		return ok && av == bv

	case bool:
		bv, ok := b.(bool)
		return ok && av == bv

	default:
		if an, ok := asFloat(a); ok {
			bn, ok := asFloat(b)
			return ok && an == bn
		}
		// Values outside the JSON model (typed slices, structs) must not
		// panic on ==; fall back to reflection for uncomparable types.
		if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
			return reflect.DeepEqual(a, b)
		}
		return a == b
	}
}

// asFloat normalizes the numeric types produced by parsers and callers.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
