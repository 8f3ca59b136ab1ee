// equals_test.go: Tests for structural deep equality
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import "testing"

// TestDeepEqual tests structural equality over the JSON value model
func TestDeepEqual(t *testing.T) {
	tests := []struct {
		name string
		a    interface{}
		b    interface{}
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs value", nil, "x", false},
		{"value vs nil", "x", nil, false},
		{"equal strings", "dark", "dark", true},
		{"different strings", "dark", "light", false},
		{"equal bools", true, true, true},
		{"different bools", true, false, false},
		{"string vs bool", "true", true, false},

		// Numeric normalization: JSON reloads turn ints into float64
		{"int vs float64 same value", 8080, float64(8080), true},
		{"int64 vs float64 same value", int64(42), float64(42), true},
		{"int vs int64", 7, int64(7), true},
		{"different numbers", 1, 2, false},
		{"float precision", 1.5, 1.5, true},
		{"number vs string", 1, "1", false},

		{
			"equal maps",
			map[string]interface{}{"a": 1, "b": "x"},
			map[string]interface{}{"a": float64(1), "b": "x"},
			true,
		},
		{
			"maps with different keys",
			map[string]interface{}{"a": 1},
			map[string]interface{}{"b": 1},
			false,
		},
		{
			"maps with different sizes",
			map[string]interface{}{"a": 1},
			map[string]interface{}{"a": 1, "b": 2},
			false,
		},
		{
			"nested maps",
			map[string]interface{}{"s": map[string]interface{}{"p": 8080}},
			map[string]interface{}{"s": map[string]interface{}{"p": float64(8080)}},
			true,
		},
		{"map vs scalar", map[string]interface{}{"a": 1}, "a", false},

		{
			"equal slices",
			[]interface{}{"a", 1, true},
			[]interface{}{"a", float64(1), true},
			true,
		},
		{
			"slices different length",
			[]interface{}{"a"},
			[]interface{}{"a", "b"},
			false,
		},
		{
			"slices different order",
			[]interface{}{"a", "b"},
			[]interface{}{"b", "a"},
			false,
		},
		{"slice vs map", []interface{}{"a"}, map[string]interface{}{"a": 1}, false},

		// Caller-typed containers are not comparable with == and must not panic
		{"typed slices equal", []string{"a", "b"}, []string{"a", "b"}, true},
		{"typed slices different", []string{"a"}, []string{"b"}, false},
		{"typed maps equal", map[string]string{"k": "v"}, map[string]string{"k": "v"}, true},
		{"typed slice vs string", []string{"a"}, "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deepEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("deepEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Equality is symmetric
			if got := deepEqual(tt.b, tt.a); got != tt.want {
				t.Errorf("deepEqual(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

// TestAsFloat tests numeric normalization coverage
func TestAsFloat(t *testing.T) {
	numeric := []interface{}{
		int(1), int8(1), int16(1), int32(1), int64(1),
		uint(1), uint64(1), float32(1), float64(1),
	}
	for _, v := range numeric {
		n, ok := asFloat(v)
		if !ok || n != 1 {
			t.Errorf("asFloat(%T %v) = (%v, %v), want (1, true)", v, v, n, ok)
		}
	}

	for _, v := range []interface{}{"1", true, nil, []interface{}{1}} {
		if _, ok := asFloat(v); ok {
			t.Errorf("asFloat(%T %v) should not be numeric", v, v)
		}
	}
}
