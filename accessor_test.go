// accessor_test.go: Tests for typed value access
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// TestTypedGetters tests happy-path coercion for every typed getter
func TestTypedGetters(t *testing.T) {
	store := newTestStore(t, Options{})

	_ = store.Set("str", "hello")
	_ = store.Set("int", 42)
	_ = store.Set("float", 3.5)
	_ = store.Set("bool", true)
	_ = store.Set("dur", "500ms")
	_ = store.Set("durMs", 1500)
	_ = store.Set("slice", []interface{}{"a", "b"})
	_ = store.Set("obj", map[string]interface{}{"k": "v"})

	if v, err := store.GetString("str"); err != nil || v != "hello" {
		t.Errorf("GetString = (%q, %v)", v, err)
	}
	if v, err := store.GetInt("int"); err != nil || v != 42 {
		t.Errorf("GetInt = (%d, %v)", v, err)
	}
	if v, err := store.GetInt64("int"); err != nil || v != 42 {
		t.Errorf("GetInt64 = (%d, %v)", v, err)
	}
	if v, err := store.GetFloat64("float"); err != nil || v != 3.5 {
		t.Errorf("GetFloat64 = (%v, %v)", v, err)
	}
	if v, err := store.GetBool("bool"); err != nil || !v {
		t.Errorf("GetBool = (%v, %v)", v, err)
	}
	if v, err := store.GetDuration("dur"); err != nil || v != 500*time.Millisecond {
		t.Errorf("GetDuration from string = (%v, %v)", v, err)
	}
	if v, err := store.GetDuration("durMs"); err != nil || v != 1500*time.Millisecond {
		t.Errorf("GetDuration from integer = (%v, %v)", v, err)
	}
	if v, err := store.GetStringSlice("slice"); err != nil || !reflect.DeepEqual(v, []string{"a", "b"}) {
		t.Errorf("GetStringSlice = (%v, %v)", v, err)
	}
	if v, err := store.GetMap("obj"); err != nil || v["k"] != "v" {
		t.Errorf("GetMap = (%v, %v)", v, err)
	}
}

// TestTypedGettersSurviveReload tests numeric coercion after a JSON round-trip
func TestTypedGettersSurviveReload(t *testing.T) {
	dir := t.TempDir()

	first := newTestStore(t, Options{Dir: dir})
	_ = first.Set("port", 8080)

	// A reload turns the int into float64; the getters absorb that
	second := newTestStore(t, Options{Dir: dir})
	if v, err := second.GetInt("port"); err != nil || v != 8080 {
		t.Errorf("GetInt after reload = (%d, %v)", v, err)
	}
}

// TestTypedGettersAbsentKeys tests that absence yields zero values, not errors
func TestTypedGettersAbsentKeys(t *testing.T) {
	store := newTestStore(t, Options{})

	if v, err := store.GetString("nope"); err != nil || v != "" {
		t.Errorf("GetString absent = (%q, %v)", v, err)
	}
	if v, err := store.GetInt("nope"); err != nil || v != 0 {
		t.Errorf("GetInt absent = (%d, %v)", v, err)
	}
	if v, err := store.GetBool("nope"); err != nil || v {
		t.Errorf("GetBool absent = (%v, %v)", v, err)
	}
	if v, err := store.GetDuration("nope"); err != nil || v != 0 {
		t.Errorf("GetDuration absent = (%v, %v)", v, err)
	}
	if v, err := store.GetStringSlice("nope"); err != nil || v != nil {
		t.Errorf("GetStringSlice absent = (%v, %v)", v, err)
	}
	if v, err := store.GetMap("nope"); err != nil || v != nil {
		t.Errorf("GetMap absent = (%v, %v)", v, err)
	}
}

// TestTypedGettersTypeErrors tests shape mismatches
func TestTypedGettersTypeErrors(t *testing.T) {
	store := newTestStore(t, Options{})
	_ = store.Set("str", "not-a-number")
	_ = store.Set("num", 42)
	_ = store.Set("mixed", []interface{}{"a", 1})

	checks := []struct {
		name string
		err  error
	}{
		{"GetInt on string", func() error { _, err := store.GetInt("str"); return err }()},
		{"GetBool on number", func() error { _, err := store.GetBool("num"); return err }()},
		{"GetString on number", func() error { _, err := store.GetString("num"); return err }()},
		{"GetDuration on bad string", func() error { _, err := store.GetDuration("str"); return err }()},
		{"GetStringSlice with mixed elements", func() error { _, err := store.GetStringSlice("mixed"); return err }()},
		{"GetMap on scalar", func() error { _, err := store.GetMap("num"); return err }()},
	}

	for _, c := range checks {
		if c.err == nil {
			t.Errorf("%s: expected a type error", c.name)
			continue
		}
		var typeErr *TypeError
		if !errors.As(c.err, &typeErr) {
			t.Errorf("%s: error is %T, want *TypeError", c.name, c.err)
		}
	}
}

// TestTypeErrorMessage tests the error rendering
func TestTypeErrorMessage(t *testing.T) {
	err := &TypeError{Key: "server.port", Expected: "integer", Actual: "string"}
	want := "type error at server.port: expected integer, got string"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
