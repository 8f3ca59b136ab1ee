// utils_test.go: Tests for CLI helper functions
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/agilira/hestia"
)

// TestParseValue tests automatic type detection for CLI values
func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want interface{}
	}{
		{"boolean true", "true", true},
		{"boolean false", "false", false},
		{"mixed-case boolean", "True", true},
		{"integer", "42", int64(42)},
		{"negative integer", "-7", int64(-7)},
		{"float", "3.14", 3.14},
		{"plain string", "hello", "hello"},
		{"numeric-looking string stays numeric", "0", int64(0)},
		{"quoted-ish string", "8080px", "8080px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseValue(tt.in); got != tt.want {
				t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

// TestParseValueJSON tests structured JSON parsing
func TestParseValueJSON(t *testing.T) {
	obj := parseValue(`{"a": 1}`)
	m, ok := obj.(map[string]interface{})
	if !ok {
		t.Fatalf("parseValue(object) = %T, want map", obj)
	}
	if m["a"] != float64(1) {
		t.Errorf("parsed object = %v", m)
	}

	arr := parseValue(`[1, "two"]`)
	if _, ok := arr.([]interface{}); !ok {
		t.Fatalf("parseValue(array) = %T, want slice", arr)
	}

	// Malformed JSON falls back to a plain string
	if got := parseValue("{not json"); got != "{not json" {
		t.Errorf("malformed JSON = %v, want raw string", got)
	}
}

// TestParseFormat tests format string parsing
func TestParseFormat(t *testing.T) {
	valid := map[string]hestia.Format{
		"":     hestia.FormatJSON,
		"json": hestia.FormatJSON,
		"JSON": hestia.FormatJSON,
		"yaml": hestia.FormatYAML,
		"yml":  hestia.FormatYAML,
	}
	for in, want := range valid {
		got, err := parseFormat(in)
		if err != nil || got != want {
			t.Errorf("parseFormat(%q) = (%v, %v), want %v", in, got, err, want)
		}
	}

	if _, err := parseFormat("toml"); err == nil {
		t.Error("parseFormat(toml) should fail")
	}
}

// TestFormatValue tests output rendering
func TestFormatValue(t *testing.T) {
	if got := formatValue("hello"); got != "hello" {
		t.Errorf("formatValue(string) = %q", got)
	}
	if got := formatValue(42); got != "42" {
		t.Errorf("formatValue(int) = %q", got)
	}

	got := formatValue(map[string]interface{}{"a": 1})
	if !strings.Contains(got, `"a": 1`) {
		t.Errorf("formatValue(map) = %q, want indented JSON", got)
	}
}
