// Utility functions for the Hestia CLI
//
// This file provides helper functions for store resolution, value parsing,
// and output rendering shared across command handlers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/agilira/hestia"
	"github.com/agilira/orpheus/pkg/orpheus"
)

// openStore resolves and opens the store addressed by the shared flags.
// Directory resolution mirrors the library: an explicit --dir wins, then
// --project, then the usual fallback chain.
func (m *Manager) openStore(ctx *orpheus.Context) (*hestia.Store, error) {
	format, err := parseFormat(ctx.GetFlagString("format"))
	if err != nil {
		return nil, err
	}

	opts := hestia.Options{
		Dir:         ctx.GetFlagString("dir"),
		ProjectName: ctx.GetFlagString("project"),
		ConfigName:  ctx.GetFlagString("name"),
		Format:      format,
	}

	store, err := hestia.New(opts)
	if err != nil {
		return nil, errors.Wrap(err, hestia.ErrCodeInvalidConfig, "failed to open configuration store")
	}
	return store, nil
}

// parseFormat parses an explicitly specified format string.
func parseFormat(formatStr string) (hestia.Format, error) {
	switch strings.ToLower(formatStr) {
	case "", "json":
		return hestia.FormatJSON, nil
	case "yaml", "yml":
		return hestia.FormatYAML, nil
	default:
		return hestia.FormatJSON, errors.New(hestia.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported format: %s", formatStr))
	}
}

// parseValue automatically parses a string value to the appropriate Go type.
// Supports: bool, int, float64, JSON objects/arrays, and strings.
func parseValue(value string) interface{} {
	// Try boolean first, but only for explicit boolean strings
	// This avoids ParseBool accepting "0"/"1" which should be integers
	lowerValue := strings.ToLower(value)
	if lowerValue == "true" || lowerValue == "false" {
		return lowerValue == "true"
	}

	// Try integer
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}

	// Try float
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	// Try structured JSON ({"a":1} or [1,2,3])
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var parsed interface{}
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed
		}
	}

	// Default to string
	return value
}

// formatValue renders a value for terminal output. Structured values come
// out as indented JSON, scalars as themselves.
func formatValue(value interface{}) string {
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", value)
	}
}
