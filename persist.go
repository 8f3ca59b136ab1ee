// persist.go: Write-through persistence for the Hestia configuration store
//
// Every mutation is flushed synchronously to the backing file; there is no
// batching or debounce, so in-memory state and disk never drift apart. Writes
// go through a temporary file in the same directory followed by an atomic
// rename, preventing a crash mid-write from corrupting the previous content.
//
// Loads are forgiving: a missing file, unreadable file, or unparsable content
// all degrade to an empty document rather than surfacing an error.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// loadDocument reads and parses the backing file. Missing or corrupt content
// yields an empty document; the root is always a map.
func loadDocument(filePath string, format Format) map[string]interface{} {
	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath is resolved store-owned location
	if err != nil {
		return make(map[string]interface{})
	}

	doc, err := unmarshalDocument(data, format)
	if err != nil || doc == nil {
		return make(map[string]interface{})
	}

	return doc
}

// unmarshalDocument parses raw file content into a document.
func unmarshalDocument(data []byte, format Format) (map[string]interface{}, error) {
	doc := make(map[string]interface{})

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, ErrCodeSerializationError, "YAML unmarshal failed")
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, ErrCodeSerializationError, "JSON unmarshal failed")
		}
	}

	return doc, nil
}

// marshalDocument serializes a document for the backing file.
// JSON output is pretty-printed with two-space indentation.
func marshalDocument(doc map[string]interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, ErrCodeSerializationError, "YAML marshal failed")
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, ErrCodeSerializationError, "JSON marshal failed")
		}
		return data, nil
	}
}

// atomicWrite persists data to filePath using a temporary file plus rename.
// The directory is created lazily, so a backing directory removed out from
// under an open store reappears on the next save.
func atomicWrite(filePath string, data []byte) error {
	dir := filepath.Dir(filePath)
	base := filepath.Base(filePath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, ErrCodeIOError, "failed to create storage directory").
			WithContext("dir", dir)
	}

	// Temporary file in the same directory ensures same filesystem
	tempPath := filepath.Join(dir, "."+base+".tmp."+fmt.Sprintf("%d", time.Now().UnixNano()))

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return errors.Wrap(err, ErrCodeIOError, "failed to write temp file").
			WithContext("path", tempPath)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, ErrCodeIOError, "failed to rename temp file").
			WithContext("path", filePath)
	}

	return nil
}

// copyDocument creates a deep copy of a document.
func copyDocument(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}

	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = copyValue(v)
	}
	return dst
}

// copyValue deep-copies a single document value, normalizing typed slices
// and string-keyed maps into the JSON value model. Stored values therefore
// never alias caller state and always compare structurally after a reload.
func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil, string, bool, int, int64, float64:
		return val
	case map[string]interface{}:
		return copyDocument(val)
	case []interface{}:
		dst := make([]interface{}, len(val))
		for i, item := range val {
			dst[i] = copyValue(item)
		}
		return dst
	default:
		return normalizeValue(v)
	}
}

// normalizeValue converts caller-typed containers ([]string, map[string]int,
// ...) to their JSON-model equivalents. Scalars outside the fast path pass
// through unchanged.
func normalizeValue(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		dst := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			dst[i] = copyValue(rv.Index(i).Interface())
		}
		return dst
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		dst := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			dst[iter.Key().String()] = copyValue(iter.Value().Interface())
		}
		return dst
	default:
		return v
	}
}
