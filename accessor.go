// accessor.go: Type-safe value access for the Hestia configuration store
//
// Configuration values round-trip through JSON, which erases the caller's
// numeric types: an int stored today is a float64 after reload. The typed
// getters absorb that, coercing across the numeric kinds the value model
// produces, and fail with a TypeError when the shape genuinely mismatches.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"fmt"
	"time"
)

// TypeError is returned when a stored value cannot be coerced to the
// requested type.
type TypeError struct {
	Key      string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error at %s: expected %s, got %s", e.Key, e.Expected, e.Actual)
}

// GetString returns the string at key; "" when the key is absent.
func (s *Store) GetString(key string) (string, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return "", nil
	}

	str, isString := v.(string)
	if !isString {
		return "", &TypeError{Key: key, Expected: "string", Actual: fmt.Sprintf("%T", v)}
	}
	return str, nil
}

// GetInt returns the integer at key; 0 when the key is absent.
func (s *Store) GetInt(key string) (int, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return 0, nil
	}

	if n, isNum := asFloat(v); isNum {
		return int(n), nil
	}
	return 0, &TypeError{Key: key, Expected: "integer", Actual: fmt.Sprintf("%T", v)}
}

// GetInt64 returns the 64-bit integer at key; 0 when the key is absent.
func (s *Store) GetInt64(key string) (int64, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return 0, nil
	}

	if n, isNum := asFloat(v); isNum {
		return int64(n), nil
	}
	return 0, &TypeError{Key: key, Expected: "integer", Actual: fmt.Sprintf("%T", v)}
}

// GetFloat64 returns the number at key; 0 when the key is absent.
func (s *Store) GetFloat64(key string) (float64, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return 0, nil
	}

	if n, isNum := asFloat(v); isNum {
		return n, nil
	}
	return 0, &TypeError{Key: key, Expected: "number", Actual: fmt.Sprintf("%T", v)}
}

// GetBool returns the boolean at key; false when the key is absent.
func (s *Store) GetBool(key string) (bool, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return false, nil
	}

	b, isBool := v.(bool)
	if !isBool {
		return false, &TypeError{Key: key, Expected: "boolean", Actual: fmt.Sprintf("%T", v)}
	}
	return b, nil
}

// GetDuration returns the duration at key; 0 when the key is absent.
// Accepts duration strings ("500ms") and integers (milliseconds).
func (s *Store) GetDuration(key string) (time.Duration, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return 0, nil
	}

	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &TypeError{Key: key, Expected: "duration", Actual: fmt.Sprintf("%q", val)}
		}
		return d, nil
	default:
		if n, isNum := asFloat(v); isNum {
			return time.Duration(n) * time.Millisecond, nil
		}
		return 0, &TypeError{Key: key, Expected: "duration", Actual: fmt.Sprintf("%T", v)}
	}
}

// GetStringSlice returns the string slice at key; nil when the key is absent.
func (s *Store) GetStringSlice(key string) ([]string, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return nil, nil
	}

	switch val := v.(type) {
	case []string:
		return val, nil
	case []interface{}:
		result := make([]string, len(val))
		for i, item := range val {
			str, isString := item.(string)
			if !isString {
				return nil, &TypeError{
					Key:      key,
					Expected: "string array",
					Actual:   fmt.Sprintf("array with %T element", item),
				}
			}
			result[i] = str
		}
		return result, nil
	default:
		return nil, &TypeError{Key: key, Expected: "string array", Actual: fmt.Sprintf("%T", v)}
	}
}

// GetMap returns the nested map at key; nil when the key is absent.
func (s *Store) GetMap(key string) (map[string]interface{}, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return nil, nil
	}

	m, isMap := v.(map[string]interface{})
	if !isMap {
		return nil, &TypeError{Key: key, Expected: "object", Actual: fmt.Sprintf("%T", v)}
	}
	return m, nil
}
