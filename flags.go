// flags.go: Command-line flag overlay for the Hestia configuration store
//
// FlagOverlay bridges FlashFlags and a Store: flags explicitly set on the
// command line are written through to the store after Parse, so a CLI
// invocation persists its settings. Flags left at their default never touch
// the store, preserving the precedence flags > persisted > defaults.
//
// Flag names use dashes ("server-port") and map to dot-notation keys
// ("server.port").
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"strings"
	"time"

	flashflags "github.com/agilira/flash-flags"
	"github.com/agilira/go-errors"
)

// FlagOverlay registers command-line flags that persist into a Store.
type FlagOverlay struct {
	flags *flashflags.FlagSet
	store *Store
}

// NewFlagOverlay creates an overlay for the given store.
func NewFlagOverlay(store *Store, appName string) *FlagOverlay {
	return &FlagOverlay{
		flags: flashflags.New(appName),
		store: store,
	}
}

// SetDescription sets the application description for help output.
func (o *FlagOverlay) SetDescription(description string) *FlagOverlay {
	o.flags.SetDescription(description)
	return o
}

// SetVersion sets the application version for help output.
func (o *FlagOverlay) SetVersion(version string) *FlagOverlay {
	o.flags.SetVersion(version)
	return o
}

// String adds a string flag.
func (o *FlagOverlay) String(name, defaultValue, usage string) *FlagOverlay {
	o.flags.String(name, defaultValue, usage)
	return o
}

// Int adds an integer flag.
func (o *FlagOverlay) Int(name string, defaultValue int, usage string) *FlagOverlay {
	o.flags.Int(name, defaultValue, usage)
	return o
}

// Bool adds a boolean flag.
func (o *FlagOverlay) Bool(name string, defaultValue bool, usage string) *FlagOverlay {
	o.flags.Bool(name, defaultValue, usage)
	return o
}

// Float64 adds a float64 flag.
func (o *FlagOverlay) Float64(name string, defaultValue float64, usage string) *FlagOverlay {
	o.flags.Float64(name, defaultValue, usage)
	return o
}

// Duration adds a duration flag.
func (o *FlagOverlay) Duration(name string, defaultValue time.Duration, usage string) *FlagOverlay {
	o.flags.Duration(name, defaultValue, usage)
	return o
}

// StringSlice adds a string slice flag.
func (o *FlagOverlay) StringSlice(name string, defaultValue []string, usage string) *FlagOverlay {
	o.flags.StringSlice(name, defaultValue, usage)
	return o
}

// Parse parses command-line arguments and writes every explicitly set flag
// through to the store under its dot-notation key.
func (o *FlagOverlay) Parse(args []string) error {
	if err := o.flags.Parse(args); err != nil {
		return errors.Wrap(err, ErrCodeInvalidConfig, "failed to parse command-line flags")
	}

	var setErr error
	o.flags.VisitAll(func(flag *flashflags.Flag) {
		if !flag.Changed() {
			return
		}

		key := flagNameToKey(flag.Name())
		value := flag.Value()

		// Durations persist as strings so they survive a JSON round-trip
		if d, ok := value.(time.Duration); ok {
			value = d.String()
		}

		if err := o.store.Set(key, value); err != nil && setErr == nil {
			setErr = err
		}
	})

	return setErr
}

// PrintUsage prints help information for all registered flags.
func (o *FlagOverlay) PrintUsage() {
	o.flags.PrintHelp()
}

// flagNameToKey converts a flag name to a configuration key
// (e.g. "server-port" -> "server.port").
func flagNameToKey(flagName string) string {
	return strings.ReplaceAll(flagName, "-", ".")
}
