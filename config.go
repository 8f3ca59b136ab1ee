// config.go: Construction options for the Hestia configuration store
//
// Copyright (c) 2025 AGILira
// Series: AGILira System Libraries
// SPDX-License-Identifier: MPL-2.0

package hestia

// Format identifies the on-disk serialization of the backing file.
type Format int

const (
	// FormatJSON persists the document as pretty-printed JSON (default).
	FormatJSON Format = iota

	// FormatYAML persists the document as YAML.
	FormatYAML
)

// String returns the format name for debugging and logging.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// Ext returns the file extension used for the backing file.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	default:
		return ".json"
	}
}

// Resolver produces the storage directory for a store. Supplying one
// replaces the built-in resolution chain, so the core never has to
// introspect its caller.
type Resolver func() (string, error)

// Options configures a Store. The zero value is usable: the backing file
// lands in a project-specific directory under the user configuration
// directory, named "config.json".
type Options struct {
	// Dir overrides the storage directory. Used verbatim when set.
	Dir string

	// ProjectName names the application; it determines the app-data
	// directory when Dir is empty. When both are empty the name is derived
	// from the nearest go.mod, then the executable, then a fixed fallback.
	ProjectName string

	// ConfigName is the base file name without extension.
	// Default: "config"
	ConfigName string

	// Format selects the on-disk serialization.
	// Default: FormatJSON
	Format Format

	// Defaults is merged under the persisted document at construction:
	// persisted values win on conflict, unrelated default keys survive.
	Defaults map[string]interface{}

	// Resolver, when set, replaces the directory resolution chain.
	// A Resolver error falls through to the built-in chain.
	Resolver Resolver

	// Migrations are applied in ascending Version order when the persisted
	// document is older than the highest registered version.
	Migrations []Migration

	// Journal configures the optional mutation journal.
	// Disabled by default; journal faults never fail store operations.
	Journal JournalConfig
}

// WithDefaults applies sensible defaults to the options.
func (o *Options) WithDefaults() *Options {
	opts := *o

	if opts.ConfigName == "" {
		opts.ConfigName = "config"
	}

	if opts.Format != FormatJSON && opts.Format != FormatYAML {
		opts.Format = FormatJSON
	}

	return &opts
}
