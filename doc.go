// Package hestia provides persistent, hierarchical configuration storage
// for Go applications: a nested document addressed by dot-notation paths,
// persisted atomically to disk, with defaults overlay, change notification,
// versioned migrations, and an optional mutation journal.
//
// # Philosophy: Configuration That Survives the Process
//
// Hestia is built on the principle that application settings should outlive
// the process that wrote them. Every mutation is persisted immediately with
// an atomic write, so a crash never leaves a half-written configuration
// file, and the next start sees exactly what the last write produced.
//
// # Architecture Overview
//
// Hestia consists of five integrated subsystems:
//  1. **Path-Addressed Document**: Nested values addressed by dot notation with escaping
//  2. **Atomic Persistence**: Write-through temp-file-and-rename in JSON or YAML
//  3. **Change Notification**: Per-key and whole-document callbacks driven by deep-equality diffing
//  4. **Versioned Migrations**: One-shot document upgrades tracked inside the backing file
//  5. **Mutation Journal**: Optional append-only trail with JSONL and SQLite backends
//
// # Quick Start
//
// Create a store and read and write settings:
//
//	store, err := hestia.New(hestia.Options{
//		ProjectName: "my-app",
//		Defaults: map[string]interface{}{
//			"server": map[string]interface{}{"port": 8080},
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	port, _ := store.GetInt("server.port")   // 8080 from defaults
//	_ = store.Set("server.port", 9090)       // persisted immediately
//
// Dot notation addresses nested values; a literal dot in a segment is
// escaped with a backslash:
//
//	_ = store.Set("ui.theme", "dark")         // {"ui": {"theme": "dark"}}
//	_ = store.Set(`hosts.example\.com`, true) // {"hosts": {"example.com": true}}
//
// # Defaults Overlay
//
// Defaults are merged beneath the persisted document at construction: a
// persisted key always wins, a missing key falls back to its default, and
// Reset restores a key to its default value. GetDefault answers a one-off
// fallback without registering it.
//
// # Change Notification
//
// Callbacks fire after a mutation is persisted, with the old and new values,
// only when the watched value actually changed under deep equality:
//
//	unsubscribe, _ := store.OnDidChange("server.port", func(newV, oldV interface{}) {
//		server.UpdatePort(newV)
//	})
//	defer unsubscribe()
//
//	_, _ = store.OnDidAnyChange(func(newDoc, oldDoc map[string]interface{}) {
//		log.Printf("configuration changed")
//	})
//
// Callbacks run outside the store's lock, so a listener may freely call back
// into the store. Unsubscribe is idempotent.
//
// # Versioned Migrations
//
// Registered migrations run once, at construction, when the persisted
// document is older than the highest registered version:
//
//	store, err := hestia.New(hestia.Options{
//		ProjectName: "my-app",
//		Migrations: []hestia.Migration{
//			{Version: 1, Description: "rename theme key", Migrate: func(doc map[string]interface{}) error {
//				if v, ok := doc["theme"]; ok {
//					doc["ui"] = map[string]interface{}{"theme": v}
//					delete(doc, "theme")
//				}
//				return nil
//			}},
//		},
//	})
//
// # Mutation Journal
//
// The optional journal records every mutating operation with its old and
// new values. A ".db" or ".sqlite" output file selects the SQLite backend;
// anything else is written as JSONL. Journal faults never fail the store
// operation that triggered them.
//
//	store, err := hestia.New(hestia.Options{
//		ProjectName: "my-app",
//		Journal: hestia.JournalConfig{
//			Enabled:    true,
//			OutputFile: "/var/log/my-app/config.db",
//		},
//	})
//
// # Command-Line Integration
//
// FlagOverlay writes explicitly set command-line flags through to the store
// after parsing, so CLI invocations persist their settings:
//
//	overlay := hestia.NewFlagOverlay(store, "my-app").
//		String("server-host", "localhost", "Server host").
//		Int("server-port", 8080, "Server port")
//	if err := overlay.Parse(os.Args[1:]); err != nil {
//		log.Fatal(err)
//	}
//
// # Storage Location
//
// When Options.Dir is empty the store resolves its directory from the
// project name under the user configuration directory (os.UserConfigDir),
// falling back through the module name in go.mod, the executable name, and
// finally a fixed name under the temporary directory. Resolution never
// fails; the backing file and its parents are created lazily on first write.
//
// # Thread Safety
//
// All Store methods are safe for concurrent use. Reads take a shared lock
// and return deep copies, so callers can never mutate the store's internal
// state through a returned value.
//
// Repository: https://github.com/agilira/hestia
package hestia
