// Command handlers for the Hestia CLI
//
// Each handler resolves the target store from the shared flags, performs one
// store operation, and prints a human-readable result. Structured values are
// rendered as JSON.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"

	"github.com/agilira/go-errors"
	"github.com/agilira/hestia"
	"github.com/agilira/orpheus/pkg/orpheus"
)

// handleGet retrieves a configuration value using dot notation.
func (m *Manager) handleGet(ctx *orpheus.Context) error {
	key := ctx.GetArg(0)
	if key == "" {
		return errors.New(hestia.ErrCodeInvalidKey, "usage: hestia get <key>")
	}

	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	value := store.Get(key)
	if value == nil && !store.Has(key) {
		return errors.New(hestia.ErrCodeInvalidKey, fmt.Sprintf("key '%s' not found", key))
	}

	fmt.Println(formatValue(value))
	return nil
}

// handleSet sets a configuration value and persists it atomically.
func (m *Manager) handleSet(ctx *orpheus.Context) error {
	key := ctx.GetArg(0)
	if key == "" {
		return errors.New(hestia.ErrCodeInvalidKey, "usage: hestia set <key> <value>")
	}
	// An explicitly empty value is valid and stores an empty string.
	raw := ctx.GetArg(1)

	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Parse value automatically (bool, int, float, string)
	value := parseValue(raw)

	if err := store.Set(key, value); err != nil {
		return errors.Wrap(err, hestia.ErrCodeInvalidValue, "failed to set value")
	}

	fmt.Printf("Set %s = %v in %s\n", key, value, store.Path())
	return nil
}

// handleDelete removes a configuration key and persists the change.
func (m *Manager) handleDelete(ctx *orpheus.Context) error {
	key := ctx.GetArg(0)
	if key == "" {
		return errors.New(hestia.ErrCodeInvalidKey, "usage: hestia delete <key>")
	}

	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if !store.Has(key) {
		return errors.New(hestia.ErrCodeInvalidKey, fmt.Sprintf("key '%s' not found", key))
	}

	if err := store.Delete(key); err != nil {
		return errors.Wrap(err, hestia.ErrCodeIOError, "failed to delete key")
	}

	fmt.Printf("Deleted %s from %s\n", key, store.Path())
	return nil
}

// handleHas reports whether a key exists. Exits non-zero when absent so the
// command composes in shell scripts.
func (m *Manager) handleHas(ctx *orpheus.Context) error {
	key := ctx.GetArg(0)
	if key == "" {
		return errors.New(hestia.ErrCodeInvalidKey, "usage: hestia has <key>")
	}

	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if !store.Has(key) {
		fmt.Println("false")
		return errors.New(hestia.ErrCodeInvalidKey, fmt.Sprintf("key '%s' not found", key))
	}

	fmt.Println("true")
	return nil
}

// handleList lists leaf keys with their values, optionally filtered by prefix.
func (m *Manager) handleList(ctx *orpheus.Context) error {
	prefix := ctx.GetFlagString("prefix")

	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	keys := store.Keys(prefix)
	if len(keys) == 0 {
		if prefix != "" {
			fmt.Printf("No keys found with prefix '%s'\n", prefix)
		} else {
			fmt.Println("No configuration keys found")
		}
		return nil
	}

	fmt.Printf("Configuration keys in %s:\n", store.Path())
	for _, key := range keys {
		fmt.Printf("  %s = %s\n", key, formatValue(store.Get(key)))
	}
	return nil
}

// handleClear removes every key from the store.
func (m *Manager) handleClear(ctx *orpheus.Context) error {
	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if !ctx.GetFlagBool("yes") {
		return errors.New(hestia.ErrCodeInvalidConfig,
			fmt.Sprintf("refusing to clear %s without --yes", store.Path()))
	}

	size := store.Size()
	if err := store.Clear(); err != nil {
		return errors.Wrap(err, hestia.ErrCodeIOError, "failed to clear store")
	}

	fmt.Printf("Cleared %d top-level keys from %s\n", size, store.Path())
	return nil
}

// handleReset restores keys to their default values. With no keys, nothing
// happens; defaults come from the application, not the CLI.
func (m *Manager) handleReset(ctx *orpheus.Context) error {
	var keys []string
	for i := 0; ; i++ {
		arg := ctx.GetArg(i)
		if arg == "" {
			break
		}
		keys = append(keys, arg)
	}
	if len(keys) == 0 {
		return errors.New(hestia.ErrCodeInvalidKey, "usage: hestia reset <key> [key...]")
	}

	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Reset(keys...); err != nil {
		return errors.Wrap(err, hestia.ErrCodeIOError, "failed to reset keys")
	}

	fmt.Printf("Reset %d keys in %s\n", len(keys), store.Path())
	return nil
}

// handlePath prints the backing file path in use.
func (m *Manager) handlePath(ctx *orpheus.Context) error {
	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fmt.Println(store.Path())
	return nil
}

// handleDump prints the whole effective document as indented JSON.
func (m *Manager) handleDump(ctx *orpheus.Context) error {
	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fmt.Println(formatValue(store.All()))
	return nil
}

// handleCompletion generates shell completion scripts.
func (m *Manager) handleCompletion(ctx *orpheus.Context) error {
	shell := ctx.GetArg(0)

	switch shell {
	case "bash":
		fmt.Printf("# Bash completion for hestia\n")
		fmt.Printf("# Add to ~/.bashrc: source <(hestia completion bash)\n")
		fmt.Printf("_hestia_completion() {\n")
		fmt.Printf("  COMPREPLY=($(compgen -W 'get set delete has list clear reset path dump completion' -- \"${COMP_WORDS[COMP_CWORD]}\"))\n")
		fmt.Printf("}\n")
		fmt.Printf("complete -F _hestia_completion hestia\n")
	case "zsh":
		fmt.Printf("# Zsh completion for hestia\n")
		fmt.Printf("# Add to ~/.zshrc: source <(hestia completion zsh)\n")
		fmt.Printf("#compdef hestia\n")
		fmt.Printf("_hestia() {\n")
		fmt.Printf("  _arguments '1: :(get set delete has list clear reset path dump completion)'\n")
		fmt.Printf("}\n")
	case "fish":
		fmt.Printf("# Fish completion for hestia\n")
		fmt.Printf("complete -c hestia -f -a 'get set delete has list clear reset path dump completion'\n")
	default:
		return errors.New(hestia.ErrCodeInvalidConfig, fmt.Sprintf("unsupported shell: %s", shell))
	}

	return nil
}
