// Package cli provides the command-line interface for Hestia configuration stores.
//
// The CLI operates on the same persistent stores the library manages: every
// command resolves the backing file exactly as hestia.New does, so values
// set here are the values the application reads.
//
// Architecture:
// - Manager: Core CLI orchestration and command routing
// - Handlers: Individual command implementations
// - Utils: Shared utilities for store resolution and value parsing
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"github.com/agilira/orpheus/pkg/orpheus"
)

// Manager provides CLI operations for Hestia configuration stores.
// Built on the Orpheus framework for fast command routing.
type Manager struct {
	app *orpheus.App
}

// NewManager creates a new CLI manager powered by Orpheus.
// Provides git-style subcommands over a resolved configuration store.
func NewManager() *Manager {
	app := orpheus.New("hestia").
		SetDescription("Persistent hierarchical configuration store management").
		SetVersion("1.0.0")

	manager := &Manager{
		app: app,
	}

	manager.setupStoreCommands()
	manager.setupUtilityCommands()

	return manager
}

// Run executes the CLI application with the provided arguments.
func (m *Manager) Run(args []string) error {
	return m.app.Run(args)
}

// Command Setup Methods

// setupStoreCommands configures the commands that read and mutate a store.
func (m *Manager) setupStoreCommands() {
	// get <key>
	getCmd := orpheus.NewCommand("get", "Get a configuration value by dot-notation key")
	getCmd.SetHandler(m.handleGet)
	addStoreFlags(getCmd)
	m.app.AddCommand(getCmd)

	// set <key> <value>
	setCmd := orpheus.NewCommand("set", "Set a configuration value (persisted atomically)")
	setCmd.SetHandler(m.handleSet)
	addStoreFlags(setCmd)
	m.app.AddCommand(setCmd)

	// delete <key>
	deleteCmd := orpheus.NewCommand("delete", "Delete a configuration key")
	deleteCmd.SetHandler(m.handleDelete)
	addStoreFlags(deleteCmd)
	m.app.AddCommand(deleteCmd)

	// has <key>
	hasCmd := orpheus.NewCommand("has", "Check whether a configuration key exists")
	hasCmd.SetHandler(m.handleHas)
	addStoreFlags(hasCmd)
	m.app.AddCommand(hasCmd)

	// list [--prefix=]
	listCmd := orpheus.NewCommand("list", "List configuration keys and values")
	listCmd.SetHandler(m.handleList)
	listCmd.AddFlag("prefix", "p", "", "Key prefix filter")
	addStoreFlags(listCmd)
	m.app.AddCommand(listCmd)

	// clear [--yes]
	clearCmd := orpheus.NewCommand("clear", "Remove every key from the store")
	clearCmd.SetHandler(m.handleClear)
	clearCmd.AddBoolFlag("yes", "y", false, "Skip confirmation")
	addStoreFlags(clearCmd)
	m.app.AddCommand(clearCmd)

	// reset [key...]
	resetCmd := orpheus.NewCommand("reset", "Reset keys to their default values")
	resetCmd.SetHandler(m.handleReset)
	addStoreFlags(resetCmd)
	m.app.AddCommand(resetCmd)
}

// setupUtilityCommands configures diagnostics and maintenance commands.
func (m *Manager) setupUtilityCommands() {
	// path
	pathCmd := orpheus.NewCommand("path", "Print the backing file path of the store")
	pathCmd.SetHandler(m.handlePath)
	addStoreFlags(pathCmd)
	m.app.AddCommand(pathCmd)

	// dump
	dumpCmd := orpheus.NewCommand("dump", "Print the whole configuration document as JSON")
	dumpCmd.SetHandler(m.handleDump)
	addStoreFlags(dumpCmd)
	m.app.AddCommand(dumpCmd)

	// completion <shell>
	completionCmd := orpheus.NewCommand("completion", "Generate shell completion scripts")
	completionCmd.SetHandler(m.handleCompletion)
	m.app.AddCommand(completionCmd)
}

// addStoreFlags attaches the store-resolution flags shared by every command
// that opens a store.
func addStoreFlags(cmd *orpheus.Command) {
	cmd.AddFlag("dir", "d", "", "Explicit store directory (overrides project resolution)")
	cmd.AddFlag("project", "P", "", "Project name for directory resolution")
	cmd.AddFlag("name", "n", "config", "Configuration file name without extension")
	cmd.AddFlag("format", "f", "json", "File format (json|yaml)")
}
