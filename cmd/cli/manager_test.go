// manager_test.go: Tests for CLI command routing over a real store
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"path/filepath"
	"testing"

	"github.com/agilira/hestia"
)

// TestNewManager tests manager construction
func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager returned nil")
	}
	if manager.app == nil {
		t.Fatal("manager has no app")
	}
}

// TestCLISetAndGet tests the set/get round-trip through command routing
func TestCLISetAndGet(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager()

	if err := manager.Run([]string{"set", "server.port", "9090", "--dir", dir}); err != nil {
		t.Fatalf("set command failed: %v", err)
	}

	if err := manager.Run([]string{"get", "server.port", "--dir", dir}); err != nil {
		t.Fatalf("get command failed: %v", err)
	}

	// The CLI wrote through the same store the library reads
	store, err := hestia.New(hestia.Options{Dir: dir})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if port, err := store.GetInt("server.port"); err != nil || port != 9090 {
		t.Errorf("server.port = (%d, %v), want 9090", port, err)
	}
}

// TestCLISetEmptyValue tests that an explicitly empty value is stored as an
// empty string rather than rejected as a usage error
func TestCLISetEmptyValue(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager()

	if err := manager.Run([]string{"set", "greeting", "", "--dir", dir}); err != nil {
		t.Fatalf("set with empty value failed: %v", err)
	}

	store, err := hestia.New(hestia.Options{Dir: dir})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if !store.Has("greeting") {
		t.Fatal("empty-valued key was not stored")
	}
	if got := store.Get("greeting"); got != "" {
		t.Errorf("greeting = %v (%T), want empty string", got, got)
	}

	// A missing key is still a usage error
	if err := manager.Run([]string{"set", "", "--dir", dir}); err == nil {
		t.Error("set without a key should fail")
	}
}

// TestCLIGetMissingKey tests the error path for absent keys
func TestCLIGetMissingKey(t *testing.T) {
	manager := NewManager()

	if err := manager.Run([]string{"get", "missing", "--dir", t.TempDir()}); err == nil {
		t.Error("get on missing key should fail")
	}
}

// TestCLIDelete tests key deletion
func TestCLIDelete(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager()

	if err := manager.Run([]string{"set", "color", "dark", "--dir", dir}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := manager.Run([]string{"delete", "color", "--dir", dir}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := manager.Run([]string{"delete", "color", "--dir", dir}); err == nil {
		t.Error("deleting an absent key should fail from the CLI")
	}
}

// TestCLIHas tests existence checks
func TestCLIHas(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager()

	if err := manager.Run([]string{"has", "color", "--dir", dir}); err == nil {
		t.Error("has on absent key should exit non-zero")
	}

	if err := manager.Run([]string{"set", "color", "dark", "--dir", dir}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := manager.Run([]string{"has", "color", "--dir", dir}); err != nil {
		t.Errorf("has on present key failed: %v", err)
	}
}

// TestCLIClearRequiresConfirmation tests the --yes guard
func TestCLIClearRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager()

	if err := manager.Run([]string{"set", "a", "1", "--dir", dir}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := manager.Run([]string{"clear", "--dir", dir}); err == nil {
		t.Error("clear without --yes should fail")
	}

	if err := manager.Run([]string{"clear", "--yes", "--dir", dir}); err != nil {
		t.Errorf("clear --yes failed: %v", err)
	}

	store, _ := hestia.New(hestia.Options{Dir: dir})
	defer func() { _ = store.Close() }()
	if store.Size() != 0 {
		t.Errorf("store size after clear = %d, want 0", store.Size())
	}
}

// TestCLIList tests key listing including the empty case
func TestCLIList(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager()

	if err := manager.Run([]string{"list", "--dir", dir}); err != nil {
		t.Errorf("list on empty store failed: %v", err)
	}

	_ = manager.Run([]string{"set", "a.b", "1", "--dir", dir})
	if err := manager.Run([]string{"list", "--prefix", "a.", "--dir", dir}); err != nil {
		t.Errorf("list with prefix failed: %v", err)
	}
}

// TestCLIPathAndDump tests the diagnostic commands
func TestCLIPathAndDump(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager()

	if err := manager.Run([]string{"path", "--dir", dir}); err != nil {
		t.Errorf("path command failed: %v", err)
	}
	if err := manager.Run([]string{"dump", "--dir", dir}); err != nil {
		t.Errorf("dump command failed: %v", err)
	}
}

// TestCLIYAMLFormat tests the --format flag
func TestCLIYAMLFormat(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager()

	if err := manager.Run([]string{"set", "a", "1", "--format", "yaml", "--dir", dir}); err != nil {
		t.Fatalf("set with yaml format failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil || len(matches) != 1 {
		t.Errorf("expected one .yaml backing file, got %v (%v)", matches, err)
	}
}

// TestCLIUnsupportedFormat tests format validation
func TestCLIUnsupportedFormat(t *testing.T) {
	manager := NewManager()

	if err := manager.Run([]string{"set", "a", "1", "--format", "toml", "--dir", t.TempDir()}); err == nil {
		t.Error("unsupported format should fail")
	}
}
