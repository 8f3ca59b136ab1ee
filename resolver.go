// resolver.go: Storage directory resolution for the Hestia configuration store
//
// The chain never fails: every step that cannot produce a directory falls
// through to the next, ending in a fixed fallback name. Construction must
// always succeed even when no project name is resolvable.
//
// Order: Options.Dir verbatim, injected Resolver, ProjectName under the user
// configuration directory, module name from the nearest go.mod, executable
// base name, and finally the "hestia" fallback.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// fallbackProjectName is used when nothing else in the chain resolves.
const fallbackProjectName = "hestia"

// resolveDir determines the storage directory for a store.
func resolveDir(opts *Options) string {
	if opts.Dir != "" {
		return opts.Dir
	}

	if opts.Resolver != nil {
		if dir, err := opts.Resolver(); err == nil && dir != "" {
			return dir
		}
	}

	name := opts.ProjectName
	if name == "" {
		name = projectNameFromManifest()
	}
	if name == "" {
		name = projectNameFromExecutable()
	}
	if name == "" {
		name = fallbackProjectName
	}

	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}

	return filepath.Join(base, name)
}

// projectNameFromManifest walks upward from the working directory looking
// for a go.mod and derives a project name from its module path.
// Returns "" when no manifest is found or it cannot be read.
func projectNameFromManifest() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		manifest := filepath.Join(dir, "go.mod")
		if info, err := os.Stat(manifest); err == nil && !info.IsDir() {
			return moduleBaseName(manifest)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// moduleBaseName extracts the final path element of the module directive.
func moduleBaseName(manifestPath string) string {
	f, err := os.Open(manifestPath) // #nosec G304 -- path located by upward go.mod search
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "module") {
			continue
		}
		modulePath := strings.TrimSpace(strings.TrimPrefix(line, "module"))
		modulePath = strings.Trim(modulePath, `"`)
		if modulePath == "" {
			return ""
		}
		if idx := strings.LastIndex(modulePath, "/"); idx >= 0 {
			modulePath = modulePath[idx+1:]
		}
		return sanitizeProjectName(modulePath)
	}

	return ""
}

// projectNameFromExecutable derives a project name from the running binary.
func projectNameFromExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return sanitizeProjectName(name)
}

// sanitizeProjectName strips characters that are unsafe in directory names.
func sanitizeProjectName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".")
}
