// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package jvmbundle

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quarry-build/quarry/lib/archive"
	"github.com/quarry-build/quarry/lib/entryset"
)

// JarOptions configures a resource-jar composition.
type JarOptions struct {
	// OutputPath is where the jar is written.
	OutputPath string

	// ClassesJar optionally seeds the output with an already-compiled
	// classes archive. Its entries take precedence over resources.
	ClassesJar string

	// ResourcesDir is the directory resource destinations are
	// computed against.
	ResourcesDir string

	// Resources are the resource files to add, each placed at its
	// path relative to ResourcesDir.
	Resources []string

	// CompressionLevel is the deflate level. 0 selects the library
	// default.
	CompressionLevel int

	// Logger receives per-entry debug events. Nil discards them.
	Logger *slog.Logger
}

// ComposeJar builds a jar from an optional classes archive plus
// resource files, entirely in-process — no external jar tool is
// invoked. First-wins applies: a resource whose destination collides
// with a classes entry is dropped.
func ComposeJar(options JarOptions) error {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	output, err := os.Create(options.OutputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", options.OutputPath, err)
	}
	defer output.Close()

	writer := archive.NewZipWriter(output, options.CompressionLevel)
	claimed := entryset.New()

	if options.ClassesJar != "" {
		keepAll := func(string) bool { return true }
		if err := copyJarEntries(writer, claimed, options.ClassesJar, keepAll, logger); err != nil {
			return err
		}
	}

	for _, resource := range options.Resources {
		relative, err := filepath.Rel(options.ResourcesDir, resource)
		if err != nil {
			return fmt.Errorf("resource %q is not relative to %q: %w",
				resource, options.ResourcesDir, err)
		}
		entryName := filepath.ToSlash(relative)

		if !claimed.Claim(entryName) {
			logger.Debug("duplicate entry dropped", "entry", entryName, "source", resource)
			continue
		}

		data, err := os.ReadFile(resource)
		if err != nil {
			return fmt.Errorf("reading resource %s: %w", resource, err)
		}
		entry, err := writer.Create(entryName)
		if err != nil {
			return fmt.Errorf("creating entry %s: %w", entryName, err)
		}
		if _, err := entry.Write(data); err != nil {
			return fmt.Errorf("writing entry %s: %w", entryName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", options.OutputPath, err)
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", options.OutputPath, err)
	}

	logger.Info("composed jar", "output", options.OutputPath, "entries", claimed.Len())
	return nil
}
