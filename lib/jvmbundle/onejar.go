// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package jvmbundle composes runnable JVM archives.
//
// The central operation is ComposeOneJar, which merges a bootstrap
// loader jar, a main application jar, and N dependency jars into one
// runnable archive. The loader's resident classes are copied in first
// and therefore take precedence; the application and dependency jars
// are nested whole under main/ and lib/ for the loader to open at run
// time, while their non-class resources are flattened into the archive
// root so ordinary resource lookups keep working. Name conflicts
// resolve first-wins in processing order: loader, then main jar, then
// dependencies as listed.
package jvmbundle

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quarry-build/quarry/lib/archive"
	"github.com/quarry-build/quarry/lib/entryset"
)

// BootMainClass is the loader class declared as the archive's runtime
// entry point. The loader reads the One-Jar-Main-Class manifest
// attribute at startup to locate the real application entry point.
const BootMainClass = "com.simontuffs.onejar.Boot"

// manifestEntryName is the jar manifest path inside the archive.
const manifestEntryName = "META-INF/MANIFEST.MF"

// OneJarOptions configures a one-jar composition.
type OneJarOptions struct {
	// OutputPath is where the runnable archive is written.
	OutputPath string

	// MainClass is the application's true entry point, recorded as
	// the One-Jar-Main-Class manifest attribute.
	MainClass string

	// BootJar is the bootstrap loader archive.
	BootJar string

	// MainJar is the main application archive.
	MainJar string

	// DepJars are the dependency archives, in classpath order.
	DepJars []string

	// CompressionLevel is the deflate level for newly written
	// entries. 0 selects the library default.
	CompressionLevel int

	// Logger receives per-entry debug events. Nil discards them.
	Logger *slog.Logger
}

// ComposeOneJar writes the runnable archive described by options.
func ComposeOneJar(options OneJarOptions) error {
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

	// Loader classes first: everything except the loader's own
	// manifest, so its entries take precedence over all later sources.
	if err := copyJarEntries(writer, claimed, options.BootJar, func(name string) bool {
		return !strings.HasSuffix(strings.ToLower(name), "manifest.mf")
	}, logger); err != nil {
		return err
	}

	// Nest the application and dependency jars whole. The loader
	// unpacks these at run time; their classes are never flattened.
	if err := nestJar(writer, claimed, "main", options.MainJar, logger); err != nil {
		return err
	}
	for _, depJar := range options.DepJars {
		if err := nestJar(writer, claimed, "lib", depJar, logger); err != nil {
			return err
		}
	}

	// Flatten resources: anything that is neither a compiled class
	// nor jar metadata is exposed at the archive root, first-wins.
	keepResource := func(name string) bool {
		if strings.HasSuffix(name, ".class") {
			return false
		}
		return !strings.HasPrefix(strings.ToUpper(name), "META-INF")
	}
	for _, jarPath := range append([]string{options.MainJar}, options.DepJars...) {
		if err := copyJarEntries(writer, claimed, jarPath, keepResource, logger); err != nil {
			return err
		}
	}

	manifest := fmt.Sprintf("Manifest-Version: 1.0\nMain-Class: %s\nOne-Jar-Main-Class: %s\n\n",
		BootMainClass, options.MainClass)
	entry, err := writer.Create(manifestEntryName)
	if err != nil {
		return fmt.Errorf("creating %s: %w", manifestEntryName, err)
	}
	if _, err := entry.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("writing %s: %w", manifestEntryName, err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", options.OutputPath, err)
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", options.OutputPath, err)
	}

	logger.Info("composed one-jar archive",
		"output", options.OutputPath,
		"main_class", options.MainClass,
		"dependencies", len(options.DepJars),
		"entries", claimed.Len())
	return nil
}

// copyJarEntries copies entries of the jar at jarPath into writer,
// applying keep and first-wins deduplication.
func copyJarEntries(writer *zip.Writer, claimed *entryset.Set, jarPath string, keep func(string) bool, logger *slog.Logger) error {
	reader, err := zip.OpenReader(jarPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", jarPath, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		name := file.Name
		if !keep(name) {
			continue
		}
		if !claimed.Claim(name) {
			logger.Debug("duplicate entry dropped", "entry", name, "source", jarPath)
			continue
		}

		content, err := file.Open()
		if err != nil {
			return fmt.Errorf("%s: opening entry %s: %w", jarPath, name, err)
		}
		entry, err := writer.Create(name)
		if err != nil {
			content.Close()
			return fmt.Errorf("creating entry %s: %w", name, err)
		}
		if _, err := io.Copy(entry, content); err != nil {
			content.Close()
			return fmt.Errorf("%s: copying entry %s: %w", jarPath, name, err)
		}
		content.Close()
	}
	return nil
}

// nestJar stores the raw bytes of the jar at jarPath under
// <prefix>/<basename>. The nested jar is already compressed, so it is
// stored rather than deflated again. First-wins applies to the nested
// name too: a second jar with the same basename is dropped, not
// written as a duplicate entry.
func nestJar(writer *zip.Writer, claimed *entryset.Set, prefix, jarPath string, logger *slog.Logger) error {
	entryName := prefix + "/" + filepath.Base(jarPath)
	if !claimed.Claim(entryName) {
		logger.Warn("duplicate nested jar dropped", "entry", entryName, "source", jarPath)
		return nil
	}

	data, err := os.ReadFile(jarPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", jarPath, err)
	}

	entry, err := writer.CreateHeader(&zip.FileHeader{
		Name:   entryName,
		Method: zip.Store,
	})
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", entryName, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("writing entry %s: %w", entryName, err)
	}
	return nil
}
