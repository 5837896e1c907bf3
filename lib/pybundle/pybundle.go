// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package pybundle composes self-contained Python bundles.
//
// A bundle merges heterogeneous library sources — Quarry's native
// .pylib descriptors, .egg archives, and .whl wheels — into one zip,
// then prefixes an executable shell prologue so the result runs
// directly (see lib/selfexec). Sources are processed strictly in input
// order with first-wins deduplication: the first source to claim an
// entry name owns it, and later claimants are silently dropped.
//
// Before finalizing, every directory that holds at least one entry but
// no __init__.py receives a synthesized empty one, and so does the
// bundle root, making every directory a proper importable package.
package pybundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quarry-build/quarry/lib/archive"
	"github.com/quarry-build/quarry/lib/digest"
	"github.com/quarry-build/quarry/lib/entryset"
	"github.com/quarry-build/quarry/lib/exclusion"
	"github.com/quarry-build/quarry/lib/pylib"
	"github.com/quarry-build/quarry/lib/selfexec"
)

// MarkerName is the namespace marker synthesized into marker-less
// directories.
const MarkerName = "__init__.py"

// Source suffixes for the two foreign packaging formats.
const (
	eggSuffix   = ".egg"
	wheelSuffix = ".whl"
)

// Options configures a bundle composition.
type Options struct {
	// OutputPath is where the self-invoking bundle is written.
	OutputPath string

	// EntryModule is the module the bootstrap prologue executes
	// (python -m <EntryModule>).
	EntryModule string

	// Interpreter overrides the runtime named in the prologue.
	// Empty selects DefaultInterpreter.
	Interpreter string

	// Exclusions filters entry paths out of the bundle.
	Exclusions exclusion.Set

	// CompressionLevel is the deflate level for the bundle zip.
	// 0 selects the library default.
	CompressionLevel int

	// Logger receives per-entry debug events and digest-mismatch
	// warnings. Nil discards them.
	Logger *slog.Logger
}

// Compose merges the given sources into a self-invoking bundle at
// Options.OutputPath. Each source must be a .pylib descriptor, a .egg
// archive, or a .whl wheel; anything else is a precondition violation
// and aborts the whole operation.
func Compose(options Options, sources []string) error {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var buffer bytes.Buffer
	bundle := archive.NewZipWriter(&buffer, options.CompressionLevel)
	claimed := entryset.New()
	markers := newMarkerSet()

	for _, source := range sources {
		var err error
		switch {
		case strings.HasSuffix(source, pylib.Suffix):
			err = addLibrary(bundle, claimed, markers, source, options.Exclusions, logger)
		case strings.HasSuffix(source, eggSuffix):
			err = addEgg(bundle, claimed, source, options.Exclusions, logger)
		case strings.HasSuffix(source, wheelSuffix):
			err = addWheel(bundle, claimed, markers, source, options.Exclusions, logger)
		default:
			err = fmt.Errorf("input %q has no recognized bundle source format (want %s, %s, or %s)",
				source, pylib.Suffix, eggSuffix, wheelSuffix)
		}
		if err != nil {
			return err
		}
	}

	// Synthesize missing namespace markers, including one at the
	// bundle root. A marker name already claimed by a source (for
	// example an egg, which skips marker bookkeeping) is left alone.
	for _, dir := range markers.Missing() {
		name := dir + "/" + MarkerName
		if !claimed.Claim(name) {
			continue
		}
		if err := writeEntry(bundle, name, nil); err != nil {
			return err
		}
	}
	if claimed.Claim(MarkerName) {
		if err := writeEntry(bundle, MarkerName, nil); err != nil {
			return err
		}
	}

	if err := bundle.Close(); err != nil {
		return fmt.Errorf("finalizing bundle archive: %w", err)
	}

	prologue := Prologue(options.Interpreter, options.EntryModule)
	if err := selfexec.Prepend(options.OutputPath, prologue, buffer.Bytes()); err != nil {
		return err
	}

	logger.Info("composed python bundle",
		"output", options.OutputPath,
		"sources", len(sources),
		"entries", claimed.Len())
	return nil
}

// addLibrary merges a native .pylib descriptor. Each listed source is
// placed at its path relative to the descriptor's recorded base
// directory.
func addLibrary(bundle *zip.Writer, claimed *entryset.Set, markers *markerSet, descriptorPath string, exclusions exclusion.Set, logger *slog.Logger) error {
	library, err := pylib.ReadFile(descriptorPath)
	if err != nil {
		return err
	}

	baseDir := library.BaseDir
	if baseDir == "" {
		baseDir = "."
	}

	for _, source := range library.Sources {
		relative, err := filepath.Rel(baseDir, source.Path)
		if err != nil {
			return fmt.Errorf("%s: source %q is not relative to base_dir %q: %w",
				descriptorPath, source.Path, library.BaseDir, err)
		}
		entryName := filepath.ToSlash(relative)

		if exclusions.Excluded(entryName) {
			logger.Debug("entry excluded", "entry", entryName, "source", descriptorPath)
			continue
		}
		if !claimed.Claim(entryName) {
			logger.Debug("duplicate entry dropped", "entry", entryName, "source", descriptorPath)
			continue
		}
		markers.Note(entryName)

		data, err := os.ReadFile(source.Path)
		if err != nil {
			return fmt.Errorf("%s: reading source %s: %w", descriptorPath, source.Path, err)
		}
		if digest.HashBytes(data) != source.Digest {
			logger.Warn("source content differs from descriptor digest",
				"descriptor", descriptorPath, "source", source.Path)
		}
		if err := writeEntry(bundle, entryName, data); err != nil {
			return err
		}
	}
	return nil
}

// addEgg merges a .egg archive, skipping its EGG-INFO metadata
// directory and precompiled .pyc entries. Eggs carry their own package
// layout, so they do not participate in marker bookkeeping.
func addEgg(bundle *zip.Writer, claimed *entryset.Set, eggPath string, exclusions exclusion.Set, logger *slog.Logger) error {
	keep := func(name string) bool {
		return !strings.HasPrefix(name, "EGG-INFO") && !strings.HasSuffix(name, ".pyc")
	}
	return addZipSource(bundle, claimed, nil, eggPath, exclusions, keep, logger)
}

// addWheel merges a .whl archive, skipping its *.dist-info metadata
// directory. Other metadata-adjacent directories (such as *.data) are
// deliberately not skipped.
func addWheel(bundle *zip.Writer, claimed *entryset.Set, markers *markerSet, wheelPath string, exclusions exclusion.Set, logger *slog.Logger) error {
	keep := func(name string) bool {
		return !strings.Contains(name, ".dist-info/")
	}
	return addZipSource(bundle, claimed, markers, wheelPath, exclusions, keep, logger)
}

// addZipSource merges entries from a zip-packaged source. markers may
// be nil for formats that do not participate in marker bookkeeping.
func addZipSource(bundle *zip.Writer, claimed *entryset.Set, markers *markerSet, sourcePath string, exclusions exclusion.Set, keep func(string) bool, logger *slog.Logger) error {
	reader, err := zip.OpenReader(sourcePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", sourcePath, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		name := file.Name
		if !keep(name) {
			continue
		}
		if exclusions.Excluded(name) {
			logger.Debug("entry excluded", "entry", name, "source", sourcePath)
			continue
		}
		if !claimed.Claim(name) {
			logger.Debug("duplicate entry dropped", "entry", name, "source", sourcePath)
			continue
		}
		if markers != nil {
			markers.Note(name)
		}

		content, err := file.Open()
		if err != nil {
			return fmt.Errorf("%s: opening entry %s: %w", sourcePath, name, err)
		}
		entry, err := bundle.Create(name)
		if err != nil {
			content.Close()
			return fmt.Errorf("creating bundle entry %s: %w", name, err)
		}
		if _, err := io.Copy(entry, content); err != nil {
			content.Close()
			return fmt.Errorf("%s: copying entry %s: %w", sourcePath, name, err)
		}
		content.Close()
	}
	return nil
}

func writeEntry(bundle *zip.Writer, name string, data []byte) error {
	entry, err := bundle.Create(name)
	if err != nil {
		return fmt.Errorf("creating bundle entry %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("writing bundle entry %s: %w", name, err)
	}
	return nil
}
