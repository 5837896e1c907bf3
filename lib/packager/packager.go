// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package packager implements generic N-source packaging: a list of
// already-built files is copied into a single container (zip or tar
// family, selected by the output suffix) with an embedded integrity
// manifest pairing each file's digest with its destination path.
package packager

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/quarry-build/quarry/lib/archive"
)

// Options configures a packaging run.
type Options struct {
	// OutputPath is the container to write; its suffix selects the
	// format.
	OutputPath string

	// CompressionLevel is passed through to the container writer.
	// 0 selects the library default.
	CompressionLevel int

	// Logger receives a completion event. Nil discards it.
	Logger *slog.Logger
}

// SplitHalves splits the trailing argument list into equal source and
// destination halves (sources first). An odd-length list is a
// precondition violation: the orchestrator always supplies matched
// pairs, so there is nothing sensible to recover.
func SplitHalves(args []string) (sources, destinations []string, err error) {
	if len(args)%2 != 0 {
		return nil, nil, fmt.Errorf("argument list has %d entries, want matched source/destination halves", len(args))
	}
	middle := len(args) / 2
	return args[:middle], args[middle:], nil
}

// Compose packages sources[i] at destinations[i] into the container at
// Options.OutputPath and embeds the manifest.
func Compose(options Options, sources, destinations []string) error {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(sources) != len(destinations) {
		return fmt.Errorf("%d sources but %d destinations", len(sources), len(destinations))
	}

	writer, err := archive.Open(options.OutputPath, archive.Options{
		CompressionLevel: options.CompressionLevel,
	})
	if err != nil {
		return err
	}

	for i, source := range sources {
		if err := writer.AddFile(source, destinations[i]); err != nil {
			return err
		}
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	logger.Info("packaged sources",
		"output", options.OutputPath,
		"sources", len(sources))
	return nil
}
