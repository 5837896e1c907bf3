// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package pylib reads and writes Quarry's native Python library
// descriptor (.pylib files).
//
// A descriptor is a structured record of a built python_library target:
// the base directory its sources are rooted at, plus an ordered list of
// (path, digest) pairs. Descriptors are authored as JSONC (JSON with //
// comments and trailing commas allowed) and are schema-validated on
// read — they are plain data and are never evaluated.
//
// The typical flow:
//
//  1. Build: scan source files, digest each, produce a Library
//  2. WriteFile: persist the descriptor next to the built target
//  3. ReadFile: the binary composer parses descriptors listed as inputs
package pylib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/tidwall/jsonc"

	"github.com/quarry-build/quarry/lib/digest"
)

// Suffix is the file suffix identifying a library descriptor.
const Suffix = ".pylib"

// Source is one (path, digest) pair in a descriptor. On the wire it is
// a two-element JSON array: ["pkg/mod.py", "<hex digest>"].
type Source struct {
	// Path is the source file's location, relative to the build root.
	Path string

	// Digest is the BLAKE3 content digest recorded when the library
	// was built.
	Digest digest.Digest
}

// MarshalJSON encodes the source as a two-element array.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{s.Path, s.Digest.String()})
}

// UnmarshalJSON decodes and validates the two-element array form.
func (s *Source) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("srcs entry must be a [path, digest] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("srcs entry has %d elements, want 2", len(pair))
	}
	if pair[0] == "" {
		return fmt.Errorf("srcs entry has an empty path")
	}
	parsed, err := digest.Parse(pair[1])
	if err != nil {
		return fmt.Errorf("srcs entry %q: %w", pair[0], err)
	}
	s.Path = pair[0]
	s.Digest = parsed
	return nil
}

// Library is a parsed descriptor.
type Library struct {
	// BaseDir is the directory the source paths are resolved against
	// when computing archive destinations.
	BaseDir string `json:"base_dir"`

	// Sources lists the library's files in build order.
	Sources []Source `json:"srcs"`
}

// Validate performs the structural checks that field-level decoding
// cannot express: source paths must be relative (destinations inside
// the composed bundle are derived from them).
func (l *Library) Validate() error {
	for _, source := range l.Sources {
		if path.IsAbs(source.Path) {
			return fmt.Errorf("srcs entry %q is absolute, want a relative path", source.Path)
		}
	}
	return nil
}

// Build constructs a Library by digesting each source file.
func Build(baseDir string, sourcePaths []string) (Library, error) {
	library := Library{BaseDir: baseDir}
	for _, sourcePath := range sourcePaths {
		sourceDigest, err := digest.HashFile(sourcePath)
		if err != nil {
			return Library{}, err
		}
		library.Sources = append(library.Sources, Source{Path: sourcePath, Digest: sourceDigest})
	}
	return library, nil
}

// Parse decodes and validates descriptor bytes. Comments and trailing
// commas are stripped first; unknown fields are rejected.
func Parse(data []byte) (*Library, error) {
	stripped := jsonc.ToJSON(data)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.DisallowUnknownFields()

	var library Library
	if err := decoder.Decode(&library); err != nil {
		return nil, fmt.Errorf("parsing library descriptor: %w", err)
	}
	if err := library.Validate(); err != nil {
		return nil, fmt.Errorf("invalid library descriptor: %w", err)
	}
	return &library, nil
}

// ReadFile reads and parses a descriptor from disk.
func ReadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	library, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return library, nil
}

// WriteFile persists the descriptor at path in its canonical indented
// form.
func WriteFile(path string, library Library) error {
	data, err := json.MarshalIndent(library, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding library descriptor: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
