// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package exclusion filters archive entry paths against glob patterns.
//
// A Set holds an ordered list of doublestar-compatible glob patterns.
// A candidate path is excluded if it matches any pattern. Two matching
// modes keep the common cases short:
//
//   - A pattern without a slash is matched against the path's final
//     element, so "*.pyc" excludes compiled files at any depth.
//   - A pattern containing a slash is matched against the whole
//     slash-separated path. "**" spans directory boundaries, so
//     "vendor/**" excludes everything under vendor/.
//
// A malformed pattern never matches anything.
package exclusion

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Set is an ordered collection of exclusion glob patterns.
type Set struct {
	patterns []string
}

// New builds a Set from the given patterns. Empty patterns are dropped.
func New(patterns ...string) Set {
	set := Set{}
	for _, pattern := range patterns {
		if pattern != "" {
			set.patterns = append(set.patterns, pattern)
		}
	}
	return set
}

// Parse builds a Set from the comma-separated form used on the command
// line (e.g. "*.pyc,tests/**"). Empty elements are dropped, so a
// trailing comma or an entirely empty string is fine.
func Parse(spec string) Set {
	return New(strings.Split(spec, ",")...)
}

// Excluded reports whether entryPath matches any pattern in the set.
// entryPath must be slash-separated (archive entry form).
func (s Set) Excluded(entryPath string) bool {
	for _, pattern := range s.patterns {
		candidate := entryPath
		if !strings.Contains(pattern, "/") {
			candidate = path.Base(entryPath)
		}
		matched, err := doublestar.Match(pattern, candidate)
		if err != nil {
			// Malformed pattern — exclude nothing rather than guessing.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no patterns.
func (s Set) Empty() bool {
	return len(s.patterns) == 0
}

// Patterns returns the patterns in order. The returned slice is shared;
// callers must not modify it.
func (s Set) Patterns() []string {
	return s.patterns
}
