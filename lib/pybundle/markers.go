// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package pybundle

import (
	"path"
	"sort"
)

// markerSet tracks which directories inside the bundle hold at least
// one entry, and which of those already received a namespace marker
// from a source. The difference is the set of directories that need a
// synthesized empty marker before the bundle is finalized.
type markerSet struct {
	directories map[string]struct{}
	marked      map[string]struct{}
}

func newMarkerSet() *markerSet {
	return &markerSet{
		directories: make(map[string]struct{}),
		marked:      make(map[string]struct{}),
	}
}

// Note records the bookkeeping for a written entry: every ancestor
// directory of entryName holds an entry, and if the entry is itself a
// namespace marker its directory is satisfied.
func (m *markerSet) Note(entryName string) {
	dir := path.Dir(entryName)
	if path.Base(entryName) == MarkerName && dir != "." {
		m.marked[dir] = struct{}{}
	}
	for dir != "." && dir != "/" && dir != "" {
		m.directories[dir] = struct{}{}
		dir = path.Dir(dir)
	}
}

// Missing returns the directories that hold entries but no marker, in
// sorted order so marker synthesis is deterministic.
func (m *markerSet) Missing() []string {
	var missing []string
	for dir := range m.directories {
		if _, ok := m.marked[dir]; !ok {
			missing = append(missing, dir)
		}
	}
	sort.Strings(missing)
	return missing
}
