// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bytes"
	"fmt"

	"github.com/quarry-build/quarry/lib/digest"
)

// ManifestEntry is one line of the integrity manifest: the content
// digest of a packaged source paired with its destination path inside
// the container.
type ManifestEntry struct {
	Digest      digest.Digest
	Destination string
}

// Manifest is the ordered integrity ledger embedded in every packaged
// container. Entries appear in the order the sources were added.
type Manifest struct {
	entries []ManifestEntry
}

// Record appends an entry to the ledger.
func (m *Manifest) Record(d digest.Digest, destination string) {
	m.entries = append(m.entries, ManifestEntry{Digest: d, Destination: destination})
}

// Len returns the number of recorded entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns the recorded entries in order. The returned slice is
// shared; callers must not modify it.
func (m *Manifest) Entries() []ManifestEntry {
	return m.entries
}

// Render produces the manifest's wire form: one "<digest> <destination>"
// line per entry, newline-terminated.
func (m *Manifest) Render() []byte {
	var buffer bytes.Buffer
	for _, entry := range m.entries {
		fmt.Fprintf(&buffer, "%s %s\n", entry.Digest, entry.Destination)
	}
	return buffer.Bytes()
}
