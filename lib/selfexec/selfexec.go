// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package selfexec writes dual-format self-invoking binaries.
//
// A self-invoking binary is an executable shell prologue followed
// immediately by the raw bytes of a finalized archive. Archive readers
// locate their index by scanning backward from end-of-file, so the
// prefixed script text does not invalidate the archive: the same file
// is a script when read forward and an archive when read backward.
//
// Prepend is a pure byte-level operation. It does not inspect either
// the prologue or the payload, so it serves any executable-wrapper
// output, not just Python bundles.
package selfexec

import (
	"fmt"
	"os"
)

// Prepend writes <prologue><payload> to path and sets the executable
// permission bits.
func Prepend(path string, prologue, payload []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := file.Write(prologue); err != nil {
		file.Close()
		return fmt.Errorf("writing prologue to %s: %w", path, err)
	}
	if _, err := file.Write(payload); err != nil {
		file.Close()
		return fmt.Errorf("writing payload to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("marking %s executable: %w", path, err)
	}
	return nil
}
