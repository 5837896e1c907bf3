// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package packager

import (
	"fmt"
	"io"
	"os"

	"github.com/quarry-build/quarry/lib/digest"
)

// CopyAll copies sources[i] to targets[i]. Both slices must be the
// same length; the caller validates the argument shape.
func CopyAll(targets, sources []string) error {
	if len(targets) != len(sources) {
		return fmt.Errorf("%d targets but %d sources", len(targets), len(sources))
	}
	for i, source := range sources {
		if err := copyFile(targets[i], source); err != nil {
			return err
		}
	}
	return nil
}

// RefreshObject copies phonyPath over objectPath only when their
// content differs. An unchanged object keeps its timestamp, so
// downstream build steps that compare modification times do not
// re-run.
func RefreshObject(objectPath, phonyPath string) error {
	if _, err := os.Stat(objectPath); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", objectPath, err)
		}
		return copyFile(objectPath, phonyPath)
	}

	objectDigest, err := digest.HashFile(objectPath)
	if err != nil {
		return err
	}
	phonyDigest, err := digest.HashFile(phonyPath)
	if err != nil {
		return err
	}
	if objectDigest == phonyDigest {
		return nil
	}
	return copyFile(objectPath, phonyPath)
}

func copyFile(target, source string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening %s: %w", source, err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", source, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}
	return nil
}
