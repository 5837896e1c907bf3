// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/quarry-build/quarry/lib/digest"
)

// zipWriter writes a deflate-compressed zip container with an embedded
// manifest trailer.
type zipWriter struct {
	file      *os.File
	zipWriter *zip.Writer
	manifest  Manifest
}

func newZipWriter(path string, options Options) (*zipWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &zipWriter{
		file:      file,
		zipWriter: NewZipWriter(file, options.CompressionLevel),
	}, nil
}

func (w *zipWriter) AddFile(sourcePath, destName string) error {
	fileDigest, err := digest.HashFile(sourcePath)
	if err != nil {
		return err
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", sourcePath, err)
	}
	defer source.Close()

	entry, err := w.zipWriter.Create(destName)
	if err != nil {
		return fmt.Errorf("creating zip entry %s: %w", destName, err)
	}
	if _, err := io.Copy(entry, source); err != nil {
		return fmt.Errorf("copying %s into zip entry %s: %w", sourcePath, destName, err)
	}

	w.manifest.Record(fileDigest, destName)
	return nil
}

func (w *zipWriter) AddBytes(destName string, data []byte) error {
	entry, err := w.zipWriter.Create(destName)
	if err != nil {
		return fmt.Errorf("creating zip entry %s: %w", destName, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("writing zip entry %s: %w", destName, err)
	}
	return nil
}

func (w *zipWriter) Finalize() error {
	if err := w.AddBytes(ManifestName, w.manifest.Render()); err != nil {
		w.file.Close()
		return err
	}
	if err := w.zipWriter.Close(); err != nil {
		return fmt.Errorf("closing zip writer: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", w.file.Name(), err)
	}
	return nil
}
