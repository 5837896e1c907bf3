// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/quarry-build/quarry/lib/digest"
)

// tarWriter writes a tar-family container. The manifest cannot be
// appended as a trailer mid-stream, so Finalize renders it to a sibling
// <path>.MANIFEST file and adds that file as the archive's final entry.
type tarWriter struct {
	path       string
	file       *os.File
	compressor io.WriteCloser // nil for plain tar
	tarWriter  *tar.Writer
	manifest   Manifest
}

func newTarWriter(path string, format Format, options Options) (*tarWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	writer := &tarWriter{path: path, file: file}

	switch format {
	case FormatTar:
		writer.tarWriter = tar.NewWriter(file)
		return writer, nil

	case FormatTarGz:
		compressor, err := gzip.NewWriterLevel(file, options.flateLevel())
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("creating gzip writer for %s: %w", path, err)
		}
		writer.compressor = compressor

	case FormatTarBz2:
		compressor, err := bzip2.NewWriter(file, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("creating bzip2 writer for %s: %w", path, err)
		}
		writer.compressor = compressor

	case FormatTarLz4:
		writer.compressor = lz4.NewWriter(file)

	case FormatTarZstd:
		compressor, err := zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("creating zstd writer for %s: %w", path, err)
		}
		writer.compressor = compressor

	default:
		file.Close()
		return nil, fmt.Errorf("format %s is not a tar variant", format)
	}

	writer.tarWriter = tar.NewWriter(writer.compressor)
	return writer, nil
}

func (w *tarWriter) AddFile(sourcePath, destName string) error {
	fileDigest, err := digest.HashFile(sourcePath)
	if err != nil {
		return err
	}
	if err := w.addPath(sourcePath, destName); err != nil {
		return err
	}
	w.manifest.Record(fileDigest, destName)
	return nil
}

// addPath copies the file at sourcePath into the archive under destName
// without recording a manifest line. Symbolic links are followed
// (os.Stat dereferences), so the archived entry holds the target's
// content as a regular file.
func (w *tarWriter) addPath(sourcePath, destName string) error {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", sourcePath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", sourcePath)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("building tar header for %s: %w", sourcePath, err)
	}
	header.Name = destName

	if err := w.tarWriter.WriteHeader(header); err != nil {
		return fmt.Errorf("writing tar header %s: %w", destName, err)
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", sourcePath, err)
	}
	defer source.Close()

	if _, err := io.Copy(w.tarWriter, source); err != nil {
		return fmt.Errorf("copying %s into tar entry %s: %w", sourcePath, destName, err)
	}
	return nil
}

func (w *tarWriter) AddBytes(destName string, data []byte) error {
	header := &tar.Header{
		Name: destName,
		Mode: 0644,
		Size: int64(len(data)),
	}
	if err := w.tarWriter.WriteHeader(header); err != nil {
		return fmt.Errorf("writing tar header %s: %w", destName, err)
	}
	if _, err := w.tarWriter.Write(data); err != nil {
		return fmt.Errorf("writing tar entry %s: %w", destName, err)
	}
	return nil
}

func (w *tarWriter) Finalize() error {
	// The sibling manifest file is a build product in its own right:
	// orchestrators can read it without decompressing the archive.
	manifestPath := w.path + ".MANIFEST"
	if err := os.WriteFile(manifestPath, w.manifest.Render(), 0644); err != nil {
		w.abort()
		return fmt.Errorf("writing manifest %s: %w", manifestPath, err)
	}
	if err := w.addPath(manifestPath, ManifestName); err != nil {
		w.abort()
		return err
	}

	if err := w.tarWriter.Close(); err != nil {
		return fmt.Errorf("closing tar writer: %w", err)
	}
	if w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			return fmt.Errorf("closing compressor: %w", err)
		}
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", w.path, err)
	}
	return nil
}

// abort releases the underlying resources after a failed Finalize. The
// partially written output is abandoned; close errors are irrelevant at
// that point.
func (w *tarWriter) abort() {
	w.tarWriter.Close()
	if w.compressor != nil {
		w.compressor.Close()
	}
	w.file.Close()
}
