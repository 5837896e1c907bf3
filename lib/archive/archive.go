// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive writes composed output containers.
//
// A Writer provides uniform add-file/add-bytes/finalize operations over
// zip and tar-family containers. Every file added through AddFile is
// recorded in an integrity manifest pairing the file's content digest
// with its destination path; Finalize embeds the manifest as the
// container's final entry (MANIFEST.TXT) and closes the container.
//
// The container format is selected by the output path's suffix, see
// DetectFormat. Tar containers cannot cheaply append a trailer
// mid-stream, so the tar writer renders the manifest to a sibling
// <path>.MANIFEST file first and then adds that file as the archive's
// last entry.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

// ManifestName is the entry name of the embedded integrity manifest.
const ManifestName = "MANIFEST.TXT"

// Format identifies a supported container format.
type Format int

const (
	// FormatZip is a deflate-compressed zip container.
	FormatZip Format = iota

	// FormatTar is an uncompressed tar container.
	FormatTar

	// FormatTarGz is a gzip-compressed tar container (.tar.gz, .tgz).
	FormatTarGz

	// FormatTarBz2 is a bzip2-compressed tar container (.tar.bz2, .tbz).
	FormatTarBz2

	// FormatTarLz4 is an LZ4-compressed tar container (.tar.lz4).
	FormatTarLz4

	// FormatTarZstd is a zstd-compressed tar container (.tar.zst).
	FormatTarZstd
)

// String returns the canonical suffix of the format.
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGz:
		return "tar.gz"
	case FormatTarBz2:
		return "tar.bz2"
	case FormatTarLz4:
		return "tar.lz4"
	case FormatTarZstd:
		return "tar.zst"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// formatSuffixes maps path suffixes to formats. Longer suffixes are
// listed first so ".tar.gz" wins over ".gz"-less ".tar" matching.
var formatSuffixes = []struct {
	suffix string
	format Format
}{
	{".tar.bz2", FormatTarBz2},
	{".tar.lz4", FormatTarLz4},
	{".tar.zst", FormatTarZstd},
	{".tar.gz", FormatTarGz},
	{".zip", FormatZip},
	{".tar", FormatTar},
	{".tgz", FormatTarGz},
	{".tbz", FormatTarBz2},
}

// DetectFormat determines the container format from the output path's
// suffix. An unrecognized suffix is a precondition violation: the
// orchestrator names every output it asks for.
func DetectFormat(path string) (Format, error) {
	for _, entry := range formatSuffixes {
		if strings.HasSuffix(path, entry.suffix) {
			return entry.format, nil
		}
	}
	return 0, fmt.Errorf("output path %q has no recognized container suffix", path)
}

// Writer is an open output container. A Writer is a scoped resource:
// it is opened, populated, and finalized within a single composer
// invocation. After any error the in-flight output is abandoned;
// cleanup of partially written files belongs to the orchestrator.
type Writer interface {
	// AddFile copies the file at sourcePath into the container under
	// destName and records (digest(sourcePath), destName) in the
	// manifest.
	AddFile(sourcePath, destName string) error

	// AddBytes writes an entry with literal content. No manifest line
	// is recorded; the manifest tracks packaged source files only.
	AddBytes(destName string, data []byte) error

	// Finalize embeds the manifest and closes the container. No
	// further writes are allowed after Finalize.
	Finalize() error
}

// Options configures container creation.
type Options struct {
	// CompressionLevel is the deflate level (1-9) for zip and tar.gz
	// containers. 0 selects the library default. Other tar variants
	// use their codec defaults.
	CompressionLevel int
}

func (o Options) flateLevel() int {
	if o.CompressionLevel == 0 {
		return flate.DefaultCompression
	}
	return o.CompressionLevel
}

// Open creates the output container at path, detecting the format from
// the path suffix.
func Open(path string, options Options) (Writer, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return OpenFormat(path, format, options)
}

// OpenFormat creates the output container at path with an explicit
// format.
func OpenFormat(path string, format Format, options Options) (Writer, error) {
	if format == FormatZip {
		return newZipWriter(path, options)
	}
	return newTarWriter(path, format, options)
}

// NewZipWriter wraps w in a zip.Writer whose deflate compressor comes
// from klauspost/compress. A compressionLevel of 0 selects the library
// default. Shared by the zip container writer and the bundle composers,
// which drive archive/zip directly.
func NewZipWriter(w io.Writer, compressionLevel int) *zip.Writer {
	if compressionLevel == 0 {
		compressionLevel = flate.DefaultCompression
	}
	zipWriter := zip.NewWriter(w)
	zipWriter.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, compressionLevel)
	})
	return zipWriter
}
