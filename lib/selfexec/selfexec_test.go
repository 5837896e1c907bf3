// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package selfexec

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestPrependConcatenation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	prologue := []byte("#!/bin/sh\nexec true\n")
	payload := []byte{0x50, 0x4b, 0x05, 0x06, 0x00, 0x00}

	if err := Prepend(path, prologue, payload); err != nil {
		t.Fatalf("Prepend: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(data, append(append([]byte{}, prologue...), payload...)) {
		t.Error("output is not the exact prologue+payload concatenation")
	}
}

func TestPrependExecutableBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "out")
	if err := Prepend(path, []byte("#!/bin/sh\n"), nil); err != nil {
		t.Fatalf("Prepend: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm()&0111 == 0 {
		t.Errorf("mode = %v, want executable bits set", info.Mode())
	}
}

func TestPrependedZipStillOpens(t *testing.T) {
	// Build a real zip payload, prepend a script, and confirm the
	// result still opens as a zip archive.
	var buffer bytes.Buffer
	zipWriter := zip.NewWriter(&buffer)
	entry, err := zipWriter.Create("hello.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := entry.Write([]byte("payload")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zipWriter.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bundle")
	prologue := []byte("#!/bin/sh\nexec python -m main \"$@\"\n")
	if err := Prepend(path, prologue, buffer.Bytes()); err != nil {
		t.Fatalf("Prepend: %v", err)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("prepended file no longer opens as a zip: %v", err)
	}
	defer reader.Close()
	if len(reader.File) != 1 || reader.File[0].Name != "hello.txt" {
		t.Errorf("unexpected zip contents: %v", reader.File)
	}
}

func TestPrependUnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out")
	if err := Prepend(path, []byte("x"), []byte("y")); err == nil {
		t.Error("Prepend should fail when the destination directory does not exist")
	}
}
