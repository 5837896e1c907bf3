// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quarry-build/quarry/cmd/quarry-compose/cli"
)

func TestRoot_HasAllOperations(t *testing.T) {
	root := Root()

	want := []string{
		"package",
		"python-library",
		"python-binary",
		"one-jar",
		"java-jar",
		"java-binary",
		"java-resource",
		"java-test",
		"scala-test",
		"shell-test",
		"shell-testdata",
		"scm",
		"resource-index",
		"securecc-object",
		"version",
	}

	names := map[string]bool{}
	for _, sub := range root.Subcommands {
		names[sub.Name] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("root tree missing command %q", name)
		}
	}
	if len(root.Subcommands) != len(want) {
		t.Errorf("root tree has %d commands, want %d", len(root.Subcommands), len(want))
	}
}

func TestPackageCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(source, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	output := filepath.Join(dir, "out.zip")

	err := Root().Execute([]string{"package", output, source, "docs/a.txt"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	reader, err := zip.OpenReader(output)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close()

	found := false
	for _, file := range reader.File {
		if file.Name == "docs/a.txt" {
			found = true
		}
	}
	if !found {
		t.Error("packaged entry docs/a.txt missing from output")
	}
}

func TestPackageCommand_OddList(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.zip")

	err := Root().Execute([]string{"package", output, "lonely-arg"})
	if err == nil {
		t.Fatal("Execute should fail for an odd trailing list")
	}
	// Boundary failures surface as a bare exit code; the handler has
	// already logged the error.
	if _, ok := err.(*cli.ExitError); !ok {
		t.Errorf("error = %T, want *cli.ExitError", err)
	}
}

func TestConfigFlag_LoadsFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "quarry.yaml")
	if err := os.WriteFile(configFile, []byte("logging:\n  level: debug\n  format: json\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	source := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(source, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	output := filepath.Join(dir, "out.zip")

	err := Root().Execute([]string{"package", "--config", configFile, output, source, "docs/a.txt"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestConfigFlag_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "quarry.yaml")
	if err := os.WriteFile(configFile, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := Root().Execute([]string{"package", "--config", configFile, filepath.Join(dir, "out.zip")})
	if err == nil {
		t.Fatal("Execute should fail for an invalid config file")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("error = %v, want an invalid config error", err)
	}
}

func TestShellTestDataCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "testdata")

	err := Root().Execute([]string{"shell-testdata", "--output", output, "in.txt", "dest.txt"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("testdata listing is empty")
	}
}
