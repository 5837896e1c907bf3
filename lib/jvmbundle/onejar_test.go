// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package jvmbundle

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeJarFixture writes a zip/jar file with entries in the given order.
func writeJarFixture(t *testing.T, path string, entries [][2]string) {
	t.Helper()
	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	for _, entry := range entries {
		w, err := writer.Create(entry[0])
		if err != nil {
			t.Fatalf("zip Create %s: %v", entry[0], err)
		}
		if _, err := w.Write([]byte(entry[1])); err != nil {
			t.Fatalf("zip Write %s: %v", entry[0], err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile %s: %v", path, err)
	}
}

func readJar(t *testing.T, path string) map[string]string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader %s: %v", path, err)
	}
	defer reader.Close()

	contents := map[string]string{}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("opening entry %s: %v", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading entry %s: %v", file.Name, err)
		}
		contents[file.Name] = string(data)
	}
	return contents
}

func TestComposeOneJar(t *testing.T) {
	dir := t.TempDir()
	bootJar := filepath.Join(dir, "boot.jar")
	mainJar := filepath.Join(dir, "app.jar")
	depJar := filepath.Join(dir, "dep.jar")
	output := filepath.Join(dir, "app.one.jar")

	writeJarFixture(t, bootJar, [][2]string{
		{"com/simontuffs/onejar/Boot.class", "boot class"},
		{"META-INF/MANIFEST.MF", "Manifest-Version: 1.0\n"},
	})
	writeJarFixture(t, mainJar, [][2]string{
		{"com/example/Main.class", "main class"},
		{"config.properties", "from=main"},
		{"META-INF/services/spi", "impl"},
	})
	writeJarFixture(t, depJar, [][2]string{
		{"com/example/Dep.class", "dep class"},
		{"config.properties", "from=dep"},
		{"logging.conf", "level=info"},
	})

	options := OneJarOptions{
		OutputPath: output,
		MainClass:  "com.example.Main",
		BootJar:    bootJar,
		MainJar:    mainJar,
		DepJars:    []string{depJar},
	}
	if err := ComposeOneJar(options); err != nil {
		t.Fatalf("ComposeOneJar: %v", err)
	}

	contents := readJar(t, output)

	// Loader classes are copied in, its manifest is not.
	if contents["com/simontuffs/onejar/Boot.class"] != "boot class" {
		t.Error("missing loader class")
	}

	// The application and dependency jars are nested whole.
	if _, ok := contents["main/app.jar"]; !ok {
		t.Error("missing nested main/app.jar")
	}
	if _, ok := contents["lib/dep.jar"]; !ok {
		t.Error("missing nested lib/dep.jar")
	}

	// Classes and META-INF entries are not flattened; resources are.
	if _, ok := contents["com/example/Main.class"]; ok {
		t.Error("main jar class should not be flattened")
	}
	if _, ok := contents["META-INF/services/spi"]; ok {
		t.Error("META-INF entries should not be flattened")
	}
	if contents["logging.conf"] != "level=info" {
		t.Error("dependency resource should be flattened")
	}

	// Conflicting resource: the main jar is processed before the
	// dependency, so its version wins.
	if got := contents["config.properties"]; got != "from=main" {
		t.Errorf("config.properties = %q, want the main jar's version", got)
	}

	// Generated manifest declares the loader as entry point and the
	// true main class as a custom attribute.
	manifest := contents["META-INF/MANIFEST.MF"]
	if !strings.Contains(manifest, "Main-Class: "+BootMainClass+"\n") {
		t.Errorf("manifest missing loader Main-Class:\n%s", manifest)
	}
	if !strings.Contains(manifest, "One-Jar-Main-Class: com.example.Main\n") {
		t.Errorf("manifest missing One-Jar-Main-Class:\n%s", manifest)
	}
	if !strings.HasSuffix(manifest, "\n\n") {
		t.Error("manifest must end with a blank line")
	}

	// The nested jar bytes are the original jar, byte for byte.
	original, err := os.ReadFile(mainJar)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if contents["main/app.jar"] != string(original) {
		t.Error("nested main jar should be the original bytes")
	}
}

func TestComposeOneJarLoaderPrecedence(t *testing.T) {
	dir := t.TempDir()
	bootJar := filepath.Join(dir, "boot.jar")
	mainJar := filepath.Join(dir, "app.jar")
	output := filepath.Join(dir, "app.one.jar")

	writeJarFixture(t, bootJar, [][2]string{
		{"boot.properties", "owner=loader"},
	})
	writeJarFixture(t, mainJar, [][2]string{
		{"boot.properties", "owner=app"},
	})

	options := OneJarOptions{
		OutputPath: output,
		MainClass:  "com.example.Main",
		BootJar:    bootJar,
		MainJar:    mainJar,
	}
	if err := ComposeOneJar(options); err != nil {
		t.Fatalf("ComposeOneJar: %v", err)
	}

	contents := readJar(t, output)
	if got := contents["boot.properties"]; got != "owner=loader" {
		t.Errorf("boot.properties = %q, want the loader's version", got)
	}
}

func TestComposeOneJarDuplicateDepBasename(t *testing.T) {
	dir := t.TempDir()
	bootJar := filepath.Join(dir, "boot.jar")
	mainJar := filepath.Join(dir, "app.jar")
	output := filepath.Join(dir, "app.one.jar")

	writeJarFixture(t, bootJar, nil)
	writeJarFixture(t, mainJar, [][2]string{
		{"com/example/Main.class", "main class"},
	})

	// Two dependency jars with the same basename from different
	// directories would collide at lib/dep.jar.
	firstDir := filepath.Join(dir, "first")
	secondDir := filepath.Join(dir, "second")
	for _, d := range []string{firstDir, secondDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
	}
	firstDep := filepath.Join(firstDir, "dep.jar")
	secondDep := filepath.Join(secondDir, "dep.jar")
	writeJarFixture(t, firstDep, [][2]string{{"marker.txt", "first"}})
	writeJarFixture(t, secondDep, [][2]string{{"marker.txt", "second"}})

	options := OneJarOptions{
		OutputPath: output,
		MainClass:  "com.example.Main",
		BootJar:    bootJar,
		MainJar:    mainJar,
		DepJars:    []string{firstDep, secondDep},
	}
	if err := ComposeOneJar(options); err != nil {
		t.Fatalf("ComposeOneJar: %v", err)
	}

	reader, err := zip.OpenReader(output)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close()

	// First-wins: exactly one lib/dep.jar entry, holding the first
	// jar's bytes.
	count := 0
	var nested []byte
	for _, file := range reader.File {
		if file.Name != "lib/dep.jar" {
			continue
		}
		count++
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("opening entry: %v", err)
		}
		nested, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading entry: %v", err)
		}
	}
	if count != 1 {
		t.Fatalf("found %d lib/dep.jar entries, want 1", count)
	}
	original, err := os.ReadFile(firstDep)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(nested, original) {
		t.Error("nested lib/dep.jar should hold the first jar's bytes")
	}
}

func TestComposeOneJarMissingBootJar(t *testing.T) {
	dir := t.TempDir()
	options := OneJarOptions{
		OutputPath: filepath.Join(dir, "out.jar"),
		MainClass:  "com.example.Main",
		BootJar:    filepath.Join(dir, "missing.jar"),
		MainJar:    filepath.Join(dir, "also-missing.jar"),
	}
	if err := ComposeOneJar(options); err == nil {
		t.Error("ComposeOneJar should fail when the boot jar is unreadable")
	}
}
