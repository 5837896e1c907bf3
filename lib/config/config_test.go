// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected level=info, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "auto" {
		t.Errorf("expected format=auto, got %s", cfg.Logging.Format)
	}
	if cfg.Python.Interpreter != "python" {
		t.Errorf("expected interpreter=python, got %s", cfg.Python.Interpreter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutQuarryConfig(t *testing.T) {
	// Save and restore QUARRY_CONFIG.
	origConfig := os.Getenv("QUARRY_CONFIG")
	defer os.Setenv("QUARRY_CONFIG", origConfig)

	// Unset QUARRY_CONFIG - Load() should fall back to defaults, not fail;
	// composition tools run inside orchestrators that rarely set it.
	os.Unsetenv("QUARRY_CONFIG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Python.Interpreter != "python" {
		t.Errorf("expected default interpreter, got %s", cfg.Python.Interpreter)
	}
}

func TestLoad_WithQuarryConfig(t *testing.T) {
	origConfig := os.Getenv("QUARRY_CONFIG")
	defer os.Setenv("QUARRY_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "quarry.yaml")

	configContent := `
python:
  interpreter: python3
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("QUARRY_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Python.Interpreter != "python3" {
		t.Errorf("expected interpreter=python3, got %s", cfg.Python.Interpreter)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "quarry.yaml")

	configContent := `
logging:
  level: debug
  format: json

python:
  interpreter: /usr/bin/python3
  exclusions:
    - "*_test.py"
    - "tests/**"

archive:
  compression_level: 9
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level=debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected format=json, got %s", cfg.Logging.Format)
	}
	if cfg.Python.Interpreter != "/usr/bin/python3" {
		t.Errorf("expected interpreter=/usr/bin/python3, got %s", cfg.Python.Interpreter)
	}
	if len(cfg.Python.Exclusions) != 2 || cfg.Python.Exclusions[0] != "*_test.py" {
		t.Errorf("exclusions = %v", cfg.Python.Exclusions)
	}
	if cfg.Archive.CompressionLevel != 9 {
		t.Errorf("expected compression_level=9, got %d", cfg.Archive.CompressionLevel)
	}
}

func TestLoadFile_PartialOverride(t *testing.T) {
	// A file that sets only one field keeps defaults for the rest.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "quarry.yaml")

	if err := os.WriteFile(configPath, []byte("archive:\n  compression_level: 6\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Archive.CompressionLevel != 6 {
		t.Errorf("expected compression_level=6, got %d", cfg.Archive.CompressionLevel)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default level=info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "quarry.yaml")

	if err := os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFile(configPath); err == nil {
		t.Error("LoadFile should reject an invalid logging level")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid level",
			modify: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid format",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "empty interpreter",
			modify: func(c *Config) {
				c.Python.Interpreter = ""
			},
			wantErr: true,
		},
		{
			name: "compression level out of range",
			modify: func(c *Config) {
				c.Archive.CompressionLevel = 12
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
