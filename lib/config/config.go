// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for quarry tools.
//
// Configuration is loaded from a single file specified by:
//   - QUARRY_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures deterministic,
// auditable builds with no hidden overrides. All settings have working
// defaults; the config file is optional and only adjusts them.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for quarry composition tools.
type Config struct {
	// Logging configures diagnostic output.
	Logging LoggingConfig `yaml:"logging"`

	// Python configures interpreted-runtime bundle composition.
	Python PythonConfig `yaml:"python"`

	// Archive configures container writers.
	Archive ArchiveConfig `yaml:"archive"`
}

// LoggingConfig configures diagnostic output.
type LoggingConfig struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format selects the handler: text, json, or auto.
	// auto picks text on a terminal and json otherwise.
	// Default: auto
	Format string `yaml:"format"`
}

// PythonConfig configures interpreted-runtime bundle composition.
type PythonConfig struct {
	// Interpreter is the interpreter named in the bundle prologue when
	// the command line does not specify one.
	// Default: python
	Interpreter string `yaml:"interpreter"`

	// Exclusions are glob patterns always excluded from bundles, in
	// addition to any passed on the command line.
	Exclusions []string `yaml:"exclusions"`
}

// ArchiveConfig configures container writers.
type ArchiveConfig struct {
	// CompressionLevel applies when the command line does not specify
	// one. 0 selects each codec's default.
	CompressionLevel int `yaml:"compression_level"`
}

// Default returns the default configuration. A tool run with no config
// file at all behaves exactly as if Default had been loaded.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Python: PythonConfig{
			Interpreter: "python",
		},
	}
}

// Load loads configuration from the QUARRY_CONFIG environment variable.
// An unset variable is not an error: composition runs inside build
// orchestrators that rarely carry one, so defaults apply.
func Load() (*Config, error) {
	configPath := os.Getenv("QUARRY_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	levels := []string{"debug", "info", "warn", "error"}
	if !contains(levels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", levels))
	}

	formats := []string{"text", "json", "auto"}
	if !contains(formats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v", formats))
	}

	if c.Python.Interpreter == "" {
		errs = append(errs, fmt.Errorf("python.interpreter is required"))
	}

	if c.Archive.CompressionLevel < 0 || c.Archive.CompressionLevel > 9 {
		errs = append(errs, fmt.Errorf("archive.compression_level must be 0-9"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
