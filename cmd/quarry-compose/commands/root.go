// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the quarry-compose command tree.
//
// Each subcommand produces exactly one output artifact per invocation.
// Failures are logged with the operation name at this boundary, then
// surfaced as a non-zero exit; the composer libraries themselves only
// return errors.
package commands

import (
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/quarry-build/quarry/cmd/quarry-compose/cli"
	"github.com/quarry-build/quarry/lib/config"
)

// configPath holds the --config value shared by every subcommand. The
// lazy Flags constructors re-register it, resetting the value between
// Execute calls.
var configPath string

// newFlagSet builds a subcommand flag set with the common --config
// flag already registered.
func newFlagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "configuration file (overrides QUARRY_CONFIG)")
	return flagSet
}

// loadConfig resolves the configuration: an explicit --config file
// wins, otherwise the QUARRY_CONFIG environment variable, otherwise
// the built-in defaults.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// toolContext carries the loaded configuration and a scoped logger into
// a command handler.
type toolContext struct {
	cfg    *config.Config
	logger *slog.Logger
}

// run wraps a command handler with config loading and boundary error
// logging. The handler's error is logged once with the operation name
// and converted to a bare exit code, so main does not print it again.
func run(name string, handler func(tc *toolContext, args []string) error) func(args []string) error {
	return func(args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tc := &toolContext{
			cfg:    cfg,
			logger: cli.NewLogger(cfg.Logging).With("command", name),
		}
		if err := handler(tc, args); err != nil {
			tc.logger.Error("composition failed", "error", err)
			return &cli.ExitError{Code: 1}
		}
		return nil
	}
}

// Root returns the root of the quarry-compose command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "quarry-compose",
		Summary: "Artifact composition backend for build rules",
		Description: "quarry-compose assembles built files into final artifacts:\n" +
			"packaged containers with integrity manifests, self-executing\n" +
			"Python bundles, runnable one-jar archives, and generated\n" +
			"wrapper scripts and sources.",
		Subcommands: []*cli.Command{
			packageCommand(),
			pythonLibraryCommand(),
			pythonBinaryCommand(),
			oneJarCommand(),
			javaJarCommand(),
			javaBinaryCommand(),
			javaResourceCommand(),
			javaTestCommand(),
			scalaTestCommand(),
			shellTestCommand(),
			shellTestDataCommand(),
			scmCommand(),
			resourceIndexCommand(),
			secureccObjectCommand(),
			versionCommand(),
		},
	}
}
