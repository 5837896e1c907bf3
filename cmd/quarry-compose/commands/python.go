// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/quarry-build/quarry/cmd/quarry-compose/cli"
	"github.com/quarry-build/quarry/lib/exclusion"
	"github.com/quarry-build/quarry/lib/pybundle"
	"github.com/quarry-build/quarry/lib/pylib"
)

func pythonLibraryCommand() *cli.Command {
	var output string
	var baseDir string

	return &cli.Command{
		Name:    "python-library",
		Summary: "Write a library descriptor for built Python sources",
		Usage:   "quarry-compose python-library --output <file.pylib> [flags] <sources...>",
		Description: "Digests each source file and records (path, digest) pairs plus the\n" +
			"base directory in a .pylib descriptor. Binary composition later\n" +
			"resolves bundle destinations against the recorded base directory.",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("python-library")
			flagSet.StringVar(&output, "output", "", "descriptor file to write")
			flagSet.StringVar(&baseDir, "base-dir", "", "directory bundle destinations are computed against")
			return flagSet
		},
		Run: run("python-library", func(tc *toolContext, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			library, err := pylib.Build(baseDir, args)
			if err != nil {
				return err
			}
			if err := pylib.WriteFile(output, library); err != nil {
				return err
			}
			tc.logger.Info("wrote library descriptor", "output", output, "sources", len(args))
			return nil
		}),
	}
}

func pythonBinaryCommand() *cli.Command {
	var output string
	var baseDir string
	var exclusions string
	var mainEntry string
	var interpreter string
	var compressionLevel int

	return &cli.Command{
		Name:    "python-binary",
		Summary: "Compose a self-executing Python bundle",
		Usage:   "quarry-compose python-binary --output <binary> --main-entry <module> [flags] <sources...>",
		Description: "Merges .pylib descriptors, .egg archives, and .whl wheels into one\n" +
			"zip, synthesizes missing __init__.py markers, and prefixes a shell\n" +
			"prologue so the output runs directly. Sources are processed in\n" +
			"input order with first-wins deduplication.",
		Examples: []cli.Example{
			{
				Description: "Bundle an application with one dependency wheel",
				Command:     "quarry-compose python-binary --output app --main-entry app.main app.pylib requests.whl",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("python-binary")
			flagSet.StringVar(&output, "output", "", "bundle to write")
			// Accepted for rule-interface compatibility; destinations come
			// from each descriptor's own base_dir.
			flagSet.StringVar(&baseDir, "base-dir", "", "unused, kept for rule compatibility")
			flagSet.StringVar(&exclusions, "exclusions", "", "comma-separated glob patterns to exclude")
			flagSet.StringVar(&mainEntry, "main-entry", "", "module executed by the bundle prologue")
			flagSet.StringVar(&interpreter, "interpreter", "", "interpreter named in the prologue")
			flagSet.IntVar(&compressionLevel, "compression-level", 0, "deflate level (1-9, 0 = default)")
			return flagSet
		},
		Run: run("python-binary", func(tc *toolContext, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			if mainEntry == "" {
				return fmt.Errorf("--main-entry is required")
			}

			patterns := append([]string{}, tc.cfg.Python.Exclusions...)
			patterns = append(patterns, exclusion.Parse(exclusions).Patterns()...)

			runtime := interpreter
			if runtime == "" {
				runtime = tc.cfg.Python.Interpreter
			}
			level := compressionLevel
			if level == 0 {
				level = tc.cfg.Archive.CompressionLevel
			}

			return pybundle.Compose(pybundle.Options{
				OutputPath:       output,
				EntryModule:      mainEntry,
				Interpreter:      runtime,
				Exclusions:       exclusion.New(patterns...),
				CompressionLevel: level,
				Logger:           tc.logger,
			}, args)
		}),
	}
}
