// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/quarry-build/quarry/cmd/quarry-compose/cli"
	"github.com/quarry-build/quarry/lib/packager"
)

func packageCommand() *cli.Command {
	var compressionLevel int

	return &cli.Command{
		Name:    "package",
		Summary: "Package files into a container with an integrity manifest",
		Usage:   "quarry-compose package [flags] <output> <sources...> <destinations...>",
		Description: "Copies each source into the container at its paired destination\n" +
			"and embeds a manifest pairing each file's content digest with its\n" +
			"destination. The container format is selected by the output\n" +
			"suffix: .zip, .tar, .tar.gz, .tar.bz2, .tar.lz4, or .tar.zst.",
		Examples: []cli.Example{
			{
				Description: "Package two files into a zip",
				Command:     "quarry-compose package out.zip a.txt b.txt docs/a.txt docs/b.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("package")
			flagSet.IntVar(&compressionLevel, "compression-level", 0, "compression level (1-9, 0 = default)")
			return flagSet
		},
		Run: run("package", func(tc *toolContext, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("output path required")
			}
			output := args[0]

			sources, destinations, err := packager.SplitHalves(args[1:])
			if err != nil {
				return err
			}

			level := compressionLevel
			if level == 0 {
				level = tc.cfg.Archive.CompressionLevel
			}
			return packager.Compose(packager.Options{
				OutputPath:       output,
				CompressionLevel: level,
				Logger:           tc.logger,
			}, sources, destinations)
		}),
	}
}

func secureccObjectCommand() *cli.Command {
	return &cli.Command{
		Name:    "securecc-object",
		Summary: "Refresh a compiled object only when its content changed",
		Usage:   "quarry-compose securecc-object <object> <phony-object>",
		Description: "Copies the phony object over the real object only when their\n" +
			"content digests differ. An unchanged object keeps its timestamp,\n" +
			"so downstream steps that compare modification times do not re-run.",
		Flags: func() *pflag.FlagSet {
			return newFlagSet("securecc-object")
		},
		Run: run("securecc-object", func(tc *toolContext, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("want exactly <object> <phony-object>, got %d args", len(args))
			}
			return packager.RefreshObject(args[0], args[1])
		}),
	}
}

func javaResourceCommand() *cli.Command {
	return &cli.Command{
		Name:    "java-resource",
		Summary: "Copy resource files to their build locations",
		Usage:   "quarry-compose java-resource <targets...> <sources...>",
		Flags: func() *pflag.FlagSet {
			return newFlagSet("java-resource")
		},
		Run: run("java-resource", func(tc *toolContext, args []string) error {
			targets, sources, err := packager.SplitHalves(args)
			if err != nil {
				return err
			}
			return packager.CopyAll(targets, sources)
		}),
	}
}
