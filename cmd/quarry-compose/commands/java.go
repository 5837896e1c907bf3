// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/quarry-build/quarry/cmd/quarry-compose/cli"
	"github.com/quarry-build/quarry/lib/gensrc"
	"github.com/quarry-build/quarry/lib/jvmbundle"
)

func oneJarCommand() *cli.Command {
	var output string
	var mainClass string
	var bootJar string
	var compressionLevel int

	return &cli.Command{
		Name:    "one-jar",
		Summary: "Compose a self-contained executable jar",
		Usage:   "quarry-compose one-jar --output <jar> --main-class <class> --boot-jar <loader> <main-jar> <dep-jars...>",
		Description: "Merges a bootstrap loader jar, the application's main jar, and its\n" +
			"dependency jars into one runnable archive. The application and\n" +
			"dependency jars are nested whole under main/ and lib/; their\n" +
			"non-class resources are flattened into the archive root.",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("one-jar")
			flagSet.StringVar(&output, "output", "", "runnable archive to write")
			flagSet.StringVar(&mainClass, "main-class", "", "application entry point class")
			flagSet.StringVar(&bootJar, "boot-jar", "", "bootstrap loader jar")
			flagSet.IntVar(&compressionLevel, "compression-level", 0, "deflate level (1-9, 0 = default)")
			return flagSet
		},
		Run: run("one-jar", func(tc *toolContext, args []string) error {
			if output == "" || mainClass == "" || bootJar == "" {
				return fmt.Errorf("--output, --main-class, and --boot-jar are required")
			}
			if len(args) < 1 {
				return fmt.Errorf("main jar required")
			}
			level := compressionLevel
			if level == 0 {
				level = tc.cfg.Archive.CompressionLevel
			}
			return jvmbundle.ComposeOneJar(jvmbundle.OneJarOptions{
				OutputPath:       output,
				MainClass:        mainClass,
				BootJar:          bootJar,
				MainJar:          args[0],
				DepJars:          args[1:],
				CompressionLevel: level,
				Logger:           tc.logger,
			})
		}),
	}
}

func javaJarCommand() *cli.Command {
	var output string
	var resourcesDir string
	var classesJar string
	var compressionLevel int

	return &cli.Command{
		Name:    "java-jar",
		Summary: "Compose a jar from classes and resource files",
		Usage:   "quarry-compose java-jar --output <jar> --resources-dir <dir> [flags] <resources...>",
		Description: "Builds a jar entirely in-process: an optional pre-compiled classes\n" +
			"jar seeds the output, then each resource file is added at its path\n" +
			"relative to the resources directory. First-wins on name conflicts.",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("java-jar")
			flagSet.StringVar(&output, "output", "", "jar to write")
			flagSet.StringVar(&resourcesDir, "resources-dir", "", "directory resource destinations are computed against")
			flagSet.StringVar(&classesJar, "classes-jar", "", "pre-compiled classes jar to seed the output")
			flagSet.IntVar(&compressionLevel, "compression-level", 0, "deflate level (1-9, 0 = default)")
			return flagSet
		},
		Run: run("java-jar", func(tc *toolContext, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			if resourcesDir == "" && len(args) > 0 {
				return fmt.Errorf("--resources-dir is required when resources are given")
			}
			level := compressionLevel
			if level == 0 {
				level = tc.cfg.Archive.CompressionLevel
			}
			return jvmbundle.ComposeJar(jvmbundle.JarOptions{
				OutputPath:       output,
				ClassesJar:       classesJar,
				ResourcesDir:     resourcesDir,
				Resources:        args,
				CompressionLevel: level,
				Logger:           tc.logger,
			})
		}),
	}
}

func javaBinaryCommand() *cli.Command {
	var script string
	var jar string

	return &cli.Command{
		Name:    "java-binary",
		Summary: "Write a launcher script for a self-contained jar",
		Usage:   "quarry-compose java-binary --script <script> --jar <jar>",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("java-binary")
			flagSet.StringVar(&script, "script", "", "launcher script to write")
			flagSet.StringVar(&jar, "jar", "", "jar the script launches")
			return flagSet
		},
		Run: run("java-binary", func(tc *toolContext, args []string) error {
			if script == "" || jar == "" {
				return fmt.Errorf("--script and --jar are required")
			}
			if err := gensrc.WriteJavaBinaryWrapper(script, jar); err != nil {
				return err
			}
			tc.logger.Info("wrote launcher script", "script", script, "jar", jar)
			return nil
		}),
	}
}
