// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/quarry-build/quarry/cmd/quarry-compose/cli"
	"github.com/quarry-build/quarry/lib/gensrc"
	"github.com/quarry-build/quarry/lib/jvmbundle"
	"github.com/quarry-build/quarry/lib/packager"
)

func javaTestCommand() *cli.Command {
	var script string
	var mainClass string
	var jacocoAgent string
	var packagesUnderTest string

	return &cli.Command{
		Name:    "java-test",
		Summary: "Write a test runner script for a java test jar",
		Usage:   "quarry-compose java-test --script <script> --main-class <runner> [flags] <jars...>",
		Description: "Scans the first jar for *Test.class entries and writes a script\n" +
			"that runs them with the given runner over the full jar classpath.\n" +
			"Coverage instrumentation is emitted when --jacoco-agent and\n" +
			"--packages-under-test are both set, gated on QUARRY_COVERAGE at\n" +
			"run time.",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("java-test")
			flagSet.StringVar(&script, "script", "", "runner script to write")
			flagSet.StringVar(&mainClass, "main-class", "", "test runner main class")
			flagSet.StringVar(&jacocoAgent, "jacoco-agent", "", "JaCoCo agent jar")
			flagSet.StringVar(&packagesUnderTest, "packages-under-test", "", "colon-separated packages to instrument")
			return flagSet
		},
		Run: run("java-test", func(tc *toolContext, args []string) error {
			if script == "" || mainClass == "" {
				return fmt.Errorf("--script and --main-class are required")
			}
			if len(args) < 1 {
				return fmt.Errorf("test jar required")
			}
			testClasses, err := jvmbundle.TestClassNames(args[0])
			if err != nil {
				return err
			}
			if err := gensrc.WriteJavaTestWrapper(gensrc.JavaTestOptions{
				ScriptPath:        script,
				MainClass:         mainClass,
				Jars:              args,
				JacocoAgent:       jacocoAgent,
				PackagesUnderTest: packagesUnderTest,
				TestClasses:       testClasses,
			}); err != nil {
				return err
			}
			tc.logger.Info("wrote test runner script", "script", script, "test_classes", len(testClasses))
			return nil
		}),
	}
}

func scalaTestCommand() *cli.Command {
	var script string
	var javaPath string
	var scalaPath string
	var jacocoAgent string
	var packagesUnderTest string

	return &cli.Command{
		Name:    "scala-test",
		Summary: "Write a scalatest runner script for a scala test jar",
		Usage:   "quarry-compose scala-test --script <script> --java <java> --scala <scala> [flags] <jars...>",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("scala-test")
			flagSet.StringVar(&script, "script", "", "runner script to write")
			flagSet.StringVar(&javaPath, "java", "", "java launcher path")
			flagSet.StringVar(&scalaPath, "scala", "", "scala launcher path")
			flagSet.StringVar(&jacocoAgent, "jacoco-agent", "", "JaCoCo agent jar")
			flagSet.StringVar(&packagesUnderTest, "packages-under-test", "", "colon-separated packages to instrument")
			return flagSet
		},
		Run: run("scala-test", func(tc *toolContext, args []string) error {
			if script == "" || javaPath == "" || scalaPath == "" {
				return fmt.Errorf("--script, --java, and --scala are required")
			}
			if len(args) < 1 {
				return fmt.Errorf("test jar required")
			}
			testClasses, err := jvmbundle.TestClassNames(args[0])
			if err != nil {
				return err
			}
			if err := gensrc.WriteScalaTestWrapper(gensrc.ScalaTestOptions{
				ScriptPath:        script,
				JavaPath:          javaPath,
				ScalaPath:         scalaPath,
				Jars:              args,
				JacocoAgent:       jacocoAgent,
				PackagesUnderTest: packagesUnderTest,
				TestClasses:       testClasses,
			}); err != nil {
				return err
			}
			tc.logger.Info("wrote test runner script", "script", script, "test_classes", len(testClasses))
			return nil
		}),
	}
}

func shellTestCommand() *cli.Command {
	var output string

	return &cli.Command{
		Name:    "shell-test",
		Summary: "Write a wrapper that runs shell test scripts in order",
		Usage:   "quarry-compose shell-test --output <script> <test-scripts...>",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("shell-test")
			flagSet.StringVar(&output, "output", "", "wrapper script to write")
			return flagSet
		},
		Run: run("shell-test", func(tc *toolContext, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			if err := gensrc.WriteShellTestWrapper(output, args); err != nil {
				return err
			}
			tc.logger.Info("wrote shell test wrapper", "output", output, "scripts", len(args))
			return nil
		}),
	}
}

func shellTestDataCommand() *cli.Command {
	var output string

	return &cli.Command{
		Name:    "shell-testdata",
		Summary: "Write the testdata listing for shell tests",
		Usage:   "quarry-compose shell-testdata --output <file> <sources...> <destinations...>",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("shell-testdata")
			flagSet.StringVar(&output, "output", "", "listing file to write")
			return flagSet
		},
		Run: run("shell-testdata", func(tc *toolContext, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			sources, destinations, err := packager.SplitHalves(args)
			if err != nil {
				return err
			}
			return gensrc.WriteShellTestData(output, sources, destinations)
		}),
	}
}
