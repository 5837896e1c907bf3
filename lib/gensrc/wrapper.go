// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package gensrc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quarry-build/quarry/lib/jvmbundle"
)

// scriptMode is applied to every generated wrapper script.
const scriptMode = 0755

const wrapperHeader = "#!/bin/sh\n# Generated wrapper script, do not edit.\n\n"

// WriteJavaBinaryWrapper generates a launcher script for a
// self-contained jar. The script prefers the jar sitting next to
// itself and falls back to the build-tree location, so the pair can be
// relocated together or run in place.
func WriteJavaBinaryWrapper(scriptPath, jarPath string) error {
	fullPath, err := filepath.Abs(jarPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", jarPath, err)
	}

	script := wrapperHeader + fmt.Sprintf(
		"jar=`dirname \"$0\"`/\"%s\"\n"+
			"if [ ! -f \"$jar\" ]; then\n"+
			"  jar=\"%s\"\n"+
			"fi\n"+
			"\n"+
			"exec java -jar \"$jar\" \"$@\"\n",
		filepath.Base(jarPath), fullPath)
	return writeScript(scriptPath, script)
}

// JavaTestOptions configures java test wrapper generation.
type JavaTestOptions struct {
	// ScriptPath is the wrapper script to write.
	ScriptPath string

	// MainClass is the test runner's main class.
	MainClass string

	// Jars form the classpath; the first is the test jar whose
	// *Test.class entries name the classes to run.
	Jars []string

	// JacocoAgent and PackagesUnderTest configure optional coverage
	// instrumentation. Both must be set for the flag to be emitted.
	JacocoAgent       string
	PackagesUnderTest string

	// TestClasses are the dotted test class names to run.
	TestClasses []string
}

// WriteJavaTestWrapper generates a test runner script. Coverage
// instrumentation is compiled into the script but only activates when
// QUARRY_COVERAGE is set in the environment at run time.
func WriteJavaTestWrapper(options JavaTestOptions) error {
	coverage := jvmbundle.JacocoAgentFlag(options.JacocoAgent, options.PackagesUnderTest)

	script := wrapperHeader + fmt.Sprintf(
		"if [ -n \"$QUARRY_COVERAGE\" ]; then\n"+
			"    coverage_options=\"%s\"\n"+
			"fi\n"+
			"\n"+
			"exec java $coverage_options -classpath %s %s %s \"$@\"\n",
		coverage,
		strings.Join(options.Jars, ":"),
		options.MainClass,
		strings.Join(options.TestClasses, " "))
	return writeScript(options.ScriptPath, script)
}

// ScalaTestOptions configures scala test wrapper generation.
type ScalaTestOptions struct {
	// ScriptPath is the wrapper script to write.
	ScriptPath string

	// JavaPath and ScalaPath locate the interpreters; both are
	// resolved to absolute paths so the script runs from any cwd.
	JavaPath  string
	ScalaPath string

	// Jars form the classpath; the first is the test jar.
	Jars []string

	// JacocoAgent and PackagesUnderTest configure optional coverage
	// instrumentation.
	JacocoAgent       string
	PackagesUnderTest string

	// TestClasses are the dotted test class names to run.
	TestClasses []string
}

// WriteScalaTestWrapper generates a scalatest runner script. The
// coverage flag is wrapped in -J so the scala launcher forwards it to
// the underlying JVM.
func WriteScalaTestWrapper(options ScalaTestOptions) error {
	coverage := jvmbundle.JacocoAgentFlag(options.JacocoAgent, options.PackagesUnderTest)
	javaArgs := ""
	if coverage != "" {
		javaArgs = "-J" + coverage
	}

	javaPath, err := filepath.Abs(options.JavaPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", options.JavaPath, err)
	}
	scalaPath, err := filepath.Abs(options.ScalaPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", options.ScalaPath, err)
	}

	script := wrapperHeader + fmt.Sprintf(
		"if [ -n \"$QUARRY_COVERAGE\" ]; then\n"+
			"    coverage_options=\"%s\"\n"+
			"fi\n"+
			"\n"+
			"JAVACMD=%s exec %s \"$coverage_options\" -classpath %s org.scalatest.run %s \"$@\"\n",
		javaArgs,
		javaPath,
		scalaPath,
		strings.Join(options.Jars, ":"),
		strings.Join(options.TestClasses, " "))
	return writeScript(options.ScriptPath, script)
}

// WriteShellTestWrapper generates a script that sources each test
// script in order under `set -e`, so the first failing script fails
// the whole run.
func WriteShellTestWrapper(scriptPath string, testScripts []string) error {
	var lines []string
	for _, testScript := range testScripts {
		absolute, err := filepath.Abs(testScript)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", testScript, err)
		}
		lines = append(lines, ". "+absolute)
	}

	script := wrapperHeader + "set -e\n\n" + strings.Join(lines, "\n") + "\n"
	return writeScript(scriptPath, script)
}

// WriteShellTestData writes the testdata listing consumed by shell
// test wrappers: one "<absolute source> <destination>" line per pair.
func WriteShellTestData(path string, sources, destinations []string) error {
	if len(sources) != len(destinations) {
		return fmt.Errorf("%d sources but %d destinations", len(sources), len(destinations))
	}
	var builder strings.Builder
	for i, source := range sources {
		absolute, err := filepath.Abs(source)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", source, err)
		}
		fmt.Fprintf(&builder, "%s %s\n", absolute, destinations[i])
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeScript(path, content string) error {
	if err := os.WriteFile(path, []byte(content), scriptMode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// WriteFile's mode is masked by umask; make the exec bits stick.
	if err := os.Chmod(path, scriptMode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
