// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package jvmbundle

import (
	"archive/zip"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// TestClassNames scans a test jar and returns the dotted class names of
// its test classes. A test class is any entry whose base name ends in
// "Test.class", excluding inner classes ($ in the name) and the bare
// "Test.class" itself.
func TestClassNames(jarPath string) ([]string, error) {
	reader, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", jarPath, err)
	}
	defer reader.Close()

	var classNames []string
	for _, file := range reader.File {
		base := path.Base(file.Name)
		if !strings.HasSuffix(base, "Test.class") || base == "Test.class" {
			continue
		}
		if strings.Contains(base, "$") {
			continue
		}
		className := strings.ReplaceAll(strings.TrimSuffix(file.Name, ".class"), "/", ".")
		classNames = append(classNames, className)
	}
	return classNames, nil
}

// JacocoAgentFlag assembles the -javaagent flag enabling JaCoCo
// coverage collection for the given colon-separated package list.
// Returns "" when either the agent path or the package list is empty —
// coverage is opt-in.
func JacocoAgentFlag(agentPath, packagesUnderTest string) string {
	if agentPath == "" || packagesUnderTest == "" {
		return ""
	}

	absoluteAgent, err := filepath.Abs(agentPath)
	if err != nil {
		absoluteAgent = agentPath
	}

	var includes []string
	for _, packageName := range strings.Split(packagesUnderTest, ":") {
		if packageName != "" {
			includes = append(includes, packageName+".*")
		}
	}

	options := fmt.Sprintf("includes=%s,output=file", strings.Join(includes, ":"))
	return fmt.Sprintf("-javaagent:%s=%s", absoluteAgent, options)
}
