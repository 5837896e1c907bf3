// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package gensrc emits peripheral generated files: build-metadata
// sources, resource-index sources, and test wrapper scripts.
//
// Everything here is fixed-text template substitution. There is no
// merge or conflict logic and no shared state with the composers; the
// orchestrator invokes these generators as ordinary build steps.
package gensrc

import (
	"bytes"
	"fmt"
	"os"
	"os/user"
	"text/template"
	"time"
)

// SCMInfo carries the build metadata embedded into generated version
// sources.
type SCMInfo struct {
	// Revision is the SCM revision identifier.
	Revision string

	// URL is the repository URL.
	URL string

	// Profile is the build profile (debug, release, ...).
	Profile string

	// Compiler names the compiler used for the build.
	Compiler string

	// BuilderName is the invoking user. Filled from the environment
	// when empty.
	BuilderName string

	// HostName is the build host. Filled from the environment when
	// empty.
	HostName string

	// BuildTime is the build timestamp. Filled with the current time
	// when zero.
	BuildTime time.Time
}

var scmTemplate = template.Must(template.New("scm").Parse(
	`/* This file was generated by quarry */
extern "C" {
namespace binary_version {
extern const int kSvnInfoCount = 1;
extern const char* const kSvnInfo[] = {"{{.Version}}\n"};
extern const int kScmInfoCount = 1;
extern const char* const kScmInfo[] = {"{{.Version}}\n"};
extern const char kBuildType[] = "{{.Profile}}";
extern const char kBuildTime[] = "{{.BuildTime}}";
extern const char kBuilderName[] = "{{.BuilderName}}";
extern const char kHostName[] = "{{.HostName}}";
extern const char kCompiler[] = "{{.Compiler}}";
}}
`))

// WriteSCMSource generates the version source file at path.
func WriteSCMSource(path string, info SCMInfo) error {
	if info.BuilderName == "" {
		if current, err := user.Current(); err == nil {
			info.BuilderName = current.Username
		}
	}
	if info.HostName == "" {
		if hostname, err := os.Hostname(); err == nil {
			info.HostName = hostname
		}
	}
	if info.BuildTime.IsZero() {
		info.BuildTime = time.Now()
	}

	data := struct {
		Version     string
		Profile     string
		BuildTime   string
		BuilderName string
		HostName    string
		Compiler    string
	}{
		Version:     fmt.Sprintf("%s@%s", info.URL, info.Revision),
		Profile:     info.Profile,
		BuildTime:   info.BuildTime.Format(time.ANSIC),
		BuilderName: info.BuilderName,
		HostName:    info.HostName,
		Compiler:    info.Compiler,
	}

	var buffer bytes.Buffer
	if err := scmTemplate.Execute(&buffer, data); err != nil {
		return fmt.Errorf("rendering scm source: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
