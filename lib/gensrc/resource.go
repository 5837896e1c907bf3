// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package gensrc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// ResourceIndexOptions configures resource-index source generation for
// a cc resource library.
type ResourceIndexOptions struct {
	// Name is the resource library's target name.
	Name string

	// Path is the directory the library is declared in; resource
	// entry names are relative to it.
	Path string

	// HeaderPath and SourcePath are the generated output files.
	HeaderPath string
	SourcePath string

	// Sources are the resource files to index.
	Sources []string
}

type resourceEntry struct {
	Variable string
	Name     string
	Size     int64
}

var resourceHeaderTemplate = template.Must(template.New("header").Parse(
	`// This file was automatically generated by quarry
#ifndef {{.Guard}}
#define {{.Guard}}

#ifdef __cplusplus
extern "C" {
#endif

#ifndef QUARRY_RESOURCE_TYPE_DEFINED
#define QUARRY_RESOURCE_TYPE_DEFINED
struct QuarryResourceEntry {
    const char* name;
    const char* data;
    unsigned int size;
};
#endif
{{range .Entries}}
// {{.Name}}
extern const char RESOURCE_{{.Variable}}[{{.Size}}];
extern const unsigned RESOURCE_{{.Variable}}_len;
{{end}}
// Resource index
extern const struct QuarryResourceEntry {{.Index}}[];
extern const unsigned {{.Index}}_len;

#ifdef __cplusplus
}  // extern "C"
#endif

#endif  // {{.Guard}}
`))

var resourceSourceTemplate = template.Must(template.New("source").Parse(
	`// This file was automatically generated by quarry
#include "{{.Header}}"

const struct QuarryResourceEntry {{.Index}}[] = {
{{range .Entries}}    { "{{.Name}}", RESOURCE_{{.Variable}}, {{.Size}} },
{{end}}};
const unsigned {{.Index}}_len = {{len .Entries}};
`))

// WriteResourceIndex generates the header and source files describing
// the indexed resources.
func WriteResourceIndex(options ResourceIndexOptions) error {
	fullName := regularVariableName(filepath.Join(options.Path, options.Name))

	var entries []resourceEntry
	for _, source := range options.Sources {
		info, err := os.Stat(source)
		if err != nil {
			return fmt.Errorf("stat resource %s: %w", source, err)
		}
		entryName, err := filepath.Rel(options.Path, source)
		if err != nil {
			return fmt.Errorf("resource %q is not relative to %q: %w", source, options.Path, err)
		}
		entries = append(entries, resourceEntry{
			Variable: regularVariableName(source),
			Name:     filepath.ToSlash(entryName),
			Size:     info.Size(),
		})
	}

	data := struct {
		Guard   string
		Index   string
		Header  string
		Entries []resourceEntry
	}{
		Guard:   fmt.Sprintf("QUARRY_RESOURCE_%s_H_", strings.ToUpper(fullName)),
		Index:   "RESOURCE_INDEX_" + fullName,
		Header:  options.HeaderPath,
		Entries: entries,
	}

	var header bytes.Buffer
	if err := resourceHeaderTemplate.Execute(&header, data); err != nil {
		return fmt.Errorf("rendering resource header: %w", err)
	}
	if err := os.WriteFile(options.HeaderPath, header.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", options.HeaderPath, err)
	}

	var source bytes.Buffer
	if err := resourceSourceTemplate.Execute(&source, data); err != nil {
		return fmt.Errorf("rendering resource source: %w", err)
	}
	if err := os.WriteFile(options.SourcePath, source.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", options.SourcePath, err)
	}
	return nil
}

// regularVariableName converts a path into a C identifier: every
// character outside [A-Za-z0-9_] becomes an underscore.
func regularVariableName(name string) string {
	var builder strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteByte('_')
		}
	}
	return builder.String()
}
