// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/quarry-build/quarry/cmd/quarry-compose/cli"
	"github.com/quarry-build/quarry/lib/gensrc"
)

func scmCommand() *cli.Command {
	var output string
	var revision string
	var url string
	var profile string
	var compiler string

	return &cli.Command{
		Name:    "scm",
		Summary: "Write the build-metadata version source",
		Usage:   "quarry-compose scm --output <file> --revision <rev> --url <url> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("scm")
			flagSet.StringVar(&output, "output", "", "source file to write")
			flagSet.StringVar(&revision, "revision", "", "SCM revision")
			flagSet.StringVar(&url, "url", "", "repository URL")
			flagSet.StringVar(&profile, "profile", "", "build profile")
			flagSet.StringVar(&compiler, "compiler", "", "compiler description")
			return flagSet
		},
		Run: run("scm", func(tc *toolContext, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			return gensrc.WriteSCMSource(output, gensrc.SCMInfo{
				Revision: revision,
				URL:      url,
				Profile:  profile,
				Compiler: compiler,
			})
		}),
	}
}

func resourceIndexCommand() *cli.Command {
	var name string
	var path string
	var header string
	var source string

	return &cli.Command{
		Name:    "resource-index",
		Summary: "Write the resource-index header and source pair",
		Usage:   "quarry-compose resource-index --name <target> --path <dir> --header <file.h> --source <file.c> <resources...>",
		Flags: func() *pflag.FlagSet {
			flagSet := newFlagSet("resource-index")
			flagSet.StringVar(&name, "name", "", "resource library target name")
			flagSet.StringVar(&path, "path", "", "directory the library is declared in")
			flagSet.StringVar(&header, "header", "", "header file to write")
			flagSet.StringVar(&source, "source", "", "source file to write")
			return flagSet
		},
		Run: run("resource-index", func(tc *toolContext, args []string) error {
			if name == "" || header == "" || source == "" {
				return fmt.Errorf("--name, --header, and --source are required")
			}
			return gensrc.WriteResourceIndex(gensrc.ResourceIndexOptions{
				Name:       name,
				Path:       path,
				HeaderPath: header,
				SourcePath: source,
				Sources:    args,
			})
		}),
	}
}
