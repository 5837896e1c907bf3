// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"package", "packge", 1},
		{"one-jar", "onejar", 1},
		{"abc", "xyz", 3},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "package"},
		{Name: "python-binary"},
		{Name: "one-jar"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"packge", "package"},
		{"onejar", "one-jar"},
		{"completely-different", ""},
	}

	for _, tt := range tests {
		if got := suggestCommand(tt.input, commands); got != tt.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.String("output", "", "")
		flagSet.String("main-entry", "", "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"close typo", []string{"--outpot", "x"}, "--output"},
		{"typo with value", []string{"--main-entyr=app.main"}, "--main-entry"},
		{"defined flag ignored", []string{"--output", "x"}, ""},
		{"distant input", []string{"--zzzzzzzzzz"}, ""},
		{"no flags at all", []string{"positional"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := suggestFlag(tt.args, newFlags()); got != tt.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
