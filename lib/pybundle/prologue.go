// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

package pybundle

import "fmt"

// DefaultInterpreter is the runtime launched by the bootstrap prologue
// when no interpreter is configured.
const DefaultInterpreter = "python"

// Prologue returns the executable shell prologue for a self-invoking
// bundle. The script puts the binary itself on the module search path
// ($0 is the bundle, which is simultaneously a valid archive) and hands
// off to the interpreter with the configured entry-point module,
// forwarding all arguments.
func Prologue(interpreter, entryModule string) []byte {
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	return fmt.Appendf(nil,
		"#!/bin/sh\n\nPYTHONPATH=\"$0:$PYTHONPATH\" exec %s -m \"%s\" \"$@\"\n",
		interpreter, entryModule)
}
