// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for quarry-compose: a
// [Command] tree with lazy pflag flag sets, structured help output,
// typo suggestions for unknown commands and flags, and exit-code
// plumbing via [ExitError].
//
// The framework deliberately avoids global state. Each command builds
// its flag set in a closure, and dispatch walks the tree without
// registries or init-time side effects.
package cli
