// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for quarry tools.
//
// Configuration is loaded from a single file specified by either the
// QUARRY_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. An unset QUARRY_CONFIG is not an
// error: every setting has a working default, and composition tools
// run inside build orchestrators that rarely carry configuration of
// their own.
//
// Environment variables never override file values. The file is the
// single source of truth for a build, which keeps composition
// deterministic and auditable.
//
// Key exports:
//
//   - [Config] -- master struct with Logging, Python, Archive
//   - [Default] -- returns a Config with working defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other quarry packages.
package config
