// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the urkit binary.
//
// [Command] forms a dispatch tree: each command has a name, help
// text, an optional pflag flag set, and either subcommands or a Run
// function. Execute walks the tree by positional arguments, parses
// flags lazily, and renders structured help. Unknown commands and
// flags get edit-distance suggestions.
//
// [ExitError] lets a command request a specific non-zero exit code
// after printing its own output, without main adding a redundant
// error line.
package cli
