// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readInput resolves the input text for a command. A single
// positional argument is used directly: if it names a regular file on
// disk, the file's contents; otherwise the argument itself is the
// input text. With no arguments, stdin is read.
func readInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil

	case 1:
		candidate := args[0]
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			data, err := os.ReadFile(candidate)
			if err != nil {
				return "", fmt.Errorf("reading %s: %w", candidate, err)
			}
			return strings.TrimRight(string(data), "\n"), nil
		}
		return candidate, nil

	default:
		return "", fmt.Errorf("at most one input argument expected, got %d", len(args))
	}
}
