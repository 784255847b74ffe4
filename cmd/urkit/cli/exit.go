// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command returns an ExitError, main exits with
// the given code and prints nothing; the command has already written
// its own output.
//
// Useful where a non-zero exit is a valid outcome, like "detect"
// reporting unrecognized input, rather than an unexpected error.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish a handled non-zero exit from an
// error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
