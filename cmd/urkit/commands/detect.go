// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/urkit-dev/urkit/cmd/urkit/cli"
	"github.com/urkit-dev/urkit/lib/format"
)

func detectCommand() *cli.Command {
	return &cli.Command{
		Name:    "detect",
		Summary: "Classify input text by format",
		Description: `Print the detected format of the input: multipart-ur, ur, hex,
bytewords, decoded, or unknown.

Exits 1 when the input matches no recognized format, so the command
works as a predicate in scripts.`,
		Usage: "urkit detect [input]",
		Examples: []cli.Example{
			{
				Description: "Classify a literal argument",
				Command:     "urkit detect deadbeef",
			},
			{
				Description: "Classify file contents",
				Command:     "urkit detect payload.txt",
			},
		},
		Run: func(args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			return runDetect(text, os.Stdout)
		},
	}
}

// runDetect prints the detected format. Unknown input exits non-zero
// after printing.
func runDetect(text string, w io.Writer) error {
	detected := format.Detect(text)
	fmt.Fprintln(w, detected.String())
	if detected == format.Unknown {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
