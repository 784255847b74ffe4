// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the urkit CLI command tree. The commands
// are thin consumers of the library packages: the format detector,
// the conversion orchestrator, and the fountain sequencer. All
// behavior lives in lib/; this package handles flags, input
// resolution, and output.
package commands

import (
	"github.com/urkit-dev/urkit/cmd/urkit/cli"
)

// Root builds the complete urkit command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "urkit",
		Description: `urkit: UR payload inspection and round-tripping.

Convert developer-held payload text between UR strings, hex-encoded
CBOR, bytewords, and decoded JSON views; reassemble multi-part
fountain-coded URs; and split payloads into fragments for animated
display.`,
		Subcommands: []*cli.Command{
			detectCommand(),
			convertCommand(),
			fragmentsCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Classify a piece of input text",
				Command:     "urkit detect 'ur:my-data/ghghkmnl...'",
			},
			{
				Description: "Decode hex CBOR to JSON",
				Command:     "urkit convert --to decoded a2626964187b646e616d65684a6f686e20446f65",
			},
			{
				Description: "Reassemble fragments pasted on stdin",
				Command:     "urkit convert --from multipart-ur --to hex < fragments.txt",
			},
			{
				Description: "Split a payload into fountain fragments",
				Command:     "urkit fragments --max-len 50 --ratio 1 deadbeef",
			},
		},
	}
}
