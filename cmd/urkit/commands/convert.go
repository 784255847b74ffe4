// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/urkit-dev/urkit/cmd/urkit/cli"
	"github.com/urkit-dev/urkit/lib/codec/codectest"
	"github.com/urkit-dev/urkit/lib/convert"
	"github.com/urkit-dev/urkit/lib/format"
	"github.com/urkit-dev/urkit/lib/registry"
)

// convertParams holds the convert command's flag values.
type convertParams struct {
	from       string
	to         string
	urType     string
	style      string
	configPath string
	verbose    bool
}

func convertCommand() *cli.Command {
	var params convertParams

	return &cli.Command{
		Name:    "convert",
		Summary: "Convert between payload representations",
		Description: `Convert input between UR strings, hex-encoded CBOR, bytewords, and
the decoded views (decoded, decoded-diagnostic, decoded-annotated).

The source format is auto-detected unless --from is given. Multi-part
UR input is reassembled before conversion; incomplete fragment sets
are an error reporting assembly progress.

When the target is ur and the payload determines no type, --ur-type
names one; without it the reserved type "unknown-tag" is used.`,
		Usage: "urkit convert [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Hex to decoded JSON",
				Command:     "urkit convert --to decoded a2626964187b646e616d65684a6f686e20446f65",
			},
			{
				Description: "UR to hex",
				Command:     "urkit convert --to hex 'ur:my-data/ghkn...'",
			},
			{
				Description: "Hex to a typed UR",
				Command:     "urkit convert --to ur --ur-type my-data deadbeef",
			},
			{
				Description: "Reassemble fragments from a file",
				Command:     "urkit convert --from multipart-ur --to decoded fragments.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.StringVar(&params.from, "from", "", "source format (default: auto-detect)")
			flagSet.StringVar(&params.to, "to", "decoded", "target format")
			flagSet.StringVar(&params.urType, "ur-type", "", "UR type for payloads that determine none")
			flagSet.StringVar(&params.style, "bytewords-style", "", "bytewords style: minimal, standard, or uri")
			flagSet.StringVar(&params.configPath, "config", "", "YAML defaults file")
			flagSet.BoolVarP(&params.verbose, "verbose", "v", false, "log conversion decisions to stderr")
			return flagSet
		},
		Run: func(args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			return runConvert(text, params, os.Stdout)
		},
	}
}

// runConvert performs one conversion and prints the rendered target.
func runConvert(text string, params convertParams, w io.Writer) error {
	config, err := loadConfig(params.configPath)
	if err != nil {
		return err
	}

	source := format.Detect(text)
	if params.from != "" {
		source, err = format.Parse(params.from)
		if err != nil {
			return err
		}
	}
	target, err := format.Parse(params.to)
	if err != nil {
		return err
	}

	style, err := config.resolveStyle(params.style)
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if params.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	reg := registry.Builtin()
	orchestrator := convert.NewOrchestrator(codectest.New(reg), reg, logger)
	output, err := orchestrator.Convert(text, source, target, convert.Options{
		URTypeOverride:    config.resolveURType(params.urType),
		BytewordsInStyle:  style,
		BytewordsOutStyle: style,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, output.Text)
	if output.UsedFallback && logger != nil {
		logger.Info("typed decode unavailable, showed generic decode")
	}
	return nil
}
