// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/urkit-dev/urkit/cmd/urkit/cli"
	"github.com/urkit-dev/urkit/lib/codec/codectest"
	"github.com/urkit-dev/urkit/lib/format"
	"github.com/urkit-dev/urkit/lib/fountain"
	"github.com/urkit-dev/urkit/lib/registry"
	"github.com/urkit-dev/urkit/lib/ur"
)

// fragmentsParams holds the fragments command's flag values.
type fragmentsParams struct {
	maxLen     int
	minLen     int
	ratio      float64
	firstSeq   int
	count      int
	infinite   bool
	urType     string
	configPath string
}

func fragmentsCommand() *cli.Command {
	var params fragmentsParams

	return &cli.Command{
		Name:    "fragments",
		Summary: "Split a payload into fountain fragments",
		Description: `Generate the multi-part UR fragment sequence for a payload, one
fragment per output line. The input is a single-part UR or hex CBOR;
hex input takes its UR type from --ur-type or falls back to
"unknown-tag".

With --ratio, the finite sequence carries that many extra full passes
of mixed fragments beyond the pure blocks. With --infinite, fragments
stream without bound; --count limits how many are printed.`,
		Usage: "urkit fragments [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Pure fragments for a hex payload",
				Command:     "urkit fragments --max-len 50 deadbeef...",
			},
			{
				Description: "One extra redundancy pass",
				Command:     "urkit fragments --ratio 1 'ur:my-data/ghkn...'",
			},
			{
				Description: "First 20 fragments of an endless stream",
				Command:     "urkit fragments --infinite --count 20 payload.hex",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fragments", pflag.ContinueOnError)
			flagSet.IntVar(&params.maxLen, "max-len", 0, "maximum fragment payload bytes (default 100)")
			flagSet.IntVar(&params.minLen, "min-len", 0, "minimum fragment payload bytes (default 10)")
			flagSet.Float64Var(&params.ratio, "ratio", 0, "extra redundancy passes beyond the pure blocks")
			flagSet.IntVar(&params.firstSeq, "first-seq", 0, "first sequence number (default 1)")
			flagSet.IntVar(&params.count, "count", 0, "fragments to print in infinite mode (default 2x blocks)")
			flagSet.BoolVar(&params.infinite, "infinite", false, "stream fragments without bound")
			flagSet.StringVar(&params.urType, "ur-type", "", "UR type for hex input")
			flagSet.StringVar(&params.configPath, "config", "", "YAML defaults file")
			return flagSet
		},
		Run: func(args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			return runFragments(text, params, os.Stdout)
		},
	}
}

// runFragments builds a sequencer for the payload and prints its
// fragments.
func runFragments(text string, params fragmentsParams, w io.Writer) error {
	config, err := loadConfig(params.configPath)
	if err != nil {
		return err
	}

	gateway := codectest.New(registry.Builtin())
	payload, err := resolvePayload(gateway.ParseUR, text, config.resolveURType(params.urType))
	if err != nil {
		return err
	}

	maxLen, minLen, ratio, firstSeq := config.resolveFragments(
		params.maxLen, params.minLen, params.ratio, params.firstSeq)

	redundancy := fountain.FiniteRedundancy(ratio)
	if params.infinite {
		redundancy = fountain.InfiniteRedundancy()
	}
	sequencer, err := fountain.NewSequencer(gateway, payload, fountain.GenerationConfig{
		MaxFragmentLen: maxLen,
		MinFragmentLen: minLen,
		FirstSeqNum:    firstSeq,
		Redundancy:     redundancy,
	})
	if err != nil {
		return err
	}

	if params.infinite {
		count := params.count
		if count == 0 {
			count = 2 * sequencer.OriginalBlockCount()
		}
		for produced := 0; produced < count; produced++ {
			fragment, err := sequencer.NextFragment()
			if err != nil {
				return err
			}
			fmt.Fprintln(w, fragment)
		}
		return nil
	}

	fragments, err := sequencer.AllFragments()
	if err != nil {
		return err
	}
	for _, fragment := range fragments {
		fmt.Fprintln(w, fragment)
	}
	return nil
}

// resolvePayload turns the input text into a UR payload: a single
// part UR is parsed, hex gets the given type or the reserved
// anonymous one.
func resolvePayload(parseUR func(string) (ur.UR, error), text, typeOverride string) (ur.UR, error) {
	switch format.Detect(text) {
	case format.UR:
		return parseUR(text)

	case format.Hex:
		typeName := ur.SanitizeType(typeOverride)
		if typeName == "" {
			typeName = ur.UnknownTagType
		}
		return ur.New(typeName, strings.ToLower(strings.TrimSpace(text)))

	default:
		return ur.UR{}, fmt.Errorf("fragments input must be a single-part UR or hex CBOR")
	}
}
