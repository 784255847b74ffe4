// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"

	"github.com/urkit-dev/urkit/lib/ur"
)

// BytewordsStyle selects one of the three bytewords renderings.
type BytewordsStyle string

const (
	// BytewordsMinimal renders two letters per byte with no
	// separators, the densest form.
	BytewordsMinimal BytewordsStyle = "minimal"

	// BytewordsStandard renders full four-letter words separated by
	// spaces.
	BytewordsStandard BytewordsStyle = "standard"

	// BytewordsURI renders full words separated by hyphens, safe for
	// embedding in URIs.
	BytewordsURI BytewordsStyle = "uri"
)

// ParseBytewordsStyle parses a style name as given on a CLI flag or
// in a config file.
func ParseBytewordsStyle(name string) (BytewordsStyle, error) {
	switch BytewordsStyle(name) {
	case BytewordsMinimal, BytewordsStandard, BytewordsURI:
		return BytewordsStyle(name), nil
	}
	return "", fmt.Errorf("unknown bytewords style %q (want minimal, standard, or uri)", name)
}

// Gateway is the external UR/bytewords/fountain codec consumed by the
// conversion orchestrator and the fountain state machines. urkit never
// implements the encoding mathematics itself; it drives them through
// this interface. codectest.Gateway is the in-repo implementation used
// by tests and the CLI.
type Gateway interface {
	// ParseUR parses a single-part UR string or one fragment of a
	// multi-part UR. For fragments, PayloadHex is the fragment's own
	// wire payload, not the assembled message.
	ParseUR(text string) (ur.UR, error)

	// RenderUR renders a single-part UR string for the given type and
	// payload. typeName must be valid and non-empty.
	RenderUR(typeName, payloadHex string) (string, error)

	// DecodeCBORHex decodes hex-encoded CBOR into a structured value,
	// preserving tags as codec.Tag.
	DecodeCBORHex(payloadHex string) (any, error)

	// EncodeValueToHex encodes a structured value as CBOR hex.
	EncodeValueToHex(value any) (string, error)

	// TryDecodeRegistryType attempts a registry-typed structural
	// decode of the payload. ok is false when the type is unknown to
	// the registry or the payload does not fit its schema.
	TryDecodeRegistryType(typeName, payloadHex string) (value any, ok bool)

	// BytewordsEncode encodes hex payload bytes (checksummed) in the
	// requested style.
	BytewordsEncode(payloadHex string, style BytewordsStyle) (string, error)

	// BytewordsDecode decodes bytewords text, verifying the checksum,
	// and returns the payload hex.
	BytewordsDecode(text string, style BytewordsStyle) (string, error)

	// NewFountainDecoder returns a fresh decode-side fountain
	// primitive. Each assembly session owns exactly one.
	NewFountainDecoder() FountainDecoder

	// NewFountainEncoder returns an encode-side fountain primitive for
	// the payload. Fragment payload slices are between minLen and
	// maxLen bytes; sequence numbering starts at firstSeqNum.
	NewFountainEncoder(payload ur.UR, maxLen, minLen, firstSeqNum int) (FountainEncoder, error)
}

// FountainDecoder is the decode-side fountain primitive wrapped by
// fountain.Assembler. It is not safe for concurrent use.
type FountainDecoder interface {
	// Receive ingests one fragment string. accepted is false when the
	// fragment is structurally valid but belongs to a different
	// message (checksum or geometry mismatch). A malformed fragment is
	// an error.
	Receive(fragmentText string) (accepted bool, err error)

	// IsComplete reports whether every original block has been
	// resolved.
	IsComplete() bool

	// AssembledPayloadHex returns the reassembled message payload.
	// Errors until IsComplete.
	AssembledPayloadHex() (string, error)

	// SeenBlocks returns the sorted indices of original blocks that
	// any accepted fragment has touched, resolved or not.
	SeenBlocks() []int

	// DecodedBlocks returns the sorted indices of fully resolved
	// original blocks.
	DecodedBlocks() []int

	// ExpectedBlockCount returns the number of original blocks, or 0
	// before the first accepted fragment.
	ExpectedBlockCount() int

	// Reset discards all session state.
	Reset()
}

// FountainEncoder is the encode-side fountain primitive wrapped by
// fountain.Sequencer.
type FountainEncoder interface {
	// BlockCount returns the number of pure fragments needed to cover
	// the payload once.
	BlockCount() int

	// Fragments returns the deterministic finite fragment list: every
	// pure fragment once, then ratio additional full passes of mixed
	// redundancy fragments.
	Fragments(ratio float64) ([]string, error)

	// NextFragment advances the unbounded sequence cursor and returns
	// the next fragment.
	NextFragment() (string, error)
}
