// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package format

import "fmt"

// Format tags the recognized input and output formats.
type Format int

const (
	// Unknown is text that matches no recognized format.
	Unknown Format = iota

	// Empty is empty or whitespace-only input. A distinguished result
	// rather than an error, so callers can short-circuit quietly.
	Empty

	// MultipartUR is a fountain-coded multi-part UR: several
	// UR-prefixed lines, or a single fragment with a sequence path.
	MultipartUR

	// UR is a single-part UR string.
	UR

	// Hex is even-length hexadecimal text.
	Hex

	// Bytewords is bytewords text in standard or minimal style.
	Bytewords

	// DecodedJSON is the canonical decoded form: the CBOR structure
	// rendered as JSON. The only decoded variant that can be used as
	// a conversion source.
	DecodedJSON

	// DecodedDiagnostic is CBOR diagnostic notation (RFC 8949 §8).
	// Render-only.
	DecodedDiagnostic

	// DecodedAnnotated is JSON with explanatory comments.
	// Render-only.
	DecodedAnnotated
)

var formatNames = map[Format]string{
	Unknown:           "unknown",
	Empty:             "empty",
	MultipartUR:       "multipart-ur",
	UR:                "ur",
	Hex:               "hex",
	Bytewords:         "bytewords",
	DecodedJSON:       "decoded",
	DecodedDiagnostic: "decoded-diagnostic",
	DecodedAnnotated:  "decoded-annotated",
}

// String returns the format's stable name, as used on CLI flags.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Parse resolves a format name from a CLI flag or config file.
// "decoded-json" is accepted as an alias for the canonical decoded
// form.
func Parse(name string) (Format, error) {
	if name == "decoded-json" {
		return DecodedJSON, nil
	}
	for format, formatName := range formatNames {
		if name == formatName {
			return format, nil
		}
	}
	return Unknown, fmt.Errorf("unknown format %q", name)
}

// IsDecoded reports whether f belongs to the decoded family.
func (f Format) IsDecoded() bool {
	return f == DecodedJSON || f == DecodedDiagnostic || f == DecodedAnnotated
}
