// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"

	"github.com/urkit-dev/urkit/lib/format"
)

// InvalidHexError reports source text that is not even-length hex.
type InvalidHexError struct {
	Detail string
}

func (e *InvalidHexError) Error() string {
	return "invalid hex input: " + e.Detail
}

// InvalidURError reports a UR string the codec could not parse, or a
// multi-part set whose fragments disagree on type.
type InvalidURError struct {
	Detail string
}

func (e *InvalidURError) Error() string {
	return "invalid UR input: " + e.Detail
}

// InvalidJSONError reports unparseable decoded-JSON source text.
type InvalidJSONError struct {
	Detail string
}

func (e *InvalidJSONError) Error() string {
	return "invalid JSON input: " + e.Detail
}

// AssemblyIncompleteError reports a multi-part source whose fragments
// do not fully reassemble the payload. Progress carries the resolved
// fraction at the point of failure.
type AssemblyIncompleteError struct {
	Progress float64
}

func (e *AssemblyIncompleteError) Error() string {
	return fmt.Sprintf("multi-part assembly incomplete: %.0f%% of blocks resolved", e.Progress*100)
}

// UnsupportedFormatPairError reports a source/target combination the
// orchestrator cannot serve, including render-only decoded variants
// requested as a source.
type UnsupportedFormatPairError struct {
	Source format.Format
	Target format.Format
}

func (e *UnsupportedFormatPairError) Error() string {
	return fmt.Sprintf("unsupported conversion from %s to %s", e.Source, e.Target)
}

// MissingURTypeError reports a UR target whose type override was
// supplied but unusable (nothing valid remains after sanitization).
type MissingURTypeError struct {
	Override string
}

func (e *MissingURTypeError) Error() string {
	return fmt.Sprintf("UR type override %q contains no usable type name", e.Override)
}
