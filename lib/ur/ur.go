// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package ur

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Prefix is the URI scheme prefix of every UR string.
const Prefix = "ur:"

// UnknownTagType is the reserved type synthesized for anonymous
// payloads (CBOR with no registry tag) when the caller supplies no
// type of their own.
const UnknownTagType = "unknown-tag"

// typePattern validates UR type names: lowercase alphanumeric groups
// joined by single hyphens, no leading or trailing hyphen.
var typePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// sequencePattern matches the fragment sequence path component, e.g.
// "2of9".
var sequencePattern = regexp.MustCompile(`^([0-9]+)of([0-9]+)$`)

// UR is a typed CBOR payload. Type is empty for anonymous payloads.
// A UR is an immutable value: construct it with New (or through a
// codec gateway) and copy it freely.
type UR struct {
	// Type is the registry type name, matching typePattern, or empty
	// for an anonymous payload.
	Type string

	// PayloadHex is the lowercase hex encoding of the CBOR payload.
	PayloadHex string
}

// New validates typeName and payloadHex and returns the UR value.
// An empty typeName is allowed (anonymous payload); an empty payload
// is not.
func New(typeName, payloadHex string) (UR, error) {
	if typeName != "" && !ValidType(typeName) {
		return UR{}, fmt.Errorf("invalid UR type %q: must match %s", typeName, typePattern)
	}
	if payloadHex == "" {
		return UR{}, fmt.Errorf("empty UR payload")
	}
	normalized := strings.ToLower(payloadHex)
	if _, err := hex.DecodeString(normalized); err != nil {
		return UR{}, fmt.Errorf("invalid UR payload hex: %w", err)
	}
	if len(normalized)%2 != 0 {
		return UR{}, fmt.Errorf("invalid UR payload hex: odd length %d", len(normalized))
	}
	return UR{Type: typeName, PayloadHex: normalized}, nil
}

// ValidType reports whether typeName is a well-formed UR type name.
func ValidType(typeName string) bool {
	return typePattern.MatchString(typeName)
}

// SanitizeType normalizes arbitrary caller input into a valid UR type
// name: lowercased, with every run of disallowed characters collapsed
// to a single hyphen and leading/trailing hyphens trimmed. Returns
// the empty string when nothing usable remains.
func SanitizeType(input string) string {
	lowered := strings.ToLower(strings.TrimSpace(input))
	var builder strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			builder.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				builder.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(builder.String(), "-")
}

// Sequence identifies one fragment's position within a multi-part UR.
type Sequence struct {
	// Num is the 1-based fragment sequence number. For redundancy
	// fragments it exceeds Total.
	Num int

	// Total is the number of pure fragments covering the payload once.
	Total int
}

// String renders the sequence path component, e.g. "2of9".
func (s Sequence) String() string {
	return strconv.Itoa(s.Num) + "of" + strconv.Itoa(s.Total)
}

// ParseSequence parses a sequence path component such as "2of9".
// Returns ok=false when the component is not a sequence path at all;
// returns an error only when it is one but carries invalid numbers.
func ParseSequence(component string) (Sequence, bool, error) {
	match := sequencePattern.FindStringSubmatch(component)
	if match == nil {
		return Sequence{}, false, nil
	}
	num, err := strconv.Atoi(match[1])
	if err != nil {
		return Sequence{}, true, fmt.Errorf("parsing sequence number %q: %w", match[1], err)
	}
	total, err := strconv.Atoi(match[2])
	if err != nil {
		return Sequence{}, true, fmt.Errorf("parsing sequence total %q: %w", match[2], err)
	}
	if num < 1 || total < 1 {
		return Sequence{}, true, fmt.Errorf("sequence %q: numbers must be >= 1", component)
	}
	return Sequence{Num: num, Total: total}, true, nil
}

// Parts decomposes a UR string into its type name, optional fragment
// sequence, and body. The body is returned verbatim; decoding it is
// the codec gateway's job.
func Parts(text string) (typeName string, seq *Sequence, body string, err error) {
	trimmed := strings.TrimSpace(text)
	lowered := strings.ToLower(trimmed)
	if !strings.HasPrefix(lowered, Prefix) {
		return "", nil, "", fmt.Errorf("missing %q prefix", Prefix)
	}
	components := strings.Split(lowered[len(Prefix):], "/")
	switch len(components) {
	case 2:
		typeName, body = components[0], components[1]
	case 3:
		typeName, body = components[0], components[2]
		parsed, isSequence, seqErr := ParseSequence(components[1])
		if seqErr != nil {
			return "", nil, "", seqErr
		}
		if !isSequence {
			return "", nil, "", fmt.Errorf("path component %q is not a fragment sequence", components[1])
		}
		seq = &parsed
	default:
		return "", nil, "", fmt.Errorf("expected 2 or 3 path components, got %d", len(components))
	}
	if !ValidType(typeName) {
		return "", nil, "", fmt.Errorf("invalid UR type %q", typeName)
	}
	if body == "" {
		return "", nil, "", fmt.Errorf("empty UR body")
	}
	return typeName, seq, body, nil
}

// Assemble builds a UR string from its components. seq is nil for
// single-part URs.
func Assemble(typeName string, seq *Sequence, body string) string {
	if seq == nil {
		return Prefix + typeName + "/" + body
	}
	return Prefix + typeName + "/" + seq.String() + "/" + body
}
