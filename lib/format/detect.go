// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"regexp"
	"strings"
)

var (
	fragmentPattern  = regexp.MustCompile(`^ur:[a-z0-9]+(-[a-z0-9]+)*/[0-9]+of[0-9]+/`)
	hexPattern       = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	wordPattern      = regexp.MustCompile(`^[a-z]{4}$`)
	lowercasePattern = regexp.MustCompile(`^[a-z]+$`)
)

// Detect classifies text. First match wins, in this order: multi-part
// UR, single UR, hex, bytewords, unknown. Empty or whitespace-only
// text yields Empty. UR prefixes and bytewords tokens are lowercase on
// the wire and are matched case-sensitively; hex accepts either case.
func Detect(text string) Format {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty
	}

	if isMultipartUR(trimmed) {
		return MultipartUR
	}
	if strings.HasPrefix(trimmed, "ur:") {
		return UR
	}
	if hexPattern.MatchString(trimmed) && len(trimmed)%2 == 0 {
		return Hex
	}
	if isBytewords(trimmed) {
		return Bytewords
	}
	return Unknown
}

// isMultipartUR reports whether text is several UR-prefixed lines or
// a single fragment carrying a sequence path.
func isMultipartUR(text string) bool {
	lines := nonEmptyLines(text)
	if len(lines) > 1 {
		for _, line := range lines {
			if !strings.HasPrefix(line, "ur:") {
				return false
			}
		}
		return true
	}
	return fragmentPattern.MatchString(lines[0])
}

// isBytewords recognizes either whitespace-separated four-letter
// lowercase words (standard style) or one continuous lowercase run of
// even length >= 4 (minimal style).
func isBytewords(text string) bool {
	fields := strings.Fields(text)
	if len(fields) > 1 {
		for _, field := range fields {
			if !wordPattern.MatchString(field) {
				return false
			}
		}
		return true
	}
	run := fields[0]
	if len(run) == 4 {
		return wordPattern.MatchString(run)
	}
	return lowercasePattern.MatchString(run) && len(run)%2 == 0 && len(run) >= 4
}

// nonEmptyLines splits text into trimmed, non-empty lines. The input
// is already known to be non-blank, so the result is never empty.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
