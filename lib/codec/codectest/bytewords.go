// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package codectest

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/urkit-dev/urkit/lib/codec"
)

// wordLetters are the sixteen letters used to build the synthetic
// word table. The range g–v deliberately avoids the hex alphabet so
// that minimal-style output is never mistaken for hex.
const wordLetters = "ghijklmnopqrstuv"

// words maps each byte value to its four-letter word. The first and
// second letters carry the high and low nibbles; the fourth letter is
// their XOR, giving the two-letter minimal form (first + last) enough
// information to recover the byte.
var words [256]string

// byteForWord and byteForPair invert the word table.
var (
	byteForWord = make(map[string]byte, 256)
	byteForPair = make(map[string]byte, 256)
)

func init() {
	for i := 0; i < 256; i++ {
		high := wordLetters[i>>4]
		low := wordLetters[i&0x0f]
		check := wordLetters[(i>>4)^(i&0x0f)]
		word := string([]byte{high, low, 'z', check})
		words[i] = word
		byteForWord[word] = byte(i)
		byteForPair[string([]byte{high, check})] = byte(i)
	}
}

// bytewordsEncode renders data (with a trailing CRC32 checksum) in
// the requested style.
func bytewordsEncode(data []byte, style codec.BytewordsStyle) (string, error) {
	checksummed := appendChecksum(data)
	switch style {
	case codec.BytewordsMinimal:
		var builder strings.Builder
		builder.Grow(len(checksummed) * 2)
		for _, b := range checksummed {
			word := words[b]
			builder.WriteByte(word[0])
			builder.WriteByte(word[3])
		}
		return builder.String(), nil

	case codec.BytewordsStandard, codec.BytewordsURI:
		parts := make([]string, len(checksummed))
		for i, b := range checksummed {
			parts[i] = words[b]
		}
		separator := " "
		if style == codec.BytewordsURI {
			separator = "-"
		}
		return strings.Join(parts, separator), nil
	}
	return "", fmt.Errorf("unknown bytewords style %q", style)
}

// bytewordsDecode parses text in the requested style, verifies and
// strips the trailing checksum, and returns the payload bytes.
func bytewordsDecode(text string, style codec.BytewordsStyle) ([]byte, error) {
	trimmed := strings.TrimSpace(strings.ToLower(text))
	var data []byte

	switch style {
	case codec.BytewordsMinimal:
		if len(trimmed)%2 != 0 {
			return nil, fmt.Errorf("minimal bytewords length %d is odd", len(trimmed))
		}
		data = make([]byte, 0, len(trimmed)/2)
		for i := 0; i < len(trimmed); i += 2 {
			b, ok := byteForPair[trimmed[i:i+2]]
			if !ok {
				return nil, fmt.Errorf("unknown minimal byteword pair %q at offset %d", trimmed[i:i+2], i)
			}
			data = append(data, b)
		}

	case codec.BytewordsStandard, codec.BytewordsURI:
		separator := " "
		if style == codec.BytewordsURI {
			separator = "-"
		}
		for index, word := range strings.Split(trimmed, separator) {
			b, ok := byteForWord[word]
			if !ok {
				return nil, fmt.Errorf("unknown byteword %q at index %d", word, index)
			}
			data = append(data, b)
		}

	default:
		return nil, fmt.Errorf("unknown bytewords style %q", style)
	}

	return stripChecksum(data)
}

// appendChecksum appends the big-endian CRC32 of data.
func appendChecksum(data []byte) []byte {
	out := make([]byte, len(data)+4)
	copy(out, data)
	binary.BigEndian.PutUint32(out[len(data):], crc32.ChecksumIEEE(data))
	return out
}

// stripChecksum verifies and removes the trailing CRC32.
func stripChecksum(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("bytewords payload too short for checksum: %d bytes", len(data))
	}
	payload, trailer := data[:len(data)-4], data[len(data)-4:]
	want := binary.BigEndian.Uint32(trailer)
	if got := crc32.ChecksumIEEE(payload); got != want {
		return nil, fmt.Errorf("bytewords checksum mismatch: computed %08x, trailer %08x", got, want)
	}
	return payload, nil
}

// decodeBody decodes a UR body (always minimal style on the wire).
func decodeBody(body string) ([]byte, error) {
	return bytewordsDecode(body, codec.BytewordsMinimal)
}

// encodeBody encodes payload bytes as a UR body.
func encodeBody(payload []byte) string {
	body, err := bytewordsEncode(payload, codec.BytewordsMinimal)
	if err != nil {
		// Minimal encoding cannot fail for any byte slice.
		panic("codectest: minimal bytewords encode failed: " + err.Error())
	}
	return body
}

// hexBytes decodes payload hex, with context in the error.
func hexBytes(payloadHex string) ([]byte, error) {
	data, err := hex.DecodeString(strings.ToLower(payloadHex))
	if err != nil {
		return nil, fmt.Errorf("decoding payload hex: %w", err)
	}
	return data, nil
}
