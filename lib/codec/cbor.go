// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/hex"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
// Decoding tagged data into an any target yields cbor.Tag values, so
// registry resolution can inspect the outermost tag; map values with
// string keys decode to map[string]any for JSON compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Tag is a decoded CBOR tag: the tag number plus its enclosed content.
// Type alias so consumers import only lib/codec, not fxamacker/cbor
// directly.
type Tag = cbor.Tag

// RawTag is a CBOR tag whose content is left as raw encoded bytes.
type RawTag = cbor.RawTag

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DecodeHex decodes hex-encoded CBOR into a structured value. Tagged
// items surface as codec.Tag so the caller can inspect tag numbers.
func DecodeHex(payloadHex string) (any, error) {
	data, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil, fmt.Errorf("decoding payload hex: %w", err)
	}
	var value any
	if err := Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decoding CBOR: %w", err)
	}
	return value, nil
}

// EncodeToHex encodes value as deterministic CBOR and returns the
// lowercase hex of the result.
func EncodeToHex(value any) (string, error) {
	data, err := Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encoding CBOR: %w", err)
	}
	return hex.EncodeToString(data), nil
}

// Normalize recursively converts a CBOR-decoded value into
// JSON-compatible types: map[any]any keys become strings, codec.Tag
// wrappers are unwrapped to their content, and byte strings become
// lowercase hex strings.
func Normalize(v any) any {
	switch value := v.(type) {
	case Tag:
		return Normalize(value.Content)

	case []byte:
		return hex.EncodeToString(value)

	case map[any]any:
		result := make(map[string]any, len(value))
		for key, element := range value {
			result[fmt.Sprint(key)] = Normalize(element)
		}
		return result

	case map[string]any:
		for key, element := range value {
			value[key] = Normalize(element)
		}
		return value

	case []any:
		for index, element := range value {
			value[index] = Normalize(element)
		}
		return value

	default:
		return v
	}
}
