// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package codectest

import (
	"encoding/hex"
	"fmt"

	"github.com/urkit-dev/urkit/lib/codec"
	"github.com/urkit-dev/urkit/lib/registry"
	"github.com/urkit-dev/urkit/lib/ur"
)

// Gateway implements codec.Gateway. The zero value works without a
// registry (TryDecodeRegistryType always misses); use New to attach
// one.
type Gateway struct {
	registry *registry.Registry
}

// New returns a Gateway backed by reg. reg may be nil.
func New(reg *registry.Registry) *Gateway {
	return &Gateway{registry: reg}
}

var _ codec.Gateway = (*Gateway)(nil)

// ParseUR parses a single-part UR or one fragment of a multi-part UR.
func (g *Gateway) ParseUR(text string) (ur.UR, error) {
	typeName, _, body, err := ur.Parts(text)
	if err != nil {
		return ur.UR{}, fmt.Errorf("parsing UR: %w", err)
	}
	payload, err := decodeBody(body)
	if err != nil {
		return ur.UR{}, fmt.Errorf("decoding UR body: %w", err)
	}
	return ur.New(typeName, hex.EncodeToString(payload))
}

// RenderUR renders a single-part UR string.
func (g *Gateway) RenderUR(typeName, payloadHex string) (string, error) {
	if !ur.ValidType(typeName) {
		return "", fmt.Errorf("invalid UR type %q", typeName)
	}
	payload, err := hexBytes(payloadHex)
	if err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload")
	}
	return ur.Assemble(typeName, nil, encodeBody(payload)), nil
}

// DecodeCBORHex decodes hex-encoded CBOR, preserving tags.
func (g *Gateway) DecodeCBORHex(payloadHex string) (any, error) {
	return codec.DecodeHex(payloadHex)
}

// EncodeValueToHex encodes a structured value as deterministic CBOR
// hex.
func (g *Gateway) EncodeValueToHex(value any) (string, error) {
	return codec.EncodeToHex(value)
}

// TryDecodeRegistryType consults the attached registry.
func (g *Gateway) TryDecodeRegistryType(typeName, payloadHex string) (any, bool) {
	if g.registry == nil {
		return nil, false
	}
	return g.registry.TryDecode(typeName, payloadHex)
}

// BytewordsEncode encodes payload hex in the requested style.
func (g *Gateway) BytewordsEncode(payloadHex string, style codec.BytewordsStyle) (string, error) {
	payload, err := hexBytes(payloadHex)
	if err != nil {
		return "", err
	}
	return bytewordsEncode(payload, style)
}

// BytewordsDecode decodes bytewords text and returns the payload hex.
func (g *Gateway) BytewordsDecode(text string, style codec.BytewordsStyle) (string, error) {
	payload, err := bytewordsDecode(text, style)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(payload), nil
}

// NewFountainDecoder returns a fresh decode-side primitive.
func (g *Gateway) NewFountainDecoder() codec.FountainDecoder {
	return newFountainDecoder()
}

// NewFountainEncoder returns an encode-side primitive for payload.
func (g *Gateway) NewFountainEncoder(payload ur.UR, maxLen, minLen, firstSeqNum int) (codec.FountainEncoder, error) {
	return newFountainEncoder(payload, maxLen, minLen, firstSeqNum)
}
