// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"

	"github.com/urkit-dev/urkit/lib/codec"
	"github.com/urkit-dev/urkit/lib/ur"
)

// Entry describes one registry type: its UR type name, the CBOR tag
// number that identifies it on the wire, and the structural decoder
// for its payload.
type Entry struct {
	// TypeName is the UR type name, e.g. "epoch-date".
	TypeName string

	// Tag is the CBOR tag number that marks this type's payloads.
	Tag uint64

	// Decode performs the typed structural decode of a payload. It
	// returns an error when the payload does not fit the type's
	// schema.
	Decode func(payloadHex string) (any, error)
}

// Registry is a lookup table of registry types. Populate it with
// Register before use; a Registry is read-only afterwards and safe
// for concurrent lookups.
type Registry struct {
	byName map[string]Entry
	byTag  map[uint64]Entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]Entry),
		byTag:  make(map[uint64]Entry),
	}
}

// Register adds an entry. The type name must be valid and both the
// name and the tag must be unused.
func (r *Registry) Register(entry Entry) error {
	if !ur.ValidType(entry.TypeName) {
		return fmt.Errorf("invalid registry type name %q", entry.TypeName)
	}
	if entry.Decode == nil {
		return fmt.Errorf("registry type %q has no decoder", entry.TypeName)
	}
	if _, exists := r.byName[entry.TypeName]; exists {
		return fmt.Errorf("registry type %q already registered", entry.TypeName)
	}
	if prior, exists := r.byTag[entry.Tag]; exists {
		return fmt.Errorf("CBOR tag %d already registered to %q", entry.Tag, prior.TypeName)
	}
	r.byName[entry.TypeName] = entry
	r.byTag[entry.Tag] = entry
	return nil
}

// TryDecode attempts the typed structural decode for typeName. ok is
// false when the type is unknown or the payload fails its schema.
func (r *Registry) TryDecode(typeName, payloadHex string) (any, bool) {
	entry, exists := r.byName[typeName]
	if !exists {
		return nil, false
	}
	value, err := entry.Decode(payloadHex)
	if err != nil {
		return nil, false
	}
	return value, true
}

// ResolveType inspects a CBOR-decoded value and returns the type name
// registered for its outermost tag, if any.
func (r *Registry) ResolveType(value any) (string, bool) {
	tag, isTag := value.(codec.Tag)
	if !isTag {
		return "", false
	}
	entry, exists := r.byTag[tag.Number]
	if !exists {
		return "", false
	}
	return entry.TypeName, true
}

// Builtin returns a Registry preloaded with the two standard CBOR
// date tags (RFC 8949 §3.4.1–2): tag 0 as "iso-date" and tag 1 as
// "epoch-date". Callers extend it with their own Register calls.
func Builtin() *Registry {
	r := New()

	mustRegister := func(entry Entry) {
		if err := r.Register(entry); err != nil {
			panic("registry: builtin registration failed: " + err.Error())
		}
	}

	mustRegister(Entry{
		TypeName: "iso-date",
		Tag:      0,
		Decode:   decodeTagged(0, func(content any) (any, bool) { s, ok := content.(string); return s, ok }),
	})
	mustRegister(Entry{
		TypeName: "epoch-date",
		Tag:      1,
		Decode: decodeTagged(1, func(content any) (any, bool) {
			switch content.(type) {
			case uint64, int64, float64:
				return content, true
			}
			return nil, false
		}),
	})
	return r
}

// decodeTagged builds a Decode function that requires the payload to
// be CBOR tagged with number and whose content passes extract.
func decodeTagged(number uint64, extract func(content any) (any, bool)) func(string) (any, error) {
	return func(payloadHex string) (any, error) {
		value, err := codec.DecodeHex(payloadHex)
		if err != nil {
			return nil, err
		}
		tag, isTag := value.(codec.Tag)
		if !isTag || tag.Number != number {
			return nil, fmt.Errorf("payload is not tagged %d", number)
		}
		content, ok := extract(tag.Content)
		if !ok {
			return nil, fmt.Errorf("tag %d content has unexpected shape %T", number, tag.Content)
		}
		return map[string]any{"tag": number, "value": codec.Normalize(content)}, nil
	}
}
