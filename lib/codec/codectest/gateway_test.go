// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package codectest

import (
	"strings"
	"testing"

	"github.com/urkit-dev/urkit/lib/codec"
	"github.com/urkit-dev/urkit/lib/ur"
)

func TestBytewordsRoundTrip(t *testing.T) {
	gateway := New(nil)
	payloadHex := "a2626964187b646e616d65684a6f686e20446f65"

	for _, style := range []codec.BytewordsStyle{
		codec.BytewordsMinimal,
		codec.BytewordsStandard,
		codec.BytewordsURI,
	} {
		t.Run(string(style), func(t *testing.T) {
			encoded, err := gateway.BytewordsEncode(payloadHex, style)
			if err != nil {
				t.Fatalf("BytewordsEncode: %v", err)
			}
			decoded, err := gateway.BytewordsDecode(encoded, style)
			if err != nil {
				t.Fatalf("BytewordsDecode(%q): %v", encoded, err)
			}
			if decoded != payloadHex {
				t.Errorf("round trip: got %q, want %q", decoded, payloadHex)
			}
		})
	}
}

func TestBytewordsChecksumDetectsCorruption(t *testing.T) {
	gateway := New(nil)
	encoded, err := gateway.BytewordsEncode("deadbeef", codec.BytewordsStandard)
	if err != nil {
		t.Fatalf("BytewordsEncode: %v", err)
	}

	// Swap the first word for a different valid word.
	parts := strings.Fields(encoded)
	replacement := words[0]
	if parts[0] == replacement {
		replacement = words[1]
	}
	parts[0] = replacement

	if _, err := gateway.BytewordsDecode(strings.Join(parts, " "), codec.BytewordsStandard); err == nil {
		t.Error("decode of corrupted bytewords succeeded, want checksum error")
	}
}

func TestURRoundTrip(t *testing.T) {
	gateway := New(nil)
	payloadHex := "a2626964187b646e616d65684a6f686e20446f65"

	text, err := gateway.RenderUR("my-data", payloadHex)
	if err != nil {
		t.Fatalf("RenderUR: %v", err)
	}
	if !strings.HasPrefix(text, "ur:my-data/") {
		t.Fatalf("rendered UR %q missing prefix", text)
	}

	parsed, err := gateway.ParseUR(text)
	if err != nil {
		t.Fatalf("ParseUR(%q): %v", text, err)
	}
	if parsed.Type != "my-data" || parsed.PayloadHex != payloadHex {
		t.Errorf("parsed = %+v, want type my-data payload %s", parsed, payloadHex)
	}
}

func TestFountainPureFragmentsReassemble(t *testing.T) {
	gateway := New(nil)
	payload, err := ur.New("my-data", strings.Repeat("0123456789abcdef", 8))
	if err != nil {
		t.Fatalf("ur.New: %v", err)
	}

	encoder, err := gateway.NewFountainEncoder(payload, 10, 5, 1)
	if err != nil {
		t.Fatalf("NewFountainEncoder: %v", err)
	}
	fragments, err := encoder.Fragments(0)
	if err != nil {
		t.Fatalf("Fragments: %v", err)
	}
	if len(fragments) != encoder.BlockCount() {
		t.Fatalf("Fragments(0) returned %d fragments, want %d pure blocks", len(fragments), encoder.BlockCount())
	}

	// Deliver in reverse order.
	decoder := gateway.NewFountainDecoder()
	for i := len(fragments) - 1; i >= 0; i-- {
		accepted, err := decoder.Receive(fragments[i])
		if err != nil {
			t.Fatalf("Receive(%d): %v", i, err)
		}
		if !accepted {
			t.Fatalf("fragment %d rejected", i)
		}
	}
	if !decoder.IsComplete() {
		t.Fatal("decoder incomplete after all pure fragments")
	}
	assembled, err := decoder.AssembledPayloadHex()
	if err != nil {
		t.Fatalf("AssembledPayloadHex: %v", err)
	}
	if assembled != payload.PayloadHex {
		t.Errorf("assembled %q, want %q", assembled, payload.PayloadHex)
	}
}

func TestFountainMixedFragmentsPeel(t *testing.T) {
	gateway := New(nil)
	payload, err := ur.New("my-data", strings.Repeat("42", 60))
	if err != nil {
		t.Fatalf("ur.New: %v", err)
	}

	encoder, err := gateway.NewFountainEncoder(payload, 16, 8, 1)
	if err != nil {
		t.Fatalf("NewFountainEncoder: %v", err)
	}

	// Skip one pure fragment; rely on mixed redundancy to fill the gap.
	fragments, err := encoder.Fragments(3)
	if err != nil {
		t.Fatalf("Fragments: %v", err)
	}
	decoder := gateway.NewFountainDecoder()
	for i, fragment := range fragments {
		if i == 1 {
			continue
		}
		if _, err := decoder.Receive(fragment); err != nil {
			t.Fatalf("Receive(%d): %v", i, err)
		}
	}
	if !decoder.IsComplete() {
		t.Fatalf("decoder incomplete: decoded %v of %d", decoder.DecodedBlocks(), decoder.ExpectedBlockCount())
	}
	assembled, err := decoder.AssembledPayloadHex()
	if err != nil {
		t.Fatalf("AssembledPayloadHex: %v", err)
	}
	if assembled != payload.PayloadHex {
		t.Errorf("assembled %q, want %q", assembled, payload.PayloadHex)
	}
}

func TestFountainDecoderRejectsForeignFragment(t *testing.T) {
	gateway := New(nil)
	first, err := ur.New("my-data", strings.Repeat("11", 40))
	if err != nil {
		t.Fatalf("ur.New: %v", err)
	}
	second, err := ur.New("my-data", strings.Repeat("22", 64))
	if err != nil {
		t.Fatalf("ur.New: %v", err)
	}

	firstEncoder, err := gateway.NewFountainEncoder(first, 10, 5, 1)
	if err != nil {
		t.Fatalf("NewFountainEncoder: %v", err)
	}
	secondEncoder, err := gateway.NewFountainEncoder(second, 10, 5, 1)
	if err != nil {
		t.Fatalf("NewFountainEncoder: %v", err)
	}

	decoder := gateway.NewFountainDecoder()
	firstFragment, err := firstEncoder.NextFragment()
	if err != nil {
		t.Fatalf("NextFragment: %v", err)
	}
	if accepted, err := decoder.Receive(firstFragment); err != nil || !accepted {
		t.Fatalf("first fragment: accepted=%v err=%v", accepted, err)
	}

	foreign, err := secondEncoder.NextFragment()
	if err != nil {
		t.Fatalf("NextFragment: %v", err)
	}
	accepted, err := decoder.Receive(foreign)
	if err != nil {
		t.Fatalf("foreign fragment errored: %v", err)
	}
	if accepted {
		t.Error("foreign fragment accepted, want geometry rejection")
	}
}

func TestSinglePartURCompletesImmediately(t *testing.T) {
	gateway := New(nil)
	payloadHex := "a10150"
	text, err := gateway.RenderUR("tiny", payloadHex)
	if err != nil {
		t.Fatalf("RenderUR: %v", err)
	}

	decoder := gateway.NewFountainDecoder()
	accepted, err := decoder.Receive(text)
	if err != nil || !accepted {
		t.Fatalf("Receive: accepted=%v err=%v", accepted, err)
	}
	if !decoder.IsComplete() {
		t.Fatal("single-part UR did not complete on first receipt")
	}
	assembled, err := decoder.AssembledPayloadHex()
	if err != nil {
		t.Fatalf("AssembledPayloadHex: %v", err)
	}
	if assembled != payloadHex {
		t.Errorf("assembled %q, want %q", assembled, payloadHex)
	}
	if decoder.ExpectedBlockCount() != 1 {
		t.Errorf("ExpectedBlockCount = %d, want 1", decoder.ExpectedBlockCount())
	}
}

func TestDuplicateFragmentIsNoOp(t *testing.T) {
	gateway := New(nil)
	payload, err := ur.New("my-data", strings.Repeat("ab", 30))
	if err != nil {
		t.Fatalf("ur.New: %v", err)
	}
	encoder, err := gateway.NewFountainEncoder(payload, 10, 5, 1)
	if err != nil {
		t.Fatalf("NewFountainEncoder: %v", err)
	}
	fragment, err := encoder.NextFragment()
	if err != nil {
		t.Fatalf("NextFragment: %v", err)
	}

	decoder := gateway.NewFountainDecoder()
	if _, err := decoder.Receive(fragment); err != nil {
		t.Fatalf("first Receive: %v", err)
	}
	before := len(decoder.DecodedBlocks())

	accepted, err := decoder.Receive(fragment)
	if err != nil {
		t.Fatalf("second Receive: %v", err)
	}
	if !accepted {
		t.Error("duplicate fragment not accepted")
	}
	if got := len(decoder.DecodedBlocks()); got != before {
		t.Errorf("decoded blocks changed on duplicate: %d -> %d", before, got)
	}
}
