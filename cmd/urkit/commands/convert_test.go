// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/urkit-dev/urkit/lib/codec/codectest"
)

const testPayloadHex = "a2626964187b646e616d65684a6f686e20446f65"

func TestRunConvertHexToDecoded(t *testing.T) {
	t.Setenv(configEnvVar, "")

	var buffer bytes.Buffer
	err := runConvert(testPayloadHex, convertParams{to: "decoded"}, &buffer)
	if err != nil {
		t.Fatalf("runConvert: %v", err)
	}
	if !strings.Contains(buffer.String(), `"John Doe"`) {
		t.Errorf("output missing decoded value: %q", buffer.String())
	}
}

func TestRunConvertURRoundTrip(t *testing.T) {
	t.Setenv(configEnvVar, "")

	var rendered bytes.Buffer
	err := runConvert(testPayloadHex, convertParams{to: "ur", urType: "my-data"}, &rendered)
	if err != nil {
		t.Fatalf("runConvert to ur: %v", err)
	}
	urText := strings.TrimSpace(rendered.String())
	if !strings.HasPrefix(urText, "ur:my-data/") {
		t.Fatalf("rendered UR = %q, want ur:my-data/ prefix", urText)
	}

	var recovered bytes.Buffer
	if err := runConvert(urText, convertParams{to: "hex"}, &recovered); err != nil {
		t.Fatalf("runConvert to hex: %v", err)
	}
	if got := strings.TrimSpace(recovered.String()); got != testPayloadHex {
		t.Errorf("round trip = %q, want %q", got, testPayloadHex)
	}
}

func TestRunConvertMultipartReassembly(t *testing.T) {
	t.Setenv(configEnvVar, "")

	var fragments bytes.Buffer
	err := runFragments(testPayloadHex, fragmentsParams{maxLen: 8, minLen: 4, urType: "my-data"}, &fragments)
	if err != nil {
		t.Fatalf("runFragments: %v", err)
	}

	var recovered bytes.Buffer
	err = runConvert(fragments.String(), convertParams{from: "multipart-ur", to: "hex"}, &recovered)
	if err != nil {
		t.Fatalf("runConvert: %v", err)
	}
	if got := strings.TrimSpace(recovered.String()); got != testPayloadHex {
		t.Errorf("reassembled = %q, want %q", got, testPayloadHex)
	}
}

func TestRunConvertBadFormatNames(t *testing.T) {
	t.Setenv(configEnvVar, "")

	var buffer bytes.Buffer
	if err := runConvert(testPayloadHex, convertParams{to: "jsonish"}, &buffer); err == nil {
		t.Error("unknown target format accepted")
	}
	if err := runConvert(testPayloadHex, convertParams{from: "csv", to: "hex"}, &buffer); err == nil {
		t.Error("unknown source format accepted")
	}
}

func TestRunConvertBytewordsStyleFromConfig(t *testing.T) {
	configPath := writeTestConfig(t, "bytewords_style: minimal\n")
	t.Setenv(configEnvVar, "")

	var encoded bytes.Buffer
	err := runConvert(testPayloadHex, convertParams{to: "bytewords", configPath: configPath}, &encoded)
	if err != nil {
		t.Fatalf("runConvert: %v", err)
	}
	text := strings.TrimSpace(encoded.String())
	if strings.Contains(text, " ") {
		t.Errorf("minimal style output contains spaces: %q", text)
	}

	// The minimal output decodes back through the same gateway.
	gateway := codectest.New(nil)
	decoded, err := gateway.BytewordsDecode(text, "minimal")
	if err != nil {
		t.Fatalf("BytewordsDecode: %v", err)
	}
	if decoded != testPayloadHex {
		t.Errorf("decoded = %q, want %q", decoded, testPayloadHex)
	}
}
