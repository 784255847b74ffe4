// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"testing"
	"time"

	"github.com/urkit-dev/urkit/lib/clock"
)

func TestTakeBeforeExpiry(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", "payload-hex", 100*time.Millisecond)
	clk.Advance(50 * time.Millisecond)

	data, ok := relay.TakePayload("scanner")
	if !ok || data != "payload-hex" {
		t.Fatalf("TakePayload = %v, %v; want payload-hex, true", data, ok)
	}
}

func TestTakeAtExactTTLBoundary(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", "payload-hex", 100*time.Millisecond)
	clk.Advance(100 * time.Millisecond)

	data, ok := relay.TakePayload("scanner")
	if !ok || data != "payload-hex" {
		t.Fatalf("TakePayload at ttl boundary = %v, %v; want payload-hex, true", data, ok)
	}
}

func TestTakeJustPastTTLBoundary(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", "payload-hex", 100*time.Millisecond)
	clk.Advance(100*time.Millisecond + time.Nanosecond)

	if data, ok := relay.TakePayload("scanner"); ok {
		t.Fatalf("TakePayload past ttl = %v, true; want absent", data)
	}
}

func TestTakeAfterExpiry(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", "payload-hex", 100*time.Millisecond)
	clk.Advance(150 * time.Millisecond)

	if data, ok := relay.TakePayload("scanner"); ok {
		t.Fatalf("TakePayload after expiry = %v, true; want absent", data)
	}
}

func TestTakeIsDestructive(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", 42, 0)
	if _, ok := relay.TakePayload("scanner"); !ok {
		t.Fatal("first take missed")
	}
	if data, ok := relay.TakePayload("scanner"); ok {
		t.Fatalf("second take = %v, true; want absent", data)
	}
}

func TestSetOverwritesUnconsumed(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", "first", time.Second)
	relay.SetPayload("scanner", "second", time.Second)

	data, ok := relay.TakePayload("scanner")
	if !ok || data != "second" {
		t.Fatalf("TakePayload = %v, %v; want second, true", data, ok)
	}
}

func TestOverwriteResetsTTL(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", "first", 100*time.Millisecond)
	clk.Advance(80 * time.Millisecond)
	relay.SetPayload("scanner", "second", 100*time.Millisecond)
	clk.Advance(80 * time.Millisecond)

	data, ok := relay.TakePayload("scanner")
	if !ok || data != "second" {
		t.Fatalf("TakePayload = %v, %v; want second, true", data, ok)
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", "durable", 0)
	clk.Advance(24 * time.Hour)

	data, ok := relay.TakePayload("scanner")
	if !ok || data != "durable" {
		t.Fatalf("TakePayload = %v, %v; want durable, true", data, ok)
	}
}

func TestTargetsAreIndependent(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	relay.SetPayload("scanner", "a", time.Second)
	relay.SetPayload("display", "b", time.Second)

	if data, ok := relay.TakePayload("display"); !ok || data != "b" {
		t.Fatalf("TakePayload(display) = %v, %v", data, ok)
	}
	if data, ok := relay.TakePayload("scanner"); !ok || data != "a" {
		t.Fatalf("TakePayload(scanner) = %v, %v", data, ok)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	clk := clock.Fake(time.Unix(0, 0))
	relay := New(clk)

	if relay.Peek("scanner") {
		t.Fatal("Peek on empty relay = true")
	}
	relay.SetPayload("scanner", "x", 100*time.Millisecond)
	if !relay.Peek("scanner") {
		t.Fatal("Peek = false, want true")
	}
	if _, ok := relay.TakePayload("scanner"); !ok {
		t.Fatal("entry consumed by Peek")
	}

	relay.SetPayload("scanner", "y", 100*time.Millisecond)
	clk.Advance(150 * time.Millisecond)
	if relay.Peek("scanner") {
		t.Fatal("Peek = true for expired entry")
	}
}
