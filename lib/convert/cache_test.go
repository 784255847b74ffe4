// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"
	"testing"

	"github.com/urkit-dev/urkit/lib/format"
)

func testKey(n int) cacheKey {
	return makeCacheKey(fmt.Sprintf("input-%d", n), format.Hex, format.DecodedJSON, "")
}

func TestCacheKeySensitivity(t *testing.T) {
	base := makeCacheKey("deadbeef", format.Hex, format.Bytewords, "standard")
	variants := []cacheKey{
		makeCacheKey("deadbeee", format.Hex, format.Bytewords, "standard"),
		makeCacheKey("deadbeef", format.Bytewords, format.Hex, "standard"),
		makeCacheKey("deadbeef", format.Hex, format.Bytewords, "minimal"),
	}
	for i, variant := range variants {
		if variant == base {
			t.Errorf("variant %d collides with base key", i)
		}
	}
	if again := makeCacheKey("deadbeef", format.Hex, format.Bytewords, "standard"); again != base {
		t.Error("identical inputs produced different keys")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newResultCache(2)
	for n := 0; n < 3; n++ {
		cache.put(testKey(n), &Output{Text: fmt.Sprintf("output-%d", n)})
	}

	if cache.len() != 2 {
		t.Fatalf("len = %d, want 2", cache.len())
	}
	if _, ok := cache.get(testKey(0)); ok {
		t.Error("oldest entry survived eviction")
	}
	for n := 1; n < 3; n++ {
		if _, ok := cache.get(testKey(n)); !ok {
			t.Errorf("entry %d missing", n)
		}
	}
}

func TestCacheGetPromotes(t *testing.T) {
	cache := newResultCache(2)
	cache.put(testKey(0), &Output{Text: "output-0"})
	cache.put(testKey(1), &Output{Text: "output-1"})

	if _, ok := cache.get(testKey(0)); !ok {
		t.Fatal("entry 0 missing before promotion check")
	}
	cache.put(testKey(2), &Output{Text: "output-2"})

	if _, ok := cache.get(testKey(0)); !ok {
		t.Error("recently used entry evicted")
	}
	if _, ok := cache.get(testKey(1)); ok {
		t.Error("least recently used entry survived")
	}
}

func TestCachePutReplacesExisting(t *testing.T) {
	cache := newResultCache(2)
	cache.put(testKey(0), &Output{Text: "first"})
	cache.put(testKey(0), &Output{Text: "second"})

	if cache.len() != 1 {
		t.Fatalf("len = %d, want 1", cache.len())
	}
	cached, ok := cache.get(testKey(0))
	if !ok || cached.Text != "second" {
		t.Errorf("get = %+v ok=%v, want replaced entry", cached, ok)
	}
}
