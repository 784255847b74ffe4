// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"container/list"
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/urkit-dev/urkit/lib/format"
)

// cacheCapacity bounds the conversion cache. Least-recently-used
// entries are evicted beyond this.
const cacheCapacity = 120

// cacheKey is the BLAKE3 digest of (rawInput, sourceFormat,
// targetFormat, optionsDigest), each field length-prefixed so
// adjacent fields cannot collide.
type cacheKey [32]byte

// makeCacheKey digests the conversion identity.
func makeCacheKey(rawInput string, source, target format.Format, optionsDigest string) cacheKey {
	hasher := blake3.New()
	writeField := func(field string) {
		var length [8]byte
		binary.BigEndian.PutUint64(length[:], uint64(len(field)))
		hasher.Write(length[:])
		hasher.Write([]byte(field))
	}
	writeField(rawInput)
	writeField(source.String())
	writeField(target.String())
	writeField(optionsDigest)

	var key cacheKey
	copy(key[:], hasher.Sum(nil))
	return key
}

// cacheEntry pairs a key with its cached output for eviction
// bookkeeping.
type cacheEntry struct {
	key    cacheKey
	output *Output
}

// resultCache is a fixed-capacity LRU of conversion outputs. It is
// owned by a single Orchestrator and carries no lock: callers that
// share an orchestrator across goroutines serialize access
// externally.
type resultCache struct {
	capacity int
	entries  map[cacheKey]*list.Element

	// order holds *cacheEntry values, most recently used at the
	// front.
	order *list.List
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: capacity,
		entries:  make(map[cacheKey]*list.Element, capacity),
		order:    list.New(),
	}
}

// get returns the cached output and promotes the entry.
func (c *resultCache) get(key cacheKey) (*Output, bool) {
	element, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*cacheEntry).output, true
}

// put stores output, evicting the least recently used entry when the
// cache is full.
func (c *resultCache) put(key cacheKey, output *Output) {
	if element, ok := c.entries[key]; ok {
		element.Value.(*cacheEntry).output = output
		c.order.MoveToFront(element)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, output: output})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// len returns the number of cached entries.
func (c *resultCache) len() int { return c.order.Len() }
