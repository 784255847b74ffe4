// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"sync"
	"time"

	"github.com/urkit-dev/urkit/lib/clock"
)

// entry is one pending payload.
type entry struct {
	data      any
	createdAt time.Time
	ttl       time.Duration
}

// expired reports whether the entry's TTL has elapsed at now. The
// boundary instant is still valid: an entry expires only once more
// than ttl has passed since creation. A zero or negative TTL never
// expires.
func (e entry) expired(now time.Time) bool {
	if e.ttl <= 0 {
		return false
	}
	return now.Sub(e.createdAt) > e.ttl
}

// Relay is the cross-context mailbox. Safe for concurrent use.
type Relay struct {
	clk clock.Clock

	mu      sync.Mutex
	entries map[string]entry
}

// New returns an empty relay using clk for TTL arithmetic.
func New(clk clock.Clock) *Relay {
	return &Relay{
		clk:     clk,
		entries: make(map[string]entry),
	}
}

// SetPayload stores data for targetContext, replacing any unconsumed
// entry. A ttl <= 0 means the entry never expires.
func (r *Relay) SetPayload(targetContext string, data any, ttl time.Duration) {
	now := r.clk.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[targetContext] = entry{data: data, createdAt: now, ttl: ttl}
}

// TakePayload removes and returns the entry for targetContext. ok is
// false when no entry exists or the entry expired; expiry is
// evaluated against the clock at this moment, and an expired entry is
// discarded.
func (r *Relay) TakePayload(targetContext string) (data any, ok bool) {
	now := r.clk.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, exists := r.entries[targetContext]
	if !exists {
		return nil, false
	}
	delete(r.entries, targetContext)
	if pending.expired(now) {
		return nil, false
	}
	return pending.data, true
}

// Peek reports whether an unexpired entry exists for targetContext
// without consuming it. Expired entries are discarded.
func (r *Relay) Peek(targetContext string) bool {
	now := r.clk.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, exists := r.entries[targetContext]
	if !exists {
		return false
	}
	if pending.expired(now) {
		delete(r.entries, targetContext)
		return false
	}
	return true
}
