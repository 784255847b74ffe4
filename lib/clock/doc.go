// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so that the
// relay's TTL checks and the animation scheduler's tick loop are
// testable without real sleeps.
//
// Production code accepts a Clock parameter (or holds one in a struct
// field) instead of calling time.Now or time.NewTicker directly.
// Real() provides standard library behavior; Fake() provides a
// deterministic clock that advances only when Advance is called.
//
// When a goroutine registers a ticker or timer on a FakeClock, tests
// use WaitForTimers to block until the registration has happened
// before advancing. This removes the race between timer registration
// and time advancement that time.Sleep-based tests suffer from.
package clock
