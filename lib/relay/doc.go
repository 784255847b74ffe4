// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package relay hands payloads between execution contexts with
// at-most-once delivery.
//
// A [Relay] is a mutex-guarded mailbox keyed by target context name.
// SetPayload overwrites any unconsumed entry for the same target;
// TakePayload is a destructive read. Entries carry a TTL measured
// against the injected clock, compared at read time: an expired entry
// is removed and reported as absent, never returned.
package relay
