// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package fountain holds the two fountain-coding state machines: the
// Assembler, which ingests multi-part UR fragments in arbitrary order
// and tracks assembly progress, and the Sequencer, which generates
// fragments from a payload either as a finite materialized list or as
// an unbounded stream.
//
// The fountain mathematics (block mixing, peeling) live behind the
// codec.Gateway primitives; this package owns the session state, the
// type-mismatch protocol, and progress reporting. Neither machine is
// safe for concurrent use: callers serialize access, matching the
// one-scan-at-a-time arrival model.
package fountain
