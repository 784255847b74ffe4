// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package convert drives format conversion: parse the source text,
// pivot through a hex CBOR payload, render the target format. The
// orchestrator consults the format detector's classification, the
// codec gateway for every encoding operation, and a bounded LRU cache
// of prior results.
//
// All failure modes are typed errors (InvalidHexError, InvalidURError,
// AssemblyIncompleteError, ...); the only silent recovery anywhere is
// the registry-typed-decode to generic-CBOR-decode fallback, and even
// that is reported through Output.UsedFallback.
//
// An Orchestrator is single-owner: callers running conversions from
// multiple goroutines must serialize access themselves.
package convert
