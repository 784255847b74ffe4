// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec defines the capability surface through which the rest
// of urkit touches encoded data.
//
// Two things live here. First, concrete CBOR helpers built on
// fxamacker/cbor with Core Deterministic Encoding (RFC 8949 §4.2), so
// that the same logical data always produces identical bytes; callers
// import only lib/codec, never fxamacker/cbor directly. Second, the
// Gateway interface: the external UR/bytewords/fountain codec that
// the conversion orchestrator and the fountain state machines consume
// but never implement. lib/codec/codectest ships a complete synthetic
// Gateway for tests and for the CLI's built-in codec.
package codec
