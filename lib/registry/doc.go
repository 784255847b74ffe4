// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry provides pluggable registry-type lookups: a static
// table mapping UR type names and CBOR tag numbers to structural
// decoders. Lookups are plain table scans over registered entries:
// no reflection, no dynamic dispatch beyond the entry's own decode
// function.
package registry
