// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for urkit packages.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls. It is the only place in the test suite
// where real wall-clock timeouts are used; everything else drives time
// through clock.Fake.
//
// Helpers call t.Fatalf on failure rather than returning errors, since
// test setup failures are not recoverable.
//
// This package has no urkit-internal dependencies.
package testutil
