// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package animate drives a fountain sequencer as a timed frame
// stream, the way a rotating QR display consumes fragments.
//
// A [Scheduler] owns its sequencer and a tick goroutine. Play starts
// the goroutine; each tick advances one frame. Pause stops the ticker
// and the goroutine; no partial frame state survives a pause. Manual
// stepping (StepForward, StepBackward) works while stopped; stepping
// backward is impossible through an infinite stream, which cannot be
// rewound.
//
// Time comes from an injected clock.Clock, so tests drive the frame
// cadence with clock.Fake and never sleep.
package animate
