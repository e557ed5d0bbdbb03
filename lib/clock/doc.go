// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock parameter instead of calling time.Now,
// time.After, time.NewTicker, or time.Sleep directly. Real() provides
// standard library behavior; Fake() provides a deterministic clock that
// advances only when Advance is called.
//
// The writer goroutines in lib/drive poll their queues with a bounded
// wait built on After; the simulated runtime in lib/sim paces ticks with
// NewTicker. Both take a Clock so their tests can fire those waits
// without real delays:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	w := drive.NewWriter(..., c, ...)
//	// ... start the writer goroutine ...
//	c.WaitForTimers(1)        // writer has registered its poll wait
//	c.Advance(time.Second)    // fire it deterministically
//
// WaitForTimers is the synchronization half of the pattern: it blocks
// until the goroutine under test has registered its wait, eliminating
// the race between registration and Advance that time.Sleep-based tests
// suffer from.
package clock
