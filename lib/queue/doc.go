// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package queue provides the per-sensor FIFO connecting the
// acquisition loop to one writer goroutine.
//
// The queue is unbounded: Push never blocks and never drops, so a slow
// writer grows the queue rather than stalling the simulation tick.
// That trade is deliberate for bounded-duration teleop sessions; a
// long-running deployment would want a bounded queue with an explicit
// drop policy instead.
//
// The notify channel (capacity 1) wakes the consuming writer: it
// receives at most one pending signal however many Pushes have
// happened, and the writer drains the queue completely on each wake by
// calling [Queue.Pop] until it reports empty. The backing array is
// reused once fully consumed, so steady-state operation stops
// allocating after the first flush interval.
package queue
