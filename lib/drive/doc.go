// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package drive runs a teleoperation session: the acquisition loop
// steps the rig, maps keyboard input to wheel commands, and fans
// sensor readings out to per-stream queues; one writer goroutine per
// stream drains its queue and rewrites the stream's log container on
// every flush.
//
// The loop never blocks on persistence. Queues are unbounded, so a
// slow disk stalls writers, not acquisition. Shutdown is coordinated:
// the loop stops first, then the coordinator signals the writers, each
// writer drains what remains and flushes once more, and Run returns
// only after every writer has exited.
package drive
