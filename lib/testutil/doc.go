// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared channel helpers for tests.
//
// RequireReceive, RequireSend, and RequireClosed encapsulate the
// timeout safety valve pattern (select with a time.After fallback) so
// individual tests never hang when a goroutine under test misbehaves.
// These helpers are the only place real wall-clock timeouts appear in
// the test suite; time-dependent behavior itself is tested through
// lib/clock's FakeClock.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since a test that lost its synchronization is not recoverable.
package testutil
