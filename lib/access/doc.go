// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package access turns persisted log containers into analyzable data:
// it loads stream records into column-oriented frames, exports runs as
// per-sensor CSV files, and degrades copies of a stream with
// configurable noise so downstream quality tooling has a known-bad
// counterpart to the clean export.
//
// A frame is the unit every consumer works on. Loading a directory of
// containers and loading a directory of previously exported CSVs yield
// the same shape, so analysis code does not care which it was given.
// Streams whose records change width between rows (a point cloud that
// grows or shrinks) cannot be framed and are rejected at load time.
package access
