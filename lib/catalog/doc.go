// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog maintains a SQLite index of recorded runs: one row
// per run, one row per stream, written when a drive session closes and
// rebuildable from the run directories on disk. The CLI lists and
// inspects runs through it without touching the containers.
//
// The index is a cache, not a second source of truth. Every figure in
// it (start time, step count, per-stream record and byte counts) is
// derived from the container headers, so [Catalog.Rescan] can rebuild
// the whole database from a run root at any time, and a deleted run
// directory is reconciled by [Catalog.Prune]. The one exception is the
// unsaved-record count reported at session close, which exists nowhere
// else; a rescan records zero for it.
//
// Writes happen at two points: the drive binary calls
// [Catalog.RecordSession] when a session closes, and the robolog tool
// calls [Catalog.IndexRun] or [Catalog.Rescan] to index directories
// after the fact. Both upsert, so indexing is idempotent.
package catalog
