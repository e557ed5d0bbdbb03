// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package samplelog reads and writes the per-sensor log container.
//
// One file holds one sensor's complete record history for a run. The
// writer in lib/drive rewrites the file on every flush, so the file is
// always a single self-contained container, never a sequence of
// appended segments. Rewrites go through a temp sibling and a rename;
// a crash mid-flush leaves the previous flush intact.
//
// # Format
//
//	offset  size  field
//	0       8     magic "ROBOLOG" + format version byte
//	8       1     compression tag (0 none, 1 lz4, 2 zstd)
//	9       3     reserved, must be zero
//	12      4     header length H (uint32 LE)
//	16      4     stored body length B (uint32 LE)
//	20      4     raw body length before compression (uint32 LE)
//	24      32    BLAKE3 keyed digest of the stored body
//	56      H     CBOR header (sensor, kind, variant, run, sequence, records)
//	56+H    B     body: CBOR array of envelopes
//
// The digest covers the body exactly as stored, so integrity can be
// checked without decompressing. Readers reject bad magic, unknown
// versions and compression tags, nonzero reserved bytes, digest
// mismatches, and a record count that disagrees with the header.
package samplelog
