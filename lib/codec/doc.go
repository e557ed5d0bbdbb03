// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration.
//
// Robolog uses two data formats with a clear boundary:
//
//   - CBOR for everything persisted by the pipeline itself: sample log
//     headers and record blocks (lib/samplelog).
//   - CSV for the exported, analysis-facing view of the same data
//     (lib/access), which downstream tooling and spreadsheets consume.
//
// This package holds the shared CBOR modes so every package encodes
// identically. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same records always produce identical
// bytes, which keeps the log digests (lib/samplelog) meaningful.
//
//	data, err := codec.Marshal(records)
//	err = codec.Unmarshal(data, &records)
//
// Types implementing encoding.TextMarshaler (sample.Kind,
// robot.TouchVariant) serialize as CBOR text strings, so log headers
// read back as names rather than opaque integers.
package codec
