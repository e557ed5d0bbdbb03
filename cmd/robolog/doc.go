// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Robolog is the offline toolbox for recorded runs. It provides
// subcommands for CSV export with optional noise injection (export),
// container examination and verification (inspect), stream quality
// reporting (assess), cross-stream correlation analysis (address), and
// the SQLite run catalog (runs).
package main
