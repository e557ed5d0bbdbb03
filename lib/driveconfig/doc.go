// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package driveconfig loads the drive session configuration.
//
// Configuration comes from a single YAML file named by the
// ROBOLOG_CONFIG environment variable or a --config flag. Every field
// has a working default, so a missing file is not an error; the tool
// runs out of the box and the file only overrides what it names.
//
// The lifecycle is Load (which merges the file over Default), then
// Validate, then EnsureDirs. Validate accumulates every violation with
// errors.Join rather than stopping at the first, and the typed
// accessors (WaitDuration, CompressionTag, Level, ActuatorName,
// CatalogPath) are only meaningful after it succeeds.
package driveconfig
