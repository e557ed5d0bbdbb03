// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package robot defines the device surface a drive session runs
// against. A Rig bundles a stepped runtime, a differential drivetrain,
// a keyboard, and a set of named sensors. The simulated rig in lib/sim
// implements these interfaces; a hardware port would provide its own
// implementations without touching the drive loop.
package robot
