// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package sim provides a simulated rig for driving without hardware.
//
// The world is a square arena with a differential-drive robot in it.
// Stepping the world integrates the robot's pose from the commanded
// wheel velocities; sensors ray-cast against the arena walls, so every
// reading is a deterministic function of the pose and the step count.
// Determinism is the point: a scripted keyboard driving a simulated
// rig produces byte-identical logs on every run.
//
// Rigs are described by a JSONC manifest (JSON with comments and
// trailing commas) naming the sensors to mount. Build assembles the
// manifest into a robot.Rig backed by one shared World.
package sim
