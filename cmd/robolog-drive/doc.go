// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// robolog-drive runs a teleoperation session against the simulated
// rig and logs every sensor stream to a timestamped run directory.
//
// Interactive mode (the default) takes the terminal raw: arrow keys or
// WASD drive, releasing the keys stops the robot, q or Ctrl-C ends the
// session. The simulation is paced to wall time so the robot moves at
// the speed the logs record.
//
// Script mode (--script "f:120,l:40,q:1") replays a fixed key sequence
// without pacing, producing a deterministic run as fast as the disk
// allows. Useful for generating datasets and for exercising the
// pipeline in CI.
//
// Configuration comes from --config, the ROBOLOG_CONFIG environment
// variable, or built-in defaults; --run-root, --rig, --steps, and
// --log-level override individual settings.
package main
