// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package robot

import "fmt"

// Key is one teleoperation input. The keyboard reports the key held at
// poll time; the drive loop maps it to wheel velocities.
type Key int

const (
	// KeyNone means no drive key is held. The drivetrain coasts to a
	// stop because the loop commands zero velocity.
	KeyNone Key = iota
	// KeyForward drives both wheels forward at full speed.
	KeyForward
	// KeyBackward drives both wheels backward at full speed.
	KeyBackward
	// KeyLeft spins in place counterclockwise.
	KeyLeft
	// KeyRight spins in place clockwise.
	KeyRight
	// KeyQuit ends the session.
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyForward:
		return "forward"
	case KeyBackward:
		return "backward"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyQuit:
		return "quit"
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// Keyboard reports teleoperation input. Poll never blocks; it returns
// the key currently held, or KeyNone.
type Keyboard interface {
	Poll() Key
}
