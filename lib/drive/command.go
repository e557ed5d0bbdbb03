// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import "github.com/Davidwarchy/robolog/lib/robot"

// Command is one drivetrain order, wheel velocities in radians per
// second.
type Command struct {
	Left  float64
	Right float64
}

// Stop is the zero command. The loop applies it whenever no drive key
// is held, so releasing the keys halts the robot within one step.
var Stop = Command{}

// MapKey translates a held key into wheel velocities. Forward and
// backward drive both wheels together; left and right spin in place.
// Any other key, including KeyNone and KeyQuit, maps to Stop.
func MapKey(key robot.Key) Command {
	const max = robot.MaxWheelSpeed
	switch key {
	case robot.KeyForward:
		return Command{Left: max, Right: max}
	case robot.KeyBackward:
		return Command{Left: -max, Right: -max}
	case robot.KeyLeft:
		return Command{Left: -max, Right: max}
	case robot.KeyRight:
		return Command{Left: max, Right: -max}
	default:
		return Stop
	}
}
