// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"math"
	"time"

	"github.com/Davidwarchy/robolog/lib/clock"
	"github.com/Davidwarchy/robolog/lib/robot"
)

// wallMargin keeps the robot's center off the walls, approximating its
// body radius.
const wallMargin = 0.05

// World is the simulated arena and the robot in it. It implements
// robot.Runtime and robot.Drivetrain. Not safe for concurrent use; the
// drive loop owns it.
type World struct {
	stepSec     float64
	stepDur     time.Duration
	wheelBase   float64
	wheelRadius float64
	arena       float64

	pace      clock.Clock
	steps     int
	stepLimit int

	x, y, heading float64
	vLeft, vRight float64
	linVel        float64
	angVel        float64
	collided      bool
}

// NewWorld builds a world from a manifest's geometry. The robot starts
// at the arena center facing +x.
func NewWorld(m Manifest) *World {
	return &World{
		stepSec:     float64(m.StepMillis) / 1000,
		stepDur:     time.Duration(m.StepMillis) * time.Millisecond,
		wheelBase:   m.WheelBase,
		wheelRadius: m.WheelRadius,
		arena:       m.Arena,
	}
}

// SetStepLimit ends the world after n steps. Zero means unlimited.
func (w *World) SetStepLimit(n int) {
	w.stepLimit = n
}

// SetPace makes Step block for one step duration on the given clock,
// so the simulation tracks wall time for interactive driving. Without
// a pace clock, Step returns immediately and the world runs as fast as
// the loop spins, which is what batch logging and tests want.
func (w *World) SetPace(clk clock.Clock) {
	w.pace = clk
}

// SetVelocity implements robot.Drivetrain. Commands are clamped to
// ±robot.MaxWheelSpeed and take effect on the next Step.
func (w *World) SetVelocity(left, right float64) {
	w.vLeft = clamp(left, -robot.MaxWheelSpeed, robot.MaxWheelSpeed)
	w.vRight = clamp(right, -robot.MaxWheelSpeed, robot.MaxWheelSpeed)
}

// Step implements robot.Runtime. It integrates the pose from the
// commanded wheel velocities and stops the robot at the arena walls.
func (w *World) Step() bool {
	if w.stepLimit > 0 && w.steps >= w.stepLimit {
		return false
	}
	if w.pace != nil {
		w.pace.Sleep(w.stepDur)
	}
	w.linVel = w.wheelRadius * (w.vLeft + w.vRight) / 2
	w.angVel = w.wheelRadius * (w.vRight - w.vLeft) / w.wheelBase
	w.heading += w.angVel * w.stepSec
	w.heading = math.Atan2(math.Sin(w.heading), math.Cos(w.heading))
	w.x += w.linVel * math.Cos(w.heading) * w.stepSec
	w.y += w.linVel * math.Sin(w.heading) * w.stepSec

	limit := w.arena/2 - wallMargin
	w.collided = false
	if w.x > limit {
		w.x, w.collided = limit, true
	} else if w.x < -limit {
		w.x, w.collided = -limit, true
	}
	if w.y > limit {
		w.y, w.collided = limit, true
	} else if w.y < -limit {
		w.y, w.collided = -limit, true
	}
	w.steps++
	return true
}

// Time implements robot.Runtime.
func (w *World) Time() float64 {
	return float64(w.steps) * w.stepSec
}

// Pose reports the robot's position and heading.
func (w *World) Pose() (x, y, heading float64) {
	return w.x, w.y, w.heading
}

// Collided reports whether the robot hit a wall on the last step.
func (w *World) Collided() bool {
	return w.collided
}

// rayDistance casts a ray from the robot at the given world angle and
// returns the distance to the nearest arena wall.
func (w *World) rayDistance(angle float64) float64 {
	dx := math.Cos(angle)
	dy := math.Sin(angle)
	half := w.arena / 2
	best := math.Inf(1)
	if dx > 1e-12 {
		best = math.Min(best, (half-w.x)/dx)
	} else if dx < -1e-12 {
		best = math.Min(best, (-half-w.x)/dx)
	}
	if dy > 1e-12 {
		best = math.Min(best, (half-w.y)/dy)
	} else if dy < -1e-12 {
		best = math.Min(best, (-half-w.y)/dy)
	}
	// cos and sin cannot both be near zero, so best is always finite.
	return best
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
