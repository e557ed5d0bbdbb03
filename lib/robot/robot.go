// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package robot

import (
	"fmt"

	"github.com/Davidwarchy/robolog/lib/sample"
)

// MaxWheelSpeed is the drivetrain's wheel velocity limit in radians
// per second. Commands beyond it are clamped by the drivetrain.
const MaxWheelSpeed = 6.28

// Runtime steps the world the rig lives in. Each Step advances one
// basic time step and settles every device, so sensor reads between
// steps observe a consistent world.
type Runtime interface {
	// Step advances the world by one basic time step. It returns false
	// once the world has ended and no further steps will run.
	Step() bool
	// Time is the world clock in seconds. It starts at zero and grows
	// by the step duration on every Step.
	Time() float64
}

// Drivetrain is a differential drive with independently commanded
// wheels. Velocities are in radians per second and are clamped to
// ±MaxWheelSpeed.
type Drivetrain interface {
	SetVelocity(left, right float64)
}

// Descriptor identifies a sensor stream.
type Descriptor struct {
	// Name is the stream name. It becomes the log file's base name, so
	// it must be unique within a rig.
	Name string
	// Kind is the payload kind every reading of this sensor carries.
	Kind sample.Kind
	// Variant refines Kind for sensors with selectable readouts, such
	// as a touch sensor. Empty for most sensors.
	Variant string
}

// Sensor is one pollable device. Read reports the value as of the most
// recent Runtime step. A failed read affects only that poll; the
// caller skips the reading and moves on.
type Sensor interface {
	Describe() Descriptor
	Read() (sample.Payload, error)
}

// Rig is a complete robot: runtime, drivetrain, keyboard, and sensors.
type Rig struct {
	Name     string
	Runtime  Runtime
	Drive    Drivetrain
	Keyboard Keyboard
	Sensors  []Sensor
}

// Touch sensor variants. The variant decides both the readout shape
// and the payload kind.
const (
	// TouchBumper reports 0 or 1 collision contact as a scalar.
	TouchBumper = "bumper"
	// TouchForce reports the contact force magnitude as a scalar.
	TouchForce = "force"
	// TouchForce3D reports the contact force vector.
	TouchForce3D = "force3d"
)

// TouchKind maps a touch sensor variant to its payload kind.
func TouchKind(variant string) (sample.Kind, error) {
	switch variant {
	case TouchBumper, TouchForce:
		return sample.KindScalar, nil
	case TouchForce3D:
		return sample.KindVector3, nil
	default:
		return 0, fmt.Errorf("unknown touch sensor variant %q", variant)
	}
}
