// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"fmt"

	"github.com/Davidwarchy/robolog/lib/robot"
)

// Build assembles a manifest into a rig backed by one shared World.
// Zero manifest fields get rover defaults before validation. The
// returned World is the same object the rig's Runtime and Drive wrap;
// callers use it to set step limits or inspect the pose.
func Build(manifest Manifest, keyboard robot.Keyboard) (robot.Rig, *World, error) {
	manifest.applyDefaults()
	if err := manifest.Validate(); err != nil {
		return robot.Rig{}, nil, fmt.Errorf("invalid rig manifest: %w", err)
	}
	world := NewWorld(manifest)
	sensors := make([]robot.Sensor, 0, len(manifest.Sensors))
	for _, spec := range manifest.Sensors {
		sensor, err := newSensor(spec, world)
		if err != nil {
			return robot.Rig{}, nil, err
		}
		sensors = append(sensors, sensor)
	}
	return robot.Rig{
		Name:     manifest.Name,
		Runtime:  world,
		Drive:    world,
		Keyboard: keyboard,
		Sensors:  sensors,
	}, world, nil
}
