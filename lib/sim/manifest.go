// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/Davidwarchy/robolog/lib/robot"
	"github.com/Davidwarchy/robolog/lib/sample"
)

// Manifest describes a simulated rig: the world geometry, the step
// duration, and the sensors to mount.
type Manifest struct {
	// Name labels the rig in logs. Defaults to "rover".
	Name string `json:"name"`
	// StepMillis is the basic time step in milliseconds. Defaults to 32.
	StepMillis int `json:"step_ms"`
	// WheelBase is the wheel separation in meters. Defaults to 0.16.
	WheelBase float64 `json:"wheel_base"`
	// WheelRadius is the wheel radius in meters. Defaults to 0.033.
	WheelRadius float64 `json:"wheel_radius"`
	// Arena is the side length of the square arena in meters.
	// Defaults to 4.
	Arena float64 `json:"arena"`
	// Sensors lists the devices to mount.
	Sensors []SensorSpec `json:"sensors"`
}

// SensorSpec describes one mounted sensor.
type SensorSpec struct {
	// Name is the stream name, unique within the rig.
	Name string `json:"name"`
	// Kind is the payload kind: scalar, vector3, points, or buffer.
	Kind string `json:"kind"`
	// Variant selects a touch sensor readout (bumper, force, force3d).
	// Only touch sensors have variants.
	Variant string `json:"variant,omitempty"`
	// Size is the ray count for points and buffer sensors.
	Size int `json:"size,omitempty"`
}

// DefaultManifest is the built-in rover used when no manifest file is
// given. One sensor of each payload kind plus a bumper.
func DefaultManifest() Manifest {
	return Manifest{
		Name: "rover",
		Sensors: []SensorSpec{
			{Name: "distance", Kind: "scalar"},
			{Name: "gyro", Kind: "vector3"},
			{Name: "lidar", Kind: "points", Size: 36},
			{Name: "range_row", Kind: "buffer", Size: 16},
			{Name: "touch", Kind: "scalar", Variant: robot.TouchBumper},
		},
	}
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Manifest. Defaults are not applied;
// Build fills them in.
func Parse(data []byte) (Manifest, error) {
	stripped := jsonc.ToJSON(data)
	var m Manifest
	if err := json.Unmarshal(stripped, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing rig manifest: %w", err)
	}
	return m, nil
}

// ReadFile reads a JSONC rig manifest from disk and parses it.
func ReadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// applyDefaults fills zero fields with the rover defaults.
func (m *Manifest) applyDefaults() {
	if m.Name == "" {
		m.Name = "rover"
	}
	if m.StepMillis == 0 {
		m.StepMillis = 32
	}
	if m.WheelBase == 0 {
		m.WheelBase = 0.16
	}
	if m.WheelRadius == 0 {
		m.WheelRadius = 0.033
	}
	if m.Arena == 0 {
		m.Arena = 4
	}
}

// Validate checks a manifest after defaults are applied.
func (m *Manifest) Validate() error {
	if m.StepMillis <= 0 {
		return fmt.Errorf("step_ms is %d, must be positive", m.StepMillis)
	}
	if m.WheelBase <= 0 || m.WheelRadius <= 0 {
		return fmt.Errorf("wheel geometry %v/%v must be positive", m.WheelBase, m.WheelRadius)
	}
	if m.Arena <= 0 {
		return fmt.Errorf("arena side %v must be positive", m.Arena)
	}
	if len(m.Sensors) == 0 {
		return fmt.Errorf("rig %q mounts no sensors", m.Name)
	}
	seen := make(map[string]bool, len(m.Sensors))
	for i, spec := range m.Sensors {
		if spec.Name == "" {
			return fmt.Errorf("sensor %d has no name", i)
		}
		if seen[spec.Name] {
			return fmt.Errorf("sensor name %q appears twice", spec.Name)
		}
		seen[spec.Name] = true
		kind, err := sample.ParseKind(spec.Kind)
		if err != nil {
			return fmt.Errorf("sensor %q: %w", spec.Name, err)
		}
		if spec.Variant != "" {
			variantKind, err := robot.TouchKind(spec.Variant)
			if err != nil {
				return fmt.Errorf("sensor %q: %w", spec.Name, err)
			}
			if variantKind != kind {
				return fmt.Errorf("sensor %q: variant %q produces %s payloads, manifest says %s",
					spec.Name, spec.Variant, variantKind, kind)
			}
		}
		switch kind {
		case sample.KindPoints, sample.KindBuffer:
			if spec.Size <= 0 {
				return fmt.Errorf("sensor %q: %s sensors need a positive size", spec.Name, kind)
			}
		}
	}
	return nil
}
