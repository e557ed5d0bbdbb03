// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"fmt"
	"math"

	"github.com/Davidwarchy/robolog/lib/robot"
	"github.com/Davidwarchy/robolog/lib/sample"
)

// maxRange caps ranging sensors, matching a small hobby lidar.
const maxRange = 3.5

// newSensor mounts one manifest sensor on the world.
func newSensor(spec SensorSpec, w *World) (robot.Sensor, error) {
	kind, err := sample.ParseKind(spec.Kind)
	if err != nil {
		return nil, fmt.Errorf("sensor %q: %w", spec.Name, err)
	}
	if spec.Variant != "" {
		return &touchSensor{name: spec.Name, variant: spec.Variant, kind: kind, world: w}, nil
	}
	switch kind {
	case sample.KindScalar:
		return &distanceSensor{name: spec.Name, world: w}, nil
	case sample.KindVector3:
		return &gyroSensor{name: spec.Name, world: w}, nil
	case sample.KindPoints:
		return &lidarSensor{name: spec.Name, rays: spec.Size, world: w}, nil
	case sample.KindBuffer:
		return &rangeRowSensor{name: spec.Name, rays: spec.Size, world: w}, nil
	default:
		return nil, fmt.Errorf("sensor %q: no simulated device for kind %s", spec.Name, kind)
	}
}

// distanceSensor ranges along the robot's heading.
type distanceSensor struct {
	name  string
	world *World
}

func (s *distanceSensor) Describe() robot.Descriptor {
	return robot.Descriptor{Name: s.name, Kind: sample.KindScalar}
}

func (s *distanceSensor) Read() (sample.Payload, error) {
	_, _, heading := s.world.Pose()
	return sample.Scalar(math.Min(s.world.rayDistance(heading), maxRange)), nil
}

// gyroSensor reports angular velocity about the vertical axis.
type gyroSensor struct {
	name  string
	world *World
}

func (s *gyroSensor) Describe() robot.Descriptor {
	return robot.Descriptor{Name: s.name, Kind: sample.KindVector3}
}

func (s *gyroSensor) Read() (sample.Payload, error) {
	return sample.Vector([3]float64{0, 0, s.world.angVel}), nil
}

// lidarSensor sweeps evenly spaced rays and reports hit points in the
// robot frame, z always zero.
type lidarSensor struct {
	name  string
	rays  int
	world *World
}

func (s *lidarSensor) Describe() robot.Descriptor {
	return robot.Descriptor{Name: s.name, Kind: sample.KindPoints}
}

func (s *lidarSensor) Read() (sample.Payload, error) {
	_, _, heading := s.world.Pose()
	points := make([][3]float64, s.rays)
	for i := range points {
		rel := 2 * math.Pi * float64(i) / float64(s.rays)
		d := math.Min(s.world.rayDistance(heading+rel), maxRange)
		points[i] = [3]float64{d * math.Cos(rel), d * math.Sin(rel), 0}
	}
	return sample.PointCloud(points), nil
}

// rangeRowSensor is a lidar row flattened to bare distances.
type rangeRowSensor struct {
	name  string
	rays  int
	world *World
}

func (s *rangeRowSensor) Describe() robot.Descriptor {
	return robot.Descriptor{Name: s.name, Kind: sample.KindBuffer}
}

func (s *rangeRowSensor) Read() (sample.Payload, error) {
	_, _, heading := s.world.Pose()
	values := make([]float64, s.rays)
	for i := range values {
		rel := 2 * math.Pi * float64(i) / float64(s.rays)
		values[i] = math.Min(s.world.rayDistance(heading+rel), maxRange)
	}
	return sample.Buffer(values), nil
}

// touchSensor reports wall contact in the shape its variant selects.
type touchSensor struct {
	name    string
	variant string
	kind    sample.Kind
	world   *World
}

func (s *touchSensor) Describe() robot.Descriptor {
	return robot.Descriptor{Name: s.name, Kind: s.kind, Variant: s.variant}
}

func (s *touchSensor) Read() (sample.Payload, error) {
	contact := s.world.Collided()
	switch s.variant {
	case robot.TouchBumper:
		if contact {
			return sample.Scalar(1), nil
		}
		return sample.Scalar(0), nil
	case robot.TouchForce:
		if contact {
			return sample.Scalar(math.Abs(s.world.linVel)), nil
		}
		return sample.Scalar(0), nil
	case robot.TouchForce3D:
		if contact {
			_, _, heading := s.world.Pose()
			f := math.Abs(s.world.linVel)
			return sample.Vector([3]float64{f * math.Cos(heading), f * math.Sin(heading), 0}), nil
		}
		return sample.Vector([3]float64{}), nil
	default:
		return sample.Payload{}, fmt.Errorf("unknown touch sensor variant %q", s.variant)
	}
}
