// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import (
	"context"
	"log/slog"

	"github.com/Davidwarchy/robolog/lib/queue"
	"github.com/Davidwarchy/robolog/lib/robot"
	"github.com/Davidwarchy/robolog/lib/sample"
)

// stream pairs a sensor with the queue its writer drains.
type stream struct {
	sensor     robot.Sensor
	name       string
	queue      *queue.Queue
	readErrors int
}

// Loop is the acquisition loop. Each iteration steps the world, polls
// the keyboard, commands the drivetrain, and enqueues one reading per
// sensor. It owns the rig; nothing else touches the devices while the
// loop runs.
type Loop struct {
	rig       robot.Rig
	streams   []*stream
	actuators *queue.Queue
	logger    *slog.Logger
	steps     int
}

// newLoop wires a rig's sensors to their queues. The actuator queue is
// optional; when present the loop records every command it issues as a
// two-value buffer payload, left then right.
func newLoop(rig robot.Rig, queues []*queue.Queue, actuators *queue.Queue, logger *slog.Logger) *Loop {
	loop := &Loop{rig: rig, actuators: actuators, logger: logger}
	for i, sensor := range rig.Sensors {
		loop.streams = append(loop.streams, &stream{
			sensor: sensor,
			name:   sensor.Describe().Name,
			queue:  queues[i],
		})
	}
	return loop
}

// Run drives until the world ends, the quit key is pressed, or ctx is
// cancelled. Every iteration commands the drivetrain, held key or not,
// so releasing the keys stops the robot. A sensor whose read fails is
// skipped for that tick and keeps its place in the rig.
func (l *Loop) Run(ctx context.Context) error {
	for l.rig.Runtime.Step() {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := l.rig.Keyboard.Poll()
		if key == robot.KeyQuit {
			l.logger.Info("quit key pressed", "steps", l.steps)
			return nil
		}
		command := MapKey(key)
		l.rig.Drive.SetVelocity(command.Left, command.Right)

		now := l.rig.Runtime.Time()
		for _, s := range l.streams {
			payload, err := s.sensor.Read()
			if err != nil {
				if s.readErrors == 0 {
					l.logger.Warn("sensor read failed, skipping reading",
						"sensor", s.name, "error", err)
				} else {
					l.logger.Debug("sensor read failed, skipping reading",
						"sensor", s.name, "error", err)
				}
				s.readErrors++
				continue
			}
			s.queue.Push(sample.Envelope{Time: now, Payload: payload})
		}
		if l.actuators != nil {
			l.actuators.Push(sample.Envelope{
				Time:    now,
				Payload: sample.Buffer([]float64{command.Left, command.Right}),
			})
		}
		l.steps++
	}
	return nil
}

// Steps reports completed loop iterations.
func (l *Loop) Steps() int {
	return l.steps
}
