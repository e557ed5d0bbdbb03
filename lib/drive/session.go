// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Davidwarchy/robolog/lib/clock"
	"github.com/Davidwarchy/robolog/lib/queue"
	"github.com/Davidwarchy/robolog/lib/robot"
	"github.com/Davidwarchy/robolog/lib/sample"
	"github.com/Davidwarchy/robolog/lib/samplelog"
)

// DefaultThreshold is the flush threshold used when the config leaves
// it zero.
const DefaultThreshold = 200

// SessionConfig configures one drive session.
type SessionConfig struct {
	Rig robot.Rig
	// RunRoot is the directory that holds run directories. The session
	// creates RunRoot/<start timestamp>/ and writes one container per
	// stream into it.
	RunRoot string
	// Threshold is the per-stream record count that triggers a flush.
	Threshold int
	// WaitInterval bounds each writer's sleep between queue checks.
	WaitInterval time.Duration
	Compression  samplelog.CompressionTag
	// ActuatorStream names the stream that records the commanded wheel
	// velocities alongside the sensor streams. Empty disables it.
	ActuatorStream string
	Store          Store
	Clock          clock.Clock
	Logger         *slog.Logger
}

// Session owns the run directory, the acquisition loop, and one writer
// per stream.
type Session struct {
	cfg     SessionConfig
	run     string
	dir     string
	loop    *Loop
	writers []*Writer
}

// NewSession validates the rig, creates the run directory named after
// the start time, and wires queues, writers, and the loop. The
// directory exists when NewSession returns, so a crashed session still
// leaves an identifiable run.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Rig.Runtime == nil || cfg.Rig.Drive == nil || cfg.Rig.Keyboard == nil {
		return nil, errors.New("rig is missing a runtime, drivetrain, or keyboard")
	}
	if len(cfg.Rig.Sensors) == 0 && cfg.ActuatorStream == "" {
		return nil, errors.New("rig has no sensors and no actuator stream")
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	seen := make(map[string]bool, len(cfg.Rig.Sensors)+1)
	for _, sensor := range cfg.Rig.Sensors {
		name := sensor.Describe().Name
		if name == "" {
			return nil, errors.New("rig has a sensor with no name")
		}
		if seen[name] {
			return nil, fmt.Errorf("stream name %q appears twice", name)
		}
		seen[name] = true
	}
	if cfg.ActuatorStream != "" && seen[cfg.ActuatorStream] {
		return nil, fmt.Errorf("actuator stream %q collides with a sensor", cfg.ActuatorStream)
	}

	run := cfg.Clock.Now().Format(samplelog.RunTimeFormat)
	dir := filepath.Join(cfg.RunRoot, run)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	s := &Session{cfg: cfg, run: run, dir: dir}
	newWriter := func(desc robot.Descriptor) *queue.Queue {
		q := queue.New()
		s.writers = append(s.writers, NewWriter(WriterConfig{
			Descriptor:   desc,
			Queue:        q,
			Path:         samplelog.FilePath(dir, desc.Name),
			Run:          run,
			Threshold:    cfg.Threshold,
			WaitInterval: cfg.WaitInterval,
			Compression:  cfg.Compression,
			Store:        cfg.Store,
			Clock:        cfg.Clock,
			Logger:       cfg.Logger,
		}))
		return q
	}

	queues := make([]*queue.Queue, len(cfg.Rig.Sensors))
	for i, sensor := range cfg.Rig.Sensors {
		queues[i] = newWriter(sensor.Describe())
	}
	var actuators *queue.Queue
	if cfg.ActuatorStream != "" {
		actuators = newWriter(robot.Descriptor{
			Name: cfg.ActuatorStream,
			Kind: sample.KindBuffer,
		})
	}
	s.loop = newLoop(cfg.Rig, queues, actuators, cfg.Logger)
	return s, nil
}

// RunName is the run directory's base name, the session start time.
func (s *Session) RunName() string {
	return s.run
}

// Dir is the run directory path.
func (s *Session) Dir() string {
	return s.dir
}

// Run drives until the world ends, quit is pressed, or ctx is
// cancelled, then shuts the writers down and waits for them. An
// interrupt is a normal way to end a session, so a cancelled ctx is
// not reported as an error.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	writerCtx, cancelWriters := context.WithCancel(context.Background())
	coordinator := NewCoordinator(cancelWriters)
	for _, writer := range s.writers {
		coordinator.Go(func() { writer.Run(writerCtx) })
	}

	s.cfg.Logger.Info("drive session started",
		"rig", s.cfg.Rig.Name,
		"run", s.run,
		"dir", s.dir,
		"streams", len(s.writers),
		"flush_threshold", s.cfg.Threshold,
		"compression", s.cfg.Compression.String(),
	)

	err := s.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		s.cfg.Logger.Info("interrupted, draining writers")
		err = nil
	}

	// Writers outlive the loop so the shutdown drain sees every record
	// the loop pushed. Their context is cancelled only here.
	coordinator.SignalStop()
	coordinator.JoinAll()

	summary := s.summarize()
	s.cfg.Logger.Info("drive session complete",
		"run", s.run,
		"steps", summary.Steps,
		"records", summary.Records,
		"unsaved", summary.Unsaved,
	)
	return summary, err
}

func (s *Session) summarize() Summary {
	summary := Summary{
		Run:   s.run,
		Dir:   s.dir,
		Steps: s.loop.Steps(),
	}
	for _, writer := range s.writers {
		stats := writer.Stats()
		summary.Streams = append(summary.Streams, stats)
		summary.Records += stats.Records
		summary.Unsaved += stats.Unsaved
	}
	return summary
}

// Summary reports what a finished session persisted. Unsaved is
// nonzero only when a final flush failed; those records are lost once
// the process exits.
type Summary struct {
	Run     string
	Dir     string
	Steps   int
	Records int
	Unsaved int
	Streams []WriterStats
}
