// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Davidwarchy/robolog/lib/catalog"
	"github.com/Davidwarchy/robolog/lib/clock"
	"github.com/Davidwarchy/robolog/lib/drive"
	"github.com/Davidwarchy/robolog/lib/driveconfig"
	"github.com/Davidwarchy/robolog/lib/robot"
	"github.com/Davidwarchy/robolog/lib/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "",
		"path to a robolog.yaml config file (default: ROBOLOG_CONFIG, then built-in defaults)")
	runRoot := flag.String("run-root", "",
		"directory for run directories (overrides the config)")
	rigPath := flag.String("rig", "",
		"JSONC rig manifest (overrides the config; default: built-in rover)")
	maxSteps := flag.Int("steps", -1,
		"end the session after this many steps; 0 drives until quit (overrides the config)")
	script := flag.String("script", "",
		"drive from a key script like \"f:120,l:40,q:1\" instead of the terminal")
	logLevel := flag.String("log-level", "",
		"log verbosity: debug, info, warn, or error (overrides the config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *runRoot != "" {
		cfg.RunRoot = *runRoot
	}
	if *rigPath != "" {
		cfg.Rig = *rigPath
	}
	if *maxSteps >= 0 {
		cfg.MaxSteps = *maxSteps
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	manifest := sim.DefaultManifest()
	if cfg.Rig != "" {
		manifest, err = sim.ReadFile(cfg.Rig)
		if err != nil {
			return err
		}
	}

	var keyboard robot.Keyboard
	var terminal *terminalKeyboard
	interactive := *script == ""
	if interactive {
		terminal, err = openKeyboard()
		if err != nil {
			return err
		}
		defer terminal.Close()
		keyboard = terminal
	} else {
		keys, err := parseScript(*script)
		if err != nil {
			return err
		}
		keyboard = sim.NewScript(keys)
	}

	rig, world, err := sim.Build(manifest, keyboard)
	if err != nil {
		return err
	}
	world.SetStepLimit(cfg.MaxSteps)
	if interactive {
		// Pace the simulation to wall time so the robot drives at the
		// speed the operator sees. Scripted runs log at full speed.
		world.SetPace(clock.Real())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := drive.NewSession(drive.SessionConfig{
		Rig:            rig,
		RunRoot:        cfg.RunRoot,
		Threshold:      cfg.FlushThreshold,
		WaitInterval:   cfg.WaitDuration(),
		Compression:    cfg.CompressionTag(),
		ActuatorStream: cfg.ActuatorName(),
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if interactive {
		fmt.Printf("driving %s: arrows or WASD steer, q quits; logging to %s\r\n",
			rig.Name, session.Dir())
	}

	summary, err := session.Run(ctx)
	if terminal != nil {
		// Leave raw mode before printing so the summary lines up.
		terminal.Close()
	}
	if err != nil {
		return err
	}
	printSummary(summary)
	if path := cfg.CatalogPath(); path != "" {
		recordInCatalog(path, rig.Name, summary, logger)
	}
	return nil
}

// recordInCatalog indexes the finished run. The containers on disk
// are already safe, so an indexing failure warns instead of failing
// the session.
func recordInCatalog(path, rig string, summary drive.Summary, logger *slog.Logger) {
	cat, err := catalog.Open(catalog.Config{Path: path, PoolSize: 1, Logger: logger})
	if err != nil {
		logger.Warn("run not indexed", "catalog", path, "error", err)
		return
	}
	defer cat.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err = cat.RecordSession(ctx, summary.Dir, rig, int64(summary.Steps), int64(summary.Unsaved))
	if err != nil {
		logger.Warn("run not indexed", "catalog", path, "error", err)
		return
	}
	logger.Info("run indexed", "catalog", path, "run", summary.Run)
}

// loadConfig resolves the --config flag against the environment
// fallback inside driveconfig.Load.
func loadConfig(path string) (*driveconfig.Config, error) {
	if path != "" {
		return driveconfig.LoadFile(path)
	}
	return driveconfig.Load()
}

// printSummary writes the per-stream record counts to stdout.
func printSummary(summary drive.Summary) {
	fmt.Printf("run %s: %d steps, %d records\n", summary.Run, summary.Steps, summary.Records)
	for _, stream := range summary.Streams {
		line := fmt.Sprintf("  %-12s %6d records  %3d flushes", stream.Sensor, stream.Records, stream.Flushes)
		if stream.Unsaved > 0 {
			line += fmt.Sprintf("  %d NOT SAVED", stream.Unsaved)
		}
		if stream.Failures > 0 {
			line += fmt.Sprintf("  %d flush failures", stream.Failures)
		}
		fmt.Println(line)
	}
}
