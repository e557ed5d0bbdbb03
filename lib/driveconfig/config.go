// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package driveconfig

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Davidwarchy/robolog/lib/samplelog"
)

// actuatorOff disables the actuator stream when set as its name;
// catalogOff does the same for the run index.
const (
	actuatorOff = "off"
	catalogOff  = "off"
)

// Config configures a drive session. Durations are YAML strings like
// "1s"; Validate parses them and caches the results behind the
// accessor methods.
type Config struct {
	// RunRoot is the directory that collects run directories.
	RunRoot string `yaml:"run_root"`

	// Rig is the path to a JSONC rig manifest. Empty mounts the
	// built-in rover.
	Rig string `yaml:"rig"`

	// FlushThreshold is the per-stream record count that triggers a
	// flush.
	FlushThreshold int `yaml:"flush_threshold"`

	// WaitInterval bounds each writer's sleep between queue checks.
	WaitInterval string `yaml:"wait_interval"`

	// Compression names the container codec: none, lz4, or zstd.
	Compression string `yaml:"compression"`

	// ActuatorStream names the stream that records commanded wheel
	// velocities. Set to "off" to disable it.
	ActuatorStream string `yaml:"actuator_stream"`

	// Catalog is the SQLite run index the session records itself into
	// when it closes. Empty means catalog.db inside the run root; set
	// to "off" to skip indexing.
	Catalog string `yaml:"catalog"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`

	// MaxSteps ends the session after this many steps. Zero means
	// drive until quit or interrupt.
	MaxSteps int `yaml:"max_steps"`

	// Cached by Validate.
	waitInterval time.Duration
	compression  samplelog.CompressionTag
	logLevel     slog.Level
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		RunRoot:        "runs",
		FlushThreshold: 200,
		WaitInterval:   "1s",
		Compression:    "zstd",
		ActuatorStream: "actuators",
		LogLevel:       "info",
	}
}

// Load reads the file named by ROBOLOG_CONFIG, or returns defaults
// when the variable is unset. Unlike a deployment config there is no
// required file; the defaults describe a complete local session.
func Load() (*Config, error) {
	path := os.Getenv("ROBOLOG_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile merges one YAML file over the defaults. Unknown keys are
// rejected so a typo fails loudly instead of silently keeping the
// default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and caches the parsed forms. It reports
// all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if c.RunRoot == "" {
		errs = append(errs, errors.New("run_root is required"))
	}
	if c.FlushThreshold < 1 {
		errs = append(errs, fmt.Errorf("flush_threshold is %d, must be at least 1", c.FlushThreshold))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("max_steps is %d, must not be negative", c.MaxSteps))
	}

	wait, err := time.ParseDuration(c.WaitInterval)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("wait_interval: %w", err))
	case wait <= 0:
		errs = append(errs, fmt.Errorf("wait_interval %s must be positive", c.WaitInterval))
	default:
		c.waitInterval = wait
	}

	tag, err := samplelog.ParseCompressionTag(c.Compression)
	if err != nil {
		errs = append(errs, fmt.Errorf("compression: %w", err))
	} else {
		c.compression = tag
	}

	switch c.LogLevel {
	case "debug":
		c.logLevel = slog.LevelDebug
	case "info":
		c.logLevel = slog.LevelInfo
	case "warn":
		c.logLevel = slog.LevelWarn
	case "error":
		c.logLevel = slog.LevelError
	default:
		errs = append(errs, fmt.Errorf("log_level %q must be debug, info, warn, or error", c.LogLevel))
	}

	return errors.Join(errs...)
}

// WaitDuration is the parsed wait_interval. Valid after Validate.
func (c *Config) WaitDuration() time.Duration {
	return c.waitInterval
}

// CompressionTag is the parsed compression codec. Valid after Validate.
func (c *Config) CompressionTag() samplelog.CompressionTag {
	return c.compression
}

// Level is the parsed log level. Valid after Validate.
func (c *Config) Level() slog.Level {
	return c.logLevel
}

// ActuatorName is the actuator stream name, or empty when disabled.
func (c *Config) ActuatorName() string {
	if c.ActuatorStream == actuatorOff {
		return ""
	}
	return c.ActuatorStream
}

// CatalogPath is the run index database path, or empty when indexing
// is disabled.
func (c *Config) CatalogPath() string {
	switch c.Catalog {
	case catalogOff:
		return ""
	case "":
		return filepath.Join(c.RunRoot, "catalog.db")
	}
	return c.Catalog
}

// EnsureDirs creates the run root if it does not exist.
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.RunRoot, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", c.RunRoot, err)
	}
	return nil
}
