// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Davidwarchy/robolog/lib/samplelog"
)

// ExportOptions controls how a run is exported.
type ExportOptions struct {
	// Noise enables the degraded copy of every stream. Nil exports
	// only the clean CSVs.
	Noise *NoiseConfig

	// Seed initializes the noise source. The same run, options, and
	// seed always produce byte-identical noisy CSVs.
	Seed int64

	// Skip lists sensor names excluded from the export.
	Skip []string
}

// StreamExport reports one exported stream.
type StreamExport struct {
	Sensor string
	Rows   int
	// Kept counts the rows surviving noise; equal to Rows when noise
	// is off.
	Kept int
}

// Summary reports one exported run.
type Summary struct {
	Run       string
	Noiseless string
	// Noisy is the directory of degraded CSVs, empty when noise is
	// off.
	Noisy   string
	Streams []StreamExport
}

// ExportRun converts every log container in runDir into per-sensor CSV
// files under outRoot/noiseless/<run>/, plus degraded copies under
// outRoot/noisy/<run>/ when noise is enabled. Streams are processed in
// sorted name order so a fixed seed degrades each stream the same way
// on every export.
func ExportRun(runDir, outRoot string, opts ExportOptions) (*Summary, error) {
	run := filepath.Base(filepath.Clean(runDir))
	entries, err := os.ReadDir(runDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), samplelog.Ext) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no log containers in %s", runDir)
	}
	sort.Strings(names)

	skip := make(map[string]bool, len(opts.Skip))
	for _, sensor := range opts.Skip {
		skip[sensor] = true
	}

	summary := &Summary{Run: run, Noiseless: filepath.Join(outRoot, "noiseless", run)}
	if err := os.MkdirAll(summary.Noiseless, 0o755); err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if opts.Noise != nil {
		if err := opts.Noise.Validate(); err != nil {
			return nil, fmt.Errorf("noise config: %w", err)
		}
		summary.Noisy = filepath.Join(outRoot, "noisy", run)
		if err := os.MkdirAll(summary.Noisy, 0o755); err != nil {
			return nil, err
		}
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	for _, name := range names {
		info, records, err := samplelog.ReadFile(filepath.Join(runDir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		sensor := info.Header.Sensor
		if skip[sensor] {
			continue
		}
		frame, err := FromRecords(sensor, records)
		if err != nil {
			return nil, err
		}
		if err := writeCSVFile(filepath.Join(summary.Noiseless, sensor+".csv"), frame); err != nil {
			return nil, err
		}
		stream := StreamExport{Sensor: sensor, Rows: frame.Len(), Kept: frame.Len()}
		if opts.Noise != nil {
			noisy := opts.Noise.Apply(frame, rng)
			if err := writeCSVFile(filepath.Join(summary.Noisy, sensor+".csv"), noisy); err != nil {
				return nil, err
			}
			stream.Kept = noisy.Len()
		}
		summary.Streams = append(summary.Streams, stream)
	}
	return summary, nil
}

func writeCSVFile(path string, frame *Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := frame.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
