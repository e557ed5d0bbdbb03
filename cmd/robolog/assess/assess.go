// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package assess implements "robolog assess": data quality reports
// for recorded runs, with optional repaired CSV copies.
package assess

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/Davidwarchy/robolog/lib/access"
	"github.com/Davidwarchy/robolog/lib/assess"
	"github.com/Davidwarchy/robolog/lib/cli"
)

// Command returns the "robolog assess" command.
func Command() *cli.Command {
	var (
		opts     assess.Options
		filter   assess.Filter
		cleanDir string
	)
	return &cli.Command{
		Name:    "assess",
		Summary: "Report data quality for a run",
		Description: `Load a run's streams and report their quality: missing cells, gaps
where the robot stopped logging, timestamps that fail to advance, and
rows that look like outliers. Containers are preferred over exported
CSV copies of the same stream.

With --clean, repaired copies of the assessed streams are also
written: NaN cells are forward-filled from the last real value in
their column, or zeroed when the column has produced nothing yet.`,
		Usage: "robolog assess [flags] <run-dir>",
		Examples: []cli.Example{
			{Command: "robolog assess runs/2026-01-02-150405"},
			{
				Description: "Pin the nominal period instead of inferring it",
				Command:     "robolog assess --step 0.032 runs/2026-01-02-150405",
			},
			{
				Description: "One stream over a time window, with repaired output",
				Command:     "robolog assess --sensor gyro --from 1.0 --to 4.0 --clean cleaned runs/2026-01-02-150405",
			},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("assess", pflag.ContinueOnError)
			fs.Float64Var(&opts.ExpectedStep, "step", 0, "expected sample period in seconds (0 infers the median delta)")
			fs.StringVar(&filter.Sensor, "sensor", "", "assess only the named stream")
			fs.Float64Var(&filter.Start, "from", 0, "drop rows before this time in seconds")
			fs.Float64Var(&filter.End, "to", 0, "drop rows after this time in seconds")
			fs.StringVar(&cleanDir, "clean", "", "write repaired CSV copies into this directory")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("assess takes exactly one run directory")
			}
			return runAssess(args[0], filter, opts, cleanDir, os.Stdout)
		},
	}
}

// runAssess loads, filters, and analyzes the run at dir, printing one
// block per stream.
func runAssess(dir string, filter assess.Filter, opts assess.Options, cleanDir string, w io.Writer) error {
	frames, err := access.LoadDir(dir)
	if err != nil {
		return err
	}
	frames = assess.Query(frames, filter)
	if len(frames) == 0 {
		return fmt.Errorf("no streams in %s match the filter", dir)
	}
	report := assess.Analyze(frames, opts)
	for _, stream := range report.Streams {
		printStreamReport(w, stream)
	}
	if cleanDir == "" {
		return nil
	}
	return writeCleaned(frames, cleanDir, w)
}

func printStreamReport(w io.Writer, r assess.StreamReport) {
	fmt.Fprintf(w, "stream %s: %d rows, width %d, step %.3f s\n", r.Sensor, r.Rows, r.Width, r.Step)
	issues := false
	if r.MissingCells > 0 {
		issues = true
		fmt.Fprintf(w, "  missing cells: %d\n", r.MissingCells)
		for j, n := range r.Missing {
			if n > 0 {
				fmt.Fprintf(w, "    %s: %d\n", columnName(j, r.Width), n)
			}
		}
	}
	if len(r.Gaps) > 0 {
		issues = true
		fmt.Fprintf(w, "  gaps: %d, %d rows never written\n", len(r.Gaps), r.MissingRows)
		for _, gap := range r.Gaps {
			fmt.Fprintf(w, "    row %d: %.3f s -> %.3f s (%d steps)\n", gap.Row, gap.From, gap.To, gap.Steps)
		}
	}
	if r.NonMonotonic > 0 {
		issues = true
		fmt.Fprintf(w, "  non-monotonic timestamps: %d\n", r.NonMonotonic)
	}
	if r.OutlierRows > 0 {
		issues = true
		fmt.Fprintf(w, "  outlier rows: %d\n", r.OutlierRows)
	}
	if !issues {
		fmt.Fprintln(w, "  no issues")
	}
}

// columnName mirrors the CSV export header naming.
func columnName(j, width int) string {
	if width == 1 {
		return "value"
	}
	return fmt.Sprintf("value_%d", j)
}

// writeCleaned repairs each frame and writes it as a CSV under dir.
func writeCleaned(frames []*access.Frame, dir string, w io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, frame := range frames {
		cleaned, stats := assess.Clean(frame)
		path := filepath.Join(dir, frame.Sensor+".csv")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := cleaned.WriteCSV(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(w, "cleaned %s: %d forward-filled, %d zero-filled -> %s\n",
			frame.Sensor, stats.ForwardFilled, stats.ZeroFilled, path)
	}
	return nil
}
