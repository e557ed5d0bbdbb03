// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package assess

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Davidwarchy/robolog/lib/access"
)

// Options controls gap detection.
type Options struct {
	// ExpectedStep is the nominal sample period in seconds. Zero
	// infers the period as the median observed delta, which treats a
	// uniformly subsampled stream as running at its own slower rate.
	ExpectedStep float64
}

// Gap is a stretch of time where samples should have appeared but did
// not: the delta exceeds the nominal period by more than 10%.
type Gap struct {
	// Row indexes the first record after the gap.
	Row int
	// From and To are the timestamps on either side.
	From, To float64
	// Steps is the number of nominal periods the gap spans, rounded.
	Steps int
}

// StreamReport is the quality report for one stream.
type StreamReport struct {
	Sensor string
	Rows   int
	Width  int

	// Step is the period gap detection used, either
	// Options.ExpectedStep or the inferred median delta. Zero when
	// the stream has fewer than two rows and no explicit period.
	Step float64

	// Missing counts NaN cells per value column; MissingCells is
	// their total.
	Missing      []int
	MissingCells int

	Gaps []Gap
	// MissingRows is the number of whole records the gaps imply were
	// never written.
	MissingRows int

	// NonMonotonic counts rows whose timestamp fails to advance.
	NonMonotonic int

	// OutlierRows counts rows flagged by Outliers.
	OutlierRows int
}

// Report is the per-stream quality report for a whole run.
type Report struct {
	Streams []StreamReport
}

// Analyze builds a quality report over the given frames.
func Analyze(frames []*access.Frame, opts Options) *Report {
	report := &Report{Streams: make([]StreamReport, 0, len(frames))}
	for _, frame := range frames {
		report.Streams = append(report.Streams, analyzeFrame(frame, opts))
	}
	return report
}

func analyzeFrame(f *access.Frame, opts Options) StreamReport {
	report := StreamReport{
		Sensor:  f.Sensor,
		Rows:    f.Len(),
		Width:   f.Width(),
		Missing: make([]int, f.Width()),
	}
	for _, row := range f.Values {
		for j, v := range row {
			if math.IsNaN(v) {
				report.Missing[j]++
				report.MissingCells++
			}
		}
	}

	var deltas []float64
	for i := 1; i < len(f.Times); i++ {
		dt := f.Times[i] - f.Times[i-1]
		if dt <= 0 || math.IsNaN(dt) {
			report.NonMonotonic++
			continue
		}
		deltas = append(deltas, dt)
	}
	step := opts.ExpectedStep
	if step <= 0 && len(deltas) > 0 {
		sort.Float64s(deltas)
		step = stat.Quantile(0.5, stat.Empirical, deltas, nil)
	}
	report.Step = step

	if step > 0 {
		for i := 1; i < len(f.Times); i++ {
			dt := f.Times[i] - f.Times[i-1]
			if dt > step*1.1 {
				gap := Gap{
					Row:   i,
					From:  f.Times[i-1],
					To:    f.Times[i],
					Steps: int(math.Round(dt / step)),
				}
				report.Gaps = append(report.Gaps, gap)
				if gap.Steps > 1 {
					report.MissingRows += gap.Steps - 1
				}
			}
		}
	}

	for _, flagged := range Outliers(f) {
		if flagged {
			report.OutlierRows++
		}
	}
	return report
}

// Outliers flags rows holding at least one value more than three
// sample standard deviations above its column's mean. NaN cells never
// trigger, and columns with fewer than two real values are skipped.
func Outliers(f *access.Frame) []bool {
	flags := make([]bool, f.Len())
	column := make([]float64, 0, f.Len())
	for j := 0; j < f.Width(); j++ {
		column = column[:0]
		for _, row := range f.Values {
			if !math.IsNaN(row[j]) {
				column = append(column, row[j])
			}
		}
		if len(column) < 2 {
			continue
		}
		threshold := stat.Mean(column, nil) + 3*stat.StdDev(column, nil)
		for i, row := range f.Values {
			if !math.IsNaN(row[j]) && row[j] > threshold {
				flags[i] = true
			}
		}
	}
	return flags
}
