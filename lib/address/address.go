// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Davidwarchy/robolog/lib/access"
)

// Correlation thresholds for the three screenings.
const (
	strongThreshold     = 0.7
	redundantThreshold  = 0.9
	predictorThreshold  = 0.6
	defaultActuatorName = "actuators"
)

// Options controls analysis.
type Options struct {
	// ActuatorSensor names the stream carrying wheel commands. Empty
	// means "actuators".
	ActuatorSensor string
}

// ColumnStats summarizes one value column. Std is the sample standard
// deviation and is NaN when the column has a single value.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
}

// PCAResult reports the reduction applied to one wide stream.
type PCAResult struct {
	Sensor     string
	Components int
	// ExplainedVariance is the fraction of the stream's variance the
	// kept components carry, in [0, 1].
	ExplainedVariance float64
}

// Correlation is one strongly correlated column pair, A before B
// lexically.
type Correlation struct {
	A, B string
	R    float64
}

// Redundancy marks a sensor whose signal another sensor already
// carries.
type Redundancy struct {
	Sensor string
	// MaxCorrelation is the strongest |r| between this sensor's
	// columns and any other sensor's.
	MaxCorrelation float64
}

// Predictor is a sensor column correlated with an actuator column.
type Predictor struct {
	Column   string
	Actuator string
	R        float64
}

// Report is the full analysis result.
type Report struct {
	Stats      []ColumnStats
	PCA        []PCAResult
	Strong     []Correlation
	Redundant  []Redundancy
	Predictors []Predictor
}

// Analyze builds a report over the given frames. Wide streams (more
// than three columns) are standardized and reduced to at most three
// principal components before correlation; narrow streams correlate
// column by column.
func Analyze(frames []*access.Frame, opts Options) *Report {
	actuator := opts.ActuatorSensor
	if actuator == "" {
		actuator = defaultActuatorName
	}

	report := &Report{}
	var columns []series
	for _, frame := range frames {
		report.Stats = append(report.Stats, frameStats(frame)...)
		reduced, pca := reduce(frame)
		columns = append(columns, reduced...)
		if pca != nil {
			report.PCA = append(report.PCA, *pca)
		}
	}
	sort.Slice(columns, func(a, b int) bool { return columns[a].name < columns[b].name })
	correlate(report, columns, actuator)
	return report
}

// frameStats summarizes each value column over its non-NaN cells.
func frameStats(f *access.Frame) []ColumnStats {
	names := f.ColumnNames()
	var out []ColumnStats
	for j := 0; j < f.Width(); j++ {
		var values []float64
		for _, row := range f.Values {
			if !math.IsNaN(row[j]) {
				values = append(values, row[j])
			}
		}
		if len(values) == 0 {
			continue
		}
		stats := ColumnStats{
			Column: f.Sensor + "_" + names[j],
			Count:  len(values),
			Mean:   stat.Mean(values, nil),
			Std:    stat.StdDev(values, nil),
			Min:    floats.Min(values),
			Max:    floats.Max(values),
			Median: median(values),
		}
		out = append(out, stats)
	}
	return out
}

// median destroys the order of its argument.
func median(values []float64) float64 {
	sort.Float64s(values)
	return stat.Quantile(0.5, stat.Empirical, values, nil)
}
