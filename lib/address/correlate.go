// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// correlate screens every column pair and fills the report's Strong,
// Redundant, and Predictors lists. Columns arrive sorted by name, so
// pairs and the lists they produce are deterministic.
func correlate(report *Report, columns []series, actuator string) {
	maxCross := map[string]float64{}
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			a, b := columns[i], columns[j]
			r, n := matchedCorrelation(a, b)
			if n < 2 || math.IsNaN(r) {
				continue
			}
			abs := math.Abs(r)
			if abs > strongThreshold {
				report.Strong = append(report.Strong, Correlation{A: a.name, B: b.name, R: r})
			}
			if a.sensor == b.sensor {
				continue
			}
			if abs > maxCross[a.sensor] {
				maxCross[a.sensor] = abs
			}
			if abs > maxCross[b.sensor] {
				maxCross[b.sensor] = abs
			}
			if abs > predictorThreshold {
				switch {
				case a.sensor == actuator && b.sensor != actuator:
					report.Predictors = append(report.Predictors, Predictor{Column: b.name, Actuator: a.name, R: r})
				case b.sensor == actuator && a.sensor != actuator:
					report.Predictors = append(report.Predictors, Predictor{Column: a.name, Actuator: b.name, R: r})
				}
			}
		}
	}

	var sensors []string
	for sensor, max := range maxCross {
		if max > redundantThreshold {
			sensors = append(sensors, sensor)
		}
	}
	sort.Strings(sensors)
	for _, sensor := range sensors {
		report.Redundant = append(report.Redundant, Redundancy{Sensor: sensor, MaxCorrelation: maxCross[sensor]})
	}
}

// matchedCorrelation computes the Pearson correlation over the rows
// the two series share a timestamp for, skipping pairs with a NaN
// side. It reports the number of matched pairs; fewer than two yields
// no correlation.
func matchedCorrelation(a, b series) (float64, int) {
	var xs, ys []float64
	i, j := 0, 0
	for i < len(a.times) && j < len(b.times) {
		switch {
		case a.times[i] < b.times[j]:
			i++
		case a.times[i] > b.times[j]:
			j++
		default:
			if !math.IsNaN(a.values[i]) && !math.IsNaN(b.values[j]) {
				xs = append(xs, a.values[i])
				ys = append(ys, b.values[j])
			}
			i++
			j++
		}
	}
	if len(xs) < 2 {
		return 0, len(xs)
	}
	return stat.Correlation(xs, ys, nil), len(xs)
}
