// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package assess

import (
	"math"

	"github.com/Davidwarchy/robolog/lib/access"
)

// CleanStats counts the cells Clean repaired.
type CleanStats struct {
	// ForwardFilled cells took the previous real value in their
	// column.
	ForwardFilled int
	// ZeroFilled cells had no previous real value and became 0.
	ZeroFilled int
}

// Clean returns a copy of the frame with every NaN cell repaired:
// forward-filled from the last real value in its column, or set to 0
// when the column has produced nothing yet. The input is not modified.
func Clean(f *access.Frame) (*access.Frame, CleanStats) {
	out := &access.Frame{
		Sensor: f.Sensor,
		Times:  append([]float64(nil), f.Times...),
		Values: make([][]float64, f.Len()),
	}
	var stats CleanStats
	last := make([]float64, f.Width())
	for j := range last {
		last[j] = math.NaN()
	}
	for i, row := range f.Values {
		cleaned := make([]float64, len(row))
		for j, v := range row {
			switch {
			case !math.IsNaN(v):
				cleaned[j] = v
				last[j] = v
			case math.IsNaN(last[j]):
				cleaned[j] = 0
				stats.ZeroFilled++
			default:
				cleaned[j] = last[j]
				stats.ForwardFilled++
			}
		}
		out.Values[i] = cleaned
	}
	return out, stats
}
