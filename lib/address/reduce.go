// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Davidwarchy/robolog/lib/access"
)

// maxComponents caps how many principal components a wide stream keeps.
const maxComponents = 3

// wideWidth is the column count above which a stream is reduced by PCA
// instead of correlated column by column.
const wideWidth = 3

// series is one reduced column: a named time-indexed value sequence.
type series struct {
	name   string
	sensor string
	times  []float64
	values []float64
}

// reduce turns a frame into correlation-ready series. Narrow frames
// contribute one series per column; wide frames are standardized and
// projected onto their leading principal components. Rows holding any
// NaN cell are dropped before PCA, the way a correlation skips NaN
// pairs.
func reduce(f *access.Frame) ([]series, *PCAResult) {
	if f.Width() <= wideWidth {
		names := f.ColumnNames()
		out := make([]series, 0, f.Width())
		for j := 0; j < f.Width(); j++ {
			out = append(out, series{
				name:   f.Sensor + "_" + names[j],
				sensor: f.Sensor,
				times:  f.Times,
				values: f.Column(j),
			})
		}
		return out, nil
	}

	times, matrix := completeRows(f)
	rows := len(times)
	if rows < 2 {
		return nil, nil
	}
	standardize(matrix, rows, f.Width())

	var pc stat.PC
	if ok := pc.PrincipalComponents(mat.NewDense(rows, f.Width(), matrix), nil); !ok {
		return nil, nil
	}
	components := maxComponents
	if rows < components {
		components = rows
	}
	vars := pc.VarsTo(nil)
	var kept, total float64
	for i, v := range vars {
		total += v
		if i < components {
			kept += v
		}
	}
	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	projected := mat.NewDense(rows, components, nil)
	projected.Mul(mat.NewDense(rows, f.Width(), matrix), vectors.Slice(0, f.Width(), 0, components))

	out := make([]series, components)
	for j := range out {
		out[j] = series{
			name:   fmt.Sprintf("%s_pca_%d", f.Sensor, j+1),
			sensor: f.Sensor,
			times:  times,
			values: mat.Col(nil, j, projected),
		}
	}
	result := &PCAResult{Sensor: f.Sensor, Components: components}
	if total > 0 {
		result.ExplainedVariance = kept / total
	}
	return out, result
}

// completeRows returns the times and row-major values of the rows with
// no NaN cells.
func completeRows(f *access.Frame) ([]float64, []float64) {
	var times []float64
	var matrix []float64
	for i, row := range f.Values {
		complete := true
		for _, v := range row {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		if complete {
			times = append(times, f.Times[i])
			matrix = append(matrix, row...)
		}
	}
	return times, matrix
}

// standardize centers each column and scales it to unit sample
// variance in place. Constant columns keep scale 1 so they center to
// zero instead of dividing by zero.
func standardize(matrix []float64, rows, cols int) {
	column := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			column[i] = matrix[i*cols+j]
		}
		mean := stat.Mean(column, nil)
		sigma := stat.StdDev(column, nil)
		if sigma == 0 || math.IsNaN(sigma) {
			sigma = 1
		}
		for i := 0; i < rows; i++ {
			matrix[i*cols+j] = (column[i] - mean) / sigma
		}
	}
}
