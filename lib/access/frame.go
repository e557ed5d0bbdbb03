// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Davidwarchy/robolog/lib/sample"
)

// Frame holds one stream's records in column-oriented form: a time
// axis plus one flattened value row per record. Every row has the same
// width; Times and Values are always the same length.
type Frame struct {
	Sensor string
	Times  []float64
	Values [][]float64
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Times)
}

// Width returns the number of value columns, 0 for a frame with no
// rows.
func (f *Frame) Width() int {
	if len(f.Values) == 0 {
		return 0
	}
	return len(f.Values[0])
}

// Column returns value column j as its own slice.
func (f *Frame) Column(j int) []float64 {
	col := make([]float64, len(f.Values))
	for i, row := range f.Values {
		col[i] = row[j]
	}
	return col
}

// ColumnNames returns the header names of the value columns: "value"
// for a single column, "value_0".."value_{k-1}" otherwise.
func (f *Frame) ColumnNames() []string {
	width := f.Width()
	if width == 1 {
		return []string{"value"}
	}
	names := make([]string, width)
	for j := range names {
		names[j] = fmt.Sprintf("value_%d", j)
	}
	return names
}

// FromRecords flattens a stream's records into a frame. The first
// record fixes the row width; a stream whose records disagree on width
// cannot be framed.
func FromRecords(sensor string, records []sample.Envelope) (*Frame, error) {
	frame := &Frame{
		Sensor: sensor,
		Times:  make([]float64, 0, len(records)),
		Values: make([][]float64, 0, len(records)),
	}
	width := -1
	for i, record := range records {
		row := record.Payload.Flatten()
		if width < 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("stream %q: record %d has %d values, previous records have %d",
				sensor, i, len(row), width)
		}
		frame.Times = append(frame.Times, record.Time)
		frame.Values = append(frame.Values, row)
	}
	return frame, nil
}

// WriteCSV writes the frame with a sim_time column followed by its
// value columns. Floats use the shortest representation that parses
// back exactly.
func (f *Frame) WriteCSV(w io.Writer) error {
	out := csv.NewWriter(w)
	if err := out.Write(append([]string{"sim_time"}, f.ColumnNames()...)); err != nil {
		return err
	}
	row := make([]string, 1+f.Width())
	for i, t := range f.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, v := range f.Values[i] {
			row[1+j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// ReadCSV parses a frame previously written by WriteCSV. The first
// header column must be sim_time; the remaining header columns fix the
// row width.
func ReadCSV(sensor string, r io.Reader) (*Frame, error) {
	in := csv.NewReader(r)
	header, err := in.Read()
	if err != nil {
		return nil, fmt.Errorf("stream %q: reading CSV header: %w", sensor, err)
	}
	if len(header) == 0 || header[0] != "sim_time" {
		return nil, fmt.Errorf("stream %q: not a sample CSV, first column is %q", sensor, strings.Join(header, ","))
	}
	width := len(header) - 1
	frame := &Frame{Sensor: sensor}
	for line := 2; ; line++ {
		record, err := in.Read()
		if err == io.EOF {
			return frame, nil
		}
		if err != nil {
			return nil, fmt.Errorf("stream %q: %w", sensor, err)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("stream %q line %d: bad sim_time %q", sensor, line, record[0])
		}
		row := make([]float64, width)
		for j, field := range record[1:] {
			row[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("stream %q line %d: bad value %q", sensor, line, field)
			}
		}
		frame.Times = append(frame.Times, t)
		frame.Values = append(frame.Values, row)
	}
}

// ReadCSVFile reads a frame from path, taking the sensor name from the
// file's base name.
func ReadCSVFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sensor := strings.TrimSuffix(filepath.Base(path), ".csv")
	return ReadCSV(sensor, f)
}
