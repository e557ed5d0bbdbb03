// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package assess

import (
	"github.com/Davidwarchy/robolog/lib/access"
)

// Filter selects streams and rows for Query. The zero value keeps
// everything.
type Filter struct {
	// Sensor keeps only the named stream. Empty or "all" keeps every
	// stream.
	Sensor string

	// Start and End bound row times, inclusive, when positive.
	Start float64
	End   float64
}

// Query returns the frames matching the filter, with rows outside the
// time range removed. Row slices are shared with the input, not
// copied. Streams matching the sensor filter are kept even when the
// time range empties them.
func Query(frames []*access.Frame, filter Filter) []*access.Frame {
	var out []*access.Frame
	for _, frame := range frames {
		if filter.Sensor != "" && filter.Sensor != "all" && frame.Sensor != filter.Sensor {
			continue
		}
		filtered := &access.Frame{Sensor: frame.Sensor}
		for i, t := range frame.Times {
			if filter.Start > 0 && t < filter.Start {
				continue
			}
			if filter.End > 0 && t > filter.End {
				continue
			}
			filtered.Times = append(filtered.Times, t)
			filtered.Values = append(filtered.Values, frame.Values[i])
		}
		out = append(out, filtered)
	}
	return out
}
