// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// NoiseConfig describes the degradations applied to the noisy copy of
// an exported stream. A zero value disables the corresponding effect;
// LatencyRate 1 keeps every row.
type NoiseConfig struct {
	// GaussianStd is the standard deviation of zero-mean noise added
	// to every value independently.
	GaussianStd float64

	// MissingProb is the probability that a whole row is dropped.
	MissingProb float64

	// LatencyRate keeps one row in every LatencyRate, by input index.
	LatencyRate int

	// JitterAmplitude and JitterFrequency shape a sine offset,
	// amplitude*sin(2*pi*frequency*t), added to every value of the
	// rows that survive. The offset is a function of the row's
	// timestamp, so neighboring rows drift together.
	JitterAmplitude float64
	JitterFrequency float64
}

// DefaultNoise returns the standard degradation profile: mild Gaussian
// noise, one row in twenty missing, every second row kept, and a slow
// low-amplitude drift.
func DefaultNoise() NoiseConfig {
	return NoiseConfig{
		GaussianStd:     0.1,
		MissingProb:     0.05,
		LatencyRate:     2,
		JitterAmplitude: 0.05,
		JitterFrequency: 10.0,
	}
}

// Validate checks every field, reporting all problems at once.
func (c NoiseConfig) Validate() error {
	var errs []error
	if c.GaussianStd < 0 {
		errs = append(errs, fmt.Errorf("gaussian std %g must not be negative", c.GaussianStd))
	}
	if c.MissingProb < 0 || c.MissingProb > 1 {
		errs = append(errs, fmt.Errorf("missing probability %g must be in [0, 1]", c.MissingProb))
	}
	if c.LatencyRate < 1 {
		errs = append(errs, fmt.Errorf("latency rate %d must be at least 1", c.LatencyRate))
	}
	if c.JitterAmplitude < 0 {
		errs = append(errs, fmt.Errorf("jitter amplitude %g must not be negative", c.JitterAmplitude))
	}
	if c.JitterFrequency < 0 {
		errs = append(errs, fmt.Errorf("jitter frequency %g must not be negative", c.JitterFrequency))
	}
	return errors.Join(errs...)
}

// Apply returns a degraded copy of the frame. Effects run per row in a
// fixed order: Gaussian noise on every value, then the missing-row
// draw, then subsampling, then the jitter offset. Every row consumes
// its Gaussian and missing draws even when a later stage drops it, so
// dropping one row never shifts the noise applied to the rest. The
// input frame is not modified.
func (c NoiseConfig) Apply(f *Frame, rng *rand.Rand) *Frame {
	out := &Frame{Sensor: f.Sensor}
	for i, t := range f.Times {
		row := make([]float64, len(f.Values[i]))
		copy(row, f.Values[i])
		if c.GaussianStd > 0 {
			for j := range row {
				row[j] += rng.NormFloat64() * c.GaussianStd
			}
		}
		if c.MissingProb > 0 && rng.Float64() < c.MissingProb {
			continue
		}
		if c.LatencyRate > 1 && i%c.LatencyRate != 0 {
			continue
		}
		if c.JitterAmplitude != 0 {
			offset := c.JitterAmplitude * math.Sin(2*math.Pi*c.JitterFrequency*t)
			for j := range row {
				row[j] += offset
			}
		}
		out.Times = append(out.Times, t)
		out.Values = append(out.Values, row)
	}
	return out
}
