// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package assess reports on the quality of logged streams: missing
// cells, timestep gaps, rows that never made it to disk, and outlier
// rows. It also cleans frames for analysis and answers simple
// sensor/time-range queries. Everything operates on access.Frame, so
// raw runs and CSV exports assess identically.
//
// Gap detection works off the stream's expected timestep. When Options
// leaves it zero, the median observed delta stands in, which tolerates
// a minority of gaps without skewing the baseline the way a mean
// would. A delta more than ten percent over the step counts as a gap,
// and the rows that should have filled it count as never written.
package assess
