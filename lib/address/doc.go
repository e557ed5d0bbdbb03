// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package address relates streams to each other: per-column summary
// statistics, dimensionality reduction for wide streams, and Pearson
// correlation screening for strongly related columns, redundant
// sensors, and columns that predict the actuator commands.
//
// Streams are correlated on their shared timestamps. Rows present in
// one stream but not the other are left out of that pair's
// correlation, so subsampled or gappy streams compare on exactly the
// ticks both observed. NaN cells drop the affected pair the same way.
//
// Wide streams (more than three columns) are reduced before
// correlation: columns are standardized and projected onto at most
// three principal components, named sensor_pca_0 and so on. Narrow
// streams keep their raw columns, named sensor_value for width one and
// sensor_value_N otherwise, matching the CSV export headers.
package address
