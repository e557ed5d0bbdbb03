// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Davidwarchy/robolog/lib/samplelog"
)

// LoadDir loads every stream in a directory, one frame per sensor,
// sorted by sensor name. A directory holding log containers is read as
// a run, with each container fully validated; otherwise the directory
// is read as an earlier CSV export. Containers win when both are
// present.
func LoadDir(dir string) ([]*Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var containers, csvs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(entry.Name(), samplelog.Ext):
			containers = append(containers, entry.Name())
		case strings.HasSuffix(entry.Name(), ".csv"):
			csvs = append(csvs, entry.Name())
		}
	}

	var frames []*Frame
	switch {
	case len(containers) > 0:
		sort.Strings(containers)
		for _, name := range containers {
			info, records, err := samplelog.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			frame, err := FromRecords(info.Header.Sensor, records)
			if err != nil {
				return nil, err
			}
			frames = append(frames, frame)
		}
	case len(csvs) > 0:
		sort.Strings(csvs)
		for _, name := range csvs {
			frame, err := ReadCSVFile(filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			frames = append(frames, frame)
		}
	default:
		return nil, fmt.Errorf("no log containers or CSV files in %s", dir)
	}

	sort.Slice(frames, func(a, b int) bool { return frames[a].Sensor < frames[b].Sensor })
	return frames, nil
}
