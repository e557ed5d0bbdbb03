// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/Davidwarchy/robolog/lib/samplelog"
)

// readRunDir builds a run's catalog rows from its directory, reading
// each container's header and file size. Steps and unsaved counts are
// not persisted in containers; steps is taken from the largest stream
// and unsaved is zero.
func readRunDir(runDir string) (Run, []Stream, error) {
	name := filepath.Base(filepath.Clean(runDir))
	started, err := time.Parse(samplelog.RunTimeFormat, name)
	if err != nil {
		return Run{}, nil, fmt.Errorf("catalog: %s is not a run directory: %w", runDir, err)
	}

	entries, err := os.ReadDir(runDir)
	if err != nil {
		return Run{}, nil, fmt.Errorf("catalog: index %s: %w", name, err)
	}
	var containers []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), samplelog.Ext) {
			containers = append(containers, entry.Name())
		}
	}
	if len(containers) == 0 {
		return Run{}, nil, fmt.Errorf("catalog: no log containers in %s", runDir)
	}
	sort.Strings(containers)

	run := Run{Name: name, Dir: runDir, Started: started}
	var streams []Stream
	for _, file := range containers {
		path := filepath.Join(runDir, file)
		info, err := samplelog.ReadInfo(path)
		if err != nil {
			return Run{}, nil, fmt.Errorf("catalog: read %s: %w", file, err)
		}
		stat, err := os.Stat(path)
		if err != nil {
			return Run{}, nil, fmt.Errorf("catalog: stat %s: %w", file, err)
		}
		records := int64(info.Header.Records)
		streams = append(streams, Stream{
			Run:         name,
			Sensor:      info.Header.Sensor,
			Kind:        info.Header.Kind.String(),
			Variant:     info.Header.Variant,
			Records:     records,
			Flushes:     int64(info.Header.Sequence),
			Bytes:       stat.Size(),
			Compression: info.Compression.String(),
		})
		run.Records += records
		if records > run.Steps {
			run.Steps = records
		}
	}
	return run, streams, nil
}

// IndexRun rebuilds one run's catalog rows from its directory.
func (c *Catalog) IndexRun(ctx context.Context, runDir string) (Run, []Stream, error) {
	run, streams, err := readRunDir(runDir)
	if err != nil {
		return Run{}, nil, err
	}
	if err := c.RecordRun(ctx, run, streams); err != nil {
		return Run{}, nil, err
	}
	return run, streams, nil
}

// RecordSession indexes a finished run directory with the counters
// only the live session knows: the rig name, the step count, and how
// many records a failed final flush lost.
func (c *Catalog) RecordSession(ctx context.Context, runDir, rig string, steps, unsaved int64) (Run, []Stream, error) {
	run, streams, err := readRunDir(runDir)
	if err != nil {
		return Run{}, nil, err
	}
	run.Rig = rig
	run.Steps = steps
	run.Unsaved = unsaved
	if err := c.RecordRun(ctx, run, streams); err != nil {
		return Run{}, nil, err
	}
	return run, streams, nil
}

// Rescan indexes every run directory under root, skipping entries that
// are not run directories and runs whose containers cannot be read.
// It returns how many runs were indexed.
func (c *Catalog) Rescan(ctx context.Context, root string) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("catalog: rescan %s: %w", root, err)
	}
	indexed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := time.Parse(samplelog.RunTimeFormat, entry.Name()); err != nil {
			continue
		}
		if _, _, err := c.IndexRun(ctx, filepath.Join(root, entry.Name())); err != nil {
			c.logger.Warn("run skipped during rescan", "run", entry.Name(), "error", err)
			continue
		}
		indexed++
	}
	return indexed, nil
}

// Prune deletes catalog rows for runs whose directory no longer
// exists, returning how many were removed. Stream rows follow their
// run by cascade.
func (c *Catalog) Prune(ctx context.Context) (int, error) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("catalog: prune: %w", err)
	}
	defer c.pool.Put(conn)

	type row struct{ name, dir string }
	var rows []row
	err = sqlitex.Execute(conn, "SELECT name, dir FROM runs", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rows = append(rows, row{stmt.ColumnText(0), stmt.ColumnText(1)})
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("catalog: prune: %w", err)
	}

	pruned := 0
	for _, r := range rows {
		if _, err := os.Stat(r.dir); !os.IsNotExist(err) {
			continue
		}
		err = sqlitex.Execute(conn, "DELETE FROM runs WHERE name = ?",
			&sqlitex.ExecOptions{Args: []any{r.name}})
		if err != nil {
			return pruned, fmt.Errorf("catalog: prune %s: %w", r.name, err)
		}
		c.logger.Info("pruned vanished run", "run", r.name, "dir", r.dir)
		pruned++
	}
	return pruned, nil
}
