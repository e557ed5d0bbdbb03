// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/Davidwarchy/robolog/lib/clock"
	"github.com/Davidwarchy/robolog/lib/sqlitepool"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	name       TEXT PRIMARY KEY,
	dir        TEXT NOT NULL,
	rig        TEXT NOT NULL DEFAULT '',
	started_at INTEGER NOT NULL,
	steps      INTEGER NOT NULL,
	records    INTEGER NOT NULL,
	unsaved    INTEGER NOT NULL,
	indexed_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS streams (
	run         TEXT NOT NULL REFERENCES runs(name) ON DELETE CASCADE,
	sensor      TEXT NOT NULL,
	kind        TEXT NOT NULL,
	variant     TEXT NOT NULL DEFAULT '',
	records     INTEGER NOT NULL,
	flushes     INTEGER NOT NULL,
	bytes       INTEGER NOT NULL,
	compression TEXT NOT NULL,
	PRIMARY KEY (run, sensor)
);
CREATE INDEX IF NOT EXISTS idx_streams_sensor ON streams(sensor);
`

// Run is one indexed run.
type Run struct {
	Name    string
	Dir     string
	Rig     string
	Started time.Time
	Steps   int64
	Records int64
	Unsaved int64
	Indexed time.Time
}

// Stream is one indexed stream of a run.
type Stream struct {
	Run         string
	Sensor      string
	Kind        string
	Variant     string
	Records     int64
	Flushes     int64
	Bytes       int64
	Compression string
}

// Config holds the parameters for opening a catalog.
type Config struct {
	// Path is the database file. Required.
	Path string

	// PoolSize passes through to the connection pool.
	PoolSize int

	// Clock stamps index times. Nil means the wall clock.
	Clock clock.Clock

	// Logger receives operational messages. Nil discards them.
	Logger *slog.Logger
}

// Catalog is the run index. Safe for concurrent use.
type Catalog struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// Open opens or creates the catalog database.
func Open(cfg Config) (*Catalog, error) {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: cfg.PoolSize,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return &Catalog{pool: pool, clock: clk, logger: logger}, nil
}

// Close closes the underlying pool.
func (c *Catalog) Close() error {
	return c.pool.Close()
}

// RecordRun upserts a run and replaces its streams in one transaction.
// The run's Indexed time is set by the catalog.
func (c *Catalog) RecordRun(ctx context.Context, run Run, streams []Stream) (err error) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("catalog: record run: %w", err)
	}
	defer c.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("catalog: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	err = sqlitex.Execute(conn, `INSERT INTO runs
		(name, dir, rig, started_at, steps, records, unsaved, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			dir = excluded.dir,
			rig = excluded.rig,
			started_at = excluded.started_at,
			steps = excluded.steps,
			records = excluded.records,
			unsaved = excluded.unsaved,
			indexed_at = excluded.indexed_at`,
		&sqlitex.ExecOptions{Args: []any{
			run.Name, run.Dir, run.Rig, run.Started.Unix(),
			run.Steps, run.Records, run.Unsaved, c.clock.Now().Unix(),
		}})
	if err != nil {
		return fmt.Errorf("catalog: upsert run %s: %w", run.Name, err)
	}

	err = sqlitex.Execute(conn, "DELETE FROM streams WHERE run = ?",
		&sqlitex.ExecOptions{Args: []any{run.Name}})
	if err != nil {
		return fmt.Errorf("catalog: clear streams of %s: %w", run.Name, err)
	}

	for _, stream := range streams {
		err = sqlitex.Execute(conn, `INSERT INTO streams
			(run, sensor, kind, variant, records, flushes, bytes, compression)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{
				run.Name, stream.Sensor, stream.Kind, stream.Variant,
				stream.Records, stream.Flushes, stream.Bytes, stream.Compression,
			}})
		if err != nil {
			return fmt.Errorf("catalog: insert stream %s/%s: %w", run.Name, stream.Sensor, err)
		}
	}
	return nil
}

// Runs lists every indexed run, newest first.
func (c *Catalog) Runs(ctx context.Context) ([]Run, error) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list runs: %w", err)
	}
	defer c.pool.Put(conn)

	var runs []Run
	err = sqlitex.Execute(conn, `SELECT name, dir, rig, started_at, steps,
		records, unsaved, indexed_at FROM runs ORDER BY started_at DESC, name DESC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				runs = append(runs, scanRun(stmt))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("catalog: list runs: %w", err)
	}
	return runs, nil
}

// Find returns one run by name.
func (c *Catalog) Find(ctx context.Context, name string) (Run, error) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return Run{}, fmt.Errorf("catalog: find run: %w", err)
	}
	defer c.pool.Put(conn)

	var run Run
	found := false
	err = sqlitex.Execute(conn, `SELECT name, dir, rig, started_at, steps,
		records, unsaved, indexed_at FROM runs WHERE name = ?`,
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				run = scanRun(stmt)
				found = true
				return nil
			},
		})
	if err != nil {
		return Run{}, fmt.Errorf("catalog: find run %s: %w", name, err)
	}
	if !found {
		return Run{}, fmt.Errorf("catalog: run %s not indexed", name)
	}
	return run, nil
}

// Streams lists a run's streams sorted by sensor name.
func (c *Catalog) Streams(ctx context.Context, run string) ([]Stream, error) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list streams: %w", err)
	}
	defer c.pool.Put(conn)

	var streams []Stream
	err = sqlitex.Execute(conn, `SELECT run, sensor, kind, variant, records,
		flushes, bytes, compression FROM streams WHERE run = ? ORDER BY sensor`,
		&sqlitex.ExecOptions{
			Args: []any{run},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				streams = append(streams, Stream{
					Run:         stmt.ColumnText(0),
					Sensor:      stmt.ColumnText(1),
					Kind:        stmt.ColumnText(2),
					Variant:     stmt.ColumnText(3),
					Records:     stmt.ColumnInt64(4),
					Flushes:     stmt.ColumnInt64(5),
					Bytes:       stmt.ColumnInt64(6),
					Compression: stmt.ColumnText(7),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("catalog: list streams of %s: %w", run, err)
	}
	return streams, nil
}

func scanRun(stmt *sqlite.Stmt) Run {
	return Run{
		Name:    stmt.ColumnText(0),
		Dir:     stmt.ColumnText(1),
		Rig:     stmt.ColumnText(2),
		Started: time.Unix(stmt.ColumnInt64(3), 0).UTC(),
		Steps:   stmt.ColumnInt64(4),
		Records: stmt.ColumnInt64(5),
		Unsaved: stmt.ColumnInt64(6),
		Indexed: time.Unix(stmt.ColumnInt64(7), 0).UTC(),
	}
}
