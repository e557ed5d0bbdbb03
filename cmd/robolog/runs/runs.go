// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package runs implements "robolog runs": maintaining and querying
// the SQLite catalog of recorded runs.
package runs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/Davidwarchy/robolog/lib/catalog"
	"github.com/Davidwarchy/robolog/lib/cli"
)

// timeFormat renders catalog timestamps for terminal output.
const timeFormat = "2006-01-02 15:04:05"

// Command returns the "runs" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "runs",
		Summary: "Maintain the run catalog",
		Description: `Query and maintain the SQLite catalog of recorded runs.

robolog-drive indexes each run when its session closes. "rescan"
rebuilds the catalog from a run root, "index" adds a single run,
"prune" drops runs whose directories vanished, and "list" and "show"
read the index without touching the run directories.`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			indexCommand(),
			rescanCommand(),
			pruneCommand(),
		},
	}
}

func listCommand() *cli.Command {
	var db string
	return &cli.Command{
		Name:    "list",
		Summary: "List indexed runs, newest first",
		Usage:   "robolog runs list [flags]",
		Examples: []cli.Example{
			{Command: "robolog runs list"},
			{Command: "robolog runs list --db /data/logs/catalog.db"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
			fs.StringVar(&db, "db", "", "catalog database (default runs/catalog.db)")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("list takes no arguments, got %q", args[0])
			}
			return runList(databasePath(db, ""), os.Stdout)
		},
	}
}

func showCommand() *cli.Command {
	var db string
	return &cli.Command{
		Name:    "show",
		Summary: "Show one run and its streams",
		Usage:   "robolog runs show [flags] <run>",
		Examples: []cli.Example{
			{Command: "robolog runs show 2026-01-02-150405"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
			fs.StringVar(&db, "db", "", "catalog database (default runs/catalog.db)")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("show takes exactly one run name")
			}
			return runShow(databasePath(db, ""), args[0], os.Stdout)
		},
	}
}

func indexCommand() *cli.Command {
	var db string
	return &cli.Command{
		Name:    "index",
		Summary: "Index a single run directory",
		Description: `Scan one run directory and record it in the catalog, replacing any
previous index entry for the run. The catalog defaults to catalog.db
next to the run directory.`,
		Usage: "robolog runs index [flags] <run-dir>",
		Examples: []cli.Example{
			{Command: "robolog runs index runs/2026-01-02-150405"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("index", pflag.ContinueOnError)
			fs.StringVar(&db, "db", "", "catalog database (default catalog.db beside the run)")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("index takes exactly one run directory")
			}
			return runIndex(databasePath(db, filepath.Dir(args[0])), args[0], os.Stdout)
		},
	}
}

func rescanCommand() *cli.Command {
	var db string
	return &cli.Command{
		Name:    "rescan",
		Summary: "Rebuild the catalog from a run root",
		Description: `Walk a run root and index every run directory found in it. Entries
whose directories are malformed are skipped with a warning. Runs
already indexed are refreshed; runs that vanished are left alone, use
"prune" for those.`,
		Usage: "robolog runs rescan [flags] <root>",
		Examples: []cli.Example{
			{Command: "robolog runs rescan runs"},
			{Command: "robolog runs rescan --db index.db /data/logs"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("rescan", pflag.ContinueOnError)
			fs.StringVar(&db, "db", "", "catalog database (default catalog.db inside the root)")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("rescan takes exactly one run root directory")
			}
			return runRescan(databasePath(db, args[0]), args[0], os.Stdout)
		},
	}
}

func pruneCommand() *cli.Command {
	var db string
	return &cli.Command{
		Name:    "prune",
		Summary: "Drop runs whose directories vanished",
		Usage:   "robolog runs prune [flags]",
		Examples: []cli.Example{
			{Command: "robolog runs prune --db /data/logs/catalog.db"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("prune", pflag.ContinueOnError)
			fs.StringVar(&db, "db", "", "catalog database (default runs/catalog.db)")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("prune takes no arguments, got %q", args[0])
			}
			return runPrune(databasePath(db, ""), os.Stdout)
		},
	}
}

// databasePath resolves the catalog location: the --db flag when
// given, catalog.db inside root when a root is known, and the default
// run root otherwise.
func databasePath(db, root string) string {
	if db != "" {
		return db
	}
	if root != "" {
		return filepath.Join(root, "catalog.db")
	}
	return filepath.Join("runs", "catalog.db")
}

// openCatalog opens the catalog with operational messages routed to
// stderr. Commands that only read pass mustExist so a missing catalog
// fails with advice instead of leaving an empty database behind.
func openCatalog(path string, mustExist bool) (*catalog.Catalog, error) {
	if mustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("no catalog at %s (run \"robolog runs rescan\" to build one)", path)
		}
	}
	return catalog.Open(catalog.Config{
		Path:   path,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
}

func runList(db string, w io.Writer) error {
	cat, err := openCatalog(db, true)
	if err != nil {
		return err
	}
	defer cat.Close()
	runs, err := cat.Runs(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs indexed")
		return nil
	}
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "run\tstarted\trig\tsteps\trecords\tunsaved")
	for _, run := range runs {
		rig := run.Rig
		if rig == "" {
			rig = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.Name, run.Started.Format(timeFormat), rig, run.Steps, run.Records, run.Unsaved)
	}
	return tw.Flush()
}

func runShow(db, name string, w io.Writer) error {
	cat, err := openCatalog(db, true)
	if err != nil {
		return err
	}
	defer cat.Close()
	ctx := context.Background()
	run, err := cat.Find(ctx, name)
	if err != nil {
		return err
	}
	streams, err := cat.Streams(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "run:     %s\n", run.Name)
	fmt.Fprintf(w, "dir:     %s\n", run.Dir)
	if run.Rig != "" {
		fmt.Fprintf(w, "rig:     %s\n", run.Rig)
	}
	fmt.Fprintf(w, "started: %s\n", run.Started.Format(timeFormat))
	fmt.Fprintf(w, "steps:   %d\n", run.Steps)
	fmt.Fprintf(w, "records: %d\n", run.Records)
	fmt.Fprintf(w, "unsaved: %d\n", run.Unsaved)
	fmt.Fprintf(w, "indexed: %s\n", run.Indexed.Format(timeFormat))
	if len(streams) == 0 {
		return nil
	}
	fmt.Fprintln(w, "streams:")
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  sensor\tkind\trecords\tflushes\tcompression\tbytes")
	for _, stream := range streams {
		kind := stream.Kind
		if stream.Variant != "" {
			kind += "/" + stream.Variant
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\t%s\t%d\n",
			stream.Sensor, kind, stream.Records, stream.Flushes, stream.Compression, stream.Bytes)
	}
	return tw.Flush()
}

func runIndex(db, runDir string, w io.Writer) error {
	cat, err := openCatalog(db, false)
	if err != nil {
		return err
	}
	defer cat.Close()
	run, streams, err := cat.IndexRun(context.Background(), runDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "indexed run %s: %d streams, %d records\n", run.Name, len(streams), run.Records)
	return nil
}

func runRescan(db, root string, w io.Writer) error {
	cat, err := openCatalog(db, false)
	if err != nil {
		return err
	}
	defer cat.Close()
	count, err := cat.Rescan(context.Background(), root)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "indexed %d runs from %s\n", count, root)
	return nil
}

func runPrune(db string, w io.Writer) error {
	cat, err := openCatalog(db, true)
	if err != nil {
		return err
	}
	defer cat.Close()
	count, err := cat.Prune(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pruned %d runs\n", count)
	return nil
}
