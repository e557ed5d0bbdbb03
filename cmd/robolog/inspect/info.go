// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Davidwarchy/robolog/lib/cli"
	"github.com/Davidwarchy/robolog/lib/samplelog"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:    "info",
		Summary: "Print container headers and sizes",
		Description: `Print the header of each container in a run directory, or of one
container file. Only metadata is read; bodies stay untouched, so this
works quickly even on large or corrupt runs.`,
		Usage: "robolog inspect info <run-dir | container>",
		Examples: []cli.Example{
			{Command: "robolog inspect info runs/2026-01-02-150405"},
			{Command: "robolog inspect info runs/2026-01-02-150405/distance.rlog"},
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("info takes exactly one run directory or container file")
			}
			return runInfo(args[0], os.Stdout)
		},
	}
}

// runInfo prints one container's header in full, or a table for a
// whole run directory.
func runInfo(path string, w io.Writer) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !stat.IsDir() {
		info, err := samplelog.ReadInfo(path)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		printContainerInfo(w, info, stat.Size())
		return nil
	}

	containers, err := listContainers(path)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "sensor\tkind\trecords\tflushes\tcompression\tbytes")
	for _, file := range containers {
		full := filepath.Join(path, file)
		info, err := samplelog.ReadInfo(full)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		stat, err := os.Stat(full)
		if err != nil {
			return err
		}
		kind := info.Header.Kind.String()
		if info.Header.Variant != "" {
			kind += "/" + info.Header.Variant
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%d\n",
			info.Header.Sensor, kind, info.Header.Records,
			info.Header.Sequence, info.Compression, stat.Size())
	}
	return tw.Flush()
}

func printContainerInfo(w io.Writer, info samplelog.Info, size int64) {
	fmt.Fprintf(w, "sensor:      %s\n", info.Header.Sensor)
	fmt.Fprintf(w, "kind:        %s\n", info.Header.Kind)
	if info.Header.Variant != "" {
		fmt.Fprintf(w, "variant:     %s\n", info.Header.Variant)
	}
	fmt.Fprintf(w, "run:         %s\n", info.Header.Run)
	fmt.Fprintf(w, "records:     %d\n", info.Header.Records)
	fmt.Fprintf(w, "flushes:     %d\n", info.Header.Sequence)
	fmt.Fprintf(w, "compression: %s (%d stored, %d raw)\n",
		info.Compression, info.StoredSize, info.RawSize)
	fmt.Fprintf(w, "file size:   %d\n", size)
	fmt.Fprintf(w, "digest:      %s\n", samplelog.FormatDigest(info.Digest))
}

// listContainers returns the sorted container file names in dir.
func listContainers(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var containers []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), samplelog.Ext) {
			containers = append(containers, entry.Name())
		}
	}
	if len(containers) == 0 {
		return nil, fmt.Errorf("no log containers in %s", dir)
	}
	sort.Strings(containers)
	return containers, nil
}
