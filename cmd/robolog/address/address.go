// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package address implements "robolog address": per-column statistics
// and cross-stream correlation for recorded runs.
package address

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/Davidwarchy/robolog/lib/access"
	"github.com/Davidwarchy/robolog/lib/address"
	"github.com/Davidwarchy/robolog/lib/cli"
)

// Command returns the "robolog address" command.
func Command() *cli.Command {
	var opts address.Options
	return &cli.Command{
		Name:    "address",
		Summary: "Correlate a run's streams",
		Description: `Summarize every value column and correlate streams against each
other and against the actuator commands.

Wide streams such as lidar are reduced to at most three principal
components before correlation. Column pairs with |r| of at least 0.7
are reported as strongly correlated, a sensor whose best cross-sensor
|r| reaches 0.9 is flagged redundant, and sensor columns with |r| of
at least 0.6 against an actuator column are reported as predictors.`,
		Usage: "robolog address [flags] <run-dir>",
		Examples: []cli.Example{
			{Command: "robolog address runs/2026-01-02-150405"},
			{
				Description: "Name the stream carrying wheel commands",
				Command:     "robolog address --actuator wheels runs/2026-01-02-150405",
			},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("address", pflag.ContinueOnError)
			fs.StringVar(&opts.ActuatorSensor, "actuator", "", "stream carrying actuator commands (default \"actuators\")")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("address takes exactly one run directory")
			}
			return runAddress(args[0], opts, os.Stdout)
		},
	}
}

// runAddress analyzes the run at dir and prints the report sections.
func runAddress(dir string, opts address.Options, w io.Writer) error {
	frames, err := access.LoadDir(dir)
	if err != nil {
		return err
	}
	report := address.Analyze(frames, opts)

	fmt.Fprintln(w, "column stats:")
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  column\tcount\tmean\tstd\tmin\tmax\tmedian")
	for _, s := range report.Stats {
		fmt.Fprintf(tw, "  %s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			s.Column, s.Count, s.Mean, s.Std, s.Min, s.Max, s.Median)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "pca:")
	if len(report.PCA) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, p := range report.PCA {
		fmt.Fprintf(w, "  %s: %d components carry %.1f%% of variance\n",
			p.Sensor, p.Components, p.ExplainedVariance*100)
	}

	fmt.Fprintln(w, "strong correlations:")
	if len(report.Strong) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, c := range report.Strong {
		fmt.Fprintf(w, "  %s ~ %s: r = %.3f\n", c.A, c.B, c.R)
	}

	fmt.Fprintln(w, "redundant sensors:")
	if len(report.Redundant) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, r := range report.Redundant {
		fmt.Fprintf(w, "  %s: max |r| = %.3f\n", r.Sensor, r.MaxCorrelation)
	}

	fmt.Fprintln(w, "actuator predictors:")
	if len(report.Predictors) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, p := range report.Predictors {
		fmt.Fprintf(w, "  %s responds to %s: r = %.3f\n", p.Column, p.Actuator, p.R)
	}
	return nil
}
