// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the robolog CLI command tree.
package commands

import (
	addresscmd "github.com/Davidwarchy/robolog/cmd/robolog/address"
	assesscmd "github.com/Davidwarchy/robolog/cmd/robolog/assess"
	exportcmd "github.com/Davidwarchy/robolog/cmd/robolog/export"
	inspectcmd "github.com/Davidwarchy/robolog/cmd/robolog/inspect"
	runscmd "github.com/Davidwarchy/robolog/cmd/robolog/runs"
	"github.com/Davidwarchy/robolog/lib/cli"
)

// Root returns the complete robolog command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "robolog",
		Description: `robolog: work with recorded drive runs.

A run is a directory of per-sensor log containers written by
robolog-drive. These commands export runs to CSV, inspect and verify
containers, report stream quality, correlate streams, and maintain
the run catalog.`,
		Subcommands: []*cli.Command{
			exportcmd.Command(),
			inspectcmd.Command(),
			assesscmd.Command(),
			addresscmd.Command(),
			runscmd.Command(),
		},
		Examples: []cli.Example{
			{
				Description: "Export a run to noiseless and noisy CSVs",
				Command:     "robolog export runs/2026-01-02-150405 --out exports",
			},
			{
				Description: "Show what a run recorded",
				Command:     "robolog inspect info runs/2026-01-02-150405",
			},
			{
				Description: "Check every container's digest",
				Command:     "robolog inspect verify runs/2026-01-02-150405",
			},
			{
				Description: "Report stream quality for a run",
				Command:     "robolog assess runs/2026-01-02-150405",
			},
			{
				Description: "Correlate streams against the actuator commands",
				Command:     "robolog address runs/2026-01-02-150405",
			},
			{
				Description: "List indexed runs",
				Command:     "robolog runs list",
			},
		},
	}
}
