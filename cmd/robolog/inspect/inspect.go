// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspect implements "robolog inspect": container metadata,
// record dumps, and digest verification for recorded runs.
package inspect

import (
	"github.com/Davidwarchy/robolog/lib/cli"
)

// Command returns the "inspect" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "inspect",
		Summary: "Look inside a run's log containers",
		Description: `Read container metadata and records without exporting anything.

"info" prints each container's header and sizes, "records" prints the
first records of one container, "raw" dumps a container's CBOR in
diagnostic notation, and "verify" re-reads every container in a run
and checks its digest and structure.`,
		Subcommands: []*cli.Command{
			infoCommand(),
			recordsCommand(),
			rawCommand(),
			verifyCommand(),
		},
	}
}
