// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is a small command tree for the robolog tools: nested
// subcommands, pflag flag sets, tabwriter help output, and typo
// suggestions for unknown commands and flags.
//
// A Command is either a group (it has Subcommands) or a leaf (it has
// Run). Groups dispatch on their first argument; invoked bare they
// print their subcommand table and report that a subcommand is
// required. Leaves parse flags with pflag and call Run with the
// positional remainder. Unknown commands and flags get a "did you
// mean" suggestion when something in scope is within a small edit
// distance.
//
// The tree is declared as literals, one constructor per subcommand:
//
//	func Command() *cli.Command {
//	    return &cli.Command{
//	        Name:        "inspect",
//	        Usage:       "robolog inspect <command>",
//	        Description: "Examine log containers.",
//	        Subcommands: []*cli.Command{infoCommand(), recordsCommand()},
//	    }
//	}
//
// Flag variables live in the constructor's closure, so two instances
// of the same command never share state.
package cli
