// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesNestedSubcommands(t *testing.T) {
	var called string
	var got []string

	root := &Command{
		Name: "robolog",
		Subcommands: []*Command{
			{Name: "export", Run: func(args []string) error {
				called = "export"
				return nil
			}},
			{Name: "runs", Subcommands: []*Command{
				{Name: "prune", Run: func(args []string) error {
					called = "runs prune"
					got = args
					return nil
				}},
			}},
		},
	}

	if err := root.Execute([]string{"runs", "prune", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if called != "runs prune" {
		t.Errorf("dispatched to %q, want %q", called, "runs prune")
	}
	if len(got) != 1 || got[0] != "extra" {
		t.Errorf("leaf args = %v, want [extra]", got)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var seed int64
	var positional []string

	command := &Command{
		Name: "export",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flagSet.Int64Var(&seed, "seed", 0, "noise seed")
			return flagSet
		},
		Run: func(args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute([]string{"--seed", "7", "2026-01-02-150405"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if seed != 7 {
		t.Errorf("seed = %d, want 7", seed)
	}
	if len(positional) != 1 || positional[0] != "2026-01-02-150405" {
		t.Errorf("positional args = %v", positional)
	}
}

func TestExecuteSuggestsCommand(t *testing.T) {
	root := &Command{
		Name: "robolog",
		Subcommands: []*Command{
			{Name: "export"},
			{Name: "assess"},
			{Name: "address"},
		},
	}

	err := root.Execute([]string{"exprot"})
	if err == nil {
		t.Fatal("Execute accepted an unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "export"`) {
		t.Errorf("error %q lacks the export suggestion", err.Error())
	}

	err = root.Execute([]string{"zzzzzzzz"})
	if err == nil {
		t.Fatal("Execute accepted an unknown command")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error %q suggests a match for a distant name", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error %q does not point at --help", err.Error())
	}
}

func TestExecuteSuggestsFlag(t *testing.T) {
	flags := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
		flagSet.Int64("seed", 0, "noise seed")
		flagSet.Bool("no-noise", false, "skip the noisy export")
		return flagSet
	}
	command := &Command{
		Name:  "export",
		Flags: flags,
		Run:   func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--sede", "7"})
	if err == nil {
		t.Fatal("Execute accepted an unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --seed") {
		t.Errorf("error %q lacks the --seed suggestion", err.Error())
	}

	err = command.Execute([]string{"--zzzzzzzz"})
	if err == nil {
		t.Fatal("Execute accepted an unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error %q suggests a match for a distant flag", err.Error())
	}
}

func TestExecuteHelpArgs(t *testing.T) {
	for _, arg := range []string{"-h", "--help", "help"} {
		root := &Command{
			Name:        "robolog",
			Subcommands: []*Command{{Name: "export", Summary: "Export a run to CSV"}},
		}
		if err := root.Execute([]string{arg}); err != nil {
			t.Errorf("Execute(%q) = %v", arg, err)
		}
	}
}

func TestExecuteHelpFlagAfterArgs(t *testing.T) {
	ran := false
	command := &Command{
		Name: "assess",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("assess", pflag.ContinueOnError)
			flagSet.Float64("step", 0, "expected timestep")
			return flagSet
		},
		Run: func(args []string) error {
			ran = true
			return nil
		},
	}

	// pflag reports an undefined --help as ErrHelp, which renders help
	// instead of an error even when the flag comes late.
	if err := command.Execute([]string{"--step", "0.032", "--help"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran {
		t.Error("Run executed on a help invocation")
	}
}

func TestExecuteRequiresSubcommand(t *testing.T) {
	root := &Command{
		Name:        "robolog",
		Subcommands: []*Command{{Name: "export", Summary: "Export a run to CSV"}},
	}

	err := root.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute without args returned %v", err)
	}
}

func TestPrintHelpSections(t *testing.T) {
	root := &Command{
		Name:        "robolog",
		Description: "Inspect, export, and analyze recorded runs.",
		Subcommands: []*Command{
			{Name: "export", Summary: "Export a run to CSV"},
			{Name: "assess", Summary: "Report stream quality"},
			{Name: "runs", Summary: "Manage the run catalog"},
		},
		Examples: []Example{
			{Description: "Export with degraded copies", Command: "robolog export 2026-01-02-150405 --seed 7"},
			{Command: "robolog runs list"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Inspect, export, and analyze recorded runs.",
		"Usage:",
		"robolog <command> [flags]",
		"Commands:",
		"export",
		"Report stream quality",
		"Examples:",
		"# Export with degraded copies",
		"robolog runs list",
		"Run 'robolog <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\n%s", want, output)
		}
	}
}

func TestPrintHelpFlagUsages(t *testing.T) {
	command := &Command{
		Name:    "export",
		Summary: "Export a run to CSV",
		Usage:   "robolog export <run-dir> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flagSet.Int64("seed", 0, "noise seed")
			flagSet.StringSlice("skip", nil, "sensors to leave out")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{"robolog export <run-dir> [flags]", "Flags:", "--seed", "--skip"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\n%s", want, output)
		}
	}
}

func TestFullName(t *testing.T) {
	root := &Command{Name: "robolog"}
	runs := &Command{Name: "runs", parent: root}
	prune := &Command{Name: "prune", parent: runs}

	if got := prune.fullName(); got != "robolog runs prune" {
		t.Errorf("fullName = %q, want %q", got, "robolog runs prune")
	}
}
