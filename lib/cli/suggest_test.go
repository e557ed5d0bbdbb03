// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		// A transposition costs two single-character edits.
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"export", "exprot", 2},
		{"assess", "asses", 1},
		{"rescan", "recsan", 2},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
		if got := levenshtein(test.b, test.a); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.b, test.a, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "export"},
		{Name: "inspect"},
		{Name: "assess"},
		{Name: "address"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"exprot", "export"},
		{"asses", "assess"},
		{"inspct", "inspect"},
		{"export", "export"},
		{"qqqqqqqqqq", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flags := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.Int64P("seed", "s", 0, "noise seed")
		flagSet.String("actuator", "actuators", "actuator stream name")
		return flagSet
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--sede", "7"}, "--seed"},
		{[]string{"--seed=7", "--actautor=wheels"}, "--actuator"},
		// Defined long names and shorthands never trigger a suggestion.
		{[]string{"--seed", "7", "-s", "9"}, ""},
		{[]string{"positional", "only"}, ""},
		{[]string{"--qqqqqqqqqq"}, ""},
		{[]string{"--"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flags()); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
