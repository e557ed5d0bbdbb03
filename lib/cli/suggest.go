// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// suggestCommand returns the closest subcommand name within an edit
// distance of 3, or "" when nothing is close. Three edits covers the
// usual typos without matching unrelated names.
func suggestCommand(unknown string, commands []*Command) string {
	best := ""
	bestDistance := 4
	for _, command := range commands {
		if d := levenshtein(unknown, command.Name); d < bestDistance {
			bestDistance = d
			best = command.Name
		}
	}
	return best
}

// suggestFlag finds the first flag-shaped argument the set does not
// define and returns the closest defined long flag with its "--"
// prefix, or "" when nothing is close.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var longNames []string
	defined := make(map[string]bool)
	flagSet.VisitAll(func(f *pflag.Flag) {
		longNames = append(longNames, f.Name)
		defined[f.Name] = true
		if f.Shorthand != "" {
			defined[f.Shorthand] = true
		}
	})

	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if name == "" || defined[name] {
			continue
		}

		best := ""
		bestDistance := 4
		for _, candidate := range longNames {
			if d := levenshtein(name, candidate); d < bestDistance {
				bestDistance = d
				best = candidate
			}
		}
		if best != "" {
			return "--" + best
		}
		// Only the first unrecognized flag gets a suggestion.
		break
	}
	return ""
}

// levenshtein is the edit distance between a and b: the fewest
// single-character insertions, deletions, and substitutions that turn
// one string into the other.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	// One row of the distance matrix at a time keeps this linear in
	// the shorter string.
	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}
	for j := 1; j <= len(b); j++ {
		diagonal := row[0]
		row[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min(row[i]+1, row[i-1]+1, diagonal+cost)
			diagonal = row[i]
			row[i] = next
		}
	}
	return row[len(a)]
}
