// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Davidwarchy/robolog/lib/robot"
)

// parseScript expands a drive script like "f:120,l:40,f:200,q:1" into
// one key per step. Letters are f, b, l, r, n (coast), and q; the
// count after the colon repeats the key for that many steps.
func parseScript(s string) ([]robot.Key, error) {
	var keys []robot.Key
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		letter, countText, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("script entry %q is not key:count", part)
		}
		var key robot.Key
		switch letter {
		case "f":
			key = robot.KeyForward
		case "b":
			key = robot.KeyBackward
		case "l":
			key = robot.KeyLeft
		case "r":
			key = robot.KeyRight
		case "n":
			key = robot.KeyNone
		case "q":
			key = robot.KeyQuit
		default:
			return nil, fmt.Errorf("script entry %q: unknown key %q", part, letter)
		}
		count, err := strconv.Atoi(countText)
		if err != nil || count < 1 {
			return nil, fmt.Errorf("script entry %q: count must be a positive integer", part)
		}
		for i := 0; i < count; i++ {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("script %q holds no keys", s)
	}
	return keys, nil
}
