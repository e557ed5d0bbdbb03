// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package sim

import "github.com/Davidwarchy/robolog/lib/robot"

// Script is a keyboard that replays a fixed key sequence, one key per
// poll, then reports KeyNone forever. It drives deterministic sessions
// in tests and demo runs.
type Script struct {
	keys []robot.Key
	next int
}

// NewScript copies keys into a Script.
func NewScript(keys []robot.Key) *Script {
	return &Script{keys: append([]robot.Key(nil), keys...)}
}

// Hold builds a script that holds key for n polls.
func Hold(key robot.Key, n int) *Script {
	keys := make([]robot.Key, n)
	for i := range keys {
		keys[i] = key
	}
	return NewScript(keys)
}

func (s *Script) Poll() robot.Key {
	if s.next >= len(s.keys) {
		return robot.KeyNone
	}
	k := s.keys[s.next]
	s.next++
	return k
}

// KeyboardFunc adapts a function to the robot.Keyboard interface.
type KeyboardFunc func() robot.Key

func (f KeyboardFunc) Poll() robot.Key { return f() }
