// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import (
	"testing"

	"github.com/Davidwarchy/robolog/lib/robot"
)

func TestMapKey(t *testing.T) {
	const max = robot.MaxWheelSpeed
	tests := []struct {
		key  robot.Key
		want Command
	}{
		{robot.KeyForward, Command{Left: max, Right: max}},
		{robot.KeyBackward, Command{Left: -max, Right: -max}},
		{robot.KeyLeft, Command{Left: -max, Right: max}},
		{robot.KeyRight, Command{Left: max, Right: -max}},
		{robot.KeyNone, Stop},
		{robot.KeyQuit, Stop},
		{robot.Key(99), Stop},
	}
	for _, tt := range tests {
		if got := MapKey(tt.key); got != tt.want {
			t.Fatalf("MapKey(%v) = %+v, want %+v", tt.key, got, tt.want)
		}
	}
}
