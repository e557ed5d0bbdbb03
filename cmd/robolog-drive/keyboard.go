// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/Davidwarchy/robolog/lib/robot"
)

// keyHold is how long a pressed key keeps driving after its last byte
// arrived. Terminal input reports presses, not releases; autorepeat
// refreshes the hold while a key stays down, and the command decays to
// stop one hold interval after release.
const keyHold = 150 * time.Millisecond

// terminalKeyboard reads raw terminal bytes in a background goroutine
// and exposes the currently held drive key. Quit latches: once q or
// Ctrl-C is seen, Poll reports KeyQuit until the session ends.
type terminalKeyboard struct {
	mu       sync.Mutex
	current  robot.Key
	deadline time.Time
	quit     bool

	restoreOnce sync.Once
	restore     func()
}

// openKeyboard puts stdin into raw mode and starts the read loop. The
// caller must Close to restore the terminal.
func openKeyboard() (*terminalKeyboard, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal; use --script for non-interactive runs")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}
	k := &terminalKeyboard{
		restore: func() { term.Restore(fd, oldState) },
	}
	go k.readLoop()
	return k, nil
}

// Close restores the terminal state. Safe to call more than once. The
// read goroutine stays blocked on stdin until the process exits, which
// is harmless.
func (k *terminalKeyboard) Close() {
	k.restoreOnce.Do(k.restore)
}

func (k *terminalKeyboard) Poll() robot.Key {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.quit {
		return robot.KeyQuit
	}
	if time.Now().After(k.deadline) {
		return robot.KeyNone
	}
	return k.current
}

func (k *terminalKeyboard) press(key robot.Key) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if key == robot.KeyQuit {
		k.quit = true
		return
	}
	k.current = key
	k.deadline = time.Now().Add(keyHold)
}

// readLoop decodes one key per iteration: WASD letters, arrow escape
// sequences, q to quit, and Ctrl-C (raw mode swallows the signal, so
// the byte arrives here).
func (k *terminalKeyboard) readLoop() {
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			k.press(robot.KeyQuit)
			return
		}
		switch buf[0] {
		case 'w', 'W':
			k.press(robot.KeyForward)
		case 's', 'S':
			k.press(robot.KeyBackward)
		case 'a', 'A':
			k.press(robot.KeyLeft)
		case 'd', 'D':
			k.press(robot.KeyRight)
		case 'q', 'Q', 0x03:
			k.press(robot.KeyQuit)
			return
		case 0x1b:
			if key, ok := k.readArrow(); ok {
				k.press(key)
			}
		}
	}
}

// readArrow consumes the "[X" tail of an arrow key's escape sequence.
func (k *terminalKeyboard) readArrow() (robot.Key, bool) {
	tail := make([]byte, 2)
	for i := 0; i < len(tail); i++ {
		if _, err := os.Stdin.Read(tail[i : i+1]); err != nil {
			return 0, false
		}
	}
	if tail[0] != '[' {
		return 0, false
	}
	switch tail[1] {
	case 'A':
		return robot.KeyForward, true
	case 'B':
		return robot.KeyBackward, true
	case 'C':
		return robot.KeyRight, true
	case 'D':
		return robot.KeyLeft, true
	}
	return 0, false
}
