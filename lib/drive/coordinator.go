// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import "sync"

// Coordinator owns the shutdown of a session's writer goroutines. The
// loop finishes first, then SignalStop tells every writer to drain,
// and JoinAll blocks until they have all exited. SignalStop is safe to
// call from any goroutine, any number of times; only the first call
// does anything.
type Coordinator struct {
	stop func()
	once sync.Once
	wg   sync.WaitGroup
}

// NewCoordinator wraps the stop function that tells workers to wind
// down, typically a context.CancelFunc.
func NewCoordinator(stop func()) *Coordinator {
	return &Coordinator{stop: stop}
}

// Go runs f in a goroutine tracked by JoinAll.
func (c *Coordinator) Go(f func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		f()
	}()
}

// SignalStop fires the stop function exactly once.
func (c *Coordinator) SignalStop() {
	c.once.Do(c.stop)
}

// JoinAll blocks until every tracked goroutine has returned.
func (c *Coordinator) JoinAll() {
	c.wg.Wait()
}
