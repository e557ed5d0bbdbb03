// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called; every After, NewTicker, and Sleep
// registers a pending wait that fires when the clock is advanced past
// its deadline.
//
// FakeClock is safe for concurrent use.
func Fake(initial time.Time) *FakeClock {
	c := &FakeClock{now: initial}
	c.registered = sync.NewCond(&c.mu)
	return c
}

// FakeClock is a deterministic Clock for tests. Advance moves time
// forward and fires due waits in deadline order.
type FakeClock struct {
	mu         sync.Mutex
	now        time.Time
	waits      []*wait
	registered *sync.Cond
}

// wait is one pending After, Sleep, or ticker interval.
type wait struct {
	// when is the deadline at which the wait fires.
	when time.Time

	// ch receives the fire time. Capacity 1; sends never block, so a
	// ticker whose consumer lags drops ticks like time.Ticker does.
	ch chan time.Time

	// every is nonzero for tickers, which reschedule at when+every
	// after each fire. One-shot waits are removed once fired.
	every time.Duration

	// active is cleared by Ticker.Stop.
	active bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After returns a channel that receives once the clock has been
// advanced past the deadline. If d <= 0 the channel receives
// immediately, without registering a wait.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.register(&wait{when: c.now.Add(d), ch: ch, active: true})
	return ch
}

// NewTicker returns a Ticker firing every d fake-clock units. Panics
// if d <= 0.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	w := &wait{when: c.now.Add(d), ch: make(chan time.Time, 1), every: d, active: true}
	c.register(w)

	return &Ticker{
		C: w.ch,
		stop: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			w.active = false
		},
	}
}

// Sleep blocks the calling goroutine until the clock advances past the
// deadline. Returns immediately if d <= 0.
func (c *FakeClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	<-c.After(d)
}

// register appends a wait and wakes WaitForTimers callers. Caller
// holds c.mu.
func (c *FakeClock) register(w *wait) {
	c.waits = append(c.waits, w)
	c.registered.Broadcast()
}

// Advance moves the clock forward by d, firing every wait whose
// deadline falls within the new time, in deadline order. Tickers fire
// once per elapsed interval; ticks that overflow a full channel buffer
// are dropped.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	target := c.now
	c.mu.Unlock()

	// Tickers reschedule themselves on fire, so keep collecting until
	// no deadline remains within the advanced window.
	for {
		due := c.takeDue(target)
		if len(due) == 0 {
			return
		}
		sort.Slice(due, func(i, j int) bool { return due[i].when.Before(due[j].when) })
		for _, w := range due {
			select {
			case w.ch <- target:
			default:
			}
		}
	}
}

// takeDue removes fired one-shot waits, reschedules due tickers, and
// returns the waits to fire for this pass.
func (c *FakeClock) takeDue(target time.Time) []*wait {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due, keep []*wait
	for _, w := range c.waits {
		switch {
		case !w.active:
			// Stopped ticker, drop it.
		case w.when.After(target):
			keep = append(keep, w)
		default:
			due = append(due, w)
			if w.every > 0 {
				w.when = w.when.Add(w.every)
				keep = append(keep, w)
			}
		}
	}
	c.waits = keep
	return due
}

// WaitForTimers blocks until at least n waits are pending. Call it
// after starting a goroutine that sleeps or polls on this clock and
// before Advance, so the advance deterministically fires the wait the
// goroutine registered.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pendingLocked() < n {
		c.registered.Wait()
	}
}

// PendingCount returns the number of active pending waits.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

func (c *FakeClock) pendingLocked() int {
	n := 0
	for _, w := range c.waits {
		if w.active {
			n++
		}
	}
	return n
}
