// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Davidwarchy/robolog/lib/testutil"
)

func TestCoordinatorSignalStopFiresOnce(t *testing.T) {
	var fired atomic.Int32
	c := NewCoordinator(func() { fired.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.SignalStop()
		}()
	}
	wg.Wait()
	c.SignalStop()

	if got := fired.Load(); got != 1 {
		t.Fatalf("stop fired %d times, want 1", got)
	}
}

func TestCoordinatorJoinAllWaitsForWorkers(t *testing.T) {
	c := NewCoordinator(func() {})
	release := make(chan struct{})
	var running atomic.Int32
	for i := 0; i < 3; i++ {
		c.Go(func() {
			running.Add(1)
			<-release
		})
	}

	joined := make(chan struct{})
	go func() {
		c.JoinAll()
		close(joined)
	}()

	select {
	case <-joined:
		t.Fatal("JoinAll returned while workers were still running")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	testutil.RequireClosed(t, joined, 5*time.Second, "JoinAll after workers exit")
	if got := running.Load(); got != 3 {
		t.Fatalf("%d workers ran, want 3", got)
	}
}
