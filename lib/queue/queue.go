// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"sync"

	"github.com/Davidwarchy/robolog/lib/sample"
)

// Queue is an unbounded FIFO of envelopes for one sensor stream. One
// producer (the acquisition loop) and one consumer (that stream's
// writer); all methods are safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	items  []sample.Envelope
	head   int
	notify chan struct{}
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push appends an envelope. Never blocks.
func (q *Queue) Push(env sample.Envelope) {
	q.mu.Lock()
	q.items = append(q.items, env)
	q.mu.Unlock()

	// Non-blocking signal to the consumer.
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Pop removes and returns the oldest envelope. The second return is
// false when the queue is empty.
func (q *Queue) Pop() (sample.Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return sample.Envelope{}, false
	}

	env := q.items[q.head]
	q.items[q.head] = sample.Envelope{} // release payload for GC
	q.head++

	// All consumed: reset to reuse the backing array instead of
	// growing it for the lifetime of the run.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return env, true
}

// Len returns the number of queued envelopes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Notify returns the wake channel: it receives at most one pending
// signal after any number of Pushes. The writer selects on it
// alongside its poll timer and cancellation.
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}
