// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import (
	"context"
	"log/slog"
	"time"

	"github.com/Davidwarchy/robolog/lib/clock"
	"github.com/Davidwarchy/robolog/lib/queue"
	"github.com/Davidwarchy/robolog/lib/robot"
	"github.com/Davidwarchy/robolog/lib/sample"
	"github.com/Davidwarchy/robolog/lib/samplelog"
)

// Store persists one rewrite of a stream's record history. Sessions
// use FileStore; writer tests substitute a fake so flushes are
// observable and failures injectable.
type Store interface {
	Write(path string, header samplelog.Header, records []sample.Envelope, tag samplelog.CompressionTag) error
}

// FileStore writes containers through samplelog.
type FileStore struct{}

func (FileStore) Write(path string, header samplelog.Header, records []sample.Envelope, tag samplelog.CompressionTag) error {
	return samplelog.WriteFile(path, header, records, tag)
}

// WriterConfig configures one stream writer.
type WriterConfig struct {
	// Descriptor identifies the stream; its Name becomes the file name.
	Descriptor robot.Descriptor
	// Queue is the stream's source. The writer is its only consumer.
	Queue *queue.Queue
	// Path is the container file the writer rewrites on every flush.
	Path string
	// Run is the run directory name stamped into the container header.
	Run string
	// Threshold is the record count that triggers a flush. Records
	// below the threshold stay pending until shutdown.
	Threshold int
	// WaitInterval bounds how long the writer sleeps between queue
	// checks, so it notices shutdown and retries failed flushes
	// promptly. Defaults to one second.
	WaitInterval time.Duration
	Compression  samplelog.CompressionTag
	Store        Store
	Clock        clock.Clock
	Logger       *slog.Logger
}

// Writer drains one stream's queue and persists its record history.
// The history is cumulative: every flush rewrites the container with
// all records received so far, so the file on disk is always complete
// up to the last flush.
type Writer struct {
	cfg WriterConfig

	records  []sample.Envelope
	pending  int
	sequence uint64
	failures uint64
}

// NewWriter creates a writer. Zero config fields get defaults: a one
// second wait interval, the file-backed store, the real clock, and a
// discard logger.
func NewWriter(cfg WriterConfig) *Writer {
	if cfg.WaitInterval <= 0 {
		cfg.WaitInterval = time.Second
	}
	if cfg.Store == nil {
		cfg.Store = FileStore{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{cfg: cfg}
}

// Run drains the queue until ctx is cancelled, then drains whatever
// remains and flushes one final time. The producer must stop pushing
// before ctx is cancelled for the final drain to be complete.
func (w *Writer) Run(ctx context.Context) {
	for {
		w.collect()
		if w.pending >= w.cfg.Threshold {
			w.flush()
		}
		select {
		case <-w.cfg.Queue.Notify():
		case <-w.cfg.Clock.After(w.cfg.WaitInterval):
		case <-ctx.Done():
			w.collect()
			w.finalFlush()
			return
		}
	}
}

// collect moves everything currently queued into the record history.
func (w *Writer) collect() {
	for {
		envelope, ok := w.cfg.Queue.Pop()
		if !ok {
			return
		}
		w.records = append(w.records, envelope)
		w.pending++
	}
}

// flush rewrites the container with the full record history. On
// failure the pending count is kept, so the records flush again on the
// next wakeup; nothing is lost while the process lives.
func (w *Writer) flush() {
	header := samplelog.Header{
		Sensor:   w.cfg.Descriptor.Name,
		Kind:     w.cfg.Descriptor.Kind,
		Variant:  w.cfg.Descriptor.Variant,
		Run:      w.cfg.Run,
		Sequence: w.sequence + 1,
	}
	if err := w.cfg.Store.Write(w.cfg.Path, header, w.records, w.cfg.Compression); err != nil {
		w.failures++
		w.cfg.Logger.Warn("flush failed, records retained",
			"sensor", w.cfg.Descriptor.Name,
			"error", err,
			"pending", w.pending,
			"records", len(w.records),
		)
		return
	}
	w.sequence++
	w.pending = 0
	w.cfg.Logger.Debug("flushed stream",
		"sensor", w.cfg.Descriptor.Name,
		"records", len(w.records),
		"sequence", w.sequence,
	)
}

// finalFlush persists the remaining partial batch. It also writes a
// container for streams that never reached the threshold, so every
// sensor of a run has a file, even an empty one.
func (w *Writer) finalFlush() {
	if w.pending == 0 && w.sequence > 0 {
		return
	}
	w.flush()
}

// Stats reports what the writer has done. Call only after Run has
// returned.
func (w *Writer) Stats() WriterStats {
	return WriterStats{
		Sensor:   w.cfg.Descriptor.Name,
		Records:  len(w.records),
		Unsaved:  w.pending,
		Flushes:  w.sequence,
		Failures: w.failures,
	}
}

// WriterStats summarizes one stream at session end. Unsaved is nonzero
// only when the final flush failed.
type WriterStats struct {
	Sensor   string
	Records  int
	Unsaved  int
	Flushes  uint64
	Failures uint64
}
