// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Davidwarchy/robolog/lib/clock"
)

var catalogTestEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func openTestCatalog(t *testing.T) (*Catalog, *clock.FakeClock) {
	t.Helper()

	fakeClock := clock.Fake(catalogTestEpoch)
	cat, err := Open(Config{
		Path:     filepath.Join(t.TempDir(), "catalog.db"),
		PoolSize: 2,
		Clock:    fakeClock,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := cat.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return cat, fakeClock
}

func testCatalogRun(name string, started time.Time) Run {
	return Run{
		Name:    name,
		Dir:     "/data/logs/" + name,
		Rig:     "e-puck",
		Started: started,
		Steps:   200,
		Records: 420,
		Unsaved: 3,
	}
}

func testCatalogStreams(run string) []Stream {
	return []Stream{
		{Run: run, Sensor: "distance", Kind: "scalar", Records: 200, Flushes: 2, Bytes: 4096, Compression: "zstd"},
		{Run: run, Sensor: "gyro", Kind: "vector3", Records: 100, Flushes: 1, Bytes: 2048, Compression: "zstd"},
	}
}

func TestRecordRunRoundTrip(t *testing.T) {
	cat, _ := openTestCatalog(t)
	ctx := context.Background()

	run := testCatalogRun("2026-01-02-150405", time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC))
	if err := cat.RecordRun(ctx, run, testCatalogStreams(run.Name)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := cat.Find(ctx, run.Name)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := run
	want.Indexed = catalogTestEpoch
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find returned %+v, want %+v", got, want)
	}

	streams, err := cat.Streams(ctx, run.Name)
	if err != nil {
		t.Fatalf("Streams: %v", err)
	}
	if !reflect.DeepEqual(streams, testCatalogStreams(run.Name)) {
		t.Errorf("Streams returned %+v", streams)
	}
}

func TestRecordRunUpsertReplacesStreams(t *testing.T) {
	cat, fakeClock := openTestCatalog(t)
	ctx := context.Background()

	run := testCatalogRun("2026-01-02-150405", time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC))
	if err := cat.RecordRun(ctx, run, testCatalogStreams(run.Name)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	// A second session close for the same run replaces both the run
	// row and its stream rows.
	fakeClock.Advance(time.Minute)
	run.Steps = 400
	run.Records = 840
	run.Unsaved = 0
	replacement := []Stream{{
		Run: run.Name, Sensor: "touch", Kind: "scalar", Variant: "bumper",
		Records: 400, Flushes: 4, Bytes: 8192, Compression: "lz4",
	}}
	if err := cat.RecordRun(ctx, run, replacement); err != nil {
		t.Fatalf("RecordRun again: %v", err)
	}

	got, err := cat.Find(ctx, run.Name)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Steps != 400 || got.Records != 840 || got.Unsaved != 0 {
		t.Errorf("updated run = %+v", got)
	}
	if want := catalogTestEpoch.Add(time.Minute); !got.Indexed.Equal(want) {
		t.Errorf("Indexed = %v, want %v", got.Indexed, want)
	}

	streams, err := cat.Streams(ctx, run.Name)
	if err != nil {
		t.Fatalf("Streams: %v", err)
	}
	if !reflect.DeepEqual(streams, replacement) {
		t.Errorf("streams after upsert = %+v", streams)
	}

	runs, err := cat.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("catalog holds %d runs after upsert, want 1", len(runs))
	}
}

func TestRunsNewestFirst(t *testing.T) {
	cat, _ := openTestCatalog(t)
	ctx := context.Background()

	names := []string{"2026-01-02-150000", "2026-01-02-150500", "2026-01-02-151000"}
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	for i, name := range names {
		run := testCatalogRun(name, base.Add(time.Duration(i)*5*time.Minute))
		if err := cat.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun %s: %v", name, err)
		}
	}

	runs, err := cat.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	var got []string
	for _, run := range runs {
		got = append(got, run.Name)
	}
	want := []string{"2026-01-02-151000", "2026-01-02-150500", "2026-01-02-150000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("run order %v, want %v", got, want)
	}
}

func TestFindUnindexedRun(t *testing.T) {
	cat, _ := openTestCatalog(t)

	_, err := cat.Find(context.Background(), "2026-12-31-235959")
	if err == nil || !strings.Contains(err.Error(), "not indexed") {
		t.Errorf("Find on empty catalog returned %v", err)
	}
}

func TestStreamsSortedBySensor(t *testing.T) {
	cat, _ := openTestCatalog(t)
	ctx := context.Background()

	run := testCatalogRun("2026-01-02-150405", time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC))
	streams := []Stream{
		{Run: run.Name, Sensor: "touch", Kind: "scalar", Records: 1, Flushes: 1, Bytes: 64, Compression: "none"},
		{Run: run.Name, Sensor: "camera", Kind: "buffer", Records: 2, Flushes: 1, Bytes: 128, Compression: "zstd"},
		{Run: run.Name, Sensor: "gyro", Kind: "vector3", Records: 3, Flushes: 1, Bytes: 96, Compression: "lz4"},
	}
	if err := cat.RecordRun(ctx, run, streams); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := cat.Streams(ctx, run.Name)
	if err != nil {
		t.Fatalf("Streams: %v", err)
	}
	var sensors []string
	for _, stream := range got {
		sensors = append(sensors, stream.Sensor)
	}
	if want := []string{"camera", "gyro", "touch"}; !reflect.DeepEqual(sensors, want) {
		t.Errorf("stream order %v, want %v", sensors, want)
	}

	none, err := cat.Streams(ctx, "2026-06-06-060606")
	if err != nil {
		t.Fatalf("Streams of unknown run: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown run has %d streams", len(none))
	}
}

func TestCatalogPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	first, err := Open(Config{Path: path, Clock: clock.Fake(catalogTestEpoch)})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	run := testCatalogRun("2026-01-02-150405", time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC))
	if err := first.RecordRun(ctx, run, testCatalogStreams(run.Name)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := second.Find(ctx, run.Name)
	if err != nil {
		t.Fatalf("Find after reopen: %v", err)
	}
	if got.Records != run.Records {
		t.Errorf("Records = %d, want %d", got.Records, run.Records)
	}
	streams, err := second.Streams(ctx, run.Name)
	if err != nil {
		t.Fatalf("Streams after reopen: %v", err)
	}
	if len(streams) != 2 {
		t.Errorf("found %d streams after reopen, want 2", len(streams))
	}
}
