// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Davidwarchy/robolog/lib/sample"
	"github.com/Davidwarchy/robolog/lib/samplelog"
)

// writeInspectContainer writes a small uncompressed container so the
// reported compression tag is deterministic.
func writeInspectContainer(t *testing.T, dir, sensor string, kind sample.Kind, records []sample.Envelope) string {
	t.Helper()
	path := samplelog.FilePath(dir, sensor)
	header := samplelog.Header{
		Sensor:   sensor,
		Kind:     kind,
		Run:      filepath.Base(dir),
		Sequence: 2,
	}
	if err := samplelog.WriteFile(path, header, records, samplelog.CompressionNone); err != nil {
		t.Fatalf("writing %s container: %v", sensor, err)
	}
	return path
}

func scalarRecords(n int) []sample.Envelope {
	records := make([]sample.Envelope, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, sample.Envelope{
			Time:    float64(i+1) * 0.5,
			Payload: sample.Scalar(float64(i) + 0.25),
		})
	}
	return records
}

func vectorRecords(n int) []sample.Envelope {
	records := make([]sample.Envelope, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, sample.Envelope{
			Time:    float64(i+1) * 0.5,
			Payload: sample.Vector([3]float64{float64(i), 0.25, -1}),
		})
	}
	return records
}

func TestRunInfoDirectory(t *testing.T) {
	dir := t.TempDir()
	writeInspectContainer(t, dir, "gyro", sample.KindVector3, vectorRecords(2))
	writeInspectContainer(t, dir, "distance", sample.KindScalar, scalarRecords(4))

	var buf bytes.Buffer
	if err := runInfo(dir, &buf); err != nil {
		t.Fatalf("runInfo: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus two containers:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "sensor") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "distance") || !strings.Contains(lines[1], "scalar") {
		t.Errorf("distance line = %q", lines[1])
	}
	if !strings.Contains(lines[1], "4") || !strings.Contains(lines[1], "none") {
		t.Errorf("distance line missing record count or compression: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "gyro") || !strings.Contains(lines[2], "vector3") {
		t.Errorf("gyro line = %q", lines[2])
	}
}

func TestRunInfoSingleContainer(t *testing.T) {
	dir := t.TempDir()
	path := writeInspectContainer(t, dir, "distance", sample.KindScalar, scalarRecords(4))

	var buf bytes.Buffer
	if err := runInfo(path, &buf); err != nil {
		t.Fatalf("runInfo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"sensor:      distance",
		"kind:        scalar",
		"records:     4",
		"flushes:     2",
		"compression: none",
		"digest:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunInfoRejectsEmptyDirectory(t *testing.T) {
	var buf bytes.Buffer
	err := runInfo(t.TempDir(), &buf)
	if err == nil || !strings.Contains(err.Error(), "no log containers") {
		t.Fatalf("err = %v, want no log containers", err)
	}
}

func TestRunRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeInspectContainer(t, dir, "gyro", sample.KindVector3, vectorRecords(3))

	var buf bytes.Buffer
	if err := runRecords(path, 2, &buf); err != nil {
		t.Fatalf("runRecords: %v", err)
	}
	want := "first 2 of 3 gyro records:\n" +
		"sim_time | value_0 | value_1 | value_2\n" +
		"0.500 s | 0.000 | 0.250 | -1.000\n" +
		"1.000 s | 1.000 | 0.250 | -1.000\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRunRecordsScalarHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeInspectContainer(t, dir, "distance", sample.KindScalar, scalarRecords(1))

	var buf bytes.Buffer
	if err := runRecords(path, 5, &buf); err != nil {
		t.Fatalf("runRecords: %v", err)
	}
	want := "first 1 of 1 distance records:\n" +
		"sim_time | value\n" +
		"0.500 s | 0.250\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRunRecordsRejectsBadCount(t *testing.T) {
	dir := t.TempDir()
	path := writeInspectContainer(t, dir, "distance", sample.KindScalar, scalarRecords(1))

	var buf bytes.Buffer
	err := runRecords(path, 0, &buf)
	if err == nil || !strings.Contains(err.Error(), "count must be positive") {
		t.Fatalf("err = %v, want count must be positive", err)
	}
}

func TestRunRaw(t *testing.T) {
	dir := t.TempDir()
	path := writeInspectContainer(t, dir, "distance", sample.KindScalar, scalarRecords(1))

	var buf bytes.Buffer
	if err := runRaw(path, &buf); err != nil {
		t.Fatalf("runRaw: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"prelude: compression none",
		"digest: ",
		`"sensor"`,
		`"distance"`,
		"body: [",
		`"t"`,
		`"scalar"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunVerify(t *testing.T) {
	dir := t.TempDir()
	writeInspectContainer(t, dir, "distance", sample.KindScalar, scalarRecords(4))
	writeInspectContainer(t, dir, "gyro", sample.KindVector3, vectorRecords(2))

	var buf bytes.Buffer
	if err := runVerify(dir, &buf); err != nil {
		t.Fatalf("runVerify: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"distance.rlog: ok (4 records)",
		"gyro.rlog: ok (2 records)",
		"all 2 containers verified",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunVerifyReportsCorruptContainer(t *testing.T) {
	dir := t.TempDir()
	writeInspectContainer(t, dir, "gyro", sample.KindVector3, vectorRecords(2))
	corrupt := samplelog.FilePath(dir, "distance")
	if err := os.WriteFile(corrupt, []byte("not a container"), 0o644); err != nil {
		t.Fatalf("writing corrupt container: %v", err)
	}

	var buf bytes.Buffer
	err := runVerify(dir, &buf)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 containers failed") {
		t.Fatalf("err = %v, want verification failure", err)
	}
	out := buf.String()
	if !strings.Contains(out, "distance.rlog: ") || strings.Contains(out, "distance.rlog: ok") {
		t.Errorf("corrupt container not reported:\n%s", out)
	}
	if !strings.Contains(out, "gyro.rlog: ok (2 records)") {
		t.Errorf("intact container not reported:\n%s", out)
	}
	if strings.Contains(out, "all ") {
		t.Errorf("summary line printed despite failure:\n%s", out)
	}
}
