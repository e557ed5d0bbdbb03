// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package assess

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Davidwarchy/robolog/lib/assess"
	"github.com/Davidwarchy/robolog/lib/sample"
	"github.com/Davidwarchy/robolog/lib/samplelog"
)

func writeAssessContainer(t *testing.T, dir, sensor string, records []sample.Envelope) {
	t.Helper()
	header := samplelog.Header{
		Sensor:   sensor,
		Kind:     sample.KindScalar,
		Run:      filepath.Base(dir),
		Sequence: 1,
	}
	if err := samplelog.WriteFile(samplelog.FilePath(dir, sensor), header, records, samplelog.CompressionNone); err != nil {
		t.Fatalf("writing %s container: %v", sensor, err)
	}
}

// gappyRecords runs at a 32 ms period, drops three rows after 0.160 s,
// and reports NaN at the third row.
func gappyRecords() []sample.Envelope {
	var records []sample.Envelope
	for _, i := range []int{1, 2, 3, 4, 5, 9, 10} {
		v := 1.0
		if i == 3 {
			v = math.NaN()
		}
		records = append(records, sample.Envelope{
			Time:    float64(i) * 0.032,
			Payload: sample.Scalar(v),
		})
	}
	return records
}

func steadyRecords(n int) []sample.Envelope {
	records := make([]sample.Envelope, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, sample.Envelope{
			Time:    float64(i+1) * 0.032,
			Payload: sample.Scalar(1.0),
		})
	}
	return records
}

func TestRunAssessReportsIssues(t *testing.T) {
	dir := t.TempDir()
	writeAssessContainer(t, dir, "distance", gappyRecords())

	var buf bytes.Buffer
	if err := runAssess(dir, assess.Filter{}, assess.Options{}, "", &buf); err != nil {
		t.Fatalf("runAssess: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"stream distance: 7 rows, width 1, step 0.032 s",
		"missing cells: 1",
		"value: 1",
		"gaps: 1, 3 rows never written",
		"row 5: 0.160 s -> 0.288 s (4 steps)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "no issues") {
		t.Errorf("gappy stream reported as clean:\n%s", out)
	}
}

func TestRunAssessCleanStream(t *testing.T) {
	dir := t.TempDir()
	writeAssessContainer(t, dir, "distance", steadyRecords(5))

	var buf bytes.Buffer
	if err := runAssess(dir, assess.Filter{}, assess.Options{}, "", &buf); err != nil {
		t.Fatalf("runAssess: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "stream distance: 5 rows") || !strings.Contains(out, "no issues") {
		t.Errorf("steady stream not reported clean:\n%s", out)
	}
}

func TestRunAssessSensorFilter(t *testing.T) {
	dir := t.TempDir()
	writeAssessContainer(t, dir, "distance", steadyRecords(5))
	writeAssessContainer(t, dir, "gyro", steadyRecords(5))

	var buf bytes.Buffer
	if err := runAssess(dir, assess.Filter{Sensor: "gyro"}, assess.Options{}, "", &buf); err != nil {
		t.Fatalf("runAssess: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "stream gyro") || strings.Contains(out, "stream distance") {
		t.Errorf("sensor filter not applied:\n%s", out)
	}
}

func TestRunAssessTimeWindow(t *testing.T) {
	dir := t.TempDir()
	writeAssessContainer(t, dir, "distance", steadyRecords(5))

	var buf bytes.Buffer
	filter := assess.Filter{Start: 0.05, End: 0.1}
	if err := runAssess(dir, filter, assess.Options{}, "", &buf); err != nil {
		t.Fatalf("runAssess: %v", err)
	}
	if !strings.Contains(buf.String(), "stream distance: 2 rows") {
		t.Errorf("time window kept the wrong rows:\n%s", buf.String())
	}
}

func TestRunAssessNoMatchingStreams(t *testing.T) {
	dir := t.TempDir()
	writeAssessContainer(t, dir, "distance", steadyRecords(5))

	var buf bytes.Buffer
	err := runAssess(dir, assess.Filter{Sensor: "nope"}, assess.Options{}, "", &buf)
	if err == nil || !strings.Contains(err.Error(), "no streams") {
		t.Fatalf("err = %v, want no streams", err)
	}
}

func TestRunAssessWritesCleanedCopies(t *testing.T) {
	dir := t.TempDir()
	writeAssessContainer(t, dir, "distance", gappyRecords())
	cleanDir := filepath.Join(t.TempDir(), "cleaned")

	var buf bytes.Buffer
	if err := runAssess(dir, assess.Filter{}, assess.Options{}, cleanDir, &buf); err != nil {
		t.Fatalf("runAssess: %v", err)
	}
	if !strings.Contains(buf.String(), "cleaned distance: 1 forward-filled, 0 zero-filled") {
		t.Errorf("fill counts not reported:\n%s", buf.String())
	}
	data, err := os.ReadFile(filepath.Join(cleanDir, "distance.csv"))
	if err != nil {
		t.Fatalf("reading cleaned CSV: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "sim_time,value") {
		t.Errorf("cleaned CSV header = %q", strings.SplitN(content, "\n", 2)[0])
	}
	if strings.Contains(content, "NaN") {
		t.Errorf("cleaned CSV still holds NaN cells:\n%s", content)
	}
}
