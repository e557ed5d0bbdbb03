// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package samplelog

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Davidwarchy/robolog/lib/codec"
	"github.com/Davidwarchy/robolog/lib/sample"
)

func testHeader() Header {
	return Header{
		Sensor:   "lidar",
		Kind:     sample.KindPoints,
		Run:      "2026-01-02-150405",
		Sequence: 1,
	}
}

func testRecords() []sample.Envelope {
	return []sample.Envelope{
		{Time: 0.032, Payload: sample.PointCloud([][3]float64{{1, 2, 3}, {4, 5, 6}})},
		{Time: 0.064, Payload: sample.PointCloud([][3]float64{{7, 8, 9}})},
		{Time: 0.096, Payload: sample.PointCloud(nil)},
	}
}

func corruptFile(t *testing.T, path string, offset int, b byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading container for corruption: %v", err)
	}
	data[offset] = b
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing corrupted container: %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := FilePath(t.TempDir(), "lidar")
	want := testRecords()
	if err := WriteFile(path, testHeader(), want, CompressionZstd); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	info, got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("records changed across round trip:\n got %+v\nwant %+v", got, want)
	}
	if info.Header.Sensor != "lidar" || info.Header.Kind != sample.KindPoints {
		t.Fatalf("header changed across round trip: %+v", info.Header)
	}
	if info.Header.Records != 3 {
		t.Fatalf("header reports %d records, want 3", info.Header.Records)
	}
}

func TestRoundTripAllKinds(t *testing.T) {
	tests := []struct {
		sensor string
		kind   sample.Kind
		record sample.Envelope
	}{
		{"distance", sample.KindScalar, sample.Envelope{Time: 0.032, Payload: sample.Scalar(2.5)}},
		{"gyro", sample.KindVector3, sample.Envelope{Time: 0.032, Payload: sample.Vector([3]float64{0.1, -0.2, 0.3})}},
		{"lidar", sample.KindPoints, sample.Envelope{Time: 0.032, Payload: sample.PointCloud([][3]float64{{1, 2, 3}})}},
		{"lidar_flat", sample.KindBuffer, sample.Envelope{Time: 0.032, Payload: sample.Buffer([]float64{1, 2, 3, 4})}},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		header := testHeader()
		header.Sensor = tt.sensor
		header.Kind = tt.kind
		path := FilePath(dir, tt.sensor)
		if err := WriteFile(path, header, []sample.Envelope{tt.record}, CompressionNone); err != nil {
			t.Fatalf("%s: WriteFile failed: %v", tt.sensor, err)
		}
		_, got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("%s: ReadFile failed: %v", tt.sensor, err)
		}
		if len(got) != 1 || !reflect.DeepEqual(got[0], tt.record) {
			t.Fatalf("%s: record changed across round trip:\n got %+v\nwant %+v", tt.sensor, got, tt.record)
		}
	}
}

func TestWriteReplacesPrevious(t *testing.T) {
	path := FilePath(t.TempDir(), "lidar")
	first := testRecords()[:1]
	if err := WriteFile(path, testHeader(), first, CompressionZstd); err != nil {
		t.Fatalf("first WriteFile failed: %v", err)
	}
	header := testHeader()
	header.Sequence = 2
	all := testRecords()
	if err := WriteFile(path, header, all, CompressionZstd); err != nil {
		t.Fatalf("second WriteFile failed: %v", err)
	}
	info, got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !reflect.DeepEqual(got, all) {
		t.Fatalf("second write did not replace the first:\n got %+v\nwant %+v", got, all)
	}
	if info.Header.Sequence != 2 {
		t.Fatalf("sequence is %d, want 2", info.Header.Sequence)
	}
}

func TestEmptyRecords(t *testing.T) {
	path := FilePath(t.TempDir(), "lidar")
	if err := WriteFile(path, testHeader(), nil, CompressionZstd); err != nil {
		t.Fatalf("WriteFile with no records failed: %v", err)
	}
	info, got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("read %d records from an empty container", len(got))
	}
	if info.Header.Records != 0 {
		t.Fatalf("header reports %d records, want 0", info.Header.Records)
	}
}

func TestWriteFileRequiresSensor(t *testing.T) {
	path := FilePath(t.TempDir(), "anon")
	err := WriteFile(path, Header{Run: "2026-01-02-150405"}, nil, CompressionNone)
	if err == nil {
		t.Fatal("WriteFile accepted a header without a sensor name")
	}
}

func TestIncompressibleBodyFallsBack(t *testing.T) {
	path := FilePath(t.TempDir(), "distance")
	header := testHeader()
	header.Sensor = "distance"
	header.Kind = sample.KindScalar
	one := []sample.Envelope{{Time: 0.032, Payload: sample.Scalar(2.5)}}
	if err := WriteFile(path, header, one, CompressionLZ4); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	info, _, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if info.Compression != CompressionNone {
		t.Fatalf("tiny body stored with %s, want fallback to none", info.Compression)
	}
	if info.StoredSize != info.RawSize {
		t.Fatalf("uncompressed body has stored size %d but raw size %d", info.StoredSize, info.RawSize)
	}
}

func TestCompressibleBodyShrinks(t *testing.T) {
	records := make([]sample.Envelope, 500)
	for i := range records {
		records[i] = sample.Envelope{Time: float64(i) * 0.032, Payload: sample.Scalar(1.0)}
	}
	path := FilePath(t.TempDir(), "distance")
	header := testHeader()
	header.Sensor = "distance"
	header.Kind = sample.KindScalar
	if err := WriteFile(path, header, records, CompressionZstd); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	info, got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if info.Compression != CompressionZstd {
		t.Fatalf("body stored with %s, want zstd", info.Compression)
	}
	if info.StoredSize >= info.RawSize {
		t.Fatalf("compressed size %d is not smaller than raw size %d", info.StoredSize, info.RawSize)
	}
	if len(got) != len(records) {
		t.Fatalf("read %d records, want %d", len(got), len(records))
	}
}

func TestDetectsBodyCorruption(t *testing.T) {
	path := FilePath(t.TempDir(), "lidar")
	if err := WriteFile(path, testHeader(), testRecords(), CompressionZstd); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading container: %v", err)
	}
	corruptFile(t, path, len(data)-1, data[len(data)-1]^0xff)
	_, _, err = ReadFile(path)
	if err == nil || !strings.Contains(err.Error(), "digest mismatch") {
		t.Fatalf("corrupted body read returned %v, want digest mismatch", err)
	}
}

func TestReadInfoSkipsBodyValidation(t *testing.T) {
	path := FilePath(t.TempDir(), "lidar")
	if err := WriteFile(path, testHeader(), testRecords(), CompressionZstd); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading container: %v", err)
	}
	corruptFile(t, path, len(data)-1, data[len(data)-1]^0xff)
	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo failed on a container with a corrupt body: %v", err)
	}
	if info.Header.Sensor != "lidar" {
		t.Fatalf("header sensor is %q, want lidar", info.Header.Sensor)
	}
}

func TestReadSections(t *testing.T) {
	path := FilePath(t.TempDir(), "lidar")
	want := testRecords()
	if err := WriteFile(path, testHeader(), want, CompressionZstd); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	info, headerBytes, body, err := ReadSections(path)
	if err != nil {
		t.Fatalf("ReadSections failed: %v", err)
	}
	var header Header
	if err := codec.Unmarshal(headerBytes, &header); err != nil {
		t.Fatalf("decoding header section: %v", err)
	}
	if !reflect.DeepEqual(header, info.Header) {
		t.Fatalf("header section decodes to %+v, info says %+v", header, info.Header)
	}
	var records []sample.Envelope
	if err := codec.Unmarshal(body, &records); err != nil {
		t.Fatalf("decoding body section: %v", err)
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("body section decodes to %+v, want %+v", records, want)
	}
	if int(info.RawSize) != len(body) {
		t.Fatalf("info says %d raw bytes, body section has %d", info.RawSize, len(body))
	}
}

func TestReadSectionsDetectsCorruption(t *testing.T) {
	path := FilePath(t.TempDir(), "lidar")
	if err := WriteFile(path, testHeader(), testRecords(), CompressionZstd); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading container: %v", err)
	}
	corruptFile(t, path, len(data)-1, data[len(data)-1]^0xff)
	if _, _, _, err := ReadSections(path); err == nil || !strings.Contains(err.Error(), "digest mismatch") {
		t.Fatalf("corrupted read returned %v, want digest mismatch", err)
	}
}

func TestRejectsBadPrelude(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		value   byte
		wantErr string
	}{
		{"bad magic", 0, 'X', "not a sensor log container"},
		{"unsupported version", 7, 9, "unsupported container version"},
		{"unknown compression tag", 8, 7, "unknown compression tag"},
		{"nonzero reserved", 9, 1, "reserved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := FilePath(t.TempDir(), "lidar")
			if err := WriteFile(path, testHeader(), testRecords(), CompressionZstd); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			corruptFile(t, path, tt.offset, tt.value)
			_, _, err := ReadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ReadFile returned %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRejectsRecordCountMismatch(t *testing.T) {
	header := testHeader()
	header.Records = 5
	headerBytes, err := codec.Marshal(header)
	if err != nil {
		t.Fatalf("encoding header: %v", err)
	}
	body, err := codec.Marshal(testRecords())
	if err != nil {
		t.Fatalf("encoding records: %v", err)
	}
	digest := digestBody(body)

	var buf bytes.Buffer
	var p [preludeSize]byte
	copy(p[0:7], magicPrefix[:])
	p[7] = containerVersion
	p[8] = byte(CompressionNone)
	binary.LittleEndian.PutUint32(p[12:16], uint32(len(headerBytes)))
	binary.LittleEndian.PutUint32(p[16:20], uint32(len(body)))
	binary.LittleEndian.PutUint32(p[20:24], uint32(len(body)))
	copy(p[24:56], digest[:])
	buf.Write(p[:])
	buf.Write(headerBytes)
	buf.Write(body)

	path := FilePath(t.TempDir(), "lidar")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing container: %v", err)
	}
	_, _, err = ReadFile(path)
	if err == nil || !strings.Contains(err.Error(), "header says 5") {
		t.Fatalf("ReadFile returned %v, want record count mismatch", err)
	}
}

func TestRejectsTruncatedFile(t *testing.T) {
	path := FilePath(t.TempDir(), "lidar")
	if err := WriteFile(path, testHeader(), testRecords(), CompressionZstd); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading container: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-4], 0o644); err != nil {
		t.Fatalf("truncating container: %v", err)
	}
	if _, _, err := ReadFile(path); err == nil {
		t.Fatal("ReadFile accepted a truncated container")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := WriteFile(FilePath(dir, "lidar"), testHeader(), testRecords(), CompressionZstd); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("listing run directory: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "lidar"+Ext {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Fatalf("run directory holds %v, want only lidar%s", names, Ext)
	}
}

func TestCompressionTagStrings(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompressionTag(tag.String())
		if err != nil {
			t.Fatalf("ParseCompressionTag(%q) failed: %v", tag.String(), err)
		}
		if parsed != tag {
			t.Fatalf("ParseCompressionTag(%q) = %v, want %v", tag.String(), parsed, tag)
		}
	}
	if _, err := ParseCompressionTag("gzip"); err == nil {
		t.Fatal("ParseCompressionTag accepted an unknown tag name")
	}
}

func TestDigestFormatting(t *testing.T) {
	d := digestBody([]byte("sensor body"))
	parsed, err := ParseDigest(FormatDigest(d))
	if err != nil {
		t.Fatalf("ParseDigest failed: %v", err)
	}
	if parsed != d {
		t.Fatal("digest changed across format and parse")
	}
	if _, err := ParseDigest("abc"); err == nil {
		t.Fatal("ParseDigest accepted a short string")
	}
}

func TestFilePath(t *testing.T) {
	got := FilePath(filepath.Join("runs", "2026-01-02-150405"), "lidar")
	want := filepath.Join("runs", "2026-01-02-150405", "lidar.rlog")
	if got != want {
		t.Fatalf("FilePath = %q, want %q", got, want)
	}
}
