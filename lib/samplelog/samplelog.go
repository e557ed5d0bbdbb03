// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package samplelog

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/Davidwarchy/robolog/lib/codec"
	"github.com/Davidwarchy/robolog/lib/sample"
)

// Ext is the file extension for sensor log containers.
const Ext = ".rlog"

// RunTimeFormat renders a session start time as its run directory
// name, for example "2026-01-02-150405".
const RunTimeFormat = "2006-01-02-150405"

// containerVersion is the format version carried in the magic's last byte.
const containerVersion = 1

// preludeSize is the fixed byte count before the CBOR header.
const preludeSize = 56

// magicPrefix occupies the first seven magic bytes; the eighth is the version.
var magicPrefix = [7]byte{'R', 'O', 'B', 'O', 'L', 'O', 'G'}

// Header describes the records stored in a container.
type Header struct {
	// Sensor is the stream name, which is also the file's base name.
	Sensor string `cbor:"sensor"`
	// Kind is the payload kind shared by every record in the file.
	Kind sample.Kind `cbor:"kind"`
	// Variant refines Kind for sensors with multiple readouts, such as
	// a touch sensor reporting "bumper", "force", or "force3d".
	Variant string `cbor:"variant,omitempty"`
	// Run is the timestamp directory name of the owning run.
	Run string `cbor:"run"`
	// Sequence counts flushes of this stream, starting at 1. Each
	// rewrite of the file increments it.
	Sequence uint64 `cbor:"sequence"`
	// Records is the number of envelopes in the body.
	Records uint32 `cbor:"records"`
}

// Info is everything knowable about a container without decoding its body.
type Info struct {
	Header      Header
	Compression CompressionTag
	// StoredSize is the body size on disk; RawSize is its size after
	// decompression. They are equal when Compression is none.
	StoredSize uint32
	RawSize    uint32
	Digest     Digest
}

// FilePath returns the container path for a sensor inside a run directory.
func FilePath(runDir, sensor string) string {
	return filepath.Join(runDir, sensor+Ext)
}

// WriteFile writes a complete container to path, replacing any previous
// file. The write goes to a temp sibling first and is renamed into
// place, so readers never observe a partial container. Records may be
// empty. The header's Records field is set from len(records).
func WriteFile(path string, header Header, records []sample.Envelope, tag CompressionTag) error {
	if header.Sensor == "" {
		return errors.New("header has no sensor name")
	}
	if len(records) > math.MaxUint32 {
		return fmt.Errorf("%d records exceed the container limit", len(records))
	}
	if records == nil {
		records = []sample.Envelope{}
	}
	header.Records = uint32(len(records))

	raw, err := codec.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	stored, err := compressBody(raw, tag)
	if errors.Is(err, errIncompressible) {
		stored = raw
		tag = CompressionNone
	} else if err != nil {
		return fmt.Errorf("compressing body: %w", err)
	}
	headerBytes, err := codec.Marshal(header)
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	if len(headerBytes) > math.MaxUint32 || len(stored) > math.MaxUint32 || len(raw) > math.MaxUint32 {
		return errors.New("container section exceeds 4 GiB limit")
	}

	digest := digestBody(stored)
	var prelude [preludeSize]byte
	copy(prelude[0:7], magicPrefix[:])
	prelude[7] = containerVersion
	prelude[8] = byte(tag)
	binary.LittleEndian.PutUint32(prelude[12:16], uint32(len(headerBytes)))
	binary.LittleEndian.PutUint32(prelude[16:20], uint32(len(stored)))
	binary.LittleEndian.PutUint32(prelude[20:24], uint32(len(raw)))
	copy(prelude[24:56], digest[:])

	dir, base := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	var buf bytes.Buffer
	buf.Grow(preludeSize + len(headerBytes) + len(stored))
	buf.Write(prelude[:])
	buf.Write(headerBytes)
	buf.Write(stored)
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing container: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing container: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing container: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	tmp = nil
	return nil
}

// prelude is the decoded fixed-size section of a container.
type prelude struct {
	tag       CompressionTag
	headerLen uint32
	storedLen uint32
	rawLen    uint32
	digest    Digest
}

func readPrelude(r io.Reader) (prelude, error) {
	var buf [preludeSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return prelude{}, fmt.Errorf("reading prelude: %w", err)
	}
	if !bytes.Equal(buf[0:7], magicPrefix[:]) {
		return prelude{}, errors.New("not a sensor log container")
	}
	if buf[7] != containerVersion {
		return prelude{}, fmt.Errorf("unsupported container version %d", buf[7])
	}
	p := prelude{
		tag:       CompressionTag(buf[8]),
		headerLen: binary.LittleEndian.Uint32(buf[12:16]),
		storedLen: binary.LittleEndian.Uint32(buf[16:20]),
		rawLen:    binary.LittleEndian.Uint32(buf[20:24]),
	}
	if p.tag > CompressionZstd {
		return prelude{}, fmt.Errorf("unknown compression tag %d", uint8(p.tag))
	}
	if buf[9] != 0 || buf[10] != 0 || buf[11] != 0 {
		return prelude{}, errors.New("reserved prelude bytes are not zero")
	}
	copy(p.digest[:], buf[24:56])
	return p, nil
}

func readHeader(r io.Reader, p prelude) (Header, error) {
	headerBytes := make([]byte, p.headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return Header{}, fmt.Errorf("reading header: %w", err)
	}
	var header Header
	if err := codec.Unmarshal(headerBytes, &header); err != nil {
		return Header{}, fmt.Errorf("decoding header: %w", err)
	}
	return header, nil
}

// ReadInfo reads a container's prelude and header without touching the
// body. The body digest is reported but not verified.
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	p, err := readPrelude(f)
	if err != nil {
		return Info{}, err
	}
	header, err := readHeader(f, p)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Header:      header,
		Compression: p.tag,
		StoredSize:  p.storedLen,
		RawSize:     p.rawLen,
		Digest:      p.digest,
	}, nil
}

// ReadFile reads and fully validates a container, returning its info
// and decoded records. Validation covers the magic, version,
// compression tag, reserved bytes, body digest, decompressed size, and
// the header's record count.
func ReadFile(path string) (Info, []sample.Envelope, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, nil, err
	}
	defer f.Close()
	p, err := readPrelude(f)
	if err != nil {
		return Info{}, nil, err
	}
	header, err := readHeader(f, p)
	if err != nil {
		return Info{}, nil, err
	}
	stored := make([]byte, p.storedLen)
	if _, err := io.ReadFull(f, stored); err != nil {
		return Info{}, nil, fmt.Errorf("reading body: %w", err)
	}
	if got := digestBody(stored); got != p.digest {
		return Info{}, nil, fmt.Errorf("body digest mismatch: file says %s, computed %s",
			FormatDigest(p.digest), FormatDigest(got))
	}
	raw, err := decompressBody(stored, p.tag, int(p.rawLen))
	if err != nil {
		return Info{}, nil, err
	}
	var records []sample.Envelope
	if err := codec.Unmarshal(raw, &records); err != nil {
		return Info{}, nil, fmt.Errorf("decoding records: %w", err)
	}
	if uint32(len(records)) != header.Records {
		return Info{}, nil, fmt.Errorf("container holds %d records, header says %d",
			len(records), header.Records)
	}
	info := Info{
		Header:      header,
		Compression: p.tag,
		StoredSize:  p.storedLen,
		RawSize:     p.rawLen,
		Digest:      p.digest,
	}
	return info, records, nil
}

// ReadSections returns a container's raw CBOR sections: the encoded
// header and the decompressed body. The body digest is verified but
// the sections are not decoded, so diagnostic tooling can dump
// containers whose records no longer match the current schema.
func ReadSections(path string) (Info, []byte, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, nil, nil, err
	}
	defer f.Close()
	p, err := readPrelude(f)
	if err != nil {
		return Info{}, nil, nil, err
	}
	headerBytes := make([]byte, p.headerLen)
	if _, err := io.ReadFull(f, headerBytes); err != nil {
		return Info{}, nil, nil, fmt.Errorf("reading header: %w", err)
	}
	var header Header
	if err := codec.Unmarshal(headerBytes, &header); err != nil {
		return Info{}, nil, nil, fmt.Errorf("decoding header: %w", err)
	}
	stored := make([]byte, p.storedLen)
	if _, err := io.ReadFull(f, stored); err != nil {
		return Info{}, nil, nil, fmt.Errorf("reading body: %w", err)
	}
	if got := digestBody(stored); got != p.digest {
		return Info{}, nil, nil, fmt.Errorf("body digest mismatch: file says %s, computed %s",
			FormatDigest(p.digest), FormatDigest(got))
	}
	raw, err := decompressBody(stored, p.tag, int(p.rawLen))
	if err != nil {
		return Info{}, nil, nil, err
	}
	info := Info{
		Header:      header,
		Compression: p.tag,
		StoredSize:  p.storedLen,
		RawSize:     p.rawLen,
		Digest:      p.digest,
	}
	return info, headerBytes, raw, nil
}
