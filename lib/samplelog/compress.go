// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package samplelog

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the codec applied to a container body.
type CompressionTag uint8

const (
	// CompressionNone stores the body verbatim.
	CompressionNone CompressionTag = 0
	// CompressionLZ4 stores an LZ4 block.
	CompressionLZ4 CompressionTag = 1
	// CompressionZstd stores a zstandard frame.
	CompressionZstd CompressionTag = 2
)

func (t CompressionTag) String() string {
	switch t {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(t))
	}
}

// ParseCompressionTag converts a tag name to its CompressionTag value.
func ParseCompressionTag(s string) (CompressionTag, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression tag %q", s)
	}
}

// errIncompressible reports that compression would not shrink the body.
var errIncompressible = errors.New("body is incompressible")

// Shared zstd state. The encoder and decoder are concurrency-safe via
// EncodeAll/DecodeAll and are reused for every container.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(fmt.Sprintf("samplelog: creating zstd encoder: %v", err))
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("samplelog: creating zstd decoder: %v", err))
	}
}

// compressBody compresses raw with the requested codec. It returns
// errIncompressible when the result would be no smaller than the input,
// in which case the caller stores the body uncompressed.
func compressBody(raw []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return raw, nil
	case CompressionLZ4:
		return compressLZ4(raw)
	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(raw, make([]byte, 0, len(raw)))
		if len(compressed) >= len(raw) {
			return nil, errIncompressible
		}
		return compressed, nil
	default:
		return nil, fmt.Errorf("unknown compression tag %d", tag)
	}
}

func compressLZ4(raw []byte) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(raw)))
	var c lz4.Compressor
	n, err := c.CompressBlock(raw, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression: %w", err)
	}
	if n == 0 || n >= len(raw) {
		return nil, errIncompressible
	}
	return buf[:n], nil
}

// decompressBody undoes compressBody. rawLen is the expected size of
// the uncompressed body; a mismatch is a corruption error.
func decompressBody(stored []byte, tag CompressionTag, rawLen int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(stored) != rawLen {
			return nil, fmt.Errorf("body is %d bytes, header says %d", len(stored), rawLen)
		}
		return stored, nil
	case CompressionLZ4:
		buf := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(stored, buf)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression: %w", err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("body decompressed to %d bytes, header says %d", n, rawLen)
		}
		return buf, nil
	case CompressionZstd:
		buf, err := zstdDecoder.DecodeAll(stored, make([]byte, 0, rawLen))
		if err != nil {
			return nil, fmt.Errorf("zstd decompression: %w", err)
		}
		if len(buf) != rawLen {
			return nil, fmt.Errorf("body decompressed to %d bytes, header says %d", len(buf), rawLen)
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("unknown compression tag %d", tag)
	}
}
