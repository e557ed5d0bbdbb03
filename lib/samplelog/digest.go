// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package samplelog

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a BLAKE3 keyed digest of a container body as stored.
type Digest [32]byte

// bodyDomain keys body digests so they can never collide with digests
// computed for any other purpose.
const bodyDomain = "robolog.samplelog.body"

// domainKey pads an ASCII domain string to the 32-byte BLAKE3 key size.
func domainKey(domain string) []byte {
	if len(domain) > 32 {
		panic(fmt.Sprintf("samplelog: domain %q exceeds 32 bytes", domain))
	}
	key := make([]byte, 32)
	copy(key, domain)
	return key
}

// digestBody hashes the stored body bytes under the body domain key.
func digestBody(stored []byte) Digest {
	hasher, err := blake3.NewKeyed(domainKey(bodyDomain))
	if err != nil {
		panic(fmt.Sprintf("samplelog: creating keyed hasher: %v", err))
	}
	hasher.Write(stored)
	var d Digest
	hasher.Digest().Read(d[:])
	return d
}

// FormatDigest renders a digest as lowercase hex.
func FormatDigest(d Digest) string {
	return hex.EncodeToString(d[:])
}

// ParseDigest converts a 64-character hex string back into a Digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if hex.DecodedLen(len(s)) != len(d) {
		return Digest{}, fmt.Errorf("digest must be %d hex characters, got %d", hex.EncodedLen(len(d)), len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return Digest{}, fmt.Errorf("invalid digest: %w", err)
	}
	return d, nil
}
