// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes content digests for build artifacts.
//
// Digests are 32-byte BLAKE3 hashes. They are used for change detection
// and integrity manifests: the same bytes always produce the same digest,
// and any content change produces a different one. Nothing in Quarry
// treats a digest as a security boundary — inputs come from the build
// tree, not from untrusted parties.
package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest of file content.
type Digest [32]byte

// HashFile computes the digest of the file at path. The file is streamed
// through the hash function in chunks (via io.Copy) to keep memory usage
// constant regardless of file size.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// HashBytes computes the digest of an in-memory byte slice.
func HashBytes(data []byte) Digest {
	return Digest(blake3.Sum256(data))
}

// String returns the hex-encoded representation of the digest. This is
// the canonical format used in package manifests, library descriptors,
// and log output.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Parse parses a hex-encoded digest string into a Digest. Returns an
// error if the string is not a valid 64-character hex encoding of
// 32 bytes.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
