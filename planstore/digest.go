// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package planstore

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 plan fingerprint.
type Digest [32]byte

// planDomainKey is the 32-byte key for BLAKE3 keyed hashing of plan
// manifests. Domain separation keeps plan fingerprints from colliding
// with any other hash domain in the system (chunk addresses use their
// own keys). The bytes are the ASCII domain name zero-padded to 32,
// readable in hex dumps without weakening the keyed mode.
var planDomainKey = [32]byte{
	'c', 'h', 'u', 'n', 'k', 'm', 'e', 's', 'h', '.',
	'p', 'l', 'a', 'n', '.', 'm', 'a', 'n', 'i', 'f', 'e', 's', 't',
	0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// DigestManifest computes the plan fingerprint over the deterministic
// CBOR encoding of a manifest. Callers hash the encoded bytes, not
// the Manifest value, so the fingerprint is stable across process
// boundaries.
func DigestManifest(encoded []byte) Digest {
	hasher, err := blake3.NewKeyed(planDomainKey[:])
	if err != nil {
		panic("planstore: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the lowercase hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
