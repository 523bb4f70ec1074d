// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package planstore

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/chunkmesh-foundation/chunkmesh/lib/codec"
)

// File format constants. The header is:
//
//	bytes 0-5   magic "CMPLAN"
//	byte  6     format version (1)
//	byte  7     compression tag
//	bytes 8-11  uncompressed payload size, big endian
//	bytes 12-   payload
const (
	fileMagic     = "CMPLAN"
	formatVersion = 1
	headerSize    = 12
)

// Store reads and writes plan manifest files under a directory.
type Store struct {
	// Dir is the directory manifests are stored in. Created on first
	// save if missing.
	Dir string
}

// Save encodes, fingerprints, compresses, and writes the manifest.
// The file is named <fingerprint-hex>.plan, making the store
// content-addressed: saving an identical plan twice writes the same
// file. Returns the fingerprint and the file path.
func (s *Store) Save(manifest Manifest, tag CompressionTag) (Digest, string, error) {
	encoded, err := codec.Marshal(manifest)
	if err != nil {
		return Digest{}, "", fmt.Errorf("encoding plan manifest: %w", err)
	}
	if len(encoded) > math.MaxUint32 {
		return Digest{}, "", fmt.Errorf("plan manifest is %d bytes, exceeds format limit", len(encoded))
	}

	digest := DigestManifest(encoded)

	payload, storedTag, err := compress(encoded, tag)
	if err != nil {
		return Digest{}, "", fmt.Errorf("compressing plan manifest: %w", err)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Digest{}, "", fmt.Errorf("creating plan store: %w", err)
	}

	framed := make([]byte, headerSize+len(payload))
	copy(framed, fileMagic)
	framed[6] = formatVersion
	framed[7] = byte(storedTag)
	binary.BigEndian.PutUint32(framed[8:12], uint32(len(encoded)))
	copy(framed[headerSize:], payload)

	path := filepath.Join(s.Dir, digest.String()+".plan")
	temp, err := os.CreateTemp(s.Dir, ".plan.*")
	if err != nil {
		return Digest{}, "", fmt.Errorf("writing plan manifest: %w", err)
	}
	tempPath := temp.Name()
	if _, err := temp.Write(framed); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return Digest{}, "", fmt.Errorf("writing plan manifest: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return Digest{}, "", fmt.Errorf("writing plan manifest: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return Digest{}, "", fmt.Errorf("writing plan manifest: %w", err)
	}

	return digest, path, nil
}

// Load reads a manifest file, verifying the frame and recomputing the
// fingerprint from the decoded payload.
func (s *Store) Load(path string) (Manifest, Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, Digest{}, fmt.Errorf("reading plan manifest: %w", err)
	}
	if len(data) < headerSize || string(data[:6]) != fileMagic {
		return Manifest{}, Digest{}, fmt.Errorf("%s is not a plan manifest", path)
	}
	if data[6] != formatVersion {
		return Manifest{}, Digest{}, fmt.Errorf("%s: unsupported plan format version %d", path, data[6])
	}

	tag := CompressionTag(data[7])
	uncompressedSize := int(binary.BigEndian.Uint32(data[8:12]))
	encoded, err := decompress(data[headerSize:], tag, uncompressedSize)
	if err != nil {
		return Manifest{}, Digest{}, fmt.Errorf("%s: %w", path, err)
	}

	var manifest Manifest
	if err := codec.Unmarshal(encoded, &manifest); err != nil {
		return Manifest{}, Digest{}, fmt.Errorf("%s: decoding plan manifest: %w", path, err)
	}

	return manifest, DigestManifest(encoded), nil
}
