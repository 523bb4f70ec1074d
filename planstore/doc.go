// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package planstore persists expanded fleet plans as content-addressed
// manifest files.
//
// A [Manifest] records what one fleet request expanded to: the request
// summary and every produced service descriptor, in instance order.
// Manifests are encoded with deterministic CBOR (lib/codec), so the
// keyed BLAKE3 fingerprint of the encoded bytes ([DigestManifest])
// names the plan: two requests that expand identically share a
// fingerprint, and any drift in descriptors changes it. Operators use
// the fingerprint to diff deployed fleets against a request;
// reconcilers use it to detect change without comparing descriptor
// lists.
//
// On disk a manifest is a small framed file: magic, format version,
// compression tag, uncompressed size, payload. Compression follows
// the tagged scheme of the chunk store (zstd for the default,
// lz4 when encode speed matters, none for tiny plans).
package planstore
