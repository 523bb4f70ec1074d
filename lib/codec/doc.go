// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides chunkmesh's standard CBOR encoding
// configuration.
//
// Plan manifests are content-addressed: the fingerprint of a manifest
// is computed over its encoded bytes, so the same logical plan must
// always encode to the same bytes. The encoder therefore uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items.
//
// Validated identity types (ref.ServiceName, evmnet.Address,
// peeraddr.Addr) serialize as CBOR text strings via their
// encoding.TextMarshaler implementations, keeping manifests readable
// in diagnostic dumps and stable across internal representation
// changes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
