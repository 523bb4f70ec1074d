// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package peeraddr provides the bootstrap peer address type consumed
// by the provisioning layer.
//
// A peer address is a multi-protocol network address owned by the
// networking layer; provisioning only ever needs its canonical string
// form for argument emission. [Parse] therefore checks shape, not
// reachability or protocol semantics: a leading slash, non-empty
// segments, no whitespace. It never resolves, parses protocols out of,
// or dials the address.
//
// This package depends on no other chunkmesh packages.
package peeraddr
