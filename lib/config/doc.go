// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML fleet request loading.
//
// A fleet request file describes one batch of services to provision:
// the kind, the instance count, the identity base, and the kind's
// parameters. The file is loaded from a single path specified by
// either the CHUNKMESH_FLEET environment variable (via [Load]) or a
// --config flag (via [LoadFile]). There are no fallbacks, no
// ~/.config discovery, and no automatic file search; the file is the
// single source of truth.
//
// Loading only reads and decodes. [FleetFile.Request] converts the
// decoded file into a provision.Request, which is where port ranges,
// addresses, and network selections are parsed and where the first
// malformed field is reported.
//
// This package depends only on lib/evmnet, lib/peeraddr, provision,
// and servicemgr.
package config
