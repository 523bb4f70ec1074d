// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides validated identity types for chunkmesh services.
//
// A [ServiceName] is the label under which a provisioned service is
// registered with the OS-level service manager. Names are validated at
// construction; a ServiceName value that exists is always well-formed,
// so downstream code (argument builders, unit file rendering, manifest
// records) never re-validates.
//
// Validation failures are reported as [*InvalidNameError] so callers
// can distinguish identity-syntax errors from other provisioning
// failures with errors.As.
//
// This package depends on no other chunkmesh packages.
package ref
