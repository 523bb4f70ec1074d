// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for Chunkmesh
// tools. It centralizes the one legitimate raw-stderr pattern that
// exists before the structured logger is initialized: fatal error
// reporting from main(). All other output in Chunkmesh binaries goes
// through the structured logger or explicit CLI printing.
package process
