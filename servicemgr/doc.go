// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package servicemgr defines the boundary between fleet provisioning
// and the OS-level service manager.
//
// A [Descriptor] is the complete, executable specification of one
// service instance: program path, ordered argument sequence, optional
// environment pairs, label, autostart flag, and optional run-as user.
// Argument order is a contract — the service binaries parse flags
// left to right and some downstream tooling gives later duplicates
// precedence — so descriptors compare literally in tests and encode
// deterministically in plan manifests.
//
// [Manager] is the collaborator contract: register a descriptor as an
// OS-level service. The provisioning core only ever installs; it never
// starts, stops, or queries services. [SystemdManager] is the Linux
// implementation, rendering a descriptor into a systemd unit file.
package servicemgr
