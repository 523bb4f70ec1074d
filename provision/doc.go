// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package provision expands a declarative fleet request into concrete,
// non-conflicting service descriptors.
//
// The entry point is [Plan]: given a [Request] naming one of the four
// service kinds (storage node, auditor, faucet, payment daemon) and an
// instance count, it validates every declared [PortRange] against the
// count, derives a unique identity and disjoint ports per instance,
// and invokes the kind's builder once per instance. The operation is
// atomic — either all N descriptors are returned in instance-index
// order, or none are.
//
// The four builders ([NodeBuilder], [AuditorBuilder], [FaucetBuilder],
// [DaemonBuilder]) are pure mappings from one fully-resolved instance
// configuration to one [servicemgr.Descriptor]. Each owns its kind's
// argument grammar; emission order is fixed and documented on the
// builder because the service binaries parse arguments left to right
// and downstream tooling gives later duplicate flags precedence.
// Builders perform no I/O and validate nothing but the service
// identity — all other inputs are pre-validated by Plan.
//
// Everything in this package is synchronous, deterministic, and free
// of shared mutable state. Two concurrent Plan calls on unrelated
// requests need no locking.
package provision
