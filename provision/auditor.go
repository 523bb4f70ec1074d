// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"

	"github.com/chunkmesh-foundation/chunkmesh/lib/peeraddr"
	"github.com/chunkmesh-foundation/chunkmesh/lib/ref"
	"github.com/chunkmesh-foundation/chunkmesh/servicemgr"
)

// AuditorBuilder maps one auditor configuration to a service
// descriptor. Auditors track spend records across the network; they
// always autostart and always run as a dedicated user.
//
// Argument emission order: --log-output-dest, then --peer (omitted for
// an empty peer list), then --beta-encryption-key if present.
type AuditorBuilder struct {
	// Name is the service identity.
	Name string

	// ProgramPath is the chunkmesh-auditor binary.
	ProgramPath string

	// LogDir is the auditor's log output directory.
	LogDir string

	// BootstrapPeers are the peers to join through. An empty list
	// emits no --peer flag.
	BootstrapPeers []peeraddr.Addr

	// BetaEncryptionKey optionally encrypts tracked beta programme
	// activity. Opaque to provisioning.
	BetaEncryptionKey string

	// Environment holds optional environment pairs.
	Environment []servicemgr.EnvVar

	// Username is the user the auditor runs as. Required for this
	// kind; the planner enforces presence.
	Username string
}

// Build produces the auditor's service descriptor.
func (b AuditorBuilder) Build() (servicemgr.Descriptor, error) {
	label, err := ref.ParseServiceName(b.Name)
	if err != nil {
		return servicemgr.Descriptor{}, fmt.Errorf("building auditor service: %w", err)
	}

	args := []string{"--log-output-dest", b.LogDir}
	if len(b.BootstrapPeers) > 0 {
		args = append(args, "--peer", peeraddr.Join(b.BootstrapPeers))
	}
	if b.BetaEncryptionKey != "" {
		args = append(args, "--beta-encryption-key", b.BetaEncryptionKey)
	}

	return servicemgr.Descriptor{
		Label:       label,
		Program:     b.ProgramPath,
		Args:        args,
		Environment: b.Environment,
		AutoStart:   true,
		Username:    b.Username,
	}, nil
}
