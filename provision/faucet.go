// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"

	"github.com/chunkmesh-foundation/chunkmesh/lib/peeraddr"
	"github.com/chunkmesh-foundation/chunkmesh/lib/ref"
	"github.com/chunkmesh-foundation/chunkmesh/servicemgr"
)

// FaucetBuilder maps one faucet configuration to a service descriptor.
// Faucets dispense test tokens on local and testnet deployments; they
// always autostart and always run as a dedicated user.
//
// Argument emission order: --log-output-dest, then --peer (omitted for
// an empty peer list), then the fixed trailing "server" subcommand
// that puts the binary in server mode.
type FaucetBuilder struct {
	// Name is the service identity.
	Name string

	// ProgramPath is the chunkmesh-faucet binary.
	ProgramPath string

	// LogDir is the faucet's log output directory.
	LogDir string

	// BootstrapPeers are the peers to join through. An empty list
	// emits no --peer flag.
	BootstrapPeers []peeraddr.Addr

	// Environment holds optional environment pairs.
	Environment []servicemgr.EnvVar

	// Username is the user the faucet runs as. Required for this
	// kind; the planner enforces presence.
	Username string
}

// Build produces the faucet's service descriptor.
func (b FaucetBuilder) Build() (servicemgr.Descriptor, error) {
	label, err := ref.ParseServiceName(b.Name)
	if err != nil {
		return servicemgr.Descriptor{}, fmt.Errorf("building faucet service: %w", err)
	}

	args := []string{"--log-output-dest", b.LogDir}
	if len(b.BootstrapPeers) > 0 {
		args = append(args, "--peer", peeraddr.Join(b.BootstrapPeers))
	}
	args = append(args, "server")

	return servicemgr.Descriptor{
		Label:       label,
		Program:     b.ProgramPath,
		Args:        args,
		Environment: b.Environment,
		AutoStart:   true,
		Username:    b.Username,
	}, nil
}
