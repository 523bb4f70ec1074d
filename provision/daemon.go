// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"
	"net/netip"
	"strconv"

	"github.com/chunkmesh-foundation/chunkmesh/lib/ref"
	"github.com/chunkmesh-foundation/chunkmesh/servicemgr"
)

// DaemonBuilder maps one payment daemon configuration to a service
// descriptor. The daemon's surface is deliberately minimal: identity,
// program, bound listen address and port, run-as user. There is no
// variable argument grammar.
type DaemonBuilder struct {
	// Name is the service identity.
	Name string

	// ProgramPath is the chunkmeshd binary.
	ProgramPath string

	// Address is the daemon's listen IP.
	Address netip.Addr

	// Port is the daemon's listen port.
	Port uint16

	// Environment holds optional environment pairs.
	Environment []servicemgr.EnvVar

	// Username is the user the daemon runs as.
	Username string
}

// Build produces the daemon's service descriptor.
func (b DaemonBuilder) Build() (servicemgr.Descriptor, error) {
	label, err := ref.ParseServiceName(b.Name)
	if err != nil {
		return servicemgr.Descriptor{}, fmt.Errorf("building daemon service: %w", err)
	}

	args := []string{
		"--address", b.Address.String(),
		"--port", strconv.Itoa(int(b.Port)),
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
