// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"
	"net/netip"
	"strconv"

	"github.com/chunkmesh-foundation/chunkmesh/lib/evmnet"
	"github.com/chunkmesh-foundation/chunkmesh/lib/peeraddr"
	"github.com/chunkmesh-foundation/chunkmesh/lib/ref"
	"github.com/chunkmesh-foundation/chunkmesh/servicemgr"
)

// NodeBuilder maps one fully-resolved storage node configuration to a
// service descriptor. Fields with Go zero values are treated as unset
// and emit nothing.
//
// Argument emission order is fixed: --rpc, --root-dir,
// --log-output-dest; then each optional in the order --first,
// --home-network, --local, --log-format, --upnp, --ip, --port,
// --metrics-server-port, --owner, --max-archived-log-files,
// --max-log-files, --peer; then the mandatory --rewards-address; and
// finally the EVM network token with its custom parameters, if any.
type NodeBuilder struct {
	// Name is the service identity. Parsed during Build; an
	// unparsable name is the only validation a builder performs.
	Name string

	// ProgramPath is the chunkmesh-node binary.
	ProgramPath string

	// RPCAddress is the node's RPC socket address. Mandatory.
	RPCAddress netip.AddrPort

	// DataDir is the node's root data directory. Mandatory.
	DataDir string

	// LogDir is the node's log output directory. Mandatory.
	LogDir string

	// RewardsAddress receives storage payments. Mandatory.
	RewardsAddress evmnet.Address

	// EvmNetwork selects the payment network. Mandatory; shared
	// across every instance of a batch.
	EvmNetwork evmnet.Network

	// FirstNode starts the node as the genesis node of a new network.
	FirstNode bool

	// HomeNetwork enables operation behind a consumer NAT.
	HomeNetwork bool

	// Local restricts the node to the local network.
	Local bool

	// LogFormat optionally overrides the log output format.
	LogFormat LogFormat

	// UPnP enables UPnP port mapping.
	UPnP bool

	// NodeIP optionally pins the listen IP.
	NodeIP netip.Addr

	// NodePort optionally pins the listen port. Zero means unset.
	NodePort uint16

	// MetricsPort optionally exposes the metrics server. Zero means
	// unset.
	MetricsPort uint16

	// Owner optionally attributes the node to an owner identity.
	Owner string

	// MaxArchivedLogFiles optionally caps archived log files. Zero
	// means unset.
	MaxArchivedLogFiles int

	// MaxLogFiles optionally caps live log files. Zero means unset.
	MaxLogFiles int

	// BootstrapPeers are the peers to join through. An empty list
	// emits no --peer flag at all.
	BootstrapPeers []peeraddr.Addr

	// Environment holds optional environment pairs for the service.
	Environment []servicemgr.EnvVar

	// Username optionally names the user to run the service as.
	Username string

	// AutoStart requests start-on-boot.
	AutoStart bool
}

// Build produces the node's service descriptor. Pure: no I/O, no
// process or filesystem state.
func (b NodeBuilder) Build() (servicemgr.Descriptor, error) {
	label, err := ref.ParseServiceName(b.Name)
	if err != nil {
		return servicemgr.Descriptor{}, fmt.Errorf("building node service: %w", err)
	}

	args := []string{
		"--rpc", b.RPCAddress.String(),
		"--root-dir", b.DataDir,
		"--log-output-dest", b.LogDir,
	}

	if b.FirstNode {
		args = append(args, "--first")
	}
	if b.HomeNetwork {
		args = append(args, "--home-network")
	}
	if b.Local {
		args = append(args, "--local")
	}
	if b.LogFormat != "" {
		args = append(args, "--log-format", string(b.LogFormat))
	}
	if b.UPnP {
		args = append(args, "--upnp")
	}
	if b.NodeIP.IsValid() {
		args = append(args, "--ip", b.NodeIP.String())
	}
	if b.NodePort != 0 {
		args = append(args, "--port", strconv.Itoa(int(b.NodePort)))
	}
	if b.MetricsPort != 0 {
		args = append(args, "--metrics-server-port", strconv.Itoa(int(b.MetricsPort)))
	}
	if b.Owner != "" {
		args = append(args, "--owner", b.Owner)
	}
	if b.MaxArchivedLogFiles != 0 {
		args = append(args, "--max-archived-log-files", strconv.Itoa(b.MaxArchivedLogFiles))
	}
	if b.MaxLogFiles != 0 {
		args = append(args, "--max-log-files", strconv.Itoa(b.MaxLogFiles))
	}
	if len(b.BootstrapPeers) > 0 {
		args = append(args, "--peer", peeraddr.Join(b.BootstrapPeers))
	}

	args = append(args, "--rewards-address", b.RewardsAddress.String())

	args = append(args, b.EvmNetwork.Token())
	if custom, isCustom := b.EvmNetwork.Custom(); isCustom {
		args = append(args,
			"--rpc-url", custom.RPCURL,
			"--payment-token-address", custom.PaymentTokenAddress.String(),
			"--data-payments-address", custom.DataPaymentsAddress.String(),
		)
	}

	return servicemgr.Descriptor{
		Label:       label,
		Program:     b.ProgramPath,
		Args:        args,
		Environment: b.Environment,
		AutoStart:   b.AutoStart,
		Username:    b.Username,
	}, nil
}
