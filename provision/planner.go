// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"
	"net/netip"
	"path/filepath"

	"github.com/chunkmesh-foundation/chunkmesh/lib/evmnet"
	"github.com/chunkmesh-foundation/chunkmesh/lib/peeraddr"
	"github.com/chunkmesh-foundation/chunkmesh/lib/ref"
	"github.com/chunkmesh-foundation/chunkmesh/servicemgr"
)

// Kind identifies one of the four provisionable service kinds. The
// set is closed; Plan dispatches exhaustively on it.
type Kind int

const (
	// KindNode is a storage node holding chunks and registers.
	KindNode Kind = iota + 1

	// KindAuditor is a spend auditor.
	KindAuditor

	// KindFaucet is a test-token faucet.
	KindFaucet

	// KindDaemon is the payment daemon.
	KindDaemon
)

// String returns the kind's request-file name.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindAuditor:
		return "auditor"
	case KindFaucet:
		return "faucet"
	case KindDaemon:
		return "daemon"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name from a fleet request file.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "node":
		return KindNode, nil
	case "auditor":
		return KindAuditor, nil
	case "faucet":
		return KindFaucet, nil
	case "daemon":
		return KindDaemon, nil
	default:
		return 0, fmt.Errorf("unknown service kind %q (known: node, auditor, faucet, daemon)", name)
	}
}

// Request is one declarative instruction to provision Count instances
// of one service kind. Fleet-level fields are shared by every
// instance; per-instance ports and identities are derived by [Plan].
type Request struct {
	// Kind selects the service kind.
	Kind Kind

	// Count is the desired instance count. Must be at least 1.
	Count int

	// BaseName is the identity base. Count == 1 uses it bare;
	// count > 1 appends a 1-based index per instance.
	BaseName string

	// ProgramPath is the service binary.
	ProgramPath string

	// DataDirRoot is the parent of per-instance data directories
	// (node kind only). Instance i uses DataDirRoot/<instance name>.
	DataDirRoot string

	// LogDirRoot is the parent of per-instance log directories.
	// Instance i uses LogDirRoot/<instance name>.
	LogDirRoot string

	// BootstrapPeers are shared by every instance.
	BootstrapPeers []peeraddr.Addr

	// Environment pairs are shared by every instance.
	Environment []servicemgr.EnvVar

	// Username optionally names the run-as user. Required for the
	// auditor and faucet kinds.
	Username string

	// AutoStart requests start-on-boot for node instances. Auditor,
	// faucet, and daemon services always autostart.
	AutoStart bool

	// RPCAddress is the IP node RPC sockets bind to. The zero value
	// defaults to 127.0.0.1. Node kind only.
	RPCAddress netip.Addr

	// RPCPorts allocates one RPC port per node instance. Required
	// for the node kind.
	RPCPorts *PortRange

	// NodePorts optionally pins node listen ports, one per instance.
	NodePorts *PortRange

	// MetricsPorts optionally exposes metrics servers, one port per
	// instance.
	MetricsPorts *PortRange

	// NodeIP optionally pins the node listen IP (shared).
	NodeIP netip.Addr

	// EvmNetwork selects the payment network for the whole batch.
	// Required for the node kind.
	EvmNetwork evmnet.Network

	// RewardsAddress receives storage payments. Required for the
	// node kind.
	RewardsAddress evmnet.Address

	// FirstNode marks the batch's single node as the genesis node.
	// Only valid with Count == 1.
	FirstNode bool

	// HomeNetwork, Local, and UPnP are node behaviour flags shared
	// by every instance.
	HomeNetwork bool
	Local       bool
	UPnP        bool

	// LogFormat optionally overrides node log output format.
	LogFormat LogFormat

	// MaxArchivedLogFiles and MaxLogFiles optionally cap node log
	// retention. Zero means unset.
	MaxArchivedLogFiles int
	MaxLogFiles         int

	// Owner optionally attributes node instances to an owner.
	Owner string

	// BetaEncryptionKey is the auditor's optional tracking key.
	BetaEncryptionKey string

	// ListenAddress and ListenPort bind the payment daemon.
	ListenAddress netip.Addr
	ListenPort    uint16
}

// portRole pairs a declared port range with its role name for error
// reporting. Roles are validated in a fixed order so the first
// mismatch reported is deterministic.
type portRole struct {
	name  string
	ports *PortRange
}

// Plan expands the request into one service descriptor per instance,
// in instance index order. The operation is atomic: every declared
// port range is validated against the count before any allocation,
// and any builder failure discards the whole batch — callers never
// observe a partially-built fleet.
func Plan(request Request) ([]servicemgr.Descriptor, error) {
	if request.Count < 1 {
		return nil, fmt.Errorf("planning %s fleet: count must be at least 1, got %d", request.Kind, request.Count)
	}
	baseName, err := ref.ParseServiceName(request.BaseName)
	if err != nil {
		return nil, fmt.Errorf("planning %s fleet: %w", request.Kind, err)
	}
	if request.ProgramPath == "" {
		return nil, fmt.Errorf("planning %s fleet: program path is required", request.Kind)
	}

	switch request.Kind {
	case KindNode:
		return planNodes(request, baseName)
	case KindAuditor, KindFaucet:
		return planAttended(request, baseName)
	case KindDaemon:
		return planDaemons(request, baseName)
	default:
		return nil, fmt.Errorf("unknown service kind %d", int(request.Kind))
	}
}

// instanceName derives the identity for instance index: the bare base
// name for a single-instance fleet, an indexed name otherwise.
func instanceName(base ref.ServiceName, index, count int) ref.ServiceName {
	if count == 1 {
		return base
	}
	return base.Indexed(index)
}

// planNodes expands a storage node request.
func planNodes(request Request, baseName ref.ServiceName) ([]servicemgr.Descriptor, error) {
	if request.RewardsAddress.IsZero() {
		return nil, fmt.Errorf("planning node fleet: rewards address is required")
	}
	if request.EvmNetwork.IsZero() {
		return nil, fmt.Errorf("planning node fleet: EVM network selection is required")
	}
	if request.FirstNode && request.Count > 1 {
		return nil, fmt.Errorf("planning node fleet: a genesis node fleet must have count 1, got %d", request.Count)
	}
	if request.RPCPorts == nil {
		return nil, fmt.Errorf("planning node fleet: RPC port range is required")
	}

	// All declared ranges are validated before any port is read, so
	// a mismatch can never leave a partial allocation behind.
	roles := []portRole{
		{name: "rpc", ports: request.RPCPorts},
		{name: "node", ports: request.NodePorts},
		{name: "metrics", ports: request.MetricsPorts},
	}
	for _, role := range roles {
		if role.ports == nil {
			continue
		}
		if err := role.ports.Validate(request.Count); err != nil {
			return nil, fmt.Errorf("planning node fleet: %s ports: %w", role.name, err)
		}
	}

	rpcAddress := request.RPCAddress
	if !rpcAddress.IsValid() {
		rpcAddress = netip.AddrFrom4([4]byte{127, 0, 0, 1})
	}

	descriptors := make([]servicemgr.Descriptor, 0, request.Count)
	for index := 0; index < request.Count; index++ {
		name := instanceName(baseName, index, request.Count)

		builder := NodeBuilder{
			Name:                name.String(),
			ProgramPath:         request.ProgramPath,
			RPCAddress:          netip.AddrPortFrom(rpcAddress, request.RPCPorts.Port(index)),
			DataDir:             filepath.Join(request.DataDirRoot, name.String()),
			LogDir:              filepath.Join(request.LogDirRoot, name.String()),
			RewardsAddress:      request.RewardsAddress,
			EvmNetwork:          request.EvmNetwork,
			FirstNode:           request.FirstNode,
			HomeNetwork:         request.HomeNetwork,
			Local:               request.Local,
			LogFormat:           request.LogFormat,
			UPnP:                request.UPnP,
			NodeIP:              request.NodeIP,
			Owner:               request.Owner,
			MaxArchivedLogFiles: request.MaxArchivedLogFiles,
			MaxLogFiles:         request.MaxLogFiles,
			BootstrapPeers:      request.BootstrapPeers,
			Environment:         request.Environment,
			Username:            request.Username,
			AutoStart:           request.AutoStart,
		}
		if request.NodePorts != nil {
			builder.NodePort = request.NodePorts.Port(index)
		}
		if request.MetricsPorts != nil {
			builder.MetricsPort = request.MetricsPorts.Port(index)
		}

		descriptor, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("planning node fleet: instance %d: %w", index, err)
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

// planAttended expands an auditor or faucet request. Both kinds run as
// a mandatory dedicated user and share the log-dir/peer surface.
func planAttended(request Request, baseName ref.ServiceName) ([]servicemgr.Descriptor, error) {
	if request.Username == "" {
		return nil, fmt.Errorf("planning %s fleet: a run-as user is required", request.Kind)
	}

	descriptors := make([]servicemgr.Descriptor, 0, request.Count)
	for index := 0; index < request.Count; index++ {
		name := instanceName(baseName, index, request.Count)
		logDir := filepath.Join(request.LogDirRoot, name.String())

		var descriptor servicemgr.Descriptor
		var err error
		if request.Kind == KindAuditor {
			descriptor, err = AuditorBuilder{
				Name:              name.String(),
				ProgramPath:       request.ProgramPath,
				LogDir:            logDir,
				BootstrapPeers:    request.BootstrapPeers,
				BetaEncryptionKey: request.BetaEncryptionKey,
				Environment:       request.Environment,
				Username:          request.Username,
			}.Build()
		} else {
			descriptor, err = FaucetBuilder{
				Name:           name.String(),
				ProgramPath:    request.ProgramPath,
				LogDir:         logDir,
				BootstrapPeers: request.BootstrapPeers,
				Environment:    request.Environment,
				Username:       request.Username,
			}.Build()
		}
		if err != nil {
			return nil, fmt.Errorf("planning %s fleet: instance %d: %w", request.Kind, index, err)
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

// planDaemons expands a payment daemon request. The listen address and
// port are fixed parameters shared by every instance; provisioning
// more than one daemon on the same socket is a caller responsibility
// to avoid, mirroring the single-port-range rule.
func planDaemons(request Request, baseName ref.ServiceName) ([]servicemgr.Descriptor, error) {
	if !request.ListenAddress.IsValid() {
		return nil, fmt.Errorf("planning daemon fleet: listen address is required")
	}
	if request.ListenPort == 0 {
		return nil, fmt.Errorf("planning daemon fleet: listen port is required")
	}

	descriptors := make([]servicemgr.Descriptor, 0, request.Count)
	for index := 0; index < request.Count; index++ {
		name := instanceName(baseName, index, request.Count)
		descriptor, err := DaemonBuilder{
			Name:        name.String(),
			ProgramPath: request.ProgramPath,
			Address:     request.ListenAddress,
			Port:        request.ListenPort,
			Environment: request.Environment,
			Username:    request.Username,
		}.Build()
		if err != nil {
			return nil, fmt.Errorf("planning daemon fleet: instance %d: %w", index, err)
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}
