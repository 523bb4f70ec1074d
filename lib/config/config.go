// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net/netip"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chunkmesh-foundation/chunkmesh/lib/evmnet"
	"github.com/chunkmesh-foundation/chunkmesh/lib/peeraddr"
	"github.com/chunkmesh-foundation/chunkmesh/provision"
	"github.com/chunkmesh-foundation/chunkmesh/servicemgr"
)

// FleetFile is the decoded form of a fleet request file. String fields
// that need parsing (port ranges, addresses, the network selection)
// stay strings here; [FleetFile.Request] parses them.
type FleetFile struct {
	// Kind names the service kind: node, auditor, faucet, or daemon.
	Kind string `yaml:"kind"`

	// Count is the desired instance count.
	Count int `yaml:"count"`

	// BaseName is the identity base for the batch.
	BaseName string `yaml:"base_name"`

	// Program is the path to the service binary.
	Program string `yaml:"program"`

	// DataDir is the parent of per-instance data directories.
	DataDir string `yaml:"data_dir"`

	// LogDir is the parent of per-instance log directories.
	LogDir string `yaml:"log_dir"`

	// User optionally names the run-as user.
	User string `yaml:"user"`

	// AutoStart requests start-on-boot for node instances.
	AutoStart bool `yaml:"autostart"`

	// Environment lists environment variables in the order they are
	// passed to every instance.
	Environment []EnvEntry `yaml:"environment"`

	// BootstrapPeers lists initial peer addresses shared by every
	// instance.
	BootstrapPeers []string `yaml:"bootstrap_peers"`

	// Node holds node-kind parameters.
	Node *NodeSection `yaml:"node,omitempty"`

	// Auditor holds auditor-kind parameters.
	Auditor *AuditorSection `yaml:"auditor,omitempty"`

	// Daemon holds payment daemon parameters.
	Daemon *DaemonSection `yaml:"daemon,omitempty"`
}

// EnvEntry is one environment variable. Entries are a list, not a
// map, so the order written in the file is the order the variables
// reach the service manager.
type EnvEntry struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// NodeSection holds the node-kind parameters of a fleet request file.
type NodeSection struct {
	// RPCAddress is the IP node RPC sockets bind to. Empty means
	// 127.0.0.1.
	RPCAddress string `yaml:"rpc_address"`

	// RPCPorts is the RPC port range, "8081" or "8081-8090".
	RPCPorts string `yaml:"rpc_ports"`

	// NodePorts optionally pins node listen ports.
	NodePorts string `yaml:"node_ports"`

	// MetricsPorts optionally exposes metrics servers.
	MetricsPorts string `yaml:"metrics_ports"`

	// NodeIP optionally pins the node listen IP.
	NodeIP string `yaml:"node_ip"`

	// RewardsAddress receives storage payments.
	RewardsAddress string `yaml:"rewards_address"`

	// EvmNetwork selects the payment network.
	EvmNetwork NetworkSection `yaml:"evm_network"`

	// First marks the single node of the batch as the genesis node.
	First bool `yaml:"first"`

	// HomeNetwork, Local, and UPnP are node behaviour flags.
	HomeNetwork bool `yaml:"home_network"`
	Local       bool `yaml:"local"`
	UPnP        bool `yaml:"upnp"`

	// LogFormat optionally overrides node log output: default or json.
	LogFormat string `yaml:"log_format"`

	// MaxArchivedLogFiles and MaxLogFiles optionally cap log
	// retention. Zero means unset.
	MaxArchivedLogFiles int `yaml:"max_archived_log_files"`
	MaxLogFiles         int `yaml:"max_log_files"`

	// Owner optionally attributes the instances to an owner.
	Owner string `yaml:"owner"`
}

// NetworkSection selects the payment network: either a named network
// or a full custom endpoint, never both.
type NetworkSection struct {
	// Name is a named network: arbitrum-one or arbitrum-sepolia.
	Name string `yaml:"name"`

	// RPCURL, PaymentTokenAddress, and DataPaymentsAddress define a
	// custom network. All three are required together.
	RPCURL              string `yaml:"rpc_url"`
	PaymentTokenAddress string `yaml:"payment_token_address"`
	DataPaymentsAddress string `yaml:"data_payments_address"`
}

// AuditorSection holds the auditor-kind parameters.
type AuditorSection struct {
	// BetaEncryptionKey optionally enables participant tracking.
	BetaEncryptionKey string `yaml:"beta_encryption_key"`
}

// DaemonSection holds the payment daemon parameters.
type DaemonSection struct {
	// Address is the IP the daemon listens on.
	Address string `yaml:"address"`

	// Port is the daemon listen port.
	Port uint16 `yaml:"port"`
}

// Load loads a fleet request file from the CHUNKMESH_FLEET environment
// variable. There are no fallbacks: if the variable is not set, this
// fails.
func Load() (*FleetFile, error) {
	path := os.Getenv("CHUNKMESH_FLEET")
	if path == "" {
		return nil, fmt.Errorf("CHUNKMESH_FLEET environment variable not set; " +
			"set it to the path of your fleet request file, or use --config")
	}
	return LoadFile(path)
}

// LoadFile loads a fleet request file from an explicit path.
func LoadFile(path string) (*FleetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fleet request: %w", err)
	}

	var file FleetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding fleet request %s: %w", path, err)
	}
	return &file, nil
}

// Request converts the decoded file into a provisioning request,
// parsing every string-typed field. The returned request still goes
// through provision.Plan's own validation; this method only rejects
// fields that cannot be parsed at all.
func (f *FleetFile) Request() (provision.Request, error) {
	kind, err := provision.ParseKind(f.Kind)
	if err != nil {
		return provision.Request{}, err
	}

	request := provision.Request{
		Kind:        kind,
		Count:       f.Count,
		BaseName:    f.BaseName,
		ProgramPath: f.Program,
		DataDirRoot: f.DataDir,
		LogDirRoot:  f.LogDir,
		Username:    f.User,
		AutoStart:   f.AutoStart,
	}

	for _, entry := range f.Environment {
		if entry.Name == "" {
			return provision.Request{}, fmt.Errorf("environment entry with empty name")
		}
		request.Environment = append(request.Environment, servicemgr.EnvVar{
			Name:  entry.Name,
			Value: entry.Value,
		})
	}

	peers, err := peeraddr.ParseList(f.BootstrapPeers)
	if err != nil {
		return provision.Request{}, fmt.Errorf("bootstrap peer: %w", err)
	}
	request.BootstrapPeers = peers

	if f.Node != nil {
		if err := f.Node.apply(&request); err != nil {
			return provision.Request{}, err
		}
	}
	if f.Auditor != nil {
		request.BetaEncryptionKey = f.Auditor.BetaEncryptionKey
	}
	if f.Daemon != nil {
		if f.Daemon.Address != "" {
			address, err := netip.ParseAddr(f.Daemon.Address)
			if err != nil {
				return provision.Request{}, fmt.Errorf("daemon address: %w", err)
			}
			request.ListenAddress = address
		}
		request.ListenPort = f.Daemon.Port
	}

	return request, nil
}

// apply parses the node section into the request.
func (section *NodeSection) apply(request *provision.Request) error {
	if section.RPCAddress != "" {
		address, err := netip.ParseAddr(section.RPCAddress)
		if err != nil {
			return fmt.Errorf("rpc address: %w", err)
		}
		request.RPCAddress = address
	}

	ranges := []struct {
		name   string
		text   string
		target **provision.PortRange
	}{
		{"rpc_ports", section.RPCPorts, &request.RPCPorts},
		{"node_ports", section.NodePorts, &request.NodePorts},
		{"metrics_ports", section.MetricsPorts, &request.MetricsPorts},
	}
	for _, r := range ranges {
		if r.text == "" {
			continue
		}
		parsed, err := provision.ParsePortRange(r.text)
		if err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
		*r.target = &parsed
	}

	if section.NodeIP != "" {
		ip, err := netip.ParseAddr(section.NodeIP)
		if err != nil {
			return fmt.Errorf("node ip: %w", err)
		}
		request.NodeIP = ip
	}

	if section.RewardsAddress != "" {
		rewards, err := evmnet.ParseAddress(section.RewardsAddress)
		if err != nil {
			return fmt.Errorf("rewards address: %w", err)
		}
		request.RewardsAddress = rewards
	}

	network, err := section.EvmNetwork.network()
	if err != nil {
		return err
	}
	request.EvmNetwork = network

	if section.LogFormat != "" {
		format, err := provision.ParseLogFormat(section.LogFormat)
		if err != nil {
			return err
		}
		request.LogFormat = format
	}

	request.FirstNode = section.First
	request.HomeNetwork = section.HomeNetwork
	request.Local = section.Local
	request.UPnP = section.UPnP
	request.MaxArchivedLogFiles = section.MaxArchivedLogFiles
	request.MaxLogFiles = section.MaxLogFiles
	request.Owner = section.Owner
	return nil
}

// network resolves the section into a network selection. An empty
// section yields the zero Network; provision.Plan rejects that for the
// node kind with its own error.
func (section NetworkSection) network() (evmnet.Network, error) {
	custom := section.RPCURL != "" || section.PaymentTokenAddress != "" || section.DataPaymentsAddress != ""

	if section.Name != "" {
		if custom {
			return evmnet.Network{}, fmt.Errorf("evm_network: name and custom endpoint fields are mutually exclusive")
		}
		return evmnet.ParseNamed(section.Name)
	}
	if !custom {
		return evmnet.Network{}, nil
	}

	var paymentToken, dataPayments evmnet.Address
	if section.PaymentTokenAddress != "" {
		parsed, err := evmnet.ParseAddress(section.PaymentTokenAddress)
		if err != nil {
			return evmnet.Network{}, fmt.Errorf("evm_network payment token: %w", err)
		}
		paymentToken = parsed
	}
	if section.DataPaymentsAddress != "" {
		parsed, err := evmnet.ParseAddress(section.DataPaymentsAddress)
		if err != nil {
			return evmnet.Network{}, fmt.Errorf("evm_network data payments: %w", err)
		}
		dataPayments = parsed
	}
	return evmnet.NewCustom(section.RPCURL, paymentToken, dataPayments)
}
