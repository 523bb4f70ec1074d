// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"errors"
	"net/netip"
	"reflect"
	"testing"

	"github.com/chunkmesh-foundation/chunkmesh/lib/evmnet"
)

func portRange(t *testing.T, text string) *PortRange {
	t.Helper()
	r, err := ParsePortRange(text)
	if err != nil {
		t.Fatalf("ParsePortRange(%q) failed: %v", text, err)
	}
	return &r
}

func nodeRequest(t *testing.T, count int) Request {
	t.Helper()
	return Request{
		Kind:           KindNode,
		Count:          count,
		BaseName:       "chunknode",
		ProgramPath:    "/usr/local/bin/chunkmesh-node",
		DataDirRoot:    "/var/lib/chunkmesh",
		LogDirRoot:     "/var/log/chunkmesh",
		RewardsAddress: testRewardsAddress(t),
		EvmNetwork:     evmnet.ArbitrumOne,
		AutoStart:      true,
	}
}

func TestPlanSingleInstanceBareName(t *testing.T) {
	request := nodeRequest(t, 1)
	request.RPCPorts = portRange(t, "8080")

	descriptors, err := Plan(request)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(descriptors) != 1 {
		t.Fatalf("Plan produced %d descriptors, want 1", len(descriptors))
	}
	if got := descriptors[0].Label.String(); got != "chunknode" {
		t.Errorf("single-instance label = %q, want bare base name", got)
	}
}

func TestPlanMultiInstanceIdentitiesAndPorts(t *testing.T) {
	request := nodeRequest(t, 3)
	request.RPCPorts = portRange(t, "8081-8083")
	request.NodePorts = portRange(t, "12001-12003")
	request.MetricsPorts = portRange(t, "9091-9093")

	descriptors, err := Plan(request)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(descriptors) != 3 {
		t.Fatalf("Plan produced %d descriptors, want 3", len(descriptors))
	}

	wantLabels := []string{"chunknode1", "chunknode2", "chunknode3"}
	wantRPC := []string{"127.0.0.1:8081", "127.0.0.1:8082", "127.0.0.1:8083"}
	wantNodePort := []string{"12001", "12002", "12003"}
	wantMetrics := []string{"9091", "9092", "9093"}
	wantDataDir := []string{
		"/var/lib/chunkmesh/chunknode1",
		"/var/lib/chunkmesh/chunknode2",
		"/var/lib/chunkmesh/chunknode3",
	}

	seen := make(map[string]bool)
	for index, descriptor := range descriptors {
		label := descriptor.Label.String()
		if label != wantLabels[index] {
			t.Errorf("instance %d label = %q, want %q", index, label, wantLabels[index])
		}
		if seen[label] {
			t.Errorf("duplicate label %q", label)
		}
		seen[label] = true

		if got := flagValue(t, descriptor.Args, "--rpc"); got != wantRPC[index] {
			t.Errorf("instance %d --rpc = %q, want %q", index, got, wantRPC[index])
		}
		if got := flagValue(t, descriptor.Args, "--port"); got != wantNodePort[index] {
			t.Errorf("instance %d --port = %q, want %q", index, got, wantNodePort[index])
		}
		if got := flagValue(t, descriptor.Args, "--metrics-server-port"); got != wantMetrics[index] {
			t.Errorf("instance %d --metrics-server-port = %q, want %q", index, got, wantMetrics[index])
		}
		if got := flagValue(t, descriptor.Args, "--root-dir"); got != wantDataDir[index] {
			t.Errorf("instance %d --root-dir = %q, want %q", index, got, wantDataDir[index])
		}
	}
}

// flagValue returns the argument following the given flag, failing the
// test when the flag is absent.
func flagValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}

func TestPlanCardinalityMismatchIsAtomic(t *testing.T) {
	request := nodeRequest(t, 2)
	request.RPCPorts = portRange(t, "8081-8083")

	descriptors, err := Plan(request)
	if err == nil {
		t.Fatal("Plan with mismatched range succeeded")
	}
	if descriptors != nil {
		t.Error("failed Plan returned partial descriptors")
	}
	var mismatch *CardinalityMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error %v is not *CardinalityMismatchError", err)
	}
	if mismatch.Ports != 3 || mismatch.Count != 2 {
		t.Errorf("mismatch carries ports=%d count=%d, want ports=3 count=2", mismatch.Ports, mismatch.Count)
	}
}

func TestPlanValidatesEveryRangeBeforeAllocating(t *testing.T) {
	request := nodeRequest(t, 3)
	request.RPCPorts = portRange(t, "8081-8083")
	request.MetricsPorts = portRange(t, "9091-9092")

	if _, err := Plan(request); err == nil {
		t.Error("Plan with one mismatched role succeeded")
	}
}

func TestPlanDeterministic(t *testing.T) {
	request := nodeRequest(t, 3)
	request.RPCPorts = portRange(t, "8081-8083")

	first, err := Plan(request)
	if err != nil {
		t.Fatalf("first Plan failed: %v", err)
	}
	second, err := Plan(request)
	if err != nil {
		t.Fatalf("second Plan failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("planning the same request twice produced different descriptors")
	}
}

func TestPlanGenesisRequiresSingleInstance(t *testing.T) {
	request := nodeRequest(t, 2)
	request.RPCPorts = portRange(t, "8081-8082")
	request.FirstNode = true

	if _, err := Plan(request); err == nil {
		t.Error("Plan of multi-instance genesis fleet succeeded")
	}
}

func TestPlanNodeRequiredFields(t *testing.T) {
	missingRewards := nodeRequest(t, 1)
	missingRewards.RPCPorts = portRange(t, "8080")
	missingRewards.RewardsAddress = evmnet.Address{}
	if _, err := Plan(missingRewards); err == nil {
		t.Error("Plan without rewards address succeeded")
	}

	missingNetwork := nodeRequest(t, 1)
	missingNetwork.RPCPorts = portRange(t, "8080")
	missingNetwork.EvmNetwork = evmnet.Network{}
	if _, err := Plan(missingNetwork); err == nil {
		t.Error("Plan without EVM network succeeded")
	}

	missingPorts := nodeRequest(t, 1)
	if _, err := Plan(missingPorts); err == nil {
		t.Error("Plan without RPC port range succeeded")
	}
}

func TestPlanRejectsBadCountAndName(t *testing.T) {
	request := nodeRequest(t, 0)
	if _, err := Plan(request); err == nil {
		t.Error("Plan with count 0 succeeded")
	}

	request = nodeRequest(t, 1)
	request.RPCPorts = portRange(t, "8080")
	request.BaseName = "bad name"
	if _, err := Plan(request); err == nil {
		t.Error("Plan with invalid base name succeeded")
	}
}

func TestPlanAuditorFleet(t *testing.T) {
	request := Request{
		Kind:        KindAuditor,
		Count:       1,
		BaseName:    "auditor",
		ProgramPath: "/usr/local/bin/chunkmesh-auditor",
		LogDirRoot:  "/var/log/chunkmesh",
		Username:    "chunkmesh",
	}

	descriptors, err := Plan(request)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(descriptors) != 1 {
		t.Fatalf("Plan produced %d descriptors, want 1", len(descriptors))
	}
	wantArgs := []string{"--log-output-dest", "/var/log/chunkmesh/auditor"}
	if !reflect.DeepEqual(descriptors[0].Args, wantArgs) {
		t.Errorf("Args = %v, want %v", descriptors[0].Args, wantArgs)
	}
}

func TestPlanAuditorRequiresUser(t *testing.T) {
	request := Request{
		Kind:        KindAuditor,
		Count:       1,
		BaseName:    "auditor",
		ProgramPath: "/usr/local/bin/chunkmesh-auditor",
		LogDirRoot:  "/var/log/chunkmesh",
	}
	if _, err := Plan(request); err == nil {
		t.Error("Plan of auditor fleet without user succeeded")
	}
}

func TestPlanFaucetFleet(t *testing.T) {
	request := Request{
		Kind:        KindFaucet,
		Count:       1,
		BaseName:    "faucet",
		ProgramPath: "/usr/local/bin/chunkmesh-faucet",
		LogDirRoot:  "/var/log/chunkmesh",
		Username:    "chunkmesh",
	}

	descriptors, err := Plan(request)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	args := descriptors[0].Args
	if args[len(args)-1] != "server" {
		t.Errorf("faucet args do not end with server subcommand: %v", args)
	}
}

func TestPlanDaemonFleet(t *testing.T) {
	request := Request{
		Kind:          KindDaemon,
		Count:         1,
		BaseName:      "chunkmeshd",
		ProgramPath:   "/usr/local/bin/chunkmeshd",
		ListenAddress: netip.MustParseAddr("127.0.0.1"),
		ListenPort:    12500,
		Username:      "chunkmesh",
	}

	descriptors, err := Plan(request)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	wantArgs := []string{"--address", "127.0.0.1", "--port", "12500"}
	if !reflect.DeepEqual(descriptors[0].Args, wantArgs) {
		t.Errorf("Args = %v, want %v", descriptors[0].Args, wantArgs)
	}
}

func TestPlanDaemonRequiresListenParameters(t *testing.T) {
	request := Request{
		Kind:        KindDaemon,
		Count:       1,
		BaseName:    "chunkmeshd",
		ProgramPath: "/usr/local/bin/chunkmeshd",
	}
	if _, err := Plan(request); err == nil {
		t.Error("Plan of daemon fleet without listen address succeeded")
	}
}
