// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"reflect"
	"testing"

	"github.com/chunkmesh-foundation/chunkmesh/lib/peeraddr"
)

func TestAuditorBuild(t *testing.T) {
	descriptor, err := AuditorBuilder{
		Name:        "auditor",
		ProgramPath: "/usr/local/bin/chunkmesh-auditor",
		LogDir:      "/logs/auditor",
		Username:    "chunkmesh",
	}.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	wantArgs := []string{"--log-output-dest", "/logs/auditor"}
	if !reflect.DeepEqual(descriptor.Args, wantArgs) {
		t.Errorf("Args = %v, want %v", descriptor.Args, wantArgs)
	}
	if !descriptor.AutoStart {
		t.Error("auditor descriptor does not autostart")
	}
	if descriptor.Username != "chunkmesh" {
		t.Errorf("Username = %q, want chunkmesh", descriptor.Username)
	}
}

func TestAuditorBuildPeersAndKey(t *testing.T) {
	peers, err := peeraddr.ParseList([]string{
		"/ip4/127.0.0.1/tcp/8080",
		"/ip4/192.168.1.1/tcp/8081",
	})
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}

	descriptor, err := AuditorBuilder{
		Name:              "auditor",
		ProgramPath:       "/usr/local/bin/chunkmesh-auditor",
		LogDir:            "/logs/auditor",
		BootstrapPeers:    peers,
		BetaEncryptionKey: "test-key",
		Username:          "chunkmesh",
	}.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	wantArgs := []string{
		"--log-output-dest", "/logs/auditor",
		"--peer", "/ip4/127.0.0.1/tcp/8080,/ip4/192.168.1.1/tcp/8081",
		"--beta-encryption-key", "test-key",
	}
	if !reflect.DeepEqual(descriptor.Args, wantArgs) {
		t.Errorf("Args = %v, want %v", descriptor.Args, wantArgs)
	}
}

func TestAuditorBuildInvalidIdentity(t *testing.T) {
	_, err := AuditorBuilder{
		Name:        "",
		ProgramPath: "/usr/local/bin/chunkmesh-auditor",
		LogDir:      "/logs",
		Username:    "chunkmesh",
	}.Build()
	if err == nil {
		t.Error("Build with empty name succeeded")
	}
}
