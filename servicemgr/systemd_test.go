// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package servicemgr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chunkmesh-foundation/chunkmesh/lib/ref"
)

func testDescriptor(t *testing.T) Descriptor {
	t.Helper()
	label, err := ref.ParseServiceName("chunknode1")
	if err != nil {
		t.Fatalf("ParseServiceName failed: %v", err)
	}
	return Descriptor{
		Label:   label,
		Program: "/usr/local/bin/chunkmesh-node",
		Args:    []string{"--rpc", "127.0.0.1:8080", "--root-dir", "/data/chunknode1"},
		Environment: []EnvVar{
			{Name: "RUST_LOG", Value: "info"},
		},
		AutoStart: true,
		Username:  "chunkmesh",
	}
}

func TestRenderUnit(t *testing.T) {
	unit := RenderUnit(testDescriptor(t))

	for _, want := range []string{
		"[Unit]",
		"Description=chunknode1",
		"[Service]",
		"ExecStart=/usr/local/bin/chunkmesh-node --rpc 127.0.0.1:8080 --root-dir /data/chunknode1",
		"Environment=RUST_LOG=info",
		"User=chunkmesh",
		"[Install]",
		"WantedBy=multi-user.target",
	} {
		if !strings.Contains(unit, want) {
			t.Errorf("unit missing %q:\n%s", want, unit)
		}
	}
}

func TestRenderUnitNoAutoStart(t *testing.T) {
	descriptor := testDescriptor(t)
	descriptor.AutoStart = false
	unit := RenderUnit(descriptor)
	if strings.Contains(unit, "[Install]") {
		t.Errorf("non-autostart unit has [Install] section:\n%s", unit)
	}
}

func TestRenderUnitDeterministic(t *testing.T) {
	descriptor := testDescriptor(t)
	if RenderUnit(descriptor) != RenderUnit(descriptor) {
		t.Error("RenderUnit is not deterministic")
	}
}

func TestCommandLineQuoting(t *testing.T) {
	descriptor := testDescriptor(t)
	descriptor.Args = []string{"--owner", "team alpha"}
	line := descriptor.CommandLine()
	if !strings.Contains(line, `--owner "team alpha"`) {
		t.Errorf("CommandLine did not quote argument with space: %s", line)
	}
}

func TestSystemdManagerInstall(t *testing.T) {
	dir := t.TempDir()
	manager := &SystemdManager{UnitDir: dir}
	descriptor := testDescriptor(t)

	if err := manager.Install(descriptor); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "chunknode1.service"))
	if err != nil {
		t.Fatalf("reading unit file: %v", err)
	}
	if string(content) != RenderUnit(descriptor) {
		t.Error("installed unit file does not match RenderUnit output")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading unit dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("unit dir has %d entries, want 1 (no leftover temp files)", len(entries))
	}
}

func TestSystemdManagerRejectsUnlabeled(t *testing.T) {
	manager := &SystemdManager{UnitDir: t.TempDir()}
	if err := manager.Install(Descriptor{Program: "/bin/true"}); err == nil {
		t.Error("Install of unlabeled descriptor succeeded, want error")
	}
}
