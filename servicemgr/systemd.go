// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package servicemgr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manager registers service descriptors with an OS-level service
// manager. Implementations install only — starting, stopping, and
// monitoring belong to operational tooling outside provisioning.
type Manager interface {
	Install(descriptor Descriptor) error
}

// SystemdManager installs descriptors as systemd unit files.
type SystemdManager struct {
	// UnitDir is the directory unit files are written to
	// (e.g. "/etc/systemd/system").
	UnitDir string
}

// Install renders the descriptor to a unit file and writes it as
// <UnitDir>/<label>.service. The file is written atomically via a
// temporary file and rename so a crashed install never leaves a
// half-written unit.
func (m *SystemdManager) Install(descriptor Descriptor) error {
	if descriptor.Label.IsZero() {
		return fmt.Errorf("installing service: descriptor has no label")
	}
	if m.UnitDir == "" {
		return fmt.Errorf("installing %s: unit directory not configured", descriptor.Label)
	}

	unit := RenderUnit(descriptor)
	path := filepath.Join(m.UnitDir, descriptor.Label.String()+".service")

	temp, err := os.CreateTemp(m.UnitDir, "."+descriptor.Label.String()+".service.*")
	if err != nil {
		return fmt.Errorf("installing %s: %w", descriptor.Label, err)
	}
	tempPath := temp.Name()
	if _, err := temp.WriteString(unit); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("installing %s: %w", descriptor.Label, err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("installing %s: %w", descriptor.Label, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("installing %s: %w", descriptor.Label, err)
	}
	return nil
}

// RenderUnit renders a descriptor as systemd unit file content. The
// rendering is a pure function of the descriptor: same input, same
// bytes.
func RenderUnit(descriptor Descriptor) string {
	var b strings.Builder

	b.WriteString("[Unit]\n")
	fmt.Fprintf(&b, "Description=%s\n", descriptor.Label)
	b.WriteString("\n[Service]\n")
	fmt.Fprintf(&b, "ExecStart=%s\n", descriptor.CommandLine())
	b.WriteString("Restart=on-failure\n")
	for _, env := range descriptor.Environment {
		fmt.Fprintf(&b, "Environment=%s\n", quoteArg(env.Name+"="+env.Value))
	}
	if descriptor.Username != "" {
		fmt.Fprintf(&b, "User=%s\n", descriptor.Username)
	}
	if descriptor.WorkingDirectory != "" {
		fmt.Fprintf(&b, "WorkingDirectory=%s\n", descriptor.WorkingDirectory)
	}

	if descriptor.AutoStart {
		b.WriteString("\n[Install]\nWantedBy=multi-user.target\n")
	}

	return b.String()
}
