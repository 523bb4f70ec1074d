// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package servicemgr

import (
	"strings"

	"github.com/chunkmesh-foundation/chunkmesh/lib/ref"
)

// EnvVar is one environment pair passed to a service process. A slice
// of EnvVar preserves declaration order, unlike a map.
type EnvVar struct {
	Name  string `cbor:"name"`
	Value string `cbor:"value"`
}

// Descriptor is the kind-agnostic output of fleet provisioning: one
// fully-formed, individually runnable service specification.
type Descriptor struct {
	// Label is the validated identity the service is registered under.
	Label ref.ServiceName

	// Program is the absolute path of the binary to execute.
	Program string

	// Args is the ordered argument sequence. Order is part of the
	// contract; builders emit a documented fixed order.
	Args []string

	// Environment holds optional environment pairs, in declaration
	// order. Nil means "inherit nothing beyond the manager's default".
	Environment []EnvVar

	// AutoStart requests that the service manager start the service
	// on boot.
	AutoStart bool

	// Username optionally names the user to run the service as. Empty
	// means the manager's default.
	Username string

	// WorkingDirectory is left empty by provisioning; the service
	// manager applies its own default.
	WorkingDirectory string
}

// CommandLine returns the program and arguments as a single
// shell-quoted string for logs and dry-run output.
func (d Descriptor) CommandLine() string {
	parts := make([]string, 0, len(d.Args)+1)
	parts = append(parts, quoteArg(d.Program))
	for _, arg := range d.Args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

// quoteArg wraps an argument in double quotes when it contains
// characters that systemd's ExecStart parser or a shell would split
// on, escaping embedded quotes and backslashes.
func quoteArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\"'\\$") {
		return arg
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(arg); i++ {
		switch arg[i] {
		case '"', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(arg[i])
	}
	b.WriteByte('"')
	return b.String()
}
