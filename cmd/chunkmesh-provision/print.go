// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/chunkmesh-foundation/chunkmesh/planstore"
)

// formatPlan renders the human-readable plan summary printed on
// stdout after a successful expansion. One line per service plus the
// manifest fingerprint; the full command lines live in the manifest.
func formatPlan(manifest planstore.Manifest, digest planstore.Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "planned %d %s service(s) from base %q\n",
		manifest.Count, manifest.Kind, manifest.BaseName)
	for _, service := range manifest.Services {
		fmt.Fprintf(&b, "  %s: %s %s\n", service.Label, service.Program, strings.Join(service.Args, " "))
	}
	fmt.Fprintf(&b, "plan fingerprint: %s\n", digest)
	return b.String()
}
