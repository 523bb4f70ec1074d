// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import "fmt"

// LogFormat selects the log output format of a provisioned service.
// The zero value means "unset" — no --log-format flag is emitted.
type LogFormat string

const (
	// LogFormatDefault is the service binaries' human-readable format.
	LogFormatDefault LogFormat = "default"

	// LogFormatJSON is newline-delimited JSON.
	LogFormatJSON LogFormat = "json"
)

// ParseLogFormat parses a log format name from a fleet request file.
func ParseLogFormat(name string) (LogFormat, error) {
	switch name {
	case "default":
		return LogFormatDefault, nil
	case "json":
		return LogFormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q (known: default, json)", name)
	}
}
