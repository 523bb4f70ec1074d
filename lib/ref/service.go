// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strconv"
)

// maxServiceNameLength bounds service names so that derived paths
// (unit files, per-instance data and log directories) stay well under
// filesystem name limits even after suffixing.
const maxServiceNameLength = 64

// allowedNameChars is the set of characters permitted in a service
// name: a-z, A-Z, 0-9, and the symbols . _ -. This matches what
// systemd accepts in a unit name without escaping.
var allowedNameChars [256]bool

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		allowedNameChars[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		allowedNameChars[c] = true
	}
	for c := byte('0'); c <= '9'; c++ {
		allowedNameChars[c] = true
	}
	allowedNameChars['.'] = true
	allowedNameChars['_'] = true
	allowedNameChars['-'] = true
}

// InvalidNameError reports a service name that fails identity-syntax
// validation.
type InvalidNameError struct {
	// Name is the rejected input.
	Name string

	// Reason describes which rule the input broke.
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid service name %q: %s", e.Name, e.Reason)
}

// ServiceName is a validated service label. The zero value is not a
// valid name; construct through [ParseServiceName].
type ServiceName struct {
	name string
}

// ParseServiceName validates raw and returns it as a ServiceName.
// Names must be non-empty, at most 64 characters, start with a letter,
// and contain only a-z, A-Z, 0-9, ., _, -.
func ParseServiceName(raw string) (ServiceName, error) {
	if raw == "" {
		return ServiceName{}, &InvalidNameError{Name: raw, Reason: "name is empty"}
	}
	if len(raw) > maxServiceNameLength {
		return ServiceName{}, &InvalidNameError{
			Name:   raw,
			Reason: fmt.Sprintf("%d characters, maximum is %d", len(raw), maxServiceNameLength),
		}
	}
	first := raw[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z') {
		return ServiceName{}, &InvalidNameError{Name: raw, Reason: "must start with a letter"}
	}
	for i := 0; i < len(raw); i++ {
		if !allowedNameChars[raw[i]] {
			return ServiceName{}, &InvalidNameError{
				Name:   raw,
				Reason: fmt.Sprintf("invalid character %q at position %d (allowed: a-z, A-Z, 0-9, ., _, -)", raw[i], i),
			}
		}
	}
	return ServiceName{name: raw}, nil
}

// Indexed returns the name with a 1-based numeric instance suffix
// appended (e.g. "chunknode".Indexed(0) is "chunknode1"). The result
// is always valid: digits are in the allowed character set and the
// base name's length headroom covers any realistic instance count.
func (n ServiceName) Indexed(index int) ServiceName {
	return ServiceName{name: n.name + strconv.Itoa(index+1)}
}

// String returns the name.
func (n ServiceName) String() string { return n.name }

// IsZero reports whether n is the zero value (no name).
func (n ServiceName) IsZero() bool { return n.name == "" }

// MarshalText implements encoding.TextMarshaler.
func (n ServiceName) MarshalText() ([]byte, error) {
	return []byte(n.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// produces a zero value.
func (n *ServiceName) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*n = ServiceName{}
		return nil
	}
	parsed, err := ParseServiceName(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal ServiceName: %w", err)
	}
	*n = parsed
	return nil
}
