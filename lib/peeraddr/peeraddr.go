// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package peeraddr

import (
	"fmt"
	"strings"
)

// Addr is a validated bootstrap peer address in canonical string form,
// e.g. "/ip4/127.0.0.1/tcp/8080". The zero value is not a valid
// address; construct through [Parse].
type Addr struct {
	addr string
}

// Parse validates the shape of a peer address string. Addresses must
// start with "/", contain no whitespace, and have no empty segments.
func Parse(raw string) (Addr, error) {
	if raw == "" {
		return Addr{}, fmt.Errorf("peer address is empty")
	}
	if raw[0] != '/' {
		return Addr{}, fmt.Errorf("peer address %q must start with /", raw)
	}
	if strings.ContainsAny(raw, " \t\r\n") {
		return Addr{}, fmt.Errorf("peer address %q contains whitespace", raw)
	}
	if raw == "/" || strings.HasSuffix(raw, "/") {
		return Addr{}, fmt.Errorf("peer address %q must not end with /", raw)
	}
	if strings.Contains(raw, "//") {
		return Addr{}, fmt.Errorf("peer address %q contains empty segment", raw)
	}
	return Addr{addr: raw}, nil
}

// ParseList parses each element of raw, preserving input order.
func ParseList(raw []string) ([]Addr, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	addrs := make([]Addr, 0, len(raw))
	for _, s := range raw {
		addr, err := Parse(s)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// Join returns the comma-joined canonical forms of addrs, preserving
// order. This is the value format the service binaries expect for
// their --peer flag.
func Join(addrs []Addr) string {
	parts := make([]string, len(addrs))
	for i, addr := range addrs {
		parts[i] = addr.addr
	}
	return strings.Join(parts, ",")
}

// String returns the canonical string form.
func (a Addr) String() string { return a.addr }

// IsZero reports whether a is the zero value.
func (a Addr) IsZero() bool { return a.addr == "" }

// MarshalText implements encoding.TextMarshaler.
func (a Addr) MarshalText() ([]byte, error) {
	return []byte(a.addr), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// produces a zero value.
func (a *Addr) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*a = Addr{}
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal peer address: %w", err)
	}
	*a = parsed
	return nil
}
