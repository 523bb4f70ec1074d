// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package evmnet

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a validated EVM chain address. The zero value represents
// "no address"; construct through [ParseAddress].
type Address struct {
	inner common.Address
}

// ParseAddress validates a 0x-prefixed 20-byte hex address.
func ParseAddress(raw string) (Address, error) {
	if !common.IsHexAddress(raw) {
		return Address{}, fmt.Errorf("invalid EVM address %q", raw)
	}
	return Address{inner: common.HexToAddress(raw)}, nil
}

// String returns the EIP-55 checksummed form.
func (a Address) String() string { return a.inner.Hex() }

// IsZero reports whether a is the zero address. Provisioning treats
// the zero address as "unset" — it is never a legitimate rewards or
// contract address.
func (a Address) IsZero() bool { return a.inner == (common.Address{}) }

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	if a.IsZero() {
		return nil, nil
	}
	return []byte(a.inner.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// produces a zero value.
func (a *Address) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal address: %w", err)
	}
	*a = parsed
	return nil
}
