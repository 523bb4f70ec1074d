// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package evmnet

import (
	"fmt"
	"net/url"
	"strings"
)

// Network tokens. The token is emitted verbatim as the trailing
// positional argument of a node's command line — these values are
// protocol constants shared with the node binary's own CLI parser.
const (
	tokenArbitrumOne     = "evm-arbitrum-one"
	tokenArbitrumSepolia = "evm-arbitrum-sepolia"
	tokenCustom          = "evm-custom"
)

// Network selects the EVM payment network for a node batch. The zero
// value means "no network selected" and is rejected by the planner.
// Use the named package values or [NewCustom].
type Network struct {
	token  string
	custom *CustomNetwork
}

// Named public networks.
var (
	// ArbitrumOne is the Arbitrum One mainnet.
	ArbitrumOne = Network{token: tokenArbitrumOne}

	// ArbitrumSepolia is the Arbitrum Sepolia testnet.
	ArbitrumSepolia = Network{token: tokenArbitrumSepolia}
)

// CustomNetwork carries the parameters of an arbitrary EVM-compatible
// chain. All three fields are mandatory; values of this type only
// exist behind a Network constructed by [NewCustom].
type CustomNetwork struct {
	// RPCURL is the HTTP JSON-RPC endpoint of the chain.
	RPCURL string

	// PaymentTokenAddress is the ERC-20 token contract used to pay
	// storage providers.
	PaymentTokenAddress Address

	// DataPaymentsAddress is the data payments contract that records
	// payment proofs.
	DataPaymentsAddress Address
}

// IncompleteCustomNetworkError reports a custom network selection with
// one or more required fields missing.
type IncompleteCustomNetworkError struct {
	// Missing lists the absent fields in argument-emission order.
	Missing []string
}

func (e *IncompleteCustomNetworkError) Error() string {
	return fmt.Sprintf("incomplete custom EVM network: missing %s", strings.Join(e.Missing, ", "))
}

// NewCustom constructs a custom network selection. All three
// parameters are required; a missing or malformed field fails with
// *IncompleteCustomNetworkError so the three arguments the node
// receives are always emitted together or not at all.
func NewCustom(rpcURL string, paymentToken, dataPayments Address) (Network, error) {
	var missing []string
	if rpcURL == "" {
		missing = append(missing, "rpc-url")
	} else if parsed, err := url.Parse(rpcURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Network{}, fmt.Errorf("custom EVM network: invalid rpc-url %q", rpcURL)
	}
	if paymentToken.IsZero() {
		missing = append(missing, "payment-token-address")
	}
	if dataPayments.IsZero() {
		missing = append(missing, "data-payments-address")
	}
	if len(missing) > 0 {
		return Network{}, &IncompleteCustomNetworkError{Missing: missing}
	}
	return Network{
		token: tokenCustom,
		custom: &CustomNetwork{
			RPCURL:              rpcURL,
			PaymentTokenAddress: paymentToken,
			DataPaymentsAddress: dataPayments,
		},
	}, nil
}

// ParseNamed resolves a named network by its short name ("arbitrum-one",
// "arbitrum-sepolia") as written in fleet request files.
func ParseNamed(name string) (Network, error) {
	switch name {
	case "arbitrum-one":
		return ArbitrumOne, nil
	case "arbitrum-sepolia":
		return ArbitrumSepolia, nil
	default:
		return Network{}, fmt.Errorf("unknown EVM network %q (known: arbitrum-one, arbitrum-sepolia)", name)
	}
}

// Token returns the canonical network token emitted as the node's
// trailing positional argument.
func (n Network) Token() string { return n.token }

// Custom returns the custom network parameters and true when n is a
// custom selection.
func (n Network) Custom() (*CustomNetwork, bool) {
	return n.custom, n.custom != nil
}

// IsZero reports whether n is the zero value (no selection).
func (n Network) IsZero() bool { return n.token == "" }

// String returns the network token, or "<none>" for the zero value.
func (n Network) String() string {
	if n.token == "" {
		return "<none>"
	}
	return n.token
}
