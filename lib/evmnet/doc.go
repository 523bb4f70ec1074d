// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// Package evmnet models the EVM payment network a chunkmesh node batch
// is attached to.
//
// A [Network] is either one of a closed set of named public networks
// ([ArbitrumOne], [ArbitrumSepolia]) or a custom network carrying the
// three parameters a node needs to talk to an arbitrary EVM-compatible
// chain: the HTTP RPC endpoint, the payment token contract address,
// and the data payments contract address. [NewCustom] makes the three
// fields simultaneously mandatory — an incomplete custom network is a
// construction-time failure ([*IncompleteCustomNetworkError]), never a
// runtime condition downstream code handles.
//
// [Address] wraps an EIP-55 checksummed chain address. Rewards
// addresses and contract addresses are consumed as opaque values; this
// package validates hex shape and emits canonical checksummed strings,
// nothing more.
package evmnet
