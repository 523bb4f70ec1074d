// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package planstore

import (
	"github.com/chunkmesh-foundation/chunkmesh/provision"
	"github.com/chunkmesh-foundation/chunkmesh/servicemgr"
)

// Manifest is the persisted record of one fleet expansion.
type Manifest struct {
	// Kind is the provisioned service kind ("node", "auditor",
	// "faucet", "daemon").
	Kind string `cbor:"kind"`

	// BaseName is the request's identity base.
	BaseName string `cbor:"base_name"`

	// Count is the instance count the request asked for.
	Count int `cbor:"count"`

	// Services holds one record per produced descriptor, in instance
	// index order.
	Services []ServiceRecord `cbor:"services"`
}

// ServiceRecord is the manifest form of one service descriptor.
type ServiceRecord struct {
	Label       string              `cbor:"label"`
	Program     string              `cbor:"program"`
	Args        []string            `cbor:"args"`
	Environment []servicemgr.EnvVar `cbor:"environment,omitempty"`
	AutoStart   bool                `cbor:"autostart"`
	Username    string              `cbor:"username,omitempty"`
}

// NewManifest builds the manifest for a planned request and its
// descriptors. The descriptors must be the output of
// provision.Plan(request); order is preserved.
func NewManifest(request provision.Request, descriptors []servicemgr.Descriptor) Manifest {
	services := make([]ServiceRecord, len(descriptors))
	for i, descriptor := range descriptors {
		services[i] = ServiceRecord{
			Label:       descriptor.Label.String(),
			Program:     descriptor.Program,
			Args:        descriptor.Args,
			Environment: descriptor.Environment,
			AutoStart:   descriptor.AutoStart,
			Username:    descriptor.Username,
		}
	}
	return Manifest{
		Kind:     request.Kind.String(),
		BaseName: request.BaseName,
		Count:    request.Count,
		Services: services,
	}
}
