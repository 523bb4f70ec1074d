// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package planstore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/chunkmesh-foundation/chunkmesh/lib/evmnet"
	"github.com/chunkmesh-foundation/chunkmesh/provision"
)

func testRequest(t *testing.T) provision.Request {
	t.Helper()
	rewards, err := evmnet.ParseAddress("0x03B770D9cD32077cC0bF330c13C114a87643B124")
	if err != nil {
		t.Fatalf("ParseAddress failed: %v", err)
	}
	ports, err := provision.ParsePortRange("8081-8083")
	if err != nil {
		t.Fatalf("ParsePortRange failed: %v", err)
	}
	return provision.Request{
		Kind:           provision.KindNode,
		Count:          3,
		BaseName:       "chunknode",
		ProgramPath:    "/usr/local/bin/chunkmesh-node",
		DataDirRoot:    "/var/lib/chunkmesh",
		LogDirRoot:     "/var/log/chunkmesh",
		RPCPorts:       &ports,
		RewardsAddress: rewards,
		EvmNetwork:     evmnet.ArbitrumOne,
		AutoStart:      true,
	}
}

func testManifest(t *testing.T) Manifest {
	t.Helper()
	request := testRequest(t)
	descriptors, err := provision.Plan(request)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	return NewManifest(request, descriptors)
}

func TestNewManifest(t *testing.T) {
	manifest := testManifest(t)
	if manifest.Kind != "node" {
		t.Errorf("Kind = %q, want node", manifest.Kind)
	}
	if manifest.Count != 3 || len(manifest.Services) != 3 {
		t.Errorf("Count = %d, Services = %d, want 3 each", manifest.Count, len(manifest.Services))
	}
	if manifest.Services[0].Label != "chunknode1" {
		t.Errorf("first label = %q, want chunknode1", manifest.Services[0].Label)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			store := &Store{Dir: t.TempDir()}
			manifest := testManifest(t)

			digest, path, err := store.Save(manifest, tag)
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if want := filepath.Join(store.Dir, digest.String()+".plan"); path != want {
				t.Errorf("path = %q, want %q", path, want)
			}

			loaded, loadedDigest, err := store.Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if loadedDigest != digest {
				t.Errorf("loaded digest %s != saved digest %s", loadedDigest, digest)
			}
			if !reflect.DeepEqual(loaded, manifest) {
				t.Errorf("loaded manifest differs:\ngot  %+v\nwant %+v", loaded, manifest)
			}
		})
	}
}

func TestDigestStableAcrossSaves(t *testing.T) {
	store := &Store{Dir: t.TempDir()}
	manifest := testManifest(t)

	first, _, err := store.Save(manifest, CompressionZstd)
	if err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	second, _, err := store.Save(manifest, CompressionNone)
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if first != second {
		t.Error("fingerprint depends on compression tag; it must cover the encoded payload only")
	}
}

func TestDigestChangesWithPlan(t *testing.T) {
	request := testRequest(t)
	descriptors, err := provision.Plan(request)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	baseline := NewManifest(request, descriptors)

	changed := testRequest(t)
	changed.Local = true
	changedDescriptors, err := provision.Plan(changed)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	drifted := NewManifest(changed, changedDescriptors)

	store := &Store{Dir: t.TempDir()}
	baselineDigest, _, err := store.Save(baseline, CompressionNone)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	driftedDigest, _, err := store.Save(drifted, CompressionNone)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if baselineDigest == driftedDigest {
		t.Error("different plans share a fingerprint")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	store := &Store{Dir: t.TempDir()}
	path := filepath.Join(store.Dir, "garbage.plan")
	if err := os.WriteFile(path, []byte("not a manifest"), 0o644); err != nil {
		t.Fatalf("writing garbage file: %v", err)
	}
	if _, _, err := store.Load(path); err == nil {
		t.Error("Load of garbage file succeeded")
	}
}

func TestParseCompressionTag(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		tag, err := ParseCompressionTag(name)
		if err != nil {
			t.Errorf("ParseCompressionTag(%q) failed: %v", name, err)
		}
		if tag.String() != name {
			t.Errorf("round trip of %q produced %q", name, tag.String())
		}
	}
	if _, err := ParseCompressionTag("gzip"); err == nil {
		t.Error("ParseCompressionTag(gzip) succeeded, want error")
	}
}
