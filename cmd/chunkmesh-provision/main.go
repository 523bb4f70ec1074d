// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

// chunkmesh-provision expands a declarative fleet request into service
// descriptors, records the plan in the plan store, and optionally
// installs the services as systemd units.
//
// The fleet request is a YAML file naming a service kind (node,
// auditor, faucet, or daemon), an instance count, an identity base,
// and the kind's parameters. Expansion is atomic: either every
// instance of the batch is planned, or none is, so a half-provisioned
// fleet is never written.
//
// Every successful expansion is persisted as a content-addressed plan
// manifest under --plan-dir. The manifest fingerprint printed on
// completion identifies the exact batch for later inspection.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/chunkmesh-foundation/chunkmesh/lib/config"
	"github.com/chunkmesh-foundation/chunkmesh/lib/process"
	"github.com/chunkmesh-foundation/chunkmesh/lib/version"
	"github.com/chunkmesh-foundation/chunkmesh/planstore"
	"github.com/chunkmesh-foundation/chunkmesh/provision"
	"github.com/chunkmesh-foundation/chunkmesh/servicemgr"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		planDir     string
		compression string
		install     bool
		unitDir     string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("chunkmesh-provision", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "fleet request file (default: $CHUNKMESH_FLEET)")
	flagSet.StringVar(&planDir, "plan-dir", "/var/lib/chunkmesh/plans", "directory for plan manifests")
	flagSet.StringVar(&compression, "compression", "zstd", "plan manifest compression: none, lz4, zstd")
	flagSet.BoolVar(&install, "install", false, "install the planned services as systemd units")
	flagSet.StringVar(&unitDir, "unit-dir", "/etc/systemd/system", "systemd unit directory for --install")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}
	if showVersion {
		version.Print("chunkmesh-provision")
		return nil
	}
	if arguments := flagSet.Args(); len(arguments) > 0 {
		return fmt.Errorf("unexpected argument: %s", arguments[0])
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	tag, err := planstore.ParseCompressionTag(compression)
	if err != nil {
		return err
	}

	var file *config.FleetFile
	if configPath != "" {
		file, err = config.LoadFile(configPath)
	} else {
		file, err = config.Load()
	}
	if err != nil {
		return err
	}

	request, err := file.Request()
	if err != nil {
		return err
	}

	descriptors, err := provision.Plan(request)
	if err != nil {
		return err
	}
	logger.Info("fleet planned",
		"kind", request.Kind.String(),
		"base_name", request.BaseName,
		"count", len(descriptors))

	store := &planstore.Store{Dir: planDir}
	manifest := planstore.NewManifest(request, descriptors)
	digest, path, err := store.Save(manifest, tag)
	if err != nil {
		return err
	}
	logger.Info("plan manifest saved", "fingerprint", digest.String(), "path", path)

	if install {
		manager := &servicemgr.SystemdManager{UnitDir: unitDir}
		for _, descriptor := range descriptors {
			if err := manager.Install(descriptor); err != nil {
				return fmt.Errorf("installing %s: %w", descriptor.Label, err)
			}
			logger.Info("service installed", "label", descriptor.Label.String())
		}
	}

	fmt.Print(formatPlan(manifest, digest))
	return nil
}
