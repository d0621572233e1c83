// Package oasgen generates TypeScript artifacts from OpenAPI 3.0/3.1
// specifications: plain type declarations, zod validation schemas, a
// Cypress test-automation client and a k6 load-testing client.
//
// This package offers a small convenience API over the pkg/ tree.
//
// Quick Start:
//
//	import "github.com/oasgen-dev/oasgen"
//
//	// Emit zod schemas for one spec
//	err := oasgen.Generate(oasgen.Options{
//		Spec:   "./openapi.yaml",
//		Type:   "schema",
//		OutDir: "./generated",
//	})
//
// For batch runs and the full option surface, see pkg/config and
// pkg/generator.
package oasgen

import (
	"errors"
	"path/filepath"

	"github.com/oasgen-dev/oasgen/pkg/batch"
	"github.com/oasgen-dev/oasgen/pkg/config"
	"github.com/oasgen-dev/oasgen/pkg/generator"
	"github.com/oasgen-dev/oasgen/pkg/ir"
	"github.com/oasgen-dev/oasgen/pkg/openapi"
)

// Options configures a single-spec, single-target generation.
type Options struct {
	// Spec is the path to the OpenAPI document.
	Spec string
	// Type selects the target: types, schema, browser or loadtest.
	Type string
	// OutDir is the output directory for the artifact.
	OutDir string
	// PackageName names the generated client class; defaults to the spec
	// file name.
	PackageName string
	// Warn receives non-fatal diagnostics; nil discards them.
	Warn ir.WarnFunc
}

// Generate generates one artifact from one spec.
func Generate(opts Options) error {
	absOut, err := filepath.Abs(opts.OutDir)
	if err != nil {
		return err
	}
	cfg := &config.Config{
		Specs: []config.Spec{
			{
				Path: opts.Spec,
				Targets: []config.Target{
					{
						Type:        opts.Type,
						OutDir:      absOut,
						PackageName: opts.PackageName,
					},
				},
			},
		},
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return generator.NewService(opts.Warn).Generate(cfg)
}

// GenerateFromConfig runs every spec in a YAML configuration file with the
// default batch concurrency.
//
// Example:
//
//	err := oasgen.GenerateFromConfig("./oasgen.yaml", nil)
func GenerateFromConfig(configPath string, warn ir.WarnFunc) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	runner := batch.NewRunner(generator.NewService(warn), 0)
	results := runner.Run(cfg.Specs)
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// ValidateSpec validates an OpenAPI specification file without generating
// anything.
func ValidateSpec(specPath string) error {
	return openapi.ValidateDocument(specPath)
}
