package cli

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/oasgen-dev/oasgen/pkg/batch"
	"github.com/oasgen-dev/oasgen/pkg/config"
	"github.com/oasgen-dev/oasgen/pkg/generator"
	"github.com/oasgen-dev/oasgen/pkg/openapi"
)

type FallbackParams struct {
	Spec        string
	Type        string
	OutDir      string
	PackageName string
}

type RunGenerateParams struct {
	ConfigPath  string
	SingleSpec  string
	Concurrency int
	Fallback    FallbackParams
}

func RunValidate(input string) error {
	return openapi.ValidateDocument(input)
}

func RunGenerate(p RunGenerateParams) error {
	var cfg *config.Config
	if p.ConfigPath == "" {
		if p.Fallback.Spec == "" || p.Fallback.Type == "" || p.Fallback.OutDir == "" {
			return errors.New("either --config or all of --input, --type, --out must be provided")
		}
		cfg = &config.Config{
			Specs: []config.Spec{
				{
					Path: absPath(p.Fallback.Spec),
					Targets: []config.Target{
						{
							Type:        p.Fallback.Type,
							OutDir:      absPath(p.Fallback.OutDir),
							PackageName: p.Fallback.PackageName,
						},
					},
				},
			},
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	} else {
		var err error
		cfg, err = config.Load(p.ConfigPath)
		if err != nil {
			return err
		}
	}

	specs := cfg.Specs
	if p.SingleSpec != "" {
		specs = nil
		for _, s := range cfg.Specs {
			if s.Name == p.SingleSpec {
				specs = append(specs, s)
			}
		}
		if len(specs) == 0 {
			return fmt.Errorf("no spec named %q in config", p.SingleSpec)
		}
	}

	service := generator.NewService(func(msg string) {
		log.Printf("warning: %s", msg)
	})
	runner := batch.NewRunner(service, p.Concurrency)
	results := runner.Run(specs)

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("spec %s: %w", res.Spec, res.Err))
		}
	}
	return errors.Join(errs...)
}

func absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, _ := filepath.Abs(p)
	return abs
}
