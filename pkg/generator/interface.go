package generator

import (
	"errors"
	"fmt"
	"os"

	"github.com/oasgen-dev/oasgen/pkg/config"
	"github.com/oasgen-dev/oasgen/pkg/generator/browser"
	"github.com/oasgen-dev/oasgen/pkg/generator/loadtest"
	"github.com/oasgen-dev/oasgen/pkg/generator/schema"
	"github.com/oasgen-dev/oasgen/pkg/generator/types"
	"github.com/oasgen-dev/oasgen/pkg/ir"
	"github.com/oasgen-dev/oasgen/pkg/openapi"
)

// Generator defines the interface for target emitters.
type Generator interface {
	// Generate writes the target's artifact from the resolved model.
	Generate(target config.Target, model *ir.Model) error
	// Type returns the type identifier for this generator (e.g. "schema").
	Type() string
}

// Registry manages available generators.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates an empty generator registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register adds a generator to the registry.
func (r *Registry) Register(gen Generator) {
	r.generators[gen.Type()] = gen
}

// Get retrieves a generator by type.
func (r *Registry) Get(genType string) (Generator, bool) {
	gen, exists := r.generators[genType]
	return gen, exists
}

// AvailableTypes returns all registered generator types.
func (r *Registry) AvailableTypes() []string {
	out := make([]string, 0, len(r.generators))
	for t := range r.generators {
		out = append(out, t)
	}
	return out
}

// Service sequences loading, extraction, composition and emission for one
// or more specs. The parse cache is shared across invocations so batches
// touching the same document parse it once.
type Service struct {
	registry *Registry
	cache    *openapi.Cache
	warn     ir.WarnFunc
}

// NewService creates a generator service with the default targets
// registered.
func NewService(warn ir.WarnFunc) *Service {
	registry := NewRegistry()
	registry.Register(types.New())
	registry.Register(schema.New())
	registry.Register(browser.New())
	registry.Register(loadtest.New())
	return NewServiceWithRegistry(registry, warn)
}

// NewServiceWithRegistry creates a generator service with a custom registry.
func NewServiceWithRegistry(registry *Registry, warn ir.WarnFunc) *Service {
	if warn == nil {
		warn = func(string) {}
	}
	cache, _ := openapi.NewCache(openapi.DefaultCacheSize)
	return &Service{registry: registry, cache: cache, warn: warn}
}

// Registry returns the generator registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// GenerateSpec generates every target of one spec. Schema-fatal composition
// errors (cyclic property dependencies) do not stop emission of the
// remaining schemas or targets; they are collected and returned after the
// spec has been processed.
func (s *Service) GenerateSpec(spec config.Spec) error {
	doc, err := s.cache.Load(spec.Path)
	if err != nil {
		return err
	}

	var errs []error
	for _, target := range spec.Targets {
		gen, exists := s.registry.Get(target.Type)
		if !exists {
			return fmt.Errorf("spec %s: unsupported target type %q (available: %v)",
				spec.Name, target.Type, s.registry.AvailableTypes())
		}

		model, modelErr := s.buildModel(spec, doc, target)
		if model == nil {
			return modelErr
		}
		if modelErr != nil {
			errs = append(errs, fmt.Errorf("spec %s, target %s: %w", spec.Name, target.Type, modelErr))
		}

		if err := os.MkdirAll(target.OutDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory for target %s: %w", target.Type, err)
		}
		if err := gen.Generate(target, model); err != nil {
			return fmt.Errorf("spec %s, target %s: %w", spec.Name, target.Type, err)
		}
	}
	return errors.Join(errs...)
}

// Generate runs every spec in the configuration sequentially.
func (s *Service) Generate(cfg *config.Config) error {
	var errs []error
	for _, spec := range cfg.Specs {
		if err := s.GenerateSpec(spec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
