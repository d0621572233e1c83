// Package config loads and validates the oasgen.yaml configuration.
// Configuration problems are fatal and reported before any spec is read.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for a generation run. A run covers
// one or more specs, each with its own targets.
type Config struct {
	Specs []Spec `yaml:"specs"`
}

// Spec names one OpenAPI document and the targets generated from it.
type Spec struct {
	Name    string   `yaml:"name"`
	Path    string   `yaml:"spec"`
	Targets []Target `yaml:"targets"`
}

// Target configures one generated artifact.
type Target struct {
	// Type selects the generator: types, schema, browser or loadtest.
	Type        string `yaml:"type"`
	OutDir      string `yaml:"outDir"`
	PackageName string `yaml:"packageName"`

	// UseOperationID derives method names from operationId when present.
	UseOperationID bool `yaml:"useOperationId"`
	// Filters select which operations are generated.
	Filters Filters `yaml:"filters"`
	// IgnoreHeaders lists glob patterns for header parameters to drop,
	// matched case-insensitively.
	IgnoreHeaders []string `yaml:"ignoreHeaders"`
	// StripPathPrefix is a literal or glob prefix removed from every path
	// before naming.
	StripPathPrefix string `yaml:"stripPathPrefix"`
	// PreferredContentTypes is tried in order when picking bodies.
	PreferredContentTypes []string `yaml:"preferredContentTypes"`
	// TrackStatusCode records the matched success status code per endpoint.
	TrackStatusCode bool `yaml:"trackStatusCode"`

	// Mode controls how object schemas treat undeclared properties:
	// strict, normal or loose.
	Mode string `yaml:"mode"`
	// DefaultNullable marks nested schemas without an explicit nullable
	// marker as nullable.
	DefaultNullable bool `yaml:"defaultNullable"`
	// EmptyObjectBehavior controls emission for property-less objects:
	// strict, loose or record.
	EmptyObjectBehavior string `yaml:"emptyObjectBehavior"`
	// MaxDepth bounds reference-chain resolution; zero means the default.
	MaxDepth int `yaml:"maxDepth"`

	// DefaultBaseURL is baked into browser and loadtest clients as the
	// fallback base URL.
	DefaultBaseURL string `yaml:"defaultBaseURL"`
}

// Filters mirrors the extractor's operation filters in YAML form.
type Filters struct {
	IncludePaths        []string `yaml:"includePaths"`
	ExcludePaths        []string `yaml:"excludePaths"`
	IncludeMethods      []string `yaml:"includeMethods"`
	ExcludeMethods      []string `yaml:"excludeMethods"`
	IncludeOperationIDs []string `yaml:"includeOperationIds"`
	ExcludeOperationIDs []string `yaml:"excludeOperationIds"`
	IncludeStatusCodes  []string `yaml:"includeStatusCodes"`
	ExcludeStatusCodes  []string `yaml:"excludeStatusCodes"`
}

var (
	validModes     = map[string]bool{"": true, "strict": true, "normal": true, "loose": true}
	validEmptyObjs = map[string]bool{"": true, "strict": true, "loose": true, "record": true}
)

// Load loads and validates configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i := range cfg.Specs {
		s := &cfg.Specs[i]
		if !filepath.IsAbs(s.Path) {
			abs, _ := filepath.Abs(s.Path)
			s.Path = abs
		}
		for j := range s.Targets {
			t := &s.Targets[j]
			if !filepath.IsAbs(t.OutDir) {
				abs, _ := filepath.Abs(t.OutDir)
				t.OutDir = abs
			}
		}
	}
	return &cfg, nil
}

// Validate checks the configuration without touching the filesystem.
func (c *Config) Validate() error {
	if len(c.Specs) == 0 {
		return errors.New("config.specs is required and must not be empty")
	}
	for i := range c.Specs {
		s := &c.Specs[i]
		if s.Path == "" {
			return fmt.Errorf("specs[%d]: spec path is required", i)
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
		}
		if len(s.Targets) == 0 {
			return fmt.Errorf("specs[%d] (%s): at least one target is required", i, s.Name)
		}
		for j := range s.Targets {
			t := &s.Targets[j]
			if t.Type == "" || t.OutDir == "" {
				return fmt.Errorf("specs[%d].targets[%d] missing required fields (type, outDir)", i, j)
			}
			if !validModes[t.Mode] {
				return fmt.Errorf("specs[%d].targets[%d]: unknown mode %q", i, j, t.Mode)
			}
			if !validEmptyObjs[t.EmptyObjectBehavior] {
				return fmt.Errorf("specs[%d].targets[%d]: unknown emptyObjectBehavior %q", i, j, t.EmptyObjectBehavior)
			}
			if t.MaxDepth < 0 {
				return fmt.Errorf("specs[%d].targets[%d]: maxDepth must not be negative", i, j)
			}
			if t.PackageName == "" {
				t.PackageName = s.Name
			}
		}
	}
	return nil
}
