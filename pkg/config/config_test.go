package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oasgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `specs:
  - spec: ./petstore.yaml
    targets:
      - type: types
        outDir: ./generated/types
      - type: schema
        outDir: ./generated/schema
        mode: strict
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Specs, 1)

	spec := cfg.Specs[0]
	assert.Equal(t, "petstore", spec.Name, "name defaults to the spec file base")
	assert.True(t, filepath.IsAbs(spec.Path))
	require.Len(t, spec.Targets, 2)
	assert.True(t, filepath.IsAbs(spec.Targets[0].OutDir))
	assert.Equal(t, "petstore", spec.Targets[0].PackageName)
	assert.Equal(t, "strict", spec.Targets[1].Mode)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadUnparseable(t *testing.T) {
	path := writeConfig(t, "specs: [\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "no specs",
			cfg:     Config{},
			wantErr: "config.specs is required",
		},
		{
			name: "missing spec path",
			cfg: Config{Specs: []Spec{
				{Targets: []Target{{Type: "types", OutDir: "out"}}},
			}},
			wantErr: "spec path is required",
		},
		{
			name: "no targets",
			cfg: Config{Specs: []Spec{
				{Path: "api.yaml"},
			}},
			wantErr: "at least one target is required",
		},
		{
			name: "target missing type",
			cfg: Config{Specs: []Spec{
				{Path: "api.yaml", Targets: []Target{{OutDir: "out"}}},
			}},
			wantErr: "missing required fields",
		},
		{
			name: "target missing outDir",
			cfg: Config{Specs: []Spec{
				{Path: "api.yaml", Targets: []Target{{Type: "types"}}},
			}},
			wantErr: "missing required fields",
		},
		{
			name: "unknown mode",
			cfg: Config{Specs: []Spec{
				{Path: "api.yaml", Targets: []Target{{Type: "schema", OutDir: "out", Mode: "lax"}}},
			}},
			wantErr: `unknown mode "lax"`,
		},
		{
			name: "unknown emptyObjectBehavior",
			cfg: Config{Specs: []Spec{
				{Path: "api.yaml", Targets: []Target{{Type: "schema", OutDir: "out", EmptyObjectBehavior: "open"}}},
			}},
			wantErr: "unknown emptyObjectBehavior",
		},
		{
			name: "negative maxDepth",
			cfg: Config{Specs: []Spec{
				{Path: "api.yaml", Targets: []Target{{Type: "schema", OutDir: "out", MaxDepth: -1}}},
			}},
			wantErr: "maxDepth must not be negative",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.wantErr)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Specs: []Spec{{
		Path: "specs/billing-api.yaml",
		Targets: []Target{
			{Type: "browser", OutDir: "out"},
			{Type: "loadtest", OutDir: "out", PackageName: "billing-load"},
		},
	}}}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "billing-api", cfg.Specs[0].Name)
	assert.Equal(t, "billing-api", cfg.Specs[0].Targets[0].PackageName)
	assert.Equal(t, "billing-load", cfg.Specs[0].Targets[1].PackageName)
}
