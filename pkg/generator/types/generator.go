// Package types emits plain TypeScript type declarations for every
// composed schema, plus request/response aliases per endpoint.
package types

import (
	"embed"
	"path/filepath"

	"github.com/oasgen-dev/oasgen/pkg/config"
	"github.com/oasgen-dev/oasgen/pkg/generator/emit"
	"github.com/oasgen-dev/oasgen/pkg/ir"
)

//go:embed templates/*
var templatesFS embed.FS

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Type() string {
	return "types"
}

func (g *Generator) Generate(target config.Target, model *ir.Model) error {
	return emit.RenderFile(templatesFS, "types.ts.gotmpl",
		filepath.Join(target.OutDir, "types.ts"),
		map[string]any{"Target": target, "Model": model})
}
