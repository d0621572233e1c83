// Package schema emits zod runtime validation schemas. Declarations come
// out in the session's completion order, so every plain reference points
// at an earlier declaration; schemas on a structural cycle carry an
// explicit z.ZodType annotation and are referenced lazily.
package schema

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
	return "schema"
}

func (g *Generator) Generate(target config.Target, model *ir.Model) error {
	return emit.RenderFile(templatesFS, "schema.ts.gotmpl",
		filepath.Join(target.OutDir, "schema.ts"),
		map[string]any{"Target": target, "Model": model})
}
