// Package loadtest emits a k6 load-testing client: one function per
// endpoint wrapping http.request, plus an optional status check when the
// extractor tracked success status codes.
package loadtest

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
	return "loadtest"
}

func (g *Generator) Generate(target config.Target, model *ir.Model) error {
	return emit.RenderFile(templatesFS, "client.ts.gotmpl",
		filepath.Join(target.OutDir, "client.ts"),
		map[string]any{"Target": target, "Model": model})
}
