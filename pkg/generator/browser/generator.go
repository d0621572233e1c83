// Package browser emits a Cypress test-automation client: one method per
// endpoint wrapping cy.request, typed with the schemas reachable from the
// endpoints.
package browser

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
	return "browser"
}

func (g *Generator) Generate(target config.Target, model *ir.Model) error {
	return emit.RenderFile(templatesFS, "client.ts.gotmpl",
		filepath.Join(target.OutDir, "client.ts"),
		map[string]any{"Target": target, "Model": model})
}
