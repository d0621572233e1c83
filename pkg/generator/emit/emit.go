// Package emit holds the template plumbing shared by the target emitters:
// the function map, endpoint signature helpers and the file renderer.
// Emitters stay pure consumers of the resolved model; no composition logic
// lives here.
package emit

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/oasgen-dev/oasgen/pkg/ir"
	"github.com/oasgen-dev/oasgen/pkg/naming"
)

// FuncMap returns the shared template function map: sprig plus the
// endpoint and schema helpers the target templates use.
func FuncMap() template.FuncMap {
	m := template.FuncMap{
		"pascal":       naming.ToPascalCase,
		"camel":        naming.ToCamelCase,
		"schemaIdent":  func(name string) string { return name + "Schema" },
		"pathTemplate": PathTemplate,
		"methodArgs":   MethodArgs,
		"callArgs":     CallArgs,
		"queryType":    QueryType,
		"bodyType":     BodyType,
		"responseType": ResponseType,
		"usedSchemas":  UsedSchemas,
		"hasQuery":     func(ep ir.Endpoint) bool { return len(ep.QueryParams) > 0 },
	}
	for k, v := range sprig.FuncMap() {
		if _, exists := m[k]; !exists {
			m[k] = v
		}
	}
	return m
}

// PathTemplate rewrites an endpoint path into a template-literal body,
// substituting each path parameter with a camelCase interpolation.
func PathTemplate(ep ir.Endpoint) string {
	out := ep.Path
	for _, p := range ep.PathParams {
		out = strings.ReplaceAll(out, "{"+p+"}", "${"+naming.ToCamelCase(p)+"}")
	}
	return out
}

// ParamType renders the TypeScript type of a single parameter.
func ParamType(p ir.Param) string {
	if p.TypeRef != "" {
		return p.TypeRef
	}
	return "string | number | boolean"
}

// QueryType renders an inline object type for an endpoint's query
// parameters.
func QueryType(ep ir.Endpoint) string {
	var fields []string
	for _, p := range ep.QueryParams {
		opt := "?"
		if p.Required {
			opt = ""
		}
		fields = append(fields, tsKey(p.Name)+opt+": "+ParamType(p))
	}
	return "{ " + strings.Join(fields, "; ") + " }"
}

// BodyType renders the request body type, unknown when the body schema is
// inline.
func BodyType(ep ir.Endpoint) string {
	if ep.RequestBody == nil {
		return "unknown"
	}
	if ep.RequestBody.TypeRef != "" {
		return ep.RequestBody.TypeRef
	}
	return "unknown"
}

// ResponseType renders the success response type: void for content-less
// responses, unknown when no 2xx shape was found.
func ResponseType(ep ir.Endpoint) string {
	if ep.Response == nil {
		return "unknown"
	}
	if ep.Response.Void {
		return "void"
	}
	if ep.Response.TypeRef != "" {
		return ep.Response.TypeRef
	}
	return "unknown"
}

// queryRequired reports whether any query parameter is required.
func queryRequired(ep ir.Endpoint) bool {
	for _, p := range ep.QueryParams {
		if p.Required {
			return true
		}
	}
	return false
}

// MethodArgs renders the typed argument list of a client method: path
// parameters first, then body and query. Optional arguments go last;
// TypeScript rejects a required parameter after an optional one.
func MethodArgs(ep ir.Endpoint) string {
	var required, optional []string
	for _, p := range ep.PathParams {
		required = append(required, naming.ToCamelCase(p)+": string | number")
	}
	if ep.RequestBody != nil {
		if ep.RequestBody.Required {
			required = append(required, "body: "+BodyType(ep))
		} else {
			optional = append(optional, "body?: "+BodyType(ep))
		}
	}
	if len(ep.QueryParams) > 0 {
		if queryRequired(ep) {
			required = append(required, "query: "+QueryType(ep))
		} else {
			optional = append(optional, "query?: "+QueryType(ep))
		}
	}
	return strings.Join(append(required, optional...), ", ")
}

// CallArgs renders the bare argument names in MethodArgs order.
func CallArgs(ep ir.Endpoint) string {
	var required, optional []string
	for _, p := range ep.PathParams {
		required = append(required, naming.ToCamelCase(p))
	}
	if ep.RequestBody != nil {
		if ep.RequestBody.Required {
			required = append(required, "body")
		} else {
			optional = append(optional, "body")
		}
	}
	if len(ep.QueryParams) > 0 {
		if queryRequired(ep) {
			required = append(required, "query")
		} else {
			optional = append(optional, "query")
		}
	}
	return strings.Join(append(required, optional...), ", ")
}

// UsedSchemas returns the schemas reachable from any endpoint, in
// declaration-safe order. Client emitters declare only these.
func UsedSchemas(model *ir.Model) []*ir.Composition {
	var out []*ir.Composition
	for _, c := range model.Schemas {
		if c.UsedInRequest || c.UsedInResponse {
			out = append(out, c)
		}
	}
	return out
}

func tsKey(name string) string {
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '$') {
			return `"` + name + `"`
		}
	}
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		return `"` + name + `"`
	}
	return name
}

// RenderFile renders an embedded template to the target path.
func RenderFile(fsys embed.FS, templateName, targetPath string, data any) error {
	content, err := fsys.ReadFile("templates/" + templateName)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	tmpl, err := template.New(templateName).Funcs(FuncMap()).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	file, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", targetPath, err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return nil
}
