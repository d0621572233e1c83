package ir

// Endpoint is the normalized, filter-and-naming-resolved representation of a
// single operation (one HTTP method under one path). Endpoints are built
// fresh per generation run and never mutated afterwards.
type Endpoint struct {
	Path         string
	Method       string
	MethodName   string
	Summary      string
	Description  string
	Deprecated   bool
	PathParams   []string
	QueryParams  []Param
	HeaderParams []Param
	RequestBody  *RequestBody
	Response     *Response
}

// Param describes a query or header parameter.
type Param struct {
	Name        string
	Required    bool
	Description string
	// TypeRef is the component schema name when the parameter schema is a
	// $ref; empty for inline schemas.
	TypeRef string
}

// RequestBody describes the chosen request body representation.
type RequestBody struct {
	ContentType string
	Required    bool
	// TypeRef is the component schema name when the body schema is a $ref.
	TypeRef string
}

// Response describes the chosen success response representation.
// Void is set when the operation has no inspectable success content, e.g. a 204.
type Response struct {
	StatusCode string
	TypeRef    string
	Void       bool
}

// Composition is the composition engine's output for one schema node: a zod
// validation expression, the matching TypeScript type expression, and
// metadata the emitters need.
type Composition struct {
	Name string
	// Expr is the runtime validation expression, e.g. "z.object({...})".
	Expr string
	// TSType is the TypeScript type expression, e.g. "{ id: number }".
	TSType   string
	Nullable bool
	// Lazy is set when the schema participates in a structural reference
	// cycle and the emitted declaration must use a lazy forward reference.
	Lazy bool
	// UsedInRequest / UsedInResponse track the contexts the schema is
	// reachable from; schemas reachable from both are resolved in a
	// context-agnostic form so only one declaration is emitted per name.
	UsedInRequest  bool
	UsedInResponse bool
	// Complexity is a rough node count of the resolved expression tree.
	Complexity int
	// EnumMembers is populated when the named schema is a bare enum; the
	// types target emits a named member list for it.
	EnumMembers []EnumMember
}

// EnumMember pairs a generated identifier with the literal it stands for.
type EnumMember struct {
	Ident   string
	Literal string
}

// Model is the fully resolved input handed to every emitter: the surviving
// endpoints plus the composed schemas in declaration-safe order.
type Model struct {
	// SpecName identifies the source spec in diagnostics and file headers.
	SpecName string
	// Title and Version come from the document's info block.
	Title   string
	Version string

	Endpoints []Endpoint
	// Schemas is ordered so that every non-lazy reference points at an
	// earlier declaration.
	Schemas []*Composition
}

// Schema returns the composition for a component name, or nil.
func (m *Model) Schema(name string) *Composition {
	for _, c := range m.Schemas {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// WarnFunc receives non-fatal diagnostics during extraction or composition.
// The core never prints; warnings travel through this callback to the
// orchestrator, which owns presentation.
type WarnFunc func(message string)

// Methods lists the seven standard HTTP methods in the order path items are
// inspected.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch"}
