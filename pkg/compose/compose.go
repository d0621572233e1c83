// Package compose resolves named schema nodes into emittable validation and
// type expressions. It is the shared core behind every generator target:
// allOf/oneOf/anyOf composition, discriminators, conditional keywords,
// structural cycle breaking and enum naming all live here.
//
// A Session scopes all mutable state (memoized results, the reference graph,
// cycle bookkeeping) to one generation run; sessions are not safe for
// concurrent use and are never shared between specs.
package compose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasgen-dev/oasgen/pkg/ir"
	"github.com/oasgen-dev/oasgen/pkg/openapi"
	"github.com/oasgen-dev/oasgen/pkg/resolver"
)

// Mode selects how object schemas treat undeclared properties.
type Mode string

const (
	ModeStrict Mode = "strict"
	ModeNormal Mode = "normal"
	ModeLoose  Mode = "loose"
)

// EmptyObjectBehavior selects the emission for object schemas that declare
// no properties at all.
type EmptyObjectBehavior string

const (
	EmptyObjectStrict EmptyObjectBehavior = "strict"
	EmptyObjectLoose  EmptyObjectBehavior = "loose"
	EmptyObjectRecord EmptyObjectBehavior = "record"
)

// Options carries the composition context handed in by the orchestrator.
type Options struct {
	Mode                Mode
	DefaultNullable     bool
	EmptyObjectBehavior EmptyObjectBehavior
	// MaxDepth bounds reference-chain resolution; zero means the resolver
	// default.
	MaxDepth int
	// Warn receives non-fatal diagnostics. The engine never prints.
	Warn ir.WarnFunc
}

// expr is the engine's internal resolution result for one schema node.
type expr struct {
	zod        string
	ts         string
	complexity int
}

// Session memoizes composition results for one generation run.
type Session struct {
	doc  *openapi.Document
	opts Options

	results map[string]*ir.Composition
	errs    map[string]error
	// stack holds the names currently being composed, outermost first; a
	// reference to a name on the stack is a structural cycle.
	stack []string
	onStack map[string]bool
	lazy    map[string]bool
	// refs records name -> referenced component names, used to propagate
	// request/response usage contexts transitively.
	refs map[string]map[string]struct{}
	// order records completion order; emitting declarations in this order
	// guarantees every non-lazy reference points at an earlier declaration.
	order []string
}

// NewSession creates a composition session over one loaded document.
func NewSession(doc *openapi.Document, opts Options) *Session {
	if opts.Warn == nil {
		opts.Warn = func(string) {}
	}
	if opts.Mode == "" {
		opts.Mode = ModeNormal
	}
	if opts.EmptyObjectBehavior == "" {
		opts.EmptyObjectBehavior = EmptyObjectLoose
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = resolver.DefaultMaxDepth
	}
	return &Session{
		doc:     doc,
		opts:    opts,
		results: make(map[string]*ir.Composition),
		errs:    make(map[string]error),
		onStack: make(map[string]bool),
		lazy:    make(map[string]bool),
		refs:    make(map[string]map[string]struct{}),
	}
}

// Compose resolves the named component schema. Results are memoized: calling
// Compose twice for the same name within one session returns the identical
// result. The returned error is non-nil only for schema-fatal conditions
// (cyclic property dependencies); the composition itself is still usable.
func (s *Session) Compose(name string) (*ir.Composition, error) {
	if r, ok := s.results[name]; ok {
		return r, s.errs[name]
	}

	var sr *openapi3.SchemaRef
	if s.doc.Model.Components != nil {
		sr = s.doc.Model.Components.Schemas[name]
	}
	if sr == nil {
		return nil, fmt.Errorf("schema %q not found in components", name)
	}

	s.stack = append(s.stack, name)
	s.onStack[name] = true

	e := s.exprFor(sr, s.doc.RawSchema(name), []string{name}, true)

	s.stack = s.stack[:len(s.stack)-1]
	delete(s.onStack, name)

	comp := &ir.Composition{
		Name:       name,
		Expr:       e.zod,
		TSType:     e.ts,
		Lazy:       s.lazy[name],
		Complexity: e.complexity,
	}
	if members := s.enumMembers(sr); len(members) > 0 {
		comp.EnumMembers = members
	}
	s.results[name] = comp
	s.order = append(s.order, name)
	return comp, s.errs[name]
}

// ComposeAll resolves every component schema in name order and returns the
// results in declaration-safe (completion) order. Schema-fatal errors are
// collected per schema and do not stop the pass.
func (s *Session) ComposeAll() ([]*ir.Composition, []error) {
	var names []string
	if s.doc.Model.Components != nil {
		for name := range s.doc.Model.Components.Schemas {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if _, err := s.Compose(name); err != nil {
			errs = append(errs, err)
		}
	}

	out := make([]*ir.Composition, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.results[name])
	}
	return out, errs
}

// MarkUsage flags the named schema, and everything reachable from it, as
// used in a request or response context. Schemas reachable from both are
// left in their single context-agnostic form; the flags only feed emitters.
func (s *Session) MarkUsage(name string, inRequest bool) {
	seen := make(map[string]bool)
	var walk func(n string)
	walk = func(n string) {
		if seen[n] {
			return
		}
		seen[n] = true
		if comp, ok := s.results[n]; ok {
			if inRequest {
				comp.UsedInRequest = true
			} else {
				comp.UsedInResponse = true
			}
		}
		for ref := range s.refs[n] {
			walk(ref)
		}
	}
	walk(name)
}

func (s *Session) warnAt(path []string, format string, args ...any) {
	s.opts.Warn(strings.Join(path, "/") + ": " + fmt.Sprintf(format, args...))
}

// recordErr attaches a schema-fatal error to the schema currently being
// composed.
func (s *Session) recordErr(err error) {
	if len(s.stack) == 0 {
		return
	}
	root := s.stack[len(s.stack)-1]
	if prev, ok := s.errs[root]; ok {
		s.errs[root] = fmt.Errorf("%v; %w", prev, err)
		return
	}
	s.errs[root] = err
}

func (s *Session) recordRef(target string) {
	if len(s.stack) == 0 {
		return
	}
	root := s.stack[len(s.stack)-1]
	if s.refs[root] == nil {
		s.refs[root] = make(map[string]struct{})
	}
	s.refs[root][target] = struct{}{}
}

// exprFor is the engine's dispatch: it classifies the node by which keyword
// is present and hands off to the matching synthesis.
func (s *Session) exprFor(sr *openapi3.SchemaRef, raw map[string]any, path []string, top bool) expr {
	if sr == nil {
		return expr{zod: "z.unknown()", ts: "unknown", complexity: 1}
	}

	if sr.Ref != "" {
		return s.refExpr(sr, path)
	}

	sch := sr.Value
	if sch == nil {
		return expr{zod: "z.unknown()", ts: "unknown", complexity: 1}
	}

	var e expr
	switch {
	case len(sch.AllOf) > 0:
		e = s.allOfExpr(sch, raw, path)
	case len(sch.OneOf) > 0:
		e = s.unionExpr(sch.OneOf, sch.Discriminator, rawSlice(raw, "oneOf"), append(path, "oneOf"))
	case len(sch.AnyOf) > 0:
		e = s.unionExpr(sch.AnyOf, sch.Discriminator, rawSlice(raw, "anyOf"), append(path, "anyOf"))
	case len(sch.Enum) > 0:
		e = s.enumExpr(sch)
	case hasRawConst(raw):
		// The typed model drops const; only the raw mirror sees it.
		e = s.constExpr(raw, append(path, "const"))
	case emptyUnionKeyword(raw) != "":
		// An explicitly declared zero-branch union; the typed model drops
		// the empty array, so only the raw mirror sees it.
		s.warnAt(append(path, emptyUnionKeyword(raw)), "empty union, falling back to any")
		e = expr{zod: "z.any()", ts: "any", complexity: 1}
	default:
		e = s.typedExpr(sch, raw, path)
	}

	if suffix := s.conditionalSuffix(raw, path); suffix != "" {
		e.zod += suffix
		e.complexity++
	}

	if s.isNullable(sch, raw, top) && e.ts != "any" {
		e.zod += ".nullable()"
		e.ts += " | null"
	}
	return e
}

// refExpr handles a $ref node: named component references become identifier
// references (lazy when the target is still on the composition stack);
// anything unresolvable degrades to unknown with a warning.
func (s *Session) refExpr(sr *openapi3.SchemaRef, path []string) expr {
	name := resolver.SchemaName(sr.Ref)
	if name == "" {
		s.warnAt(path, "unsupported reference %q, falling back to unknown", sr.Ref)
		return expr{zod: "z.unknown()", ts: "unknown", complexity: 1}
	}
	var target *openapi3.SchemaRef
	if s.doc.Model.Components != nil {
		target = s.doc.Model.Components.Schemas[name]
	}
	if target == nil {
		s.warnAt(path, "unresolvable reference %q, falling back to unknown", sr.Ref)
		return expr{zod: "z.unknown()", ts: "unknown", complexity: 1}
	}

	s.recordRef(name)

	if s.onStack[name] {
		// Structural cycle: defer the reference and require every schema
		// on the cycle to carry an explicit type annotation.
		for i := len(s.stack) - 1; i >= 0; i-- {
			s.lazy[s.stack[i]] = true
			if s.stack[i] == name {
				break
			}
		}
		return expr{zod: "z.lazy(() => " + schemaIdent(name) + ")", ts: name, complexity: 1}
	}

	if _, ok := s.results[name]; !ok {
		// Compose depth-first so declarations complete before their users.
		_, _ = s.Compose(name)
	}
	return expr{zod: schemaIdent(name), ts: name, complexity: 1}
}

// schemaIdent names the emitted zod declaration for a component schema.
func schemaIdent(name string) string {
	return name + "Schema"
}

// isNullable implements the precedence rules: explicit markers (3.0 nullable
// or a 3.1 "null" type entry) always win, in both directions; the configured
// default applies only to nested schemas with no explicit marker, never to a
// top-level named schema's own wrapper.
func (s *Session) isNullable(sch *openapi3.Schema, raw map[string]any, top bool) bool {
	if sch.Type != nil && sch.Type.Includes(openapi3.TypeNull) {
		return true
	}
	if sch.Nullable {
		return true
	}
	if raw != nil {
		if v, ok := raw["nullable"]; ok {
			b, _ := v.(bool)
			return b
		}
	}
	if top {
		return false
	}
	return s.opts.DefaultNullable
}
