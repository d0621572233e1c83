package compose

import (
	"reflect"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasgen-dev/oasgen/pkg/resolver"
)

// branch is one allOf constituent after reference resolution and flattening.
type branch struct {
	sch  *openapi3.Schema
	raw  map[string]any
	name string
}

// allOfExpr merges allOf branches into a single object expression. Branches
// are flattened (nested allOf) and named references are inlined; when a
// property appears in more than one branch the last branch wins and a
// warning is emitted. Branches that are not plain objects cannot be merged
// and degrade the whole node to an intersection.
func (s *Session) allOfExpr(sch *openapi3.Schema, raw map[string]any, path []string) expr {
	path = append(path, "allOf")
	branches, ok := s.collectBranches(sch.AllOf, rawSlice(raw, "allOf"), path, 0)
	if !ok {
		return s.intersectionExpr(sch.AllOf, rawSlice(raw, "allOf"), path)
	}
	for _, b := range branches {
		if !mergeable(b.sch) {
			return s.intersectionExpr(sch.AllOf, rawSlice(raw, "allOf"), path)
		}
	}

	type mergedProp struct {
		sr  *openapi3.SchemaRef
		raw map[string]any
	}
	props := make(map[string]mergedProp)
	required := make(map[string]bool)
	var order []string

	for _, b := range branches {
		rawProps := rawSub(b.raw, "properties")
		names := make([]string, 0, len(b.sch.Properties))
		for name := range b.sch.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			next := mergedProp{sr: b.sch.Properties[name], raw: rawMap(rawProps[name])}
			if prev, seen := props[name]; seen {
				// A shared base redeclared identically is not a conflict.
				if !reflect.DeepEqual(prev.raw, next.raw) {
					s.warnAt(path, "property %q declared in multiple branches, keeping the last declaration", name)
				}
			} else {
				order = append(order, name)
			}
			props[name] = next
		}
		for _, r := range b.sch.Required {
			required[r] = true
		}
	}

	if len(order) == 0 {
		return s.emptyObjectExpr()
	}

	var (
		zodFields  []string
		tsFields   []string
		complexity = 1
	)
	for _, name := range order {
		p := props[name]
		e := s.exprFor(p.sr, p.raw, append(path, "properties", name), false)
		complexity += e.complexity

		key := tsKey(name)
		zodField := e.zod
		if required[name] {
			tsFields = append(tsFields, key+": "+e.ts)
		} else {
			zodField += ".optional()"
			tsFields = append(tsFields, key+"?: "+e.ts)
		}
		zodFields = append(zodFields, key+": "+zodField)
	}

	zod := "z.object({ " + strings.Join(zodFields, ", ") + " })" + s.modeSuffix()
	ts := "{ " + strings.Join(tsFields, "; ") + " }"
	return expr{zod: zod, ts: ts, complexity: complexity}
}

const maxAllOfFlatten = 16

// collectBranches resolves references and flattens nested allOf into a flat
// branch list. It reports false when a branch cannot be inlined, which makes
// the caller fall back to an intersection.
func (s *Session) collectBranches(refs openapi3.SchemaRefs, raws []map[string]any, path []string, depth int) ([]branch, bool) {
	if depth > maxAllOfFlatten {
		return nil, false
	}
	var out []branch
	for i, sr := range refs {
		var braw map[string]any
		if i < len(raws) {
			braw = raws[i]
		}
		if sr == nil {
			continue
		}
		if sr.Ref != "" {
			name := resolver.SchemaName(sr.Ref)
			if name == "" {
				return nil, false
			}
			var target *openapi3.SchemaRef
			if s.doc.Model.Components != nil {
				target = s.doc.Model.Components.Schemas[name]
			}
			if target == nil || target.Value == nil {
				s.warnAt(path, "unresolvable reference %q in allOf", sr.Ref)
				return nil, false
			}
			if s.onStack[name] {
				// Inlining a schema into its own composition would never
				// terminate; let the intersection path emit a lazy ref.
				return nil, false
			}
			s.recordRef(name)
			sr = target
			braw = s.doc.RawSchema(name)
		}
		sch := sr.Value
		if sch == nil {
			continue
		}
		if len(sch.AllOf) > 0 {
			nested, ok := s.collectBranches(sch.AllOf, rawSlice(braw, "allOf"), path, depth+1)
			if !ok {
				return nil, false
			}
			out = append(out, nested...)
			continue
		}
		out = append(out, branch{sch: sch, raw: braw})
	}
	return out, true
}

// mergeable reports whether a branch is a plain object whose properties can
// be folded into a single z.object.
func mergeable(sch *openapi3.Schema) bool {
	if len(sch.OneOf) > 0 || len(sch.AnyOf) > 0 || len(sch.Enum) > 0 || sch.Not != nil {
		return false
	}
	t := baseType(sch)
	if t != "" && t != openapi3.TypeObject {
		return false
	}
	if sch.Items != nil {
		return false
	}
	return true
}

// intersectionExpr is the fallback for allOf branches that resist merging:
// each branch keeps its own expression and zod intersects them pairwise.
func (s *Session) intersectionExpr(refs openapi3.SchemaRefs, raws []map[string]any, path []string) expr {
	var parts []expr
	for i, sr := range refs {
		var braw map[string]any
		if i < len(raws) {
			braw = raws[i]
		}
		parts = append(parts, s.exprFor(sr, braw, path, false))
	}
	if len(parts) == 0 {
		return expr{zod: "z.unknown()", ts: "unknown", complexity: 1}
	}
	if len(parts) == 1 {
		return parts[0]
	}

	zod := parts[0].zod
	ts := parts[0].ts
	complexity := parts[0].complexity
	for _, p := range parts[1:] {
		zod = "z.intersection(" + zod + ", " + p.zod + ")"
		ts += " & " + p.ts
		complexity += p.complexity
	}
	return expr{zod: zod, ts: ts, complexity: complexity + 1}
}
