package compose

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasgen-dev/oasgen/pkg/resolver"
)

// unionExpr synthesizes oneOf and anyOf nodes. Both emit a union; a
// discriminator upgrades it to z.discriminatedUnion when every branch is a
// named reference.
func (s *Session) unionExpr(refs openapi3.SchemaRefs, disc *openapi3.Discriminator, raws []map[string]any, path []string) expr {
	if len(refs) == 0 {
		s.warnAt(path, "empty union, falling back to any")
		return expr{zod: "z.any()", ts: "any", complexity: 1}
	}

	if len(refs) == 1 {
		var braw map[string]any
		if len(raws) > 0 {
			braw = raws[0]
		}
		return s.exprFor(refs[0], braw, path, false)
	}

	if disc != nil && disc.PropertyName != "" {
		if e, ok := s.discriminatedExpr(refs, disc, path); ok {
			return e
		}
		s.warnAt(path, "discriminator %q requires named references on every branch, emitting a plain union", disc.PropertyName)
	}

	var (
		zodParts   []string
		tsParts    []string
		complexity = 1
	)
	for i, sr := range refs {
		var braw map[string]any
		if i < len(raws) {
			braw = raws[i]
		}
		e := s.exprFor(sr, braw, path, false)
		zodParts = append(zodParts, e.zod)
		tsParts = append(tsParts, e.ts)
		complexity += e.complexity
	}
	return expr{
		zod:        "z.union([" + strings.Join(zodParts, ", ") + "])",
		ts:         strings.Join(dedupe(tsParts), " | "),
		complexity: complexity,
	}
}

// discriminatedExpr emits z.discriminatedUnion over named branch references.
// Branches named by an explicit mapping come first, in mapping-key order;
// unmapped branches follow in declaration order.
func (s *Session) discriminatedExpr(refs openapi3.SchemaRefs, disc *openapi3.Discriminator, path []string) (expr, bool) {
	declared := make([]string, 0, len(refs))
	for _, sr := range refs {
		if sr == nil || sr.Ref == "" {
			return expr{}, false
		}
		name := resolver.SchemaName(sr.Ref)
		if name == "" {
			return expr{}, false
		}
		declared = append(declared, name)
	}

	mapped := make(map[string]bool)
	var ordered []string
	if len(disc.Mapping) > 0 {
		keys := make([]string, 0, len(disc.Mapping))
		for k := range disc.Mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			name := resolver.SchemaName(disc.Mapping[k])
			if name == "" || mapped[name] {
				continue
			}
			mapped[name] = true
			ordered = append(ordered, name)
		}
	}
	for _, name := range declared {
		if !mapped[name] {
			mapped[name] = true
			ordered = append(ordered, name)
		}
	}

	var (
		zodParts   []string
		tsParts    []string
		complexity = 1
	)
	for _, name := range ordered {
		e := s.refExpr(&openapi3.SchemaRef{Ref: "#/components/schemas/" + name}, path)
		zodParts = append(zodParts, e.zod)
		tsParts = append(tsParts, e.ts)
		complexity += e.complexity
	}
	return expr{
		zod:        "z.discriminatedUnion(" + jsString(disc.PropertyName) + ", [" + strings.Join(zodParts, ", ") + "])",
		ts:         strings.Join(dedupe(tsParts), " | "),
		complexity: complexity,
	}, true
}

func dedupe(parts []string) []string {
	seen := make(map[string]bool, len(parts))
	out := parts[:0]
	for _, p := range parts {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
