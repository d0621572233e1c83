package compose

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasgen-dev/oasgen/pkg/ir"
	"github.com/oasgen-dev/oasgen/pkg/naming"
)

// enumConst is one emittable enum constant: the unquoted text identifiers
// are derived from, and the JS literal source it is emitted as.
type enumConst struct {
	ident string
	src   string
	str   bool
}

// enumConstOf converts a raw constant into its emittable form. Composite
// values (arrays, objects) have no literal form and report false.
func enumConstOf(v any) (enumConst, bool) {
	switch t := v.(type) {
	case string:
		return enumConst{ident: t, src: jsString(t), str: true}, true
	case bool:
		if t {
			return enumConst{ident: "true", src: "true"}, true
		}
		return enumConst{ident: "false", src: "false"}, true
	case float64:
		n := formatNumber(t)
		return enumConst{ident: n, src: n}, true
	case int:
		n := formatNumber(float64(t))
		return enumConst{ident: n, src: n}, true
	case int64:
		n := formatNumber(float64(t))
		return enumConst{ident: n, src: n}, true
	case nil:
		return enumConst{ident: "null", src: "null"}, true
	}
	return enumConst{}, false
}

// enumConsts renders the enum constants. The second result reports whether
// every constant is a string.
func enumConsts(sch *openapi3.Schema) ([]enumConst, bool) {
	allStrings := true
	var out []enumConst
	for _, v := range sch.Enum {
		c, ok := enumConstOf(v)
		if !ok {
			allStrings = false
			continue
		}
		if !c.str {
			allStrings = false
		}
		out = append(out, c)
	}
	return out, allStrings
}

// enumExpr synthesizes the expression for an enum node. Homogeneous string
// enums become z.enum; anything else becomes a union of literals.
func (s *Session) enumExpr(sch *openapi3.Schema) expr {
	consts, allStrings := enumConsts(sch)
	if len(consts) == 0 {
		return expr{zod: "z.unknown()", ts: "unknown", complexity: 1}
	}

	srcs := make([]string, len(consts))
	for i, c := range consts {
		srcs[i] = c.src
	}

	if allStrings {
		return expr{
			zod:        "z.enum([" + strings.Join(srcs, ", ") + "])",
			ts:         strings.Join(srcs, " | "),
			complexity: 1,
		}
	}

	literals := make([]string, len(srcs))
	for i, src := range srcs {
		literals[i] = "z.literal(" + src + ")"
	}
	if len(literals) == 1 {
		return expr{zod: literals[0], ts: srcs[0], complexity: 1}
	}
	return expr{
		zod:        "z.union([" + strings.Join(literals, ", ") + "])",
		ts:         strings.Join(srcs, " | "),
		complexity: 1,
	}
}

// constExpr handles the 3.1 const keyword, read from the raw mirror because
// the typed model does not carry it.
func (s *Session) constExpr(raw map[string]any, path []string) expr {
	c, ok := enumConstOf(raw["const"])
	if !ok {
		s.warnAt(path, "unsupported const value, falling back to unknown")
		return expr{zod: "z.unknown()", ts: "unknown", complexity: 1}
	}
	return expr{zod: "z.literal(" + c.src + ")", ts: c.src, complexity: 1}
}

// enumMembers derives named constants for a top-level enum. Numeric enums
// get value-prefixed identifiers; collisions between values that normalize
// to the same identifier are resolved with numeric suffixes.
func (s *Session) enumMembers(sr *openapi3.SchemaRef) []ir.EnumMember {
	if sr == nil || sr.Value == nil || len(sr.Value.Enum) == 0 {
		return nil
	}
	consts, allStrings := enumConsts(sr.Value)
	if len(consts) == 0 {
		return nil
	}

	numeric := !allStrings
	if numeric {
		for _, c := range consts {
			if c.ident == "true" || c.ident == "false" || c.ident == "null" {
				return nil
			}
		}
	}

	idents := make([]string, len(consts))
	for i, c := range consts {
		idents[i] = c.ident
	}
	names := naming.EnumIdentifiers(idents, numeric)

	members := make([]ir.EnumMember, len(consts))
	for i, c := range consts {
		members[i] = ir.EnumMember{Ident: names[i], Literal: c.src}
	}
	return members
}
