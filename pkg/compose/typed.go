package compose

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// typedExpr synthesizes the expression for a plain typed node (no
// composition keywords present).
func (s *Session) typedExpr(sch *openapi3.Schema, raw map[string]any, path []string) expr {
	switch baseType(sch) {
	case openapi3.TypeString:
		return stringExpr(sch)
	case openapi3.TypeInteger:
		return numberExpr(sch, true)
	case openapi3.TypeNumber:
		return numberExpr(sch, false)
	case openapi3.TypeBoolean:
		return expr{zod: "z.boolean()", ts: "boolean", complexity: 1}
	case openapi3.TypeNull:
		return expr{zod: "z.null()", ts: "null", complexity: 1}
	case openapi3.TypeArray:
		return s.arrayExpr(sch, raw, path)
	case openapi3.TypeObject:
		return s.objectExpr(sch, raw, path)
	}

	// No type keyword at all: objects-by-shape still compose; anything else
	// is unknown.
	if sch.Properties != nil && len(sch.Properties) > 0 {
		return s.objectExpr(sch, raw, path)
	}
	if sch.Items != nil {
		return s.arrayExpr(sch, raw, path)
	}
	if len(sch.Required) > 0 {
		return requiredPresenceExpr(sch.Required)
	}
	return expr{zod: "z.unknown()", ts: "unknown", complexity: 1}
}

// requiredPresenceExpr covers subschemas that constrain nothing but key
// presence (a bare required list, common in if/then bodies). z.unknown()
// would accept anything, so the presence check is spelled out.
func requiredPresenceExpr(required []string) expr {
	checks := []string{`!!value && typeof value === "object"`}
	for _, name := range required {
		checks = append(checks, jsString(name)+" in value")
	}
	return expr{
		zod:        "z.custom<Record<string, unknown>>((value) => " + strings.Join(checks, " && ") + ")",
		ts:         "Record<string, unknown>",
		complexity: 1,
	}
}

// baseType picks the effective type, skipping a 3.1 "null" entry (handled by
// the nullable rules).
func baseType(sch *openapi3.Schema) string {
	if sch.Type == nil {
		return ""
	}
	for _, t := range sch.Type.Slice() {
		if t != openapi3.TypeNull {
			return t
		}
	}
	if sch.Type.Includes(openapi3.TypeNull) {
		return openapi3.TypeNull
	}
	return ""
}

func stringExpr(sch *openapi3.Schema) expr {
	zod := "z.string()"
	switch sch.Format {
	case "email":
		zod += ".email()"
	case "uuid":
		zod += ".uuid()"
	case "uri", "url":
		zod += ".url()"
	case "date-time":
		zod += ".datetime()"
	}
	if sch.MinLength > 0 {
		zod += fmt.Sprintf(".min(%d)", sch.MinLength)
	}
	if sch.MaxLength != nil {
		zod += fmt.Sprintf(".max(%d)", *sch.MaxLength)
	}
	if sch.Pattern != "" {
		if _, err := regexp.Compile(sch.Pattern); err == nil {
			zod += ".regex(new RegExp(" + jsString(sch.Pattern) + "))"
		}
	}
	return expr{zod: zod, ts: "string", complexity: 1}
}

func numberExpr(sch *openapi3.Schema, integer bool) expr {
	zod := "z.number()"
	if integer {
		zod += ".int()"
	}
	if sch.Min != nil {
		if sch.ExclusiveMin {
			zod += ".gt(" + formatNumber(*sch.Min) + ")"
		} else {
			zod += ".gte(" + formatNumber(*sch.Min) + ")"
		}
	}
	if sch.Max != nil {
		if sch.ExclusiveMax {
			zod += ".lt(" + formatNumber(*sch.Max) + ")"
		} else {
			zod += ".lte(" + formatNumber(*sch.Max) + ")"
		}
	}
	if sch.MultipleOf != nil {
		zod += ".multipleOf(" + formatNumber(*sch.MultipleOf) + ")"
	}
	return expr{zod: zod, ts: "number", complexity: 1}
}

func (s *Session) arrayExpr(sch *openapi3.Schema, raw map[string]any, path []string) expr {
	item := s.exprFor(sch.Items, rawSub(raw, "items"), append(path, "items"), false)
	zod := "z.array(" + item.zod + ")"
	if sch.MinItems > 0 {
		zod += fmt.Sprintf(".min(%d)", sch.MinItems)
	}
	if sch.MaxItems != nil {
		zod += fmt.Sprintf(".max(%d)", *sch.MaxItems)
	}
	ts := item.ts
	if strings.Contains(ts, " | ") || strings.Contains(ts, " & ") {
		ts = "(" + ts + ")"
	}
	return expr{zod: zod, ts: "Array<" + ts + ">", complexity: item.complexity + 1}
}

func (s *Session) objectExpr(sch *openapi3.Schema, raw map[string]any, path []string) expr {
	names := make([]string, 0, len(sch.Properties))
	for name := range sch.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		if sch.AdditionalProperties.Schema != nil {
			value := s.exprFor(sch.AdditionalProperties.Schema, rawSub(raw, "additionalProperties"), append(path, "additionalProperties"), false)
			return expr{
				zod:        "z.record(" + value.zod + ")",
				ts:         "Record<string, " + value.ts + ">",
				complexity: value.complexity + 1,
			}
		}
		return s.emptyObjectExpr()
	}

	required := make(map[string]bool, len(sch.Required))
	for _, r := range sch.Required {
		required[r] = true
	}

	rawProps := rawSub(raw, "properties")

	var (
		zodFields  []string
		tsFields   []string
		complexity = 1
	)
	for _, name := range names {
		prop := s.exprFor(sch.Properties[name], rawMap(rawProps[name]), append(path, "properties", name), false)
		complexity += prop.complexity

		zodField := prop.zod
		tsName := tsKey(name)
		if required[name] {
			tsFields = append(tsFields, tsName+": "+prop.ts)
		} else {
			zodField += ".optional()"
			tsFields = append(tsFields, tsName+"?: "+prop.ts)
		}
		zodFields = append(zodFields, tsName+": "+zodField)
	}

	zod := "z.object({ " + strings.Join(zodFields, ", ") + " })"
	zod += s.modeSuffix()
	ts := "{ " + strings.Join(tsFields, "; ") + " }"
	return expr{zod: zod, ts: ts, complexity: complexity}
}

func (s *Session) emptyObjectExpr() expr {
	switch s.opts.EmptyObjectBehavior {
	case EmptyObjectStrict:
		return expr{zod: "z.object({}).strict()", ts: "{}", complexity: 1}
	case EmptyObjectRecord:
		return expr{zod: "z.record(z.unknown())", ts: "Record<string, unknown>", complexity: 1}
	default:
		return expr{zod: "z.object({}).passthrough()", ts: "Record<string, unknown>", complexity: 1}
	}
}

func (s *Session) modeSuffix() string {
	switch s.opts.Mode {
	case ModeStrict:
		return ".strict()"
	case ModeLoose:
		return ".passthrough()"
	}
	return ""
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// tsKey quotes a property name unless it is a valid bare identifier.
func tsKey(name string) string {
	if identRe.MatchString(name) {
		return name
	}
	return jsString(name)
}

// jsString renders a Go string as a JavaScript double-quoted literal.
// strconv.Quote is not usable here: Go escapes like \a and \x07 are not
// valid JavaScript string escapes.
func jsString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
