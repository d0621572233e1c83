package compose

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
)

// The raw document mirror is untyped; these guards keep the rest of the
// engine working on a closed set of shapes.

func rawMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// rawSub returns raw[key] as a mapping, or nil.
func rawSub(raw map[string]any, key string) map[string]any {
	if raw == nil {
		return nil
	}
	return rawMap(raw[key])
}

// rawSlice returns raw[key] as a sequence of mappings; non-mapping entries
// become nil placeholders to keep indexes aligned.
func rawSlice(raw map[string]any, key string) []map[string]any {
	if raw == nil {
		return nil
	}
	items, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, len(items))
	for i, item := range items {
		out[i] = rawMap(item)
	}
	return out
}

// rawStrings returns raw[key] as a string sequence, dropping anything else.
func rawStrings(raw map[string]any, key string) []string {
	if raw == nil {
		return nil
	}
	items, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// rawRefName returns the component schema name a raw node's $ref points at.
// hasRawConst reports whether the node declares a const value. The keyword
// only exists on the raw mirror.
func hasRawConst(raw map[string]any) bool {
	_, ok := raw["const"]
	return ok
}

// emptyUnionKeyword reports which union keyword is declared with zero
// branches, or "".
func emptyUnionKeyword(raw map[string]any) string {
	for _, key := range []string{"oneOf", "anyOf"} {
		if v, ok := raw[key]; ok {
			if arr, isArr := v.([]any); isArr && len(arr) == 0 {
				return key
			}
		}
	}
	return ""
}

func rawRefName(raw map[string]any) string {
	if raw == nil {
		return ""
	}
	ref, _ := raw["$ref"].(string)
	if ref == "" {
		return ""
	}
	const prefix = "#/components/schemas/"
	if len(ref) > len(prefix) && ref[:len(prefix)] == prefix {
		return ref[len(prefix):]
	}
	return ""
}

// rawNumber extracts a numeric keyword as float64.
func rawNumber(raw map[string]any, key string) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	switch v := raw[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// rawToSchemaRef rebuilds a typed schema node from a raw mapping so raw-only
// keywords (dependentSchemas values, if/then/else bodies) can flow back
// through the normal synthesis path.
func rawToSchemaRef(raw map[string]any) *openapi3.SchemaRef {
	if raw == nil {
		return nil
	}
	if ref, _ := raw["$ref"].(string); ref != "" {
		return &openapi3.SchemaRef{Ref: ref}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var sch openapi3.Schema
	if err := sch.UnmarshalJSON(data); err != nil {
		return nil
	}
	return &openapi3.SchemaRef{Value: &sch}
}
