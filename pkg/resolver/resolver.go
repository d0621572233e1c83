// Package resolver resolves local component references ($ref pointers of the
// form #/components/{kind}/{name}) against a loaded document.
//
// Resolution never fails hard: an unresolvable pointer, a pointer of an
// unexpected shape or an exhausted depth budget all return the original node
// unchanged. Callers treat an unresolved reference as a signal to fall back
// to an "unknown" type rather than crash.
package resolver

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultMaxDepth bounds reference-chain resolution. Chains longer than this
// are treated as unresolvable, which keeps pathological ref-to-ref loops
// from spinning forever.
const DefaultMaxDepth = 10

// componentName parses a local component pointer and returns the component
// name when the pointer addresses the wanted kind.
func componentName(ref, kind string) (string, bool) {
	prefix := "#/components/" + kind + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// SchemaName extracts the component schema name from a $ref pointer, or ""
// when the pointer does not address #/components/schemas.
func SchemaName(ref string) string {
	name, ok := componentName(ref, "schemas")
	if !ok {
		return ""
	}
	return name
}

// ResolveSchema resolves a schema node. Non-reference nodes are returned
// unchanged. Reference chains are followed up to maxDepth hops; when the
// target is missing or the budget runs out, the last unresolved node is
// returned as-is.
func ResolveSchema(node *openapi3.SchemaRef, doc *openapi3.T, maxDepth int) *openapi3.SchemaRef {
	if node == nil || node.Ref == "" {
		return node
	}
	if maxDepth <= 0 {
		return node
	}
	name, ok := componentName(node.Ref, "schemas")
	if !ok {
		return node
	}
	if doc == nil || doc.Components == nil {
		return node
	}
	target, ok := doc.Components.Schemas[name]
	if !ok || target == nil {
		return node
	}
	if target.Ref != "" {
		resolved := ResolveSchema(target, doc, maxDepth-1)
		if resolved.Ref != "" {
			// Chain did not bottom out; fail closed with the original.
			return node
		}
		return resolved
	}
	return target
}

// ResolveParameter resolves a parameter node with the same contract as
// ResolveSchema.
func ResolveParameter(node *openapi3.ParameterRef, doc *openapi3.T, maxDepth int) *openapi3.ParameterRef {
	if node == nil || node.Ref == "" {
		return node
	}
	if maxDepth <= 0 {
		return node
	}
	name, ok := componentName(node.Ref, "parameters")
	if !ok {
		return node
	}
	if doc == nil || doc.Components == nil {
		return node
	}
	target, ok := doc.Components.Parameters[name]
	if !ok || target == nil {
		return node
	}
	if target.Ref != "" {
		resolved := ResolveParameter(target, doc, maxDepth-1)
		if resolved.Ref != "" {
			return node
		}
		return resolved
	}
	return target
}

// ResolveRequestBody resolves a request body node with the same contract as
// ResolveSchema.
func ResolveRequestBody(node *openapi3.RequestBodyRef, doc *openapi3.T, maxDepth int) *openapi3.RequestBodyRef {
	if node == nil || node.Ref == "" {
		return node
	}
	if maxDepth <= 0 {
		return node
	}
	name, ok := componentName(node.Ref, "requestBodies")
	if !ok {
		return node
	}
	if doc == nil || doc.Components == nil {
		return node
	}
	target, ok := doc.Components.RequestBodies[name]
	if !ok || target == nil {
		return node
	}
	if target.Ref != "" {
		resolved := ResolveRequestBody(target, doc, maxDepth-1)
		if resolved.Ref != "" {
			return node
		}
		return resolved
	}
	return target
}

// ResolveResponse resolves a response node with the same contract as
// ResolveSchema.
func ResolveResponse(node *openapi3.ResponseRef, doc *openapi3.T, maxDepth int) *openapi3.ResponseRef {
	if node == nil || node.Ref == "" {
		return node
	}
	if maxDepth <= 0 {
		return node
	}
	name, ok := componentName(node.Ref, "responses")
	if !ok {
		return node
	}
	if doc == nil || doc.Components == nil {
		return node
	}
	target, ok := doc.Components.Responses[name]
	if !ok || target == nil {
		return node
	}
	if target.Ref != "" {
		resolved := ResolveResponse(target, doc, maxDepth-1)
		if resolved.Ref != "" {
			return node
		}
		return resolved
	}
	return target
}

// MergeParameters overlays operation-level parameters onto path-level ones.
// Both lists are resolved first; identity is the (name, location) pair and
// operation entries win on conflict. Path-level parameters keep their
// declaration order, operation-only parameters are appended in theirs.
func MergeParameters(pathLevel, opLevel openapi3.Parameters, doc *openapi3.T) []*openapi3.Parameter {
	type key struct {
		name string
		in   string
	}

	resolve := func(refs openapi3.Parameters) []*openapi3.Parameter {
		out := make([]*openapi3.Parameter, 0, len(refs))
		for _, pr := range refs {
			resolved := ResolveParameter(pr, doc, DefaultMaxDepth)
			if resolved == nil || resolved.Value == nil {
				continue
			}
			out = append(out, resolved.Value)
		}
		return out
	}

	base := resolve(pathLevel)
	overlay := resolve(opLevel)

	byKey := make(map[key]*openapi3.Parameter, len(overlay))
	for _, p := range overlay {
		byKey[key{p.Name, p.In}] = p
	}

	merged := make([]*openapi3.Parameter, 0, len(base)+len(overlay))
	for _, p := range base {
		if op, ok := byKey[key{p.Name, p.In}]; ok {
			merged = append(merged, op)
			delete(byKey, key{p.Name, p.In})
			continue
		}
		merged = append(merged, p)
	}
	for _, p := range overlay {
		if _, pending := byKey[key{p.Name, p.In}]; pending {
			merged = append(merged, p)
			delete(byKey, key{p.Name, p.In})
		}
	}
	return merged
}
