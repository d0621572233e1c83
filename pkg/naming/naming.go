// Package naming holds the deterministic string transforms shared by the
// extractor and the generators: path-to-identifier mapping, operationId
// sanitization, prefix stripping and enum member naming with collision
// resolution.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// PathToIdentifier turns a URL path into a PascalCase identifier fragment.
// Path parameters contribute "By<ParamName>" segments; the root path maps to
// a literal "Root" token.
//
//	/orgs/{orgId}/members/{memberId} -> OrgsByOrgIdMembersByMemberId
//	/                                -> Root
func PathToIdentifier(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "Root"
	}

	var b strings.Builder
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			param := seg[1 : len(seg)-1]
			b.WriteString("By")
			b.WriteString(ToPascalCase(param))
			continue
		}
		b.WriteString(ToPascalCase(seg))
	}
	if b.Len() == 0 {
		return "Root"
	}
	return b.String()
}

// MethodNameFromPath derives a camelCase method name from an HTTP method and
// a path, e.g. ("get", "/users/{id}") -> "getUsersById".
func MethodNameFromPath(httpMethod, path string) string {
	return strings.ToLower(httpMethod) + PathToIdentifier(path)
}

// SanitizeOperationID turns a raw operationId into a valid camelCase
// identifier: separators are stripped, case is collapsed and a leading digit
// is guarded with an underscore.
func SanitizeOperationID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	out := strcase.ToLowerCamel(RemoveAccents(id))
	out = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, out)
	if out == "" {
		return ""
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

// StripPrefix removes prefix from s when it matches. The prefix may be a
// literal string or a glob pattern (see CompileGlob); pattern stripping finds
// the longest matching prefix among all candidate prefixes of s, not the
// first match.
func StripPrefix(s, prefix string) string {
	if prefix == "" {
		return s
	}
	if !isGlob(prefix) {
		return strings.TrimPrefix(s, prefix)
	}

	re, err := CompileGlob(prefix, false)
	if err != nil {
		return s
	}
	longest := -1
	for i := 1; i <= len(s); i++ {
		if re.MatchString(s[:i]) {
			longest = i
		}
	}
	if longest < 0 {
		return s
	}
	return s[longest:]
}

// StripPathPrefix removes a literal or pattern prefix from a URL path and
// re-anchors the remainder with a leading slash so downstream naming always
// sees a rooted path.
func StripPathPrefix(path, prefix string) string {
	if prefix == "" {
		return path
	}
	stripped := StripPrefix(path, prefix)
	if stripped == path {
		return path
	}
	if !strings.HasPrefix(stripped, "/") {
		stripped = "/" + stripped
	}
	return stripped
}

// isGlob reports whether the pattern contains glob metacharacters.
func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// Registry tracks identifiers already assigned within one generation pass
// and resolves collisions with a deterministic numeric suffix starting at 2.
// A Registry is created empty per pass and discarded afterwards; it is not
// safe for concurrent use.
type Registry struct {
	taken map[string]struct{}
}

// NewRegistry returns an empty identifier registry.
func NewRegistry() *Registry {
	return &Registry{taken: make(map[string]struct{})}
}

// Claim reserves name, appending the smallest numeric suffix >= 2 when the
// name is already taken. The returned identifier is unique within the
// registry's lifetime.
func (r *Registry) Claim(name string) string {
	if _, ok := r.taken[name]; !ok {
		r.taken[name] = struct{}{}
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if _, ok := r.taken[candidate]; !ok {
			r.taken[candidate] = struct{}{}
			return candidate
		}
	}
}

// Has reports whether name has been claimed.
func (r *Registry) Has(name string) bool {
	_, ok := r.taken[name]
	return ok
}

// EnumIdentifier maps a single enum literal to an identifier. A leading "-"
// is stripped and contributes a "Desc" suffix, a leading "+" an "Asc" suffix
// (sort-order convention); the remainder is PascalCased and a leading digit
// is guarded with a token matching the value kind ("Num" for numeric enums,
// "Value" otherwise).
func EnumIdentifier(value string, numeric bool) string {
	suffix := ""
	switch {
	case strings.HasPrefix(value, "-"):
		value = value[1:]
		suffix = "Desc"
	case strings.HasPrefix(value, "+"):
		value = value[1:]
		suffix = "Asc"
	}

	name := ToPascalCase(value)
	if name == "" {
		name = "Empty"
	}
	if unicode.IsDigit(rune(name[0])) {
		if numeric {
			name = "Num" + name
		} else {
			name = "Value" + name
		}
	}
	return name + suffix
}

// EnumIdentifiers maps an ordered sequence of enum literals to unique
// identifiers. The mapping is deterministic for a given input sequence and
// never yields duplicates: colliding names get numeric suffixes via a fresh
// Registry.
func EnumIdentifiers(values []string, numeric bool) []string {
	reg := NewRegistry()
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, reg.Claim(EnumIdentifier(v, numeric)))
	}
	return out
}
