package compose

import (
	"fmt"
	"sort"
	"strings"
)

// conditionalSuffix synthesizes the runtime checks for keywords the static
// object shape cannot express: if/then/else, dependentRequired,
// dependentSchemas, and the legacy dependencies keyword. The result is a
// .superRefine chain segment, or "" when none of the keywords are present.
// Raw access is required here because the loader's typed model drops these
// keywords.
func (s *Session) conditionalSuffix(raw map[string]any, path []string) string {
	if raw == nil {
		return ""
	}

	var stmts []string

	if ifRaw := rawSub(raw, "if"); ifRaw != nil {
		if stmt := s.ifThenElseStmt(raw, ifRaw, path); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}

	depRequired := dependentRequiredOf(raw)
	depSchemas := dependentSchemasOf(raw)

	triggers := make([]string, 0, len(depRequired))
	for t := range depRequired {
		triggers = append(triggers, t)
	}
	sort.Strings(triggers)
	for _, trigger := range triggers {
		stmts = append(stmts, dependentRequiredStmt(trigger, depRequired[trigger]))
	}

	schemaTriggers := make([]string, 0, len(depSchemas))
	for t := range depSchemas {
		schemaTriggers = append(schemaTriggers, t)
	}
	sort.Strings(schemaTriggers)
	for _, trigger := range schemaTriggers {
		stmts = append(stmts, s.dependentSchemaStmt(trigger, depSchemas[trigger], path))
	}

	if len(depRequired) > 0 {
		if err := DetectCycles(depRequired); err != nil {
			s.recordErr(err)
		}
	}

	if len(stmts) == 0 {
		return ""
	}
	body := "if (!value || typeof value !== \"object\") { return; } " + strings.Join(stmts, " ")
	return ".superRefine((value, ctx) => { " + body + " })"
}

// ifThenElseStmt routes the instance through then or else based on whether
// the if subschema accepts it, applying the chosen branch's checks.
func (s *Session) ifThenElseStmt(raw, ifRaw map[string]any, path []string) string {
	cond := s.exprFor(rawToSchemaRef(ifRaw), ifRaw, append(path, "if"), false)

	var thenStmt, elseStmt string
	if thenRaw := rawSub(raw, "then"); thenRaw != nil {
		thenStmt = s.branchStmt(thenRaw, append(path, "then"))
	}
	if elseRaw := rawSub(raw, "else"); elseRaw != nil {
		elseStmt = s.branchStmt(elseRaw, append(path, "else"))
	}

	switch {
	case thenStmt != "" && elseStmt != "":
		return "if (" + cond.zod + ".safeParse(value).success) { " + thenStmt + " } else { " + elseStmt + " }"
	case thenStmt != "":
		return "if (" + cond.zod + ".safeParse(value).success) { " + thenStmt + " }"
	case elseStmt != "":
		return "if (!" + cond.zod + ".safeParse(value).success) { " + elseStmt + " }"
	}
	return ""
}

// dependentRequiredStmt enforces that when trigger is present, every listed
// dependency is present too, naming each missing property in its issue.
func dependentRequiredStmt(trigger string, deps []string) string {
	var checks []string
	for _, dep := range deps {
		msg := fmt.Sprintf("property %q requires %q", trigger, dep)
		checks = append(checks,
			"if (!("+jsString(dep)+" in value)) { ctx.addIssue({ code: z.ZodIssueCode.custom, message: "+
				jsString(msg)+", path: ["+jsString(dep)+"] }); }")
	}
	return "if (" + jsString(trigger) + " in value) { " + strings.Join(checks, " ") + " }"
}

// dependentSchemaStmt applies the dependent schema's checks when trigger is
// present.
func (s *Session) dependentSchemaStmt(trigger string, schemaRaw map[string]any, path []string) string {
	return "if (" + jsString(trigger) + " in value) { " + s.branchStmt(schemaRaw, append(path, "dependentSchemas", trigger)) + " }"
}

// branchStmt lowers a then/else or dependent subschema into issue-raising
// statements. A bare required list gets per-property presence checks so a
// failure names each missing property; anything else validates through its
// composed schema with the issues forwarded.
func (s *Session) branchStmt(raw map[string]any, path []string) string {
	if reqs := rawStrings(raw, "required"); len(reqs) > 0 && requiredOnly(raw) {
		return missingRequiredChecks(reqs)
	}
	e := s.exprFor(rawToSchemaRef(raw), raw, path, false)
	return forwardIssues(e.zod)
}

// requiredOnly reports whether the subschema constrains nothing beyond key
// presence.
func requiredOnly(raw map[string]any) bool {
	for key := range raw {
		switch key {
		case "required", "title", "description":
		default:
			return false
		}
	}
	return true
}

func missingRequiredChecks(reqs []string) string {
	var checks []string
	for _, name := range reqs {
		msg := fmt.Sprintf("missing required property %q", name)
		checks = append(checks,
			"if (!("+jsString(name)+" in value)) { ctx.addIssue({ code: z.ZodIssueCode.custom, message: "+
				jsString(msg)+", path: ["+jsString(name)+"] }); }")
	}
	return strings.Join(checks, " ")
}

func forwardIssues(zod string) string {
	return "const r = " + zod + ".safeParse(value); if (!r.success) { for (const issue of r.error.issues) { ctx.addIssue(issue); } }"
}

// dependentRequiredOf folds the 3.1 dependentRequired keyword and the array
// form of the legacy dependencies keyword into one trigger map.
func dependentRequiredOf(raw map[string]any) map[string][]string {
	out := make(map[string][]string)
	merge := func(m map[string]any) {
		for trigger, v := range m {
			list, ok := v.([]any)
			if !ok {
				continue
			}
			for _, item := range list {
				if dep, ok := item.(string); ok {
					out[trigger] = append(out[trigger], dep)
				}
			}
			sort.Strings(out[trigger])
		}
	}
	if m := rawSub(raw, "dependentRequired"); m != nil {
		merge(m)
	}
	if m := rawSub(raw, "dependencies"); m != nil {
		merge(m)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// dependentSchemasOf folds the 3.1 dependentSchemas keyword and the object
// form of the legacy dependencies keyword into one trigger map.
func dependentSchemasOf(raw map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any)
	merge := func(m map[string]any) {
		for trigger, v := range m {
			if sub := rawMap(v); sub != nil {
				out[trigger] = sub
			}
		}
	}
	if m := rawSub(raw, "dependentSchemas"); m != nil {
		merge(m)
	}
	if m := rawSub(raw, "dependencies"); m != nil {
		merge(m)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
