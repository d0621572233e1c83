package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasgen-dev/oasgen/pkg/naming"
)

// compiledFilters holds the glob patterns from Filters compiled once per
// extraction run.
type compiledFilters struct {
	includePaths []*regexp.Regexp
	excludePaths []*regexp.Regexp
	includeOps   []*regexp.Regexp
	excludeOps   []*regexp.Regexp
	cfg          Filters
}

func compileFilters(f Filters) (*compiledFilters, error) {
	var (
		out = &compiledFilters{cfg: f}
		err error
	)
	if out.includePaths, err = naming.CompileGlobs(f.IncludePaths, false); err != nil {
		return nil, fmt.Errorf("invalid includePaths pattern: %w", err)
	}
	if out.excludePaths, err = naming.CompileGlobs(f.ExcludePaths, false); err != nil {
		return nil, fmt.Errorf("invalid excludePaths pattern: %w", err)
	}
	if out.includeOps, err = naming.CompileGlobs(f.IncludeOperationIDs, false); err != nil {
		return nil, fmt.Errorf("invalid includeOperationIds pattern: %w", err)
	}
	if out.excludeOps, err = naming.CompileGlobs(f.ExcludeOperationIDs, false); err != nil {
		return nil, fmt.Errorf("invalid excludeOperationIds pattern: %w", err)
	}
	return out, nil
}

// matches applies the include-then-exclude filter chain to one operation.
func (c *compiledFilters) matches(path, method string, op *openapi3.Operation) bool {
	if len(c.includePaths) > 0 && !naming.MatchAny(c.includePaths, path) {
		return false
	}
	if naming.MatchAny(c.excludePaths, path) {
		return false
	}

	if len(c.cfg.IncludeMethods) > 0 && !containsFold(c.cfg.IncludeMethods, method) {
		return false
	}
	if containsFold(c.cfg.ExcludeMethods, method) {
		return false
	}

	if len(c.includeOps) > 0 && !naming.MatchAny(c.includeOps, op.OperationID) {
		return false
	}
	if op.OperationID != "" && naming.MatchAny(c.excludeOps, op.OperationID) {
		return false
	}

	if len(c.cfg.IncludeStatusCodes) > 0 && !hasStatusCode(op, c.cfg.IncludeStatusCodes) {
		return false
	}
	if len(c.cfg.ExcludeStatusCodes) > 0 && hasStatusCode(op, c.cfg.ExcludeStatusCodes) {
		return false
	}

	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

// hasStatusCode reports whether the operation declares any of the listed
// status codes. Codes match literally, with "2xx"-style wildcards allowed on
// the last two digits.
func hasStatusCode(op *openapi3.Operation, codes []string) bool {
	if op.Responses == nil {
		return false
	}
	for declared := range op.Responses.Map() {
		for _, want := range codes {
			if statusMatches(declared, want) {
				return true
			}
		}
	}
	return false
}

func statusMatches(declared, want string) bool {
	if strings.EqualFold(declared, want) {
		return true
	}
	if len(want) == 3 && len(declared) == 3 && strings.EqualFold(want[1:], "xx") {
		return declared[0] == want[0]
	}
	return false
}
