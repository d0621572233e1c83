package naming

import (
	"regexp"
	"strings"
)

// CompileGlob compiles a glob pattern into an anchored regular expression.
// Supported metacharacters: "*" (any run of characters not crossing a "/"),
// "?" (any single character) and "[...]" character classes. Everything else
// is matched literally. Path and literal matching is case-sensitive;
// header-name matching passes caseInsensitive=true per HTTP header
// semantics.
func CompileGlob(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	var b strings.Builder
	if caseInsensitive {
		b.WriteString("(?i)")
	}
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			b.WriteString("[^/]*")
		case '?':
			b.WriteString(".")
		case '[':
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				b.WriteString(regexp.QuoteMeta(string(c)))
				continue
			}
			b.WriteString(pattern[i : i+end+1])
			i += end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// CompileGlobs compiles a list of glob patterns, failing on the first
// invalid one.
func CompileGlobs(patterns []string, caseInsensitive bool) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := CompileGlob(p, caseInsensitive)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// MatchAny reports whether s matches any of the compiled patterns.
func MatchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
