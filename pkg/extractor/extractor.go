// Package extractor walks a document's path tree and produces the flat list
// of normalized endpoint descriptors the generators consume.
package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasgen-dev/oasgen/pkg/ir"
	"github.com/oasgen-dev/oasgen/pkg/naming"
	"github.com/oasgen-dev/oasgen/pkg/resolver"
)

// Options controls endpoint extraction.
type Options struct {
	// UseOperationID derives method names from operationId when present;
	// otherwise names are derived from the HTTP method and path.
	UseOperationID bool
	// Filters select which operations survive extraction. An operation is
	// included iff it passes all configured include filters and none of the
	// exclude filters; no filters means include everything.
	Filters Filters
	// IgnoreHeaders lists glob patterns for header parameters to drop,
	// matched case-insensitively. A single "*" ignores all headers.
	IgnoreHeaders []string
	// StripPathPrefix is a literal or glob prefix removed from every path
	// before any naming decision.
	StripPathPrefix string
	// PreferredContentTypes is tried in order when picking request and
	// response bodies. Defaults to ["application/json"].
	PreferredContentTypes []string
	// TrackStatusCode records the matched success status code on each
	// endpoint and reports content-less 2xx responses as void.
	TrackStatusCode bool
}

// Filters holds include/exclude operation filters. All pattern fields are
// glob patterns; method and status-code fields match literally.
type Filters struct {
	IncludePaths        []string
	ExcludePaths        []string
	IncludeMethods      []string
	ExcludeMethods      []string
	IncludeOperationIDs []string
	ExcludeOperationIDs []string
	IncludeStatusCodes  []string
	ExcludeStatusCodes  []string
}

// IsEmpty reports whether no filter is configured.
func (f Filters) IsEmpty() bool {
	return len(f.IncludePaths) == 0 && len(f.ExcludePaths) == 0 &&
		len(f.IncludeMethods) == 0 && len(f.ExcludeMethods) == 0 &&
		len(f.IncludeOperationIDs) == 0 && len(f.ExcludeOperationIDs) == 0 &&
		len(f.IncludeStatusCodes) == 0 && len(f.ExcludeStatusCodes) == 0
}

// Extract walks doc.paths in key order and returns one endpoint descriptor
// per (path, method) pair that survives filtering. Non-fatal irregularities
// (unknown content types, missing preferred media) are reported through warn.
func Extract(doc *openapi3.T, opts Options, warn ir.WarnFunc) ([]ir.Endpoint, error) {
	if warn == nil {
		warn = func(string) {}
	}
	if len(opts.PreferredContentTypes) == 0 {
		opts.PreferredContentTypes = []string{"application/json"}
	}

	filter, err := compileFilters(opts.Filters)
	if err != nil {
		return nil, err
	}
	ignoreHeaders, err := naming.CompileGlobs(opts.IgnoreHeaders, true)
	if err != nil {
		return nil, fmt.Errorf("invalid ignoreHeaders pattern: %w", err)
	}

	methodNames := naming.NewRegistry()

	var paths []string
	if doc.Paths != nil {
		for p := range doc.Paths.Map() {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var endpoints []ir.Endpoint
	for _, rawPath := range paths {
		item := doc.Paths.Map()[rawPath]
		if item == nil {
			continue
		}
		path := naming.StripPathPrefix(rawPath, opts.StripPathPrefix)

		for _, method := range ir.Methods {
			op := item.GetOperation(strings.ToUpper(method))
			if op == nil {
				continue
			}
			if !filter.matches(path, method, op) {
				continue
			}

			ep := ir.Endpoint{
				Path:        path,
				Method:      method,
				Summary:     op.Summary,
				Description: op.Description,
				Deprecated:  op.Deprecated,
			}
			ep.MethodName = methodName(opts, method, path, op, methodNames)

			merged := resolver.MergeParameters(item.Parameters, op.Parameters, doc)
			for _, p := range merged {
				switch p.In {
				case openapi3.ParameterInPath:
					ep.PathParams = append(ep.PathParams, p.Name)
				case openapi3.ParameterInQuery:
					ep.QueryParams = append(ep.QueryParams, paramInfo(p))
				case openapi3.ParameterInHeader:
					if naming.MatchAny(ignoreHeaders, p.Name) {
						continue
					}
					ep.HeaderParams = append(ep.HeaderParams, paramInfo(p))
				}
			}

			ep.RequestBody = requestBody(doc, op, opts, warn)
			ep.Response = successResponse(doc, op, opts, warn)

			endpoints = append(endpoints, ep)
		}
	}
	return endpoints, nil
}

func methodName(opts Options, method, path string, op *openapi3.Operation, reg *naming.Registry) string {
	if opts.UseOperationID && op.OperationID != "" {
		if name := naming.SanitizeOperationID(op.OperationID); name != "" {
			return reg.Claim(name)
		}
	}
	return reg.Claim(naming.MethodNameFromPath(method, path))
}

func paramInfo(p *openapi3.Parameter) ir.Param {
	info := ir.Param{
		Name:        p.Name,
		Required:    p.Required,
		Description: p.Description,
	}
	if p.Schema != nil && p.Schema.Ref != "" {
		info.TypeRef = resolver.SchemaName(p.Schema.Ref)
	}
	return info
}

// pickContent selects a media entry from content honoring the preference
// order, falling back to the first available entry (key order) with a
// warning when nothing preferred is present.
func pickContent(content openapi3.Content, preferred []string, where string, warn ir.WarnFunc) (string, *openapi3.MediaType) {
	if len(content) == 0 {
		return "", nil
	}
	for _, ct := range preferred {
		if media, ok := content[ct]; ok {
			return ct, media
		}
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	warn(fmt.Sprintf("%s: none of the preferred content types %v present, falling back to %q", where, preferred, keys[0]))
	return keys[0], content[keys[0]]
}

func requestBody(doc *openapi3.T, op *openapi3.Operation, opts Options, warn ir.WarnFunc) *ir.RequestBody {
	if op.RequestBody == nil {
		return nil
	}
	rbr := resolver.ResolveRequestBody(op.RequestBody, doc, resolver.DefaultMaxDepth)
	if rbr == nil || rbr.Value == nil {
		return nil
	}
	rb := rbr.Value
	where := "request body"
	if op.OperationID != "" {
		where = "request body of " + op.OperationID
	}
	ct, media := pickContent(rb.Content, opts.PreferredContentTypes, where, warn)
	if media == nil {
		return nil
	}
	out := &ir.RequestBody{ContentType: ct, Required: rb.Required}
	if media.Schema != nil && media.Schema.Ref != "" {
		out.TypeRef = resolver.SchemaName(media.Schema.Ref)
	}
	return out
}

// successResponse picks the first 2xx response with inspectable content.
// With status-code tracking enabled, a content-less 2xx (e.g. 204) is
// reported as a void response instead of being dropped.
func successResponse(doc *openapi3.T, op *openapi3.Operation, opts Options, warn ir.WarnFunc) *ir.Response {
	if op.Responses == nil {
		return nil
	}
	codes := make([]string, 0, op.Responses.Len())
	for code := range op.Responses.Map() {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var voidCode string
	for _, code := range codes {
		if len(code) != 3 || code[0] != '2' {
			continue
		}
		rr := resolver.ResolveResponse(op.Responses.Map()[code], doc, resolver.DefaultMaxDepth)
		if rr == nil || rr.Value == nil {
			continue
		}
		if len(rr.Value.Content) == 0 {
			if voidCode == "" {
				voidCode = code
			}
			continue
		}
		where := "response " + code
		if op.OperationID != "" {
			where = "response " + code + " of " + op.OperationID
		}
		_, media := pickContent(rr.Value.Content, opts.PreferredContentTypes, where, warn)
		if media == nil {
			continue
		}
		out := &ir.Response{}
		if opts.TrackStatusCode {
			out.StatusCode = code
		}
		if media.Schema != nil && media.Schema.Ref != "" {
			out.TypeRef = resolver.SchemaName(media.Schema.Ref)
		}
		return out
	}

	if voidCode != "" && opts.TrackStatusCode {
		return &ir.Response{StatusCode: voidCode, Void: true}
	}
	return nil
}
