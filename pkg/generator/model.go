package generator

import (
	"errors"

	"github.com/oasgen-dev/oasgen/pkg/compose"
	"github.com/oasgen-dev/oasgen/pkg/config"
	"github.com/oasgen-dev/oasgen/pkg/extractor"
	"github.com/oasgen-dev/oasgen/pkg/ir"
	"github.com/oasgen-dev/oasgen/pkg/openapi"
)

// buildModel runs extraction and composition for one target. A nil model
// means a fatal problem (bad filter patterns); a non-nil model with a
// non-nil error means schema-fatal composition errors that generation
// survives.
func (s *Service) buildModel(spec config.Spec, doc *openapi.Document, target config.Target) (*ir.Model, error) {
	endpoints, err := extractor.Extract(doc.Model, extractorOptions(target), s.warn)
	if err != nil {
		return nil, err
	}

	sess := compose.NewSession(doc, compose.Options{
		Mode:                compose.Mode(target.Mode),
		DefaultNullable:     target.DefaultNullable,
		EmptyObjectBehavior: compose.EmptyObjectBehavior(target.EmptyObjectBehavior),
		MaxDepth:            target.MaxDepth,
		Warn:                s.warn,
	})
	schemas, composeErrs := sess.ComposeAll()
	markUsage(sess, endpoints)

	model := &ir.Model{
		SpecName:  spec.Name,
		Endpoints: endpoints,
		Schemas:   schemas,
	}
	if doc.Model.Info != nil {
		model.Title = doc.Model.Info.Title
		model.Version = doc.Model.Info.Version
	}
	return model, errors.Join(composeErrs...)
}

func extractorOptions(target config.Target) extractor.Options {
	return extractor.Options{
		UseOperationID: target.UseOperationID,
		Filters: extractor.Filters{
			IncludePaths:        target.Filters.IncludePaths,
			ExcludePaths:        target.Filters.ExcludePaths,
			IncludeMethods:      target.Filters.IncludeMethods,
			ExcludeMethods:      target.Filters.ExcludeMethods,
			IncludeOperationIDs: target.Filters.IncludeOperationIDs,
			ExcludeOperationIDs: target.Filters.ExcludeOperationIDs,
			IncludeStatusCodes:  target.Filters.IncludeStatusCodes,
			ExcludeStatusCodes:  target.Filters.ExcludeStatusCodes,
		},
		IgnoreHeaders:         target.IgnoreHeaders,
		StripPathPrefix:       target.StripPathPrefix,
		PreferredContentTypes: target.PreferredContentTypes,
		TrackStatusCode:       target.TrackStatusCode,
	}
}

// markUsage propagates request/response contexts from the endpoints into
// the composed schema graph.
func markUsage(sess *compose.Session, endpoints []ir.Endpoint) {
	for _, ep := range endpoints {
		if ep.RequestBody != nil && ep.RequestBody.TypeRef != "" {
			sess.MarkUsage(ep.RequestBody.TypeRef, true)
		}
		for _, p := range ep.QueryParams {
			if p.TypeRef != "" {
				sess.MarkUsage(p.TypeRef, true)
			}
		}
		for _, p := range ep.HeaderParams {
			if p.TypeRef != "" {
				sess.MarkUsage(p.TypeRef, true)
			}
		}
		if ep.Response != nil && ep.Response.TypeRef != "" {
			sess.MarkUsage(ep.Response.TypeRef, false)
		}
	}
}
