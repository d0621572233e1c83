// Package batch runs generation for multiple specs with bounded
// concurrency. Each spec gets an isolated composition pass; only the parse
// cache is shared. A failing spec never aborts or corrupts another spec's
// result.
package batch

import (
	"golang.org/x/sync/errgroup"

	"github.com/oasgen-dev/oasgen/pkg/config"
	"github.com/oasgen-dev/oasgen/pkg/generator"
)

// DefaultConcurrency bounds parallel spec processing when no limit is
// configured.
const DefaultConcurrency = 4

// Result is the per-spec outcome of a batch run.
type Result struct {
	Spec string
	Err  error
}

// Runner executes generation across specs.
type Runner struct {
	service *generator.Service
	limit   int
}

// NewRunner creates a batch runner over a generator service. A limit of
// zero or less selects DefaultConcurrency.
func NewRunner(service *generator.Service, limit int) *Runner {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Runner{service: service, limit: limit}
}

// Run processes every spec and returns one result per spec, in input
// order. Specs run concurrently up to the runner's limit; errors are
// captured per spec rather than short-circuiting the group.
func (r *Runner) Run(specs []config.Spec) []Result {
	results := make([]Result, len(specs))

	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, spec := range specs {
		g.Go(func() error {
			results[i] = Result{Spec: spec.Name, Err: r.service.GenerateSpec(spec)}
			return nil
		})
	}
	// Goroutines never return errors; failures live in the results.
	_ = g.Wait()
	return results
}

// FailureCount reports how many results carry an error.
func FailureCount(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
