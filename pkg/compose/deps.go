package compose

import (
	"sort"
	"strings"
)

// CycleError reports a cyclic property dependency. Schemas with cyclic
// dependencies cannot be validated in a single pass and are rejected as a
// whole rather than emitting a refinement that would loop.
type CycleError struct {
	// Path lists the properties on the cycle, first repeated last, e.g.
	// ["a", "b", "a"].
	Path []string
}

func (e *CycleError) Error() string {
	return "cyclic property dependency: " + strings.Join(e.Path, " -> ")
}

// DetectCycles runs depth-first search over the property dependency graph
// and returns a CycleError for the first cycle found, nil otherwise.
// Iteration order is deterministic so the same graph always reports the
// same cycle.
func DetectCycles(graph map[string][]string) error {
	nodes := make([]string, 0, len(graph))
	for n := range graph {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(graph))
	var stack []string

	var visit func(n string) *CycleError
	visit = func(n string) *CycleError {
		color[n] = gray
		stack = append(stack, n)
		for _, dep := range graph[n] {
			switch color[dep] {
			case gray:
				start := 0
				for i, s := range stack {
					if s == dep {
						start = i
						break
					}
				}
				path := append(append([]string{}, stack[start:]...), dep)
				return &CycleError{Path: path}
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
		return nil
	}

	for _, n := range nodes {
		if color[n] == white {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
