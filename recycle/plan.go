// Package recycle: the public planning entry point.
package recycle

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/flowsheet/flowsheet"
)

// BuildPlan analyzes fs and returns the simulation plan: tear streams for
// every recycle loop and a topological execution order that treats torn
// inlets as already satisfied.
//
// Steps:
//  1. Find strongly connected components (Components).
//  2. For each nontrivial component (size > 1, or a unit feeding itself),
//     select tear edges until the component is acyclic.
//  3. Topologically order the full graph with torn edges removed; a cycle
//     surviving at this point violates the tearing invariant and reports
//     ErrNotTearable.
//
// The order is deterministic: among simultaneously ready units, the one
// registered first runs first.
// Complexity: O(U² + T·(U+E)); the quadratic term is the stable ready-scan
// in the topological sort, negligible at flowsheet scale.
func BuildPlan(fs *flowsheet.Flowsheet) (*Plan, error) {
	if fs == nil {
		return nil, ErrNilFlowsheet
	}

	// 1) Loop detection.
	comps, err := Components(fs)
	if err != nil {
		return nil, err
	}

	// 2) Tear selection per nontrivial component.
	torn := make(map[string]bool)
	var loops [][]string
	for _, comp := range comps {
		if !nontrivial(fs, comp) {
			continue
		}
		loops = append(loops, comp)
		if err = selectTears(fs, comp, torn); err != nil {
			return nil, err
		}
	}

	// 3) Topological order with torn edges removed.
	order, err := topoOrder(fs, torn)
	if err != nil {
		return nil, err
	}

	tears := make([]string, 0, len(torn))
	for s := range torn {
		tears = append(tears, s)
	}
	sort.Strings(tears)

	return &Plan{Order: order, Tears: tears, Loops: loops}, nil
}

// nontrivial reports whether a component is a recycle loop: more than one
// member, or a single unit consuming its own outlet.
func nontrivial(fs *flowsheet.Flowsheet, comp []string) bool {
	if len(comp) > 1 {
		return true
	}
	for _, e := range intraEdges(fs) {
		if e.from == comp[0] && e.to == comp[0] {
			return true
		}
	}

	return false
}

// topoOrder is a stable Kahn sort: repeatedly emit the earliest-registered
// unit whose (non-torn) predecessors have all run. A pass that emits
// nothing while units remain means a cycle survived tearing.
func topoOrder(fs *flowsheet.Flowsheet, torn map[string]bool) ([]string, error) {
	units := fs.Units()
	indeg := make(map[string]int, len(units))
	adj := make(map[string][]string, len(units))
	for _, e := range intraEdges(fs) {
		if torn[e.stream] {
			continue
		}
		adj[e.from] = append(adj[e.from], e.to)
		indeg[e.to]++
	}

	order := make([]string, 0, len(units))
	emitted := make(map[string]bool, len(units))
	for len(order) < len(units) {
		progressed := false
		for _, u := range units {
			if emitted[u] || indeg[u] > 0 {
				continue
			}
			emitted[u] = true
			order = append(order, u)
			for _, w := range adj[u] {
				indeg[w]--
			}
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("%w: cycle survives tearing", ErrNotTearable)
		}
	}

	return order, nil
}
