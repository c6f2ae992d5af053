// Package recycle: tear-edge selection within a recycle loop.
package recycle

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/flowsheet/flowsheet"
)

// selectTears picks the tear streams for one nontrivial strongly connected
// component, adding them to torn until the component (minus torn edges) is
// acyclic.
//
// Heuristic (greedy minimum feedback-arc):
//  1. Compute each member's hop distance to the component's exit — a unit
//     with an edge leaving the component (or a product stream). Components
//     with no exit fall back to distance 0 everywhere.
//  2. While the component still has a cycle, collect the back edges of a
//     DFS over the remaining intra-component edges and tear the candidate
//     whose source unit sits closest to the exit, so the chain re-simulated
//     each iteration stays short. Ties break on stream ID.
//  3. Safety cap at the component's edge count; exceeding it means the
//     invariant is broken and ErrNotTearable is reported.
//
// Complexity: O(T·(U+E)) for T tears.
func selectTears(fs *flowsheet.Flowsheet, comp []string, torn map[string]bool) error {
	member := make(map[string]bool, len(comp))
	for _, u := range comp {
		member[u] = true
	}

	// Intra-component edges only.
	var edges []edge
	for _, e := range intraEdges(fs) {
		if member[e.from] && member[e.to] {
			edges = append(edges, e)
		}
	}

	exitDist := distanceToExit(fs, comp, member)

	for attempts := 0; ; attempts++ {
		if attempts > len(edges) {
			return fmt.Errorf("%w: component %v", ErrNotTearable, comp)
		}
		back := backEdges(comp, edges, torn)
		if len(back) == 0 {
			return nil // acyclic
		}

		// Prefer the back edge whose source is nearest the exit; then the
		// lexicographically smallest stream for determinism.
		sort.Slice(back, func(i, j int) bool {
			di, dj := exitDist[back[i].from], exitDist[back[j].from]
			if di != dj {
				return di < dj
			}

			return back[i].stream < back[j].stream
		})
		torn[back[0].stream] = true
	}
}

// distanceToExit runs a reverse BFS from the component's exit units.
// Members unreachable from any exit keep the zero value, which simply
// flattens the preference order for them.
func distanceToExit(fs *flowsheet.Flowsheet, comp []string, member map[string]bool) map[string]int {
	dist := make(map[string]int, len(comp))

	// Exit units: any member with a successor outside the component or a
	// product (consumer-less) outlet stream.
	var queue []string
	seen := make(map[string]bool, len(comp))
	for _, u := range comp {
		succs, err := fs.Successors(u)
		if err != nil {
			continue
		}
		external := len(succs) == 0
		for _, s := range succs {
			if !member[s] {
				external = true
				break
			}
		}
		if external {
			queue = append(queue, u)
			seen[u] = true
		}
	}

	// Reverse BFS over intra-component predecessors.
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		preds, err := fs.Predecessors(u)
		if err != nil {
			continue
		}
		for _, p := range preds {
			if !member[p] || seen[p] {
				continue
			}
			seen[p] = true
			dist[p] = dist[u] + 1
			queue = append(queue, p)
		}
	}

	return dist
}

// backEdges finds the DFS back edges of the component subgraph with torn
// streams removed, using three-color marking. An empty result means the
// subgraph is acyclic.
func backEdges(comp []string, edges []edge, torn map[string]bool) []edge {
	const (
		white = iota
		gray
		black
	)

	// Outgoing edge lists, preserving deterministic edge order.
	out := make(map[string][]edge, len(comp))
	for _, e := range edges {
		if torn[e.stream] {
			continue
		}
		out[e.from] = append(out[e.from], e)
	}

	state := make(map[string]int, len(comp))
	var back []edge

	// Iterative DFS; a gray→gray edge is a back edge.
	for _, root := range comp {
		if state[root] != white {
			continue
		}
		type pos struct {
			v string
			i int
		}
		stack := []pos{{v: root}}
		state[root] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			nbrs := out[top.v]
			if top.i < len(nbrs) {
				e := nbrs[top.i]
				top.i++
				switch state[e.to] {
				case white:
					state[e.to] = gray
					stack = append(stack, pos{v: e.to})
				case gray:
					back = append(back, e)
				}

				continue
			}
			state[top.v] = black
			stack = stack[:len(stack)-1]
		}
	}

	return back
}
