// Package recycle: strongly connected components of the unit graph via
// iterative Tarjan.
package recycle

import (
	"sort"

	"github.com/katalvlaran/flowsheet/flowsheet"
)

// Components computes the strongly connected components of the unit
// dependency graph of fs. Every unit belongs to exactly one component;
// a component with more than one unit (or a self-loop) is a recycle loop.
//
// Steps:
//  1. Build the intra-graph edge list (feeds/products excluded).
//  2. Run Tarjan's algorithm with an explicit stack, visiting units in
//     registration order so output is deterministic.
//  3. Sort each component by registration order.
//
// Components are emitted in reverse topological order of the condensation
// (Tarjan's natural emission order).
// Complexity: O(U + E).
func Components(fs *flowsheet.Flowsheet) ([][]string, error) {
	if fs == nil {
		return nil, ErrNilFlowsheet
	}

	units := fs.Units()
	adj := adjacency(intraEdges(fs), nil)
	seq := make(map[string]int, len(units))
	for i, u := range units {
		seq[u] = i
	}

	t := &tarjan{
		adj:     adj,
		index:   make(map[string]int, len(units)),
		lowlink: make(map[string]int, len(units)),
		onStack: make(map[string]bool, len(units)),
	}
	for _, u := range units {
		if _, visited := t.index[u]; !visited {
			t.strongConnect(u)
		}
	}

	// Sort members of each component by registration order for stable output.
	for _, comp := range t.components {
		sort.Slice(comp, func(i, j int) bool { return seq[comp[i]] < seq[comp[j]] })
	}

	return t.components, nil
}

// tarjan holds the traversal state for the iterative strongConnect.
type tarjan struct {
	adj        map[string][]string
	next       int
	index      map[string]int
	lowlink    map[string]int
	onStack    map[string]bool
	stack      []string
	components [][]string
}

// frame is one suspended DFS position: vertex v with its neighbor cursor.
type frame struct {
	v string
	i int
}

// strongConnect runs the Tarjan DFS from root using an explicit call stack,
// so arbitrarily deep flowsheets cannot exhaust goroutine stack space.
func (t *tarjan) strongConnect(root string) {
	call := []frame{{v: root}}
	t.open(root)

	for len(call) > 0 {
		top := &call[len(call)-1]
		nbrs := t.adj[top.v]

		if top.i < len(nbrs) {
			w := nbrs[top.i]
			top.i++
			switch {
			case t.indexOf(w) < 0:
				// Unvisited: descend.
				t.open(w)
				call = append(call, frame{v: w})
			case t.onStack[w]:
				// Back edge into the current stack: fold its index in.
				if t.index[w] < t.lowlink[top.v] {
					t.lowlink[top.v] = t.index[w]
				}
			}

			continue
		}

		// All neighbors explored: close the frame.
		v := top.v
		call = call[:len(call)-1]
		if len(call) > 0 {
			parent := &call[len(call)-1]
			if t.lowlink[v] < t.lowlink[parent.v] {
				t.lowlink[parent.v] = t.lowlink[v]
			}
		}
		// Root of a component: pop the Tarjan stack down to v.
		if t.lowlink[v] == t.index[v] {
			var comp []string
			for {
				w := t.stack[len(t.stack)-1]
				t.stack = t.stack[:len(t.stack)-1]
				t.onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			t.components = append(t.components, comp)
		}
	}
}

// open assigns discovery indices and pushes v on the Tarjan stack.
func (t *tarjan) open(v string) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true
}

// indexOf returns v's discovery index, or -1 if unvisited.
func (t *tarjan) indexOf(v string) int {
	if idx, ok := t.index[v]; ok {
		return idx
	}

	return -1
}

// intraEdges extracts the dependency edges with both endpoints present,
// in deterministic (stream-sorted) order.
func intraEdges(fs *flowsheet.Flowsheet) []edge {
	rows := fs.Edges()
	out := make([]edge, 0, len(rows))
	for _, r := range rows {
		if r.From == "" || r.To == "" {
			continue
		}
		out = append(out, edge{stream: r.Stream, from: r.From, to: r.To})
	}

	return out
}

// adjacency builds a successor list from edges, skipping any stream in the
// torn set. Neighbor lists inherit the deterministic edge order.
func adjacency(edges []edge, torn map[string]bool) map[string][]string {
	adj := make(map[string][]string)
	for _, e := range edges {
		if torn[e.stream] {
			continue
		}
		adj[e.from] = append(adj[e.from], e.to)
	}

	return adj
}
