// Package recycle analyzes the unit-dependency graph of a flowsheet:
// it finds recycle loops, selects the tear streams that break them, and
// produces the simulation order the convergence solver executes.
//
// What:
//
//   - Components: strongly connected components of the unit graph
//     (iterative Tarjan — no recursion-depth hazard on deep flowsheets).
//   - Plan: per nontrivial component, greedily selects tear edges until the
//     component is acyclic, preferring tears that re-simulate the fewest
//     units per iteration and, on ties, the edge closest to the component's
//     exit; then computes a topological order over the graph with tear
//     inlets treated as already satisfied.
//
// Why:
//   - A sequential-modular simulator can only execute an acyclic sequence.
//     Tearing turns each recycle loop into an acyclic chain whose torn
//     stream is guessed, recomputed, and iterated to a fixed point.
//
// Guarantees:
//
//   - The graph with the returned tear edges removed is always acyclic;
//     Plan verifies this and reports ErrNotTearable otherwise. That error
//     marks a broken invariant of the selection rule, not a recoverable
//     input condition.
//   - Output is deterministic: unit registration order breaks all ties.
//
// Complexity: Components O(U+E); Plan O(T·(U+E)) where T is the number of
// tears selected (typically the number of independent loops).
package recycle
