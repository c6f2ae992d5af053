// Package recycle: types and sentinel errors for loop detection and tear
// planning. Algorithms live in scc.go, tear.go and plan.go.
package recycle

import "errors"

var (
	// ErrNilFlowsheet is returned when a nil flowsheet is analyzed.
	ErrNilFlowsheet = errors.New("recycle: flowsheet is nil")

	// ErrNotTearable indicates a component could not be rendered acyclic by
	// the tear-selection rule. This is an invariant violation in the
	// planner, not a property of any valid flowsheet.
	ErrNotTearable = errors.New("recycle: component cannot be torn acyclic")
)

// Plan is the result of loop analysis: the execution order for one
// simulation pass, the tear streams whose values are guessed at the start
// of each pass, and the nontrivial strongly connected components they came
// from.
type Plan struct {
	// Order lists unit names in simulation order. Every unit appears after
	// all of its non-tear predecessors.
	Order []string `yaml:"order"`

	// Tears lists the stream IDs selected as tear edges, sorted.
	Tears []string `yaml:"tears,omitempty"`

	// Loops holds each nontrivial strongly connected component (unit names
	// in registration order), for diagnostics.
	Loops [][]string `yaml:"loops,omitempty"`
}

// edge is an intra-graph dependency: the stream carrying material from unit
// `from` to unit `to`. Feed and product streams (missing an endpoint) never
// appear here.
type edge struct {
	stream   string
	from, to string
}
