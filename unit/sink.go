package unit

import (
	"context"

	"github.com/katalvlaran/flowsheet/stream"
)

// Sink is a terminal unit with one inlet and no outlets. It records the
// total flow it last received as a design result, which gives product
// streams an explicit consumer in the graph.
type Sink struct {
	name    string
	results map[string]float64
}

// NewSink constructs a sink. Returns ErrEmptyUnitName if name is empty.
func NewSink(name string) (*Sink, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	return &Sink{name: name, results: make(map[string]float64)}, nil
}

// Name returns the unit name.
func (s *Sink) Name() string { return s.name }

// NumInlets returns 1.
func (s *Sink) NumInlets() int { return 1 }

// NumOutlets returns 0.
func (s *Sink) NumOutlets() int { return 0 }

// Results returns the design results of the last Simulate call.
func (s *Sink) Results() map[string]float64 { return s.results }

// Simulate records the received total flow.
func (s *Sink) Simulate(_ context.Context, in, out []*stream.Stream) error {
	if err := checkArity(s.name, 1, 0, in, out); err != nil {
		return err
	}
	s.results["received_flow"] = in[0].TotalFlow()

	return nil
}
