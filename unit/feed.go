package unit

import (
	"context"

	"github.com/katalvlaran/flowsheet/stream"
)

// Feed is a source unit with no inlets and one outlet. Every pass it
// restores its outlet to a fixed state, pinning the flowsheet boundary
// conditions regardless of what earlier passes wrote on the stream.
type Feed struct {
	name  string
	state stream.State
}

// NewFeed constructs a feed named name that imposes st on its outlet.
// Returns ErrEmptyUnitName if name is empty.
func NewFeed(name string, st stream.State) (*Feed, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	return &Feed{name: name, state: st}, nil
}

// Name returns the unit name.
func (f *Feed) Name() string { return f.name }

// NumInlets returns 0: feeds have no upstream dependency.
func (f *Feed) NumInlets() int { return 0 }

// NumOutlets returns 1.
func (f *Feed) NumOutlets() int { return 1 }

// Simulate writes the fixed feed state onto the outlet stream.
func (f *Feed) Simulate(_ context.Context, in, out []*stream.Stream) error {
	if err := checkArity(f.name, 0, 1, in, out); err != nil {
		return err
	}
	out[0].Restore(f.state)

	return nil
}
