package unit

import (
	"context"
	"fmt"

	"github.com/katalvlaran/flowsheet/stream"
)

// Reactor converts a fixed fraction of one reactant into products under a
// fixed stoichiometric yield map (mol product per mol reactant converted).
// One inlet, one outlet; temperature, pressure and phase pass through.
type Reactor struct {
	name       string
	reactant   stream.Species
	conversion float64
	yields     map[stream.Species]float64
}

// NewReactor constructs a conversion reactor.
// conversion must lie in [0,1]; yields must be non-negative.
func NewReactor(name string, reactant stream.Species, conversion float64, yields map[stream.Species]float64) (*Reactor, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if conversion < 0 || conversion > 1 {
		return nil, fmt.Errorf("%w: reactor %q conversion %g", ErrBadFraction, name, conversion)
	}
	cp := make(map[stream.Species]float64, len(yields))
	for sp, y := range yields {
		if y < 0 {
			return nil, fmt.Errorf("unit: reactor %q negative yield for %s: %g", name, sp, y)
		}
		cp[sp] = y
	}

	return &Reactor{name: name, reactant: reactant, conversion: conversion, yields: cp}, nil
}

// Name returns the unit name.
func (r *Reactor) Name() string { return r.name }

// NumInlets returns 1.
func (r *Reactor) NumInlets() int { return 1 }

// NumOutlets returns 1.
func (r *Reactor) NumOutlets() int { return 1 }

// Simulate applies the conversion to the reactant and credits products.
func (r *Reactor) Simulate(_ context.Context, in, out []*stream.Stream) error {
	if err := checkArity(r.name, 1, 1, in, out); err != nil {
		return err
	}

	comp := in[0].Composition()
	converted := comp[r.reactant] * r.conversion
	comp[r.reactant] -= converted
	for sp, y := range r.yields {
		comp[sp] += converted * y
	}

	if err := out[0].SetComposition(comp); err != nil {
		return Fail(r.name, err)
	}
	if err := out[0].SetTemperature(in[0].Temperature()); err != nil {
		return Fail(r.name, err)
	}
	if err := out[0].SetPressure(in[0].Pressure()); err != nil {
		return Fail(r.name, err)
	}
	out[0].SetPhase(in[0].Phase())

	return nil
}
