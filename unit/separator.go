package unit

import (
	"context"
	"fmt"

	"github.com/katalvlaran/flowsheet/stream"
)

// Separator performs a component split of one inlet into a top (vapor) and a
// bottom (liquid) product: each species routes a fixed fraction overhead and
// the balance to the bottoms. Light non-keys carry fraction 1, heavy
// non-keys fraction 0, and key components whatever recovery the separation
// is specified to achieve — the classic shortcut-column mass balance.
//
// Separator attaches design results after simulation (ResultReporter):
// "top_flow", "bottom_flow" and "vapor_fraction" in molar terms.
type Separator struct {
	name    string
	toTop   map[stream.Species]float64
	results map[string]float64
}

// NewSeparator constructs a separator routing toTop[sp] of each species
// overhead. Fractions must lie in [0,1]; species absent from the map route
// fully to the bottoms.
func NewSeparator(name string, toTop map[stream.Species]float64) (*Separator, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	cp := make(map[stream.Species]float64, len(toTop))
	for sp, f := range toTop {
		if f < 0 || f > 1 {
			return nil, fmt.Errorf("%w: separator %q split for %s: %g", ErrBadFraction, name, sp, f)
		}
		cp[sp] = f
	}

	return &Separator{name: name, toTop: cp, results: make(map[string]float64)}, nil
}

// Name returns the unit name.
func (s *Separator) Name() string { return s.name }

// NumInlets returns 1.
func (s *Separator) NumInlets() int { return 1 }

// NumOutlets returns 2: outlet 0 is the top (vapor), outlet 1 the bottom
// (liquid).
func (s *Separator) NumOutlets() int { return 2 }

// Results returns the design results of the last Simulate call.
func (s *Separator) Results() map[string]float64 { return s.results }

// Simulate routes each species by its overhead fraction.
func (s *Separator) Simulate(_ context.Context, in, out []*stream.Stream) error {
	if err := checkArity(s.name, 1, 2, in, out); err != nil {
		return err
	}

	comp := in[0].Composition()
	top := make(map[stream.Species]float64, len(comp))
	bottom := make(map[stream.Species]float64, len(comp))
	for sp, f := range comp {
		up := f * s.toTop[sp]
		top[sp] = up
		bottom[sp] = f - up
	}

	for i, m := range []map[stream.Species]float64{top, bottom} {
		if err := out[i].SetComposition(m); err != nil {
			return Fail(s.name, err)
		}
		if err := out[i].SetTemperature(in[0].Temperature()); err != nil {
			return Fail(s.name, err)
		}
		if err := out[i].SetPressure(in[0].Pressure()); err != nil {
			return Fail(s.name, err)
		}
	}
	out[0].SetPhase(stream.Vapor)
	out[1].SetPhase(stream.Liquid)

	// Design results for downstream techno-economic consumers.
	topFlow := out[0].TotalFlow()
	botFlow := out[1].TotalFlow()
	s.results["top_flow"] = topFlow
	s.results["bottom_flow"] = botFlow
	s.results["vapor_fraction"] = 0
	if topFlow+botFlow > 0 {
		s.results["vapor_fraction"] = topFlow / (topFlow + botFlow)
	}

	return nil
}
