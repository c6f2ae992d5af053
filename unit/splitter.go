package unit

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/flowsheet/stream"
)

// amountTol bounds the accepted drift when split fractions must sum to one.
const amountTol = 1e-9

// Splitter divides one inlet across n outlets by fixed fractions.
// Composition, temperature, pressure and phase pass through unchanged;
// only the flow magnitude is scaled per outlet.
type Splitter struct {
	name  string
	fracs []float64
}

// NewSplitter constructs a splitter sending fracs[i] of the inlet to
// outlet i. Fractions must each lie in [0,1] and sum to 1 within amountTol.
func NewSplitter(name string, fracs ...float64) (*Splitter, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if len(fracs) < 1 {
		return nil, fmt.Errorf("unit: splitter %q needs at least one outlet fraction", name)
	}
	var sum float64
	for i, f := range fracs {
		if f < 0 || f > 1 {
			return nil, fmt.Errorf("%w: splitter %q outlet %d fraction %g", ErrBadFraction, name, i, f)
		}
		sum += f
	}
	if math.Abs(sum-1) > amountTol {
		return nil, fmt.Errorf("%w: splitter %q fractions sum to %g, want 1", ErrBadFraction, name, sum)
	}

	return &Splitter{name: name, fracs: append([]float64(nil), fracs...)}, nil
}

// Name returns the unit name.
func (s *Splitter) Name() string { return s.name }

// NumInlets returns 1.
func (s *Splitter) NumInlets() int { return 1 }

// NumOutlets returns the number of configured fractions.
func (s *Splitter) NumOutlets() int { return len(s.fracs) }

// Simulate scales the inlet flow vector onto each outlet.
func (s *Splitter) Simulate(_ context.Context, in, out []*stream.Stream) error {
	if err := checkArity(s.name, 1, len(s.fracs), in, out); err != nil {
		return err
	}

	comp := in[0].Composition()
	for i, frac := range s.fracs {
		scaled := make(map[stream.Species]float64, len(comp))
		for sp, f := range comp {
			scaled[sp] = f * frac
		}
		if err := out[i].SetComposition(scaled); err != nil {
			return Fail(s.name, err)
		}
		if err := out[i].SetTemperature(in[0].Temperature()); err != nil {
			return Fail(s.name, err)
		}
		if err := out[i].SetPressure(in[0].Pressure()); err != nil {
			return Fail(s.name, err)
		}
		out[i].SetPhase(in[0].Phase())
	}

	return nil
}
