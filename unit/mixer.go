package unit

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/flowsheet/stream"
)

// Mixer merges n inlet streams into one outlet.
//
// Mass balance: outlet species flows are the sums over inlets. The outlet
// temperature is the flow-weighted mean of inlet temperatures (a sensible
// proxy in the absence of enthalpy correlations, which are out of scope) and
// the outlet pressure is the minimum inlet pressure. The outlet phase is the
// common inlet phase, or Mixed when inlets disagree.
type Mixer struct {
	name string
	nIn  int
}

// NewMixer constructs a mixer with nIn inlet ports.
// Returns ErrEmptyUnitName for an empty name, or an error if nIn < 1.
func NewMixer(name string, nIn int) (*Mixer, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if nIn < 1 {
		return nil, fmt.Errorf("unit: mixer %q needs at least one inlet, got %d", name, nIn)
	}

	return &Mixer{name: name, nIn: nIn}, nil
}

// Name returns the unit name.
func (m *Mixer) Name() string { return m.name }

// NumInlets returns the configured inlet count.
func (m *Mixer) NumInlets() int { return m.nIn }

// NumOutlets returns 1.
func (m *Mixer) NumOutlets() int { return 1 }

// Simulate sums inlet flows into the outlet and blends T/P/phase.
func (m *Mixer) Simulate(_ context.Context, in, out []*stream.Stream) error {
	if err := checkArity(m.name, m.nIn, 1, in, out); err != nil {
		return err
	}

	// 1) Sum species flows and accumulate the flow-weighted temperature.
	total := make(map[stream.Species]float64)
	var flowSum, tWeighted float64
	pMin := math.Inf(1)
	phase := in[0].Phase()
	for _, s := range in {
		for sp, f := range s.Composition() {
			total[sp] += f
		}
		ft := s.TotalFlow()
		flowSum += ft
		tWeighted += ft * s.Temperature()
		pMin = math.Min(pMin, s.Pressure())
		if s.Phase() != phase {
			phase = stream.Mixed
		}
	}

	// 2) Write the outlet. An all-empty mixer keeps the first inlet's T.
	if err := out[0].SetComposition(total); err != nil {
		return Fail(m.name, err)
	}
	tOut := in[0].Temperature()
	if flowSum > 0 {
		tOut = tWeighted / flowSum
	}
	if err := out[0].SetTemperature(tOut); err != nil {
		return Fail(m.name, err)
	}
	if err := out[0].SetPressure(pMin); err != nil {
		return Fail(m.name, err)
	}
	out[0].SetPhase(phase)

	return nil
}
