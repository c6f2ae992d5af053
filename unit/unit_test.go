package unit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowsheet/stream"
	"github.com/katalvlaran/flowsheet/unit"
)

// run simulates op against the given streams and fails the test on error.
func run(t *testing.T, op unit.Operation, in, out []*stream.Stream) {
	t.Helper()
	require.NoError(t, op.Simulate(context.Background(), in, out))
}

// TestFeed_ImposesFixedState verifies a feed overwrites whatever earlier
// passes left on its outlet.
func TestFeed_ImposesFixedState(t *testing.T) {
	src := stream.New("spec", stream.WithFlow("Water", 100), stream.WithTemperature(310))
	f, err := unit.NewFeed("feed", src.Snapshot())
	require.NoError(t, err)

	outlet := stream.New("f_out", stream.WithFlow("Water", 1), stream.WithFlow("Junk", 7))
	run(t, f, nil, []*stream.Stream{outlet})
	assert.Equal(t, 100.0, outlet.Flow("Water"))
	assert.Equal(t, 0.0, outlet.Flow("Junk"))
	assert.Equal(t, 310.0, outlet.Temperature())
}

// TestMixer_MassAndTemperatureBalance checks flow summation and the
// flow-weighted temperature blend.
func TestMixer_MassAndTemperatureBalance(t *testing.T) {
	m, err := unit.NewMixer("mix", 2)
	require.NoError(t, err)

	a := stream.New("a", stream.WithFlow("Water", 30), stream.WithTemperature(300))
	b := stream.New("b", stream.WithFlow("Water", 10), stream.WithFlow("Ethanol", 10), stream.WithTemperature(340))
	o := stream.New("o")

	run(t, m, []*stream.Stream{a, b}, []*stream.Stream{o})
	assert.Equal(t, 40.0, o.Flow("Water"))
	assert.Equal(t, 10.0, o.Flow("Ethanol"))
	// (30*300 + 20*340) / 50 = 316
	assert.InDelta(t, 316.0, o.Temperature(), 1e-9)
}

// TestMixer_EmptyInlets ensures an all-empty mix is valid and keeps the
// first inlet's temperature.
func TestMixer_EmptyInlets(t *testing.T) {
	m, err := unit.NewMixer("mix", 2)
	require.NoError(t, err)
	a := stream.New("a", stream.WithTemperature(305))
	b := stream.New("b", stream.WithTemperature(400))
	o := stream.New("o")

	run(t, m, []*stream.Stream{a, b}, []*stream.Stream{o})
	assert.True(t, o.Empty())
	assert.Equal(t, 305.0, o.Temperature())
}

// TestMixer_ArityEnforced verifies ErrPortMismatch on wrong bindings.
func TestMixer_ArityEnforced(t *testing.T) {
	m, err := unit.NewMixer("mix", 2)
	require.NoError(t, err)
	o := stream.New("o")

	err = m.Simulate(context.Background(), []*stream.Stream{stream.New("a")}, []*stream.Stream{o})
	assert.ErrorIs(t, err, unit.ErrPortMismatch)

	var simErr *unit.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, "mix", simErr.Unit)
}

// TestSplitter_Construction rejects bad fraction vectors.
func TestSplitter_Construction(t *testing.T) {
	_, err := unit.NewSplitter("s", 0.5, 0.6)
	assert.ErrorIs(t, err, unit.ErrBadFraction)
	_, err = unit.NewSplitter("s", -0.1, 1.1)
	assert.ErrorIs(t, err, unit.ErrBadFraction)
	_, err = unit.NewSplitter("")
	assert.ErrorIs(t, err, unit.ErrEmptyUnitName)
	_, err = unit.NewSplitter("s", 0.25, 0.75)
	assert.NoError(t, err)
}

// TestSplitter_SplitsByFraction verifies the per-outlet scaling.
func TestSplitter_SplitsByFraction(t *testing.T) {
	s, err := unit.NewSplitter("split", 0.2, 0.8)
	require.NoError(t, err)

	in := stream.New("in", stream.WithFlow("Water", 50), stream.WithTemperature(320))
	o1 := stream.New("o1")
	o2 := stream.New("o2")

	run(t, s, []*stream.Stream{in}, []*stream.Stream{o1, o2})
	assert.InDelta(t, 10.0, o1.Flow("Water"), 1e-12)
	assert.InDelta(t, 40.0, o2.Flow("Water"), 1e-12)
	assert.Equal(t, 320.0, o1.Temperature())
	assert.Equal(t, 320.0, o2.Temperature())
}

// TestReactor_Conversion verifies reactant depletion and product credit.
func TestReactor_Conversion(t *testing.T) {
	r, err := unit.NewReactor("ferment", "Glucose", 0.9,
		map[stream.Species]float64{"Ethanol": 2, "CO2": 2})
	require.NoError(t, err)

	in := stream.New("in", stream.WithFlow("Glucose", 10), stream.WithFlow("Water", 100))
	o := stream.New("o")

	run(t, r, []*stream.Stream{in}, []*stream.Stream{o})
	assert.InDelta(t, 1.0, o.Flow("Glucose"), 1e-12)
	assert.InDelta(t, 18.0, o.Flow("Ethanol"), 1e-12)
	assert.InDelta(t, 18.0, o.Flow("CO2"), 1e-12)
	assert.Equal(t, 100.0, o.Flow("Water"))
}

// TestReactor_BadConversion rejects conversions outside [0,1].
func TestReactor_BadConversion(t *testing.T) {
	_, err := unit.NewReactor("r", "A", 1.5, nil)
	assert.ErrorIs(t, err, unit.ErrBadFraction)
}

// TestSeparator_ComponentSplit verifies the shortcut mass balance and the
// attached design results.
func TestSeparator_ComponentSplit(t *testing.T) {
	sep, err := unit.NewSeparator("column", map[stream.Species]float64{
		"Ethanol": 0.95, // light key mostly overhead
		"Water":   0.05, // heavy key mostly bottoms
	})
	require.NoError(t, err)

	in := stream.New("in", stream.WithFlow("Ethanol", 20), stream.WithFlow("Water", 80))
	top := stream.New("top")
	bot := stream.New("bot")

	run(t, sep, []*stream.Stream{in}, []*stream.Stream{top, bot})
	assert.InDelta(t, 19.0, top.Flow("Ethanol"), 1e-12)
	assert.InDelta(t, 4.0, top.Flow("Water"), 1e-12)
	assert.InDelta(t, 1.0, bot.Flow("Ethanol"), 1e-12)
	assert.InDelta(t, 76.0, bot.Flow("Water"), 1e-12)
	assert.Equal(t, stream.Vapor, top.Phase())
	assert.Equal(t, stream.Liquid, bot.Phase())

	res := sep.Results()
	assert.InDelta(t, 23.0, res["top_flow"], 1e-12)
	assert.InDelta(t, 77.0, res["bottom_flow"], 1e-12)
	assert.InDelta(t, 0.23, res["vapor_fraction"], 1e-12)
}

// TestSink_RecordsReceivedFlow verifies the terminal unit's result.
func TestSink_RecordsReceivedFlow(t *testing.T) {
	snk, err := unit.NewSink("product")
	require.NoError(t, err)
	in := stream.New("in", stream.WithFlow("Ethanol", 12))

	run(t, snk, []*stream.Stream{in}, nil)
	assert.Equal(t, 12.0, snk.Results()["received_flow"])
}

// TestSimulate_Idempotent asserts the core solver contract: simulating
// twice with unchanged inlets reproduces outlet state bit-for-bit.
func TestSimulate_Idempotent(t *testing.T) {
	m, err := unit.NewMixer("mix", 2)
	require.NoError(t, err)

	in1 := stream.New("i1", stream.WithFlow("Water", 3), stream.WithTemperature(300))
	in2 := stream.New("i2", stream.WithFlow("Water", 7), stream.WithTemperature(360))
	o := stream.New("o")

	run(t, m, []*stream.Stream{in1, in2}, []*stream.Stream{o})
	first := o.Snapshot()
	run(t, m, []*stream.Stream{in1, in2}, []*stream.Stream{o})
	assert.Equal(t, first, o.Snapshot(), "unit %q not idempotent", m.Name())
}

// TestFail_WrapsCause checks the SimulationError helper plumbing.
func TestFail_WrapsCause(t *testing.T) {
	cause := errors.New("infeasible phase split")
	err := unit.Fail("flash", cause)
	var simErr *unit.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, "flash", simErr.Unit)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, unit.Fail("flash", nil))
}
