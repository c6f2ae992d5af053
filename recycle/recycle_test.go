package recycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowsheet/flowsheet"
	"github.com/katalvlaran/flowsheet/recycle"
	"github.com/katalvlaran/flowsheet/stream"
	"github.com/katalvlaran/flowsheet/unit"
)

// mustAdd registers a unit, failing the test on error.
func mustAdd(t *testing.T, fs *flowsheet.Flowsheet, op unit.Operation, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NoError(t, fs.AddUnit(op))
}

// pipe wires one edge, failing the test on error.
func pipe(t *testing.T, fs *flowsheet.Flowsheet, id, from string, fromSlot int, to string, toSlot int) {
	t.Helper()
	_, err := fs.Pipe(id, from, fromSlot, to, toSlot)
	require.NoError(t, err)
}

// buildChain wires feed → mix(1) → split(1.0) → sink, an acyclic line.
func buildChain(t *testing.T) *flowsheet.Flowsheet {
	t.Helper()
	fs := flowsheet.New()

	feed, err := unit.NewFeed("feed", stream.New("spec").Snapshot())
	mustAdd(t, fs, feed, err)
	mix, err := unit.NewMixer("mix", 1)
	mustAdd(t, fs, mix, err)
	split, err := unit.NewSplitter("split", 1.0)
	mustAdd(t, fs, split, err)
	sink, err := unit.NewSink("sink")
	mustAdd(t, fs, sink, err)

	pipe(t, fs, "s1", "feed", 0, "mix", 0)
	pipe(t, fs, "s2", "mix", 0, "split", 0)
	pipe(t, fs, "s3", "split", 0, "sink", 0)

	return fs
}

// buildLoop wires the canonical single recycle:
//
//	feed ──s1──► mix ──s2──► split ──s3──► sink
//	              ▲            │
//	              └────r1──────┘
func buildLoop(t *testing.T) *flowsheet.Flowsheet {
	t.Helper()
	fs := flowsheet.New()

	feed, err := unit.NewFeed("feed", stream.New("spec").Snapshot())
	mustAdd(t, fs, feed, err)
	mix, err := unit.NewMixer("mix", 2)
	mustAdd(t, fs, mix, err)
	split, err := unit.NewSplitter("split", 0.5, 0.5)
	mustAdd(t, fs, split, err)
	sink, err := unit.NewSink("sink")
	mustAdd(t, fs, sink, err)

	pipe(t, fs, "s1", "feed", 0, "mix", 0)
	pipe(t, fs, "s2", "mix", 0, "split", 0)
	pipe(t, fs, "s3", "split", 0, "sink", 0)
	pipe(t, fs, "r1", "split", 1, "mix", 1)

	return fs
}

// buildDoubleLoop wires two loops sharing units:
//
//	feed ─► m1 ─a─► sp1 ─b─► m2 ─c─► sp2 ─p─► sink
//	         ▲                ▲        │ │
//	         └───────d────────┼────────┘ │
//	                          └────e─────┘
func buildDoubleLoop(t *testing.T) *flowsheet.Flowsheet {
	t.Helper()
	fs := flowsheet.New()

	feed, err := unit.NewFeed("feed", stream.New("spec").Snapshot())
	mustAdd(t, fs, feed, err)
	m1, err := unit.NewMixer("m1", 2)
	mustAdd(t, fs, m1, err)
	sp1, err := unit.NewSplitter("sp1", 1.0)
	mustAdd(t, fs, sp1, err)
	m2, err := unit.NewMixer("m2", 2)
	mustAdd(t, fs, m2, err)
	sp2, err := unit.NewSplitter("sp2", 0.5, 0.3, 0.2)
	mustAdd(t, fs, sp2, err)
	sink, err := unit.NewSink("sink")
	mustAdd(t, fs, sink, err)

	pipe(t, fs, "s0", "feed", 0, "m1", 0)
	pipe(t, fs, "a", "m1", 0, "sp1", 0)
	pipe(t, fs, "b", "sp1", 0, "m2", 0)
	pipe(t, fs, "c", "m2", 0, "sp2", 0)
	pipe(t, fs, "p", "sp2", 0, "sink", 0)
	pipe(t, fs, "d", "sp2", 1, "m1", 1)
	pipe(t, fs, "e", "sp2", 2, "m2", 1)

	return fs
}

// position returns the index of v in order, or -1.
func position(order []string, v string) int {
	for i, x := range order {
		if x == v {
			return i
		}
	}

	return -1
}

// assertAcyclicAfterTearing checks the central tearing property: the
// dependency graph with tear streams removed admits the returned order,
// i.e. every non-tear edge points forward in the order.
func assertAcyclicAfterTearing(t *testing.T, fs *flowsheet.Flowsheet, plan *recycle.Plan) {
	t.Helper()
	torn := make(map[string]bool, len(plan.Tears))
	for _, s := range plan.Tears {
		torn[s] = true
	}
	for _, e := range fs.Edges() {
		if e.From == "" || e.To == "" || torn[e.Stream] {
			continue
		}
		assert.Less(t, position(plan.Order, e.From), position(plan.Order, e.To),
			"edge %s (%s→%s) must point forward", e.Stream, e.From, e.To)
	}
}

// TestComponents_NilFlowsheet verifies the nil guard.
func TestComponents_NilFlowsheet(t *testing.T) {
	_, err := recycle.Components(nil)
	assert.ErrorIs(t, err, recycle.ErrNilFlowsheet)
	_, err = recycle.BuildPlan(nil)
	assert.ErrorIs(t, err, recycle.ErrNilFlowsheet)
}

// TestComponents_Chain yields one singleton component per unit.
func TestComponents_Chain(t *testing.T) {
	fs := buildChain(t)
	comps, err := recycle.Components(fs)
	require.NoError(t, err)
	require.Len(t, comps, 4)
	for _, comp := range comps {
		assert.Len(t, comp, 1)
	}
}

// TestComponents_Loop groups the recycle members into one component.
func TestComponents_Loop(t *testing.T) {
	fs := buildLoop(t)
	comps, err := recycle.Components(fs)
	require.NoError(t, err)

	var loop []string
	for _, comp := range comps {
		if len(comp) > 1 {
			require.Nil(t, loop, "expected exactly one nontrivial component")
			loop = comp
		}
	}
	assert.Equal(t, []string{"mix", "split"}, loop)
}

// TestBuildPlan_Chain orders an acyclic sheet with no tears.
func TestBuildPlan_Chain(t *testing.T) {
	fs := buildChain(t)
	plan, err := recycle.BuildPlan(fs)
	require.NoError(t, err)

	assert.Empty(t, plan.Tears)
	assert.Empty(t, plan.Loops)
	assert.Equal(t, []string{"feed", "mix", "split", "sink"}, plan.Order)
	assertAcyclicAfterTearing(t, fs, plan)
}

// TestBuildPlan_Loop tears the recycle stream and orders the loop as a
// chain from the torn inlet.
func TestBuildPlan_Loop(t *testing.T) {
	fs := buildLoop(t)
	plan, err := recycle.BuildPlan(fs)
	require.NoError(t, err)

	assert.Equal(t, []string{"r1"}, plan.Tears)
	assert.Equal(t, [][]string{{"mix", "split"}}, plan.Loops)
	assert.Equal(t, []string{"feed", "mix", "split", "sink"}, plan.Order)
	assertAcyclicAfterTearing(t, fs, plan)
}

// TestBuildPlan_DoubleLoop tears every loop and keeps the order valid.
func TestBuildPlan_DoubleLoop(t *testing.T) {
	fs := buildDoubleLoop(t)
	plan, err := recycle.BuildPlan(fs)
	require.NoError(t, err)

	assert.NotEmpty(t, plan.Tears)
	require.Len(t, plan.Loops, 1)
	assert.Equal(t, []string{"m1", "sp1", "m2", "sp2"}, plan.Loops[0])
	assertAcyclicAfterTearing(t, fs, plan)
}

// TestBuildPlan_SelfLoop tears a unit bound directly to its own inlet.
func TestBuildPlan_SelfLoop(t *testing.T) {
	fs := flowsheet.New()
	feed, err := unit.NewFeed("feed", stream.New("spec").Snapshot())
	mustAdd(t, fs, feed, err)
	mix, err := unit.NewMixer("mix", 2)
	mustAdd(t, fs, mix, err)

	pipe(t, fs, "s1", "feed", 0, "mix", 0)
	pipe(t, fs, "self", "mix", 0, "mix", 1)

	plan, err := recycle.BuildPlan(fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"self"}, plan.Tears)
	assert.Equal(t, [][]string{{"mix"}}, plan.Loops)
	assert.Equal(t, []string{"feed", "mix"}, plan.Order)
	assertAcyclicAfterTearing(t, fs, plan)
}

// TestBuildPlan_Deterministic verifies planning is reproducible.
func TestBuildPlan_Deterministic(t *testing.T) {
	fs := buildDoubleLoop(t)
	first, err := recycle.BuildPlan(fs)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := recycle.BuildPlan(fs)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}
