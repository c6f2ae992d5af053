// Package system: the System object and its convergence loop.
package system

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/flowsheet/flowsheet"
	"github.com/katalvlaran/flowsheet/recycle"
	"github.com/katalvlaran/flowsheet/stream"
	"github.com/katalvlaran/flowsheet/unit"
)

// System owns one flowsheet, its planned execution order and its tear-
// stream set, and drives simulation passes to a global fixed point.
// Create with New; rebuild after any topology change.
type System struct {
	fs   *flowsheet.Flowsheet
	plan *recycle.Plan
	opts Options

	status  Status
	guesses map[string]stream.State // current tear guesses by stream ID
	trace   []TraceEntry
}

// New validates and plans the flowsheet and seeds the tear guesses.
//
// Steps:
//  1. Structural validation (every port bound, streams consistent).
//  2. Recycle analysis: tear selection and topological ordering.
//  3. Guess seeding: explicit seed entries where provided, otherwise the
//     streams' current (prior) values.
//
// Returns recycle.ErrNilFlowsheet, a flowsheet validation error, or a
// planning error.
func New(fs *flowsheet.Flowsheet, options ...Option) (*System, error) {
	if fs == nil {
		return nil, recycle.ErrNilFlowsheet
	}

	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if opts.Tolerance <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrBadTolerance, opts.Tolerance)
	}
	if opts.MaxIterations <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadIterationCap, opts.MaxIterations)
	}
	if opts.DivergenceWindow <= 0 {
		opts.DivergenceWindow = DefaultDivergenceWindow
	}

	if err := fs.Validate(); err != nil {
		return nil, err
	}
	plan, err := recycle.BuildPlan(fs)
	if err != nil {
		return nil, err
	}

	sys := &System{
		fs:      fs,
		plan:    plan,
		opts:    opts,
		status:  Initialized,
		guesses: make(map[string]stream.State, len(plan.Tears)),
	}
	for _, id := range plan.Tears {
		if seed, ok := opts.Seed[id]; ok {
			sys.guesses[id] = seed
			continue
		}
		sys.guesses[id] = fs.Stream(id).Snapshot()
	}

	return sys, nil
}

// Status returns the solver's current state-machine position.
func (s *System) Status() Status { return s.status }

// TearStreams returns the planned tear-stream IDs, sorted.
func (s *System) TearStreams() []string {
	return append([]string(nil), s.plan.Tears...)
}

// Order returns the planned execution order of units.
func (s *System) Order() []string {
	return append([]string(nil), s.plan.Order...)
}

// Trace returns the iteration trace of the most recent Simulate call.
func (s *System) Trace() []TraceEntry {
	return append([]TraceEntry(nil), s.trace...)
}

// TraceYAML renders the iteration trace as YAML for diagnostics.
func (s *System) TraceYAML() ([]byte, error) {
	return yaml.Marshal(s.trace)
}

// SetTolerance adjusts the convergence tolerance between runs.
// Returns ErrBadTolerance for non-positive values, ErrRunning mid-run.
func (s *System) SetTolerance(tol float64) error {
	if s.status == Iterating {
		return ErrRunning
	}
	if tol <= 0 {
		return fmt.Errorf("%w: %g", ErrBadTolerance, tol)
	}
	s.opts.Tolerance = tol

	return nil
}

// SetMaxIterations adjusts the hard iteration cap between runs.
// Returns ErrBadIterationCap for non-positive values, ErrRunning mid-run.
func (s *System) SetMaxIterations(n int) error {
	if s.status == Iterating {
		return ErrRunning
	}
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrBadIterationCap, n)
	}
	s.opts.MaxIterations = n

	return nil
}

// Simulate drives passes until convergence, divergence, unit failure or
// the iteration cap. On success the flowsheet holds the converged state
// and the tear guesses keep their converged values, so a repeat run seeds
// from the prior solution. On any failure every stream is restored to its
// pre-run state and the returned *SolverFailure carries the terminal
// status, residuals and trace.
//
// Steps per pass:
//  1. Context check (cancellation surfaces as Failed).
//  2. Impose the current tear guesses on the tear streams.
//  3. Execute every unit once, in planned order; a unit error aborts the
//     attempt as Failed with the unit identified.
//  4. Compare each tear stream against its guess (stream residual); all
//     below tolerance → Converged.
//  5. Detect divergence: DivergenceWindow consecutive worst-residual
//     increases → Diverged.
//  6. Update guesses via the configured accelerator and repeat, bounded
//     by MaxIterations.
func (s *System) Simulate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.status = Iterating
	s.trace = s.trace[:0]

	// Pre-run snapshot of every stream, for the consistency guarantee.
	undo := make(map[string]stream.State)
	for _, id := range s.fs.Streams() {
		undo[id] = s.fs.Stream(id).Snapshot()
	}

	prev := make(map[string]*history, len(s.plan.Tears))
	var prevWorst float64
	rising := 0
	lastUnit := ""

	for iter := 1; iter <= s.opts.MaxIterations; iter++ {
		// 1) Cancellation is a hard abort, reported like a failure.
		if err := ctx.Err(); err != nil {
			return s.fail(undo, &SolverFailure{
				Status: Failed, Iterations: iter - 1, LastUnit: lastUnit,
				Trace: s.Trace(), Err: err,
			})
		}

		// 2) Impose the guesses.
		for id, guess := range s.guesses {
			s.fs.Stream(id).Restore(guess)
		}

		// 3) One full pass in topological order.
		var passErr error
		if lastUnit, passErr = s.runPass(ctx); passErr != nil {
			return s.fail(undo, &SolverFailure{
				Status: Failed, Iterations: iter - 1, LastUnit: lastUnit,
				Residuals: s.lastResiduals(), Trace: s.Trace(), Err: passErr,
			})
		}

		// 4) Residuals against the guesses used this pass.
		residuals := make(map[string]float64, len(s.plan.Tears))
		var worst float64
		for _, id := range s.plan.Tears {
			r := s.fs.Stream(id).Residual(s.guesses[id])
			residuals[id] = r
			if r > worst {
				worst = r
			}
		}
		s.trace = append(s.trace, TraceEntry{Iteration: iter, Residuals: residuals, Worst: worst})

		if worst < s.opts.Tolerance {
			// Keep converged values as the seed for the next run.
			for _, id := range s.plan.Tears {
				s.guesses[id] = s.fs.Stream(id).Snapshot()
			}
			s.status = Converged

			return nil
		}

		// 5) Divergence watch.
		if iter > 1 && worst > prevWorst {
			rising++
		} else {
			rising = 0
		}
		if rising >= s.opts.DivergenceWindow {
			return s.fail(undo, &SolverFailure{
				Status: Diverged, Iterations: iter, LastUnit: lastUnit,
				Residuals: residuals, Trace: s.Trace(),
			})
		}
		prevWorst = worst

		// 6) Move the guesses.
		for _, id := range s.plan.Tears {
			guess := s.guesses[id]
			result := s.fs.Stream(id).Snapshot()
			s.guesses[id] = nextGuess(s.opts.Accel, guess, result, prev[id])
			prev[id] = &history{guess: guess, result: result}
		}
	}

	return s.fail(undo, &SolverFailure{
		Status: MaxIterationsExceeded, Iterations: s.opts.MaxIterations,
		LastUnit: lastUnit, Residuals: s.lastResiduals(), Trace: s.Trace(),
	})
}

// runPass executes every unit once in planned order. Returns the name of
// the last unit that ran and the first error encountered.
func (s *System) runPass(ctx context.Context) (string, error) {
	last := ""
	for _, name := range s.plan.Order {
		op := s.fs.Unit(name)
		in, err := s.fs.Inlets(name)
		if err != nil {
			return last, err
		}
		out, err := s.fs.Outlets(name)
		if err != nil {
			return last, err
		}
		last = name
		if err = op.Simulate(ctx, in, out); err != nil {
			return last, err
		}
	}

	return last, nil
}

// fail restores the pre-run stream state, records the terminal status and
// returns the report.
func (s *System) fail(undo map[string]stream.State, f *SolverFailure) error {
	for id, st := range undo {
		s.fs.Stream(id).Restore(st)
	}
	s.status = f.Status

	return f
}

// lastResiduals returns the residual map of the newest trace entry.
func (s *System) lastResiduals() map[string]float64 {
	if len(s.trace) == 0 {
		return nil
	}

	return s.trace[len(s.trace)-1].Residuals
}

// subSystem adapts an inner System as a unit operation of an outer
// flowsheet. The boundary streams are shared objects registered in both
// flowsheets, so the adapter carries no state of its own: Simulate simply
// runs the inner convergence loop to completion.
type subSystem struct {
	name string
	sys  *System
	nIn  int
	nOut int
}

// AsUnit wraps sys as a unit.Operation named name with the declared
// boundary arity. Bind the inner flowsheet's feed and product streams to
// the adapter's ports in the outer flowsheet; the shared stream objects
// carry state across the boundary.
//
// An inner failure surfaces as a *unit.SimulationError wrapping the inner
// *SolverFailure; the outer attempt aborts as Failed without swallowing
// the nested report. If the outer attempt fails after the inner system
// converged, the outer rollback covers the shared boundary streams while
// the inner flowsheet keeps its last converged solution.
func AsUnit(name string, sys *System, nIn, nOut int) unit.Operation {
	return &subSystem{name: name, sys: sys, nIn: nIn, nOut: nOut}
}

// Name returns the adapter's unit name in the outer flowsheet.
func (u *subSystem) Name() string { return u.name }

// NumInlets returns the declared boundary inlet count.
func (u *subSystem) NumInlets() int { return u.nIn }

// NumOutlets returns the declared boundary outlet count.
func (u *subSystem) NumOutlets() int { return u.nOut }

// Simulate runs the inner convergence loop to completion.
func (u *subSystem) Simulate(ctx context.Context, _, _ []*stream.Stream) error {
	if err := u.sys.Simulate(ctx); err != nil {
		return unit.Fail(u.name, err)
	}

	return nil
}
