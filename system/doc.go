// Package system drives the sequential-modular convergence loop: it owns a
// flowsheet, its planned execution order and its tear-stream set, and
// iterates simulation passes until every tear stream reproduces its own
// guess within tolerance.
//
// State machine:
//
//	Initialized ──► Iterating ──► Converged
//	                    │
//	                    ├──► Diverged               (residuals grow)
//	                    ├──► MaxIterationsExceeded  (hard iteration cap)
//	                    └──► Failed                 (unit physics error)
//
// One pass executes every unit once, in topological order, with the current
// tear-stream guesses standing in for the not-yet-computed recycle values.
// After the pass each tear stream's recomputed state is compared against
// the guess via the stream residual metric; below tolerance on every tear
// means a global fixed point. Otherwise the guesses move toward the
// recomputed values — by direct substitution or by bounded Wegstein
// extrapolation — and the loop repeats.
//
// Consistency guarantee: Simulate either returns nil with the flowsheet in
// a fully converged state, or returns a *SolverFailure and restores every
// stream to its pre-run state. Callers never observe partially updated
// results as if they were final.
//
// Nested systems: AsUnit adapts a System into a unit.Operation, so an
// outer flowsheet can embed a sub-flowsheet with its own recycle. The
// outer pass runs the inner convergence loop to completion; an inner
// failure surfaces as a unit failure carrying the inner report.
//
// A System must not be simulated from multiple goroutines; independent
// trials run on independent flowsheet clones.
package system
