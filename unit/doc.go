// Package unit defines the unit-operation contract consumed by the
// convergence solver, plus a small library of basic units for building and
// testing flowsheets.
//
// What:
//
//   - Operation: the collaborator interface every unit implements — fixed
//     inlet/outlet arity plus Simulate, which reads the bound inlet streams
//     and writes the bound outlet streams.
//   - SimulationError: a physics failure raised by a unit on given inputs,
//     carrying the responsible unit's name for failure isolation.
//   - Basic units: Feed, Mixer, Splitter, Reactor, Separator, Sink.
//
// Contract:
//
//   - Simulate must be deterministic and idempotent with respect to the
//     explicit inlet state: repeated calls with unchanged inlets produce
//     unchanged outlets. The solver relies on this to re-invoke units safely
//     on every convergence pass.
//   - Simulate must not depend on hidden mutable global state; unit-specific
//     parameters are fixed at construction.
//   - Arity (NumInlets/NumOutlets) is fixed at construction; the flowsheet
//     rejects bindings that do not match.
//
// Errors:
//
//	ErrPortMismatch  - Simulate invoked with the wrong number of streams.
//	ErrBadFraction   - a split fraction or conversion outside [0,1].
//	SimulationError  - a unit-specific physics failure (wraps the cause).
package unit
