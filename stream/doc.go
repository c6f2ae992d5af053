// Package stream models the material state carried between unit operations:
// a per-species molar flow vector plus temperature, pressure and a phase
// descriptor.
//
// What:
//
//   - Stream: a mutable record shared by the unit that produces it and the
//     unit that consumes it. Lifetime equals the lifetime of the flowsheet
//     edge it represents.
//   - State: a deep-copy snapshot of a Stream, used to seed and compare
//     tear-stream guesses between convergence passes, and marshalable to
//     YAML for diagnostics.
//   - Residual: the relative-difference metric between two streams (flow
//     vector plus temperature) used by the convergence solver.
//
// Why:
//   - Units mutate shared streams in topological order; the solver needs a
//     cheap way to snapshot a guessed stream, re-run the loop, and measure
//     how far the recomputed state drifted from the guess.
//
// Invariants:
//
//   - Species flows are non-negative; setters reject negative values with
//     ErrNegativeFlow.
//   - Temperature and pressure are strictly positive (absolute scales);
//     setters reject other values with ErrBadTemperature / ErrBadPressure.
//
// Concurrency:
//
//   - A Stream is exclusively owned by one simulation; no internal locking.
//     Independent trials must operate on independent clones.
//
// Complexity: all accessors O(1); snapshot, copy and residual O(S) where S
// is the number of species present.
package stream
