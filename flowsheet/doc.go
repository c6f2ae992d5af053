// Package flowsheet provides the explicit process-graph registry: unit
// operations as nodes, material streams as the edges connecting an outlet
// port of one unit to an inlet port of another.
//
// What:
//
//   - Flowsheet: the context object owning every registered unit and stream.
//     There is no package-level "current flowsheet"; construction calls
//     receive the Flowsheet explicitly and a simulation run owns exactly one.
//   - Registration: AddUnit / AddStream, then BindOutlet / BindInlet (or the
//     Pipe convenience) to wire ports to streams.
//   - Queries: Predecessors / Successors of a unit, Producer / Consumer of a
//     stream, feed and product stream sets, and the full edge table.
//   - Snapshot: a YAML-serializable node/edge table for diagnostics.
//
// Invariants:
//
//   - Each stream has at most one producing unit (none for a feed) and at
//     most one consuming unit (none for a product). Violations are rejected
//     at bind time with ErrStreamProduced / ErrStreamConsumed.
//   - Port arity is fixed by the unit at construction; binding an
//     out-of-range slot is rejected with ErrBadPort.
//   - Validate reports any port left unbound before a simulation is planned.
//
// The graph may contain cycles: recycles are ordinary edges here. Cycle
// analysis and tearing live in package recycle; no physics executes in this
// package.
//
// Concurrency: registration and queries take an internal RWMutex, but a
// Flowsheet under active simulation is exclusively owned by one System.
package flowsheet
