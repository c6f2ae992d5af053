// Package flowsheet is an in-memory engine for building, analyzing and
// converging chemical process flowsheets — from material streams to
// recycle-loop tear selection and accelerated fixed-point solving.
//
// 🚀 What is flowsheet?
//
//	A modern, thread-aware, sequential-modular simulation core that brings together:
//		• Streams: species flows, temperature, pressure, phase — snapshot & restore
//		• Units: feeds, mixers, splitters, reactors, separators, sinks behind one interface
//		• Flowsheet graph: named units wired by directed streams, validated before solving
//		• Recycle analysis: strongly connected components, tear selection, topological order
//		• Convergence: direct substitution or bounded Wegstein acceleration per tear
//		• Diagnostics: iteration traces and structured failure reports, YAML-renderable
//
// ✨ Why choose flowsheet?
//
//   - Deterministic – identical topology yields identical tears and execution order
//   - Rock-solid guarantees – on any failure every stream rolls back to its pre-run state
//   - Composable – a converged System nests as a unit inside a larger flowsheet
//   - Explicit errors – sentinel errors per package, structured solver failure reports
//
// Under the hood, everything is organized under five packages:
//
//	stream/    — material stream state, snapshots and the relative residual metric
//	unit/      — the Operation contract and the built-in unit library
//	flowsheet/ — the directed graph of units and streams, validation and queries
//	recycle/   — SCC detection, tear-stream selection and execution ordering
//	system/    — the convergence solver, accelerators and failure reporting
//
// Quick ASCII example:
//
//	feed ──► mixer ──► splitter ──► product
//	           ▲           │
//	           └──recycle──┘
//
//	a single recycle loop: the solver tears the recycle stream, iterates
//	the loop and reports the converged steady state.
//
// Dive into the package docs for the full contracts, error semantics and
// worked examples.
//
//	go get github.com/katalvlaran/flowsheet
package flowsheet
