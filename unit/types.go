// Package unit: the Operation interface, sentinel errors and the
// SimulationError type. Basic unit implementations live in their own files.
package unit

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/flowsheet/stream"
)

var (
	// ErrEmptyUnitName indicates a unit was constructed with an empty name.
	ErrEmptyUnitName = errors.New("unit: unit name is empty")

	// ErrPortMismatch indicates Simulate was invoked with a stream count
	// that does not match the unit's declared arity.
	ErrPortMismatch = errors.New("unit: bound stream count does not match ports")

	// ErrBadFraction indicates a split fraction or conversion outside [0,1].
	ErrBadFraction = errors.New("unit: fraction outside [0,1]")
)

// Operation is the unit-operation contract the solver executes.
//
// Implementations transform inlet stream state into outlet stream state.
// The streams are bound by the enclosing flowsheet and passed explicitly;
// Simulate must be a pure function of the inlet state and the unit's fixed
// parameters (idempotent, deterministic).
type Operation interface {
	// Name returns the unit's unique name within its flowsheet.
	Name() string

	// NumInlets returns the fixed number of inlet ports.
	NumInlets() int

	// NumOutlets returns the fixed number of outlet ports.
	NumOutlets() int

	// Simulate computes outlet state from inlet state. The slices carry the
	// bound streams in port order. A physics failure is reported as a
	// *SimulationError; the solver aborts the enclosing convergence attempt.
	Simulate(ctx context.Context, in, out []*stream.Stream) error
}

// ResultReporter is implemented by units that attach design results after
// simulation (read by downstream techno-economic consumers).
type ResultReporter interface {
	// Results returns the design results computed by the last Simulate call.
	Results() map[string]float64
}

// SimulationError reports a physics failure inside a specific unit.
// It satisfies errors.Unwrap so callers can match the underlying cause.
type SimulationError struct {
	// Unit names the responsible unit.
	Unit string
	// Err is the underlying physics failure.
	Err error
}

// Error formats the failure with the responsible unit identified.
func (e *SimulationError) Error() string {
	return fmt.Sprintf("unit %q: simulation failed: %v", e.Unit, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *SimulationError) Unwrap() error { return e.Err }

// Fail wraps err as a SimulationError attributed to the named unit.
// A nil err returns nil.
func Fail(name string, err error) error {
	if err == nil {
		return nil
	}

	return &SimulationError{Unit: name, Err: err}
}

// checkArity validates the bound stream counts against the declared arity.
// Shared by the basic unit implementations.
func checkArity(name string, nIn, nOut int, in, out []*stream.Stream) error {
	if len(in) != nIn || len(out) != nOut {
		return Fail(name, fmt.Errorf("%w: got %d in / %d out, want %d in / %d out",
			ErrPortMismatch, len(in), len(out), nIn, nOut))
	}

	return nil
}
