// Package system: status machine, options and sentinel errors for the
// convergence solver. The loop itself lives in system.go, the guess update
// rules in wegstein.go, the failure report in failure.go.
package system

import (
	"errors"

	"github.com/katalvlaran/flowsheet/stream"
)

// Status is the solver's position in its state machine.
type Status uint8

const (
	// Initialized: tear guesses seeded, no pass run yet.
	Initialized Status = iota
	// Iterating: a Simulate call is executing passes.
	Iterating
	// Converged: every tear residual fell below tolerance.
	Converged
	// Diverged: residuals grew for DivergenceWindow consecutive passes.
	Diverged
	// MaxIterationsExceeded: the hard iteration cap was hit first.
	MaxIterationsExceeded
	// Failed: a unit raised a physics error; the attempt was aborted.
	Failed
)

// String returns the status label used in failure reports and traces.
func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case MaxIterationsExceeded:
		return "max-iterations-exceeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Accelerator selects the tear-stream update rule between passes.
type Accelerator uint8

const (
	// DirectSubstitution replaces each guess with the recomputed value.
	DirectSubstitution Accelerator = iota
	// Wegstein extrapolates each guess with a bounded secant rule, damping
	// oscillation and accelerating contractive loops.
	Wegstein
)

// Solver defaults. Tolerance is relative (see stream.Residual).
const (
	DefaultTolerance        = 1e-6
	DefaultMaxIterations    = 200
	DefaultDivergenceWindow = 5
)

// Wegstein relaxation bounds: q in [WegsteinQMin, WegsteinQMax].
// q < 0 damps an oscillating loop, 0 < q < 1 accelerates a contractive
// one; the upper bound keeps extrapolation physically sane.
const (
	WegsteinQMin = -5.0
	WegsteinQMax = 0.5
)

var (
	// ErrBadTolerance indicates a non-positive convergence tolerance.
	ErrBadTolerance = errors.New("system: tolerance must be positive")

	// ErrBadIterationCap indicates a non-positive maximum iteration count.
	ErrBadIterationCap = errors.New("system: max iterations must be positive")

	// ErrRunning indicates configuration was changed mid-Simulate.
	ErrRunning = errors.New("system: solver is iterating")
)

// Options holds the solver configuration.
type Options struct {
	// Tolerance is the residual threshold declaring convergence.
	Tolerance float64
	// MaxIterations is the hard cancellation bound on passes per Simulate.
	MaxIterations int
	// Accel selects the guess update rule.
	Accel Accelerator
	// DivergenceWindow is how many consecutive residual increases count as
	// divergence.
	DivergenceWindow int
	// Seed, when non-nil, overrides the initial tear guesses by stream ID.
	// Tears absent from the map seed from their current stream state.
	Seed map[string]stream.State
}

// DefaultOptions returns the solver defaults with direct seeding from the
// streams' prior values.
func DefaultOptions() Options {
	return Options{
		Tolerance:        DefaultTolerance,
		MaxIterations:    DefaultMaxIterations,
		Accel:            Wegstein,
		DivergenceWindow: DefaultDivergenceWindow,
	}
}

// Option configures a System at construction.
type Option func(*Options)

// WithTolerance sets the convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.Tolerance = tol }
}

// WithMaxIterations sets the hard iteration cap.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithAccelerator selects the update rule.
func WithAccelerator(a Accelerator) Option {
	return func(o *Options) { o.Accel = a }
}

// WithDivergenceWindow sets the consecutive-increase count treated as
// divergence.
func WithDivergenceWindow(n int) Option {
	return func(o *Options) { o.DivergenceWindow = n }
}

// WithSeed provides explicit initial tear guesses by stream ID.
func WithSeed(seed map[string]stream.State) Option {
	return func(o *Options) { o.Seed = seed }
}

// TraceEntry records one convergence pass for diagnostics.
type TraceEntry struct {
	// Iteration is the 1-based pass number.
	Iteration int `yaml:"iteration"`
	// Residuals maps each tear stream to its residual after the pass.
	Residuals map[string]float64 `yaml:"residuals,omitempty"`
	// Worst is the maximum residual of the pass.
	Worst float64 `yaml:"worst"`
}
