// Package system: the structured failure report returned by Simulate.
package system

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SolverFailure is the terminal report of a convergence attempt that did
// not reach a fixed point. It carries everything a caller needs to decide
// on a retry (relaxed tolerance, different accelerator, better seed)
// without the solver ever retrying silently on its own.
type SolverFailure struct {
	// Status is the terminal state: Diverged, MaxIterationsExceeded or
	// Failed.
	Status Status `yaml:"status"`
	// Iterations is the number of completed passes.
	Iterations int `yaml:"iterations"`
	// Residuals holds the last computed residual per tear stream.
	Residuals map[string]float64 `yaml:"residuals,omitempty"`
	// LastUnit names the unit that executed last before the attempt ended.
	LastUnit string `yaml:"last_unit,omitempty"`
	// Trace is the full iteration trace of the attempt.
	Trace []TraceEntry `yaml:"trace,omitempty"`
	// Err is the underlying cause for Failed (a *unit.SimulationError),
	// nil for Diverged and MaxIterationsExceeded.
	Err error `yaml:"-"`
}

// Error summarizes the failure in one line.
func (f *SolverFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("system: %s after %d iteration(s): %v", f.Status, f.Iterations, f.Err)
	}

	return fmt.Sprintf("system: %s after %d iteration(s), worst residual %g",
		f.Status, f.Iterations, f.worstResidual())
}

// Unwrap exposes the underlying unit failure for errors.Is/As.
func (f *SolverFailure) Unwrap() error { return f.Err }

// Report renders the failure (minus the wrapped error) as YAML for logs.
func (f *SolverFailure) Report() ([]byte, error) {
	return yaml.Marshal(f)
}

// worstResidual returns the maximum of the last residuals, 0 if none.
func (f *SolverFailure) worstResidual() float64 {
	var worst float64
	for _, r := range f.Residuals {
		if r > worst {
			worst = r
		}
	}

	return worst
}

// MarshalYAML renders Status as its label instead of a raw integer.
func (s Status) MarshalYAML() (interface{}, error) { return s.String(), nil }
