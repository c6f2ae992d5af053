// Package system: tear-stream guess update rules.
package system

import (
	"math"

	"github.com/katalvlaran/flowsheet/stream"
)

// secantFloor guards the Wegstein denominators against degenerate history.
const secantFloor = 1e-12

// history holds the previous (guess, result) pair of one tear stream, the
// two points the secant rule extrapolates from.
type history struct {
	guess  stream.State
	result stream.State
}

// nextGuess computes the guess for the next pass from the guess used this
// pass and the state the pass recomputed.
//
// DirectSubstitution returns the recomputed state unchanged. Wegstein
// applies, per species flow and for temperature, the secant update
//
//	s = (g_k − g_{k−1}) / (x_k − x_{k−1})    (local slope of the loop map)
//	q = s / (s − 1), clamped to [WegsteinQMin, WegsteinQMax]
//	x_{k+1} = q·x_k + (1−q)·g_k
//
// falling back to direct substitution wherever the history is degenerate
// (first pass, or an unchanged component). Extrapolated flows clamp to
// zero from below; a non-physical extrapolated temperature falls back to
// the recomputed one. Pressure and phase always follow the recomputed
// state — they are carried, not iterated.
func nextGuess(accel Accelerator, guess, result stream.State, prev *history) stream.State {
	if accel == DirectSubstitution || prev == nil {
		return result
	}

	next := stream.State{
		ID:       result.ID,
		Flow:     make(map[stream.Species]float64, len(result.Flow)),
		Phase:    result.Phase,
		Pressure: result.Pressure,
	}

	// Union of species over current and recomputed vectors; components the
	// pass dropped still need an explicit (extrapolated or zero) entry.
	for sp := range result.Flow {
		next.Flow[sp] = wegsteinComponent(
			guess.Flow[sp], result.Flow[sp],
			prev.guess.Flow[sp], prev.result.Flow[sp],
		)
	}
	for sp := range guess.Flow {
		if _, ok := result.Flow[sp]; !ok {
			next.Flow[sp] = wegsteinComponent(
				guess.Flow[sp], 0,
				prev.guess.Flow[sp], prev.result.Flow[sp],
			)
		}
	}
	// Flows must stay physical.
	for sp, f := range next.Flow {
		if f < 0 {
			next.Flow[sp] = 0
		}
	}

	next.Temperature = wegsteinComponent(
		guess.Temperature, result.Temperature,
		prev.guess.Temperature, prev.result.Temperature,
	)
	if next.Temperature <= 0 {
		next.Temperature = result.Temperature
	}

	return next
}

// wegsteinComponent applies the bounded secant update to one scalar.
// x, g are this pass's guess and result; px, pg the previous pair.
func wegsteinComponent(x, g, px, pg float64) float64 {
	dx := x - px
	if math.Abs(dx) < secantFloor {
		return g // stationary component: substitute directly
	}
	s := (g - pg) / dx
	if math.Abs(s-1) < secantFloor {
		return g // slope 1: secant has no finite fixed point
	}
	q := s / (s - 1)
	if q < WegsteinQMin {
		q = WegsteinQMin
	}
	if q > WegsteinQMax {
		q = WegsteinQMax
	}

	return q*x + (1-q)*g
}
