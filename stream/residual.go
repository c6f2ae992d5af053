// Package stream: the relative-difference metric the convergence solver uses
// to compare a recomputed tear stream against the guess it started from.
package stream

import "math"

// Residual measures how far the stream has drifted from a baseline snapshot.
//
// The metric is the maximum over:
//   - for each species in the union of both flow vectors:
//     |flow - base| / max(|base|, ResidualFloor)
//   - |T - baseT| / max(baseT, ResidualFloor)
//
// Steps:
//  1. Union the species of the live vector and the baseline.
//  2. Accumulate the worst relative flow difference, flooring the
//     denominator so species appearing from (or vanishing to) zero still
//     register as finite, large residuals.
//  3. Fold in the relative temperature difference.
//
// A residual of 0 means the pass reproduced the guess exactly; convergence
// is declared when every tear residual drops below the solver tolerance.
//
// Complexity: O(S) over the union of species.
func (s *Stream) Residual(base State) float64 {
	var worst float64

	// 1) Species present in the live vector.
	for sp, f := range s.flow {
		worst = math.Max(worst, relDiff(f, base.Flow[sp]))
	}
	// 2) Species only present in the baseline (vanished flows).
	for sp, bf := range base.Flow {
		if _, ok := s.flow[sp]; !ok {
			worst = math.Max(worst, relDiff(0, bf))
		}
	}
	// 3) Temperature term.
	worst = math.Max(worst, relDiff(s.temp, base.Temperature))

	return worst
}

// relDiff computes |v-b| / max(|b|, ResidualFloor).
func relDiff(v, b float64) float64 {
	if v == b {
		return 0
	}
	den := math.Abs(b)
	if den < ResidualFloor {
		den = ResidualFloor
	}

	return math.Abs(v-b) / den
}
