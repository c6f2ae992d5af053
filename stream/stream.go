// Package stream: accessor and mutation methods on Stream.
//
// All methods are O(1) except the map-valued ones (Composition, Snapshot,
// CopyStateFrom, Clone, Validate), which are O(S) in the number of species
// present.
package stream

import (
	"fmt"
	"sort"
)

// ID returns the stream's identity within its flowsheet.
func (s *Stream) ID() string { return s.id }

// Flow returns the molar flow of one species in kmol/h.
// Species absent from the vector flow at zero.
func (s *Stream) Flow(sp Species) float64 { return s.flow[sp] }

// SetFlow sets the molar flow of one species in kmol/h.
// Returns ErrNegativeFlow for negative values; zero removes nothing (a zero
// entry is kept so the species stays visible in snapshots).
func (s *Stream) SetFlow(sp Species, kmolPerH float64) error {
	if kmolPerH < 0 {
		return fmt.Errorf("%w: %s = %g", ErrNegativeFlow, sp, kmolPerH)
	}
	s.flow[sp] = kmolPerH

	return nil
}

// Composition returns a fresh copy of the full flow vector.
// Mutating the returned map does not affect the stream.
func (s *Stream) Composition() map[Species]float64 {
	out := make(map[Species]float64, len(s.flow))
	for sp, f := range s.flow {
		out[sp] = f
	}

	return out
}

// SetComposition replaces the entire flow vector with a copy of m.
// Returns ErrNegativeFlow if any entry is negative; on error the stream is
// left unchanged.
func (s *Stream) SetComposition(m map[Species]float64) error {
	// Validate before mutating so a bad vector cannot half-apply.
	for sp, f := range m {
		if f < 0 {
			return fmt.Errorf("%w: %s = %g", ErrNegativeFlow, sp, f)
		}
	}
	next := make(map[Species]float64, len(m))
	for sp, f := range m {
		next[sp] = f
	}
	s.flow = next

	return nil
}

// Species returns the species present in the flow vector in sorted order,
// including zero-flow entries. Sorted for deterministic iteration.
func (s *Stream) Species() []Species {
	out := make([]Species, 0, len(s.flow))
	for sp := range s.flow {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// TotalFlow returns the summed molar flow over all species in kmol/h.
func (s *Stream) TotalFlow() float64 {
	var total float64
	for _, f := range s.flow {
		total += f
	}

	return total
}

// Temperature returns the stream temperature in kelvin.
func (s *Stream) Temperature() float64 { return s.temp }

// SetTemperature sets the stream temperature in kelvin.
// Returns ErrBadTemperature for non-positive values.
func (s *Stream) SetTemperature(tK float64) error {
	if tK <= 0 {
		return fmt.Errorf("%w: %g K", ErrBadTemperature, tK)
	}
	s.temp = tK

	return nil
}

// Pressure returns the stream pressure in pascal.
func (s *Stream) Pressure() float64 { return s.pres }

// SetPressure sets the stream pressure in pascal.
// Returns ErrBadPressure for non-positive values.
func (s *Stream) SetPressure(pPa float64) error {
	if pPa <= 0 {
		return fmt.Errorf("%w: %g Pa", ErrBadPressure, pPa)
	}
	s.pres = pPa

	return nil
}

// Phase returns the phase descriptor.
func (s *Stream) Phase() Phase { return s.phase }

// SetPhase sets the phase descriptor.
func (s *Stream) SetPhase(p Phase) { s.phase = p }

// Snapshot produces a deep-copy State of the stream. The snapshot shares no
// storage with the stream and is what the solver holds as a tear-stream
// guess between passes.
func (s *Stream) Snapshot() State {
	return State{
		ID:          s.id,
		Flow:        s.Composition(),
		Phase:       s.phase.String(),
		Temperature: s.temp,
		Pressure:    s.pres,
	}
}

// Restore overwrites the stream's mutable state from a snapshot taken
// earlier from this (or a like-shaped) stream. The snapshot's ID is ignored;
// identity is fixed at construction.
func (s *Stream) Restore(st State) {
	next := make(map[Species]float64, len(st.Flow))
	for sp, f := range st.Flow {
		next[sp] = f
	}
	s.flow = next
	s.temp = st.Temperature
	s.pres = st.Pressure
	switch st.Phase {
	case Vapor.String():
		s.phase = Vapor
	case Mixed.String():
		s.phase = Mixed
	default:
		s.phase = Liquid
	}
}

// CopyStateFrom overwrites this stream's mutable state (flows, phase, T, P)
// from src, leaving identity untouched. Returns ErrNilStream if src is nil.
func (s *Stream) CopyStateFrom(src *Stream) error {
	if src == nil {
		return ErrNilStream
	}
	s.flow = src.Composition()
	s.phase = src.phase
	s.temp = src.temp
	s.pres = src.pres

	return nil
}

// Clone returns an independent stream with the same identity and a deep copy
// of the state. Used to give each Monte-Carlo trial its own mutable copy.
func (s *Stream) Clone() *Stream {
	return &Stream{
		id:    s.id,
		flow:  s.Composition(),
		phase: s.phase,
		temp:  s.temp,
		pres:  s.pres,
	}
}

// Empty reports whether every species flow is zero.
func (s *Stream) Empty() bool {
	for _, f := range s.flow {
		if f != 0 {
			return false
		}
	}

	return true
}

// Validate checks the internal-consistency invariant: no negative flows,
// positive temperature and pressure. Returns the first violation found.
func (s *Stream) Validate() error {
	for _, sp := range s.Species() {
		if s.flow[sp] < 0 {
			return fmt.Errorf("%w: %s = %g", ErrNegativeFlow, sp, s.flow[sp])
		}
	}
	if s.temp <= 0 {
		return fmt.Errorf("%w: %g K", ErrBadTemperature, s.temp)
	}
	if s.pres <= 0 {
		return fmt.Errorf("%w: %g Pa", ErrBadPressure, s.pres)
	}

	return nil
}
