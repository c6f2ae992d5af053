// Package flowsheet: registration and port binding. Pure structural
// bookkeeping — no physics executes here.
package flowsheet

import (
	"fmt"

	"github.com/katalvlaran/flowsheet/stream"
	"github.com/katalvlaran/flowsheet/unit"
)

// AddUnit registers a unit operation and allocates its port slots.
// Returns ErrNilUnit for a nil operation, unit.ErrEmptyUnitName for an
// empty name, or ErrDuplicateUnit if the name is taken.
// Complexity: O(ports).
func (f *Flowsheet) AddUnit(op unit.Operation) error {
	if op == nil {
		return ErrNilUnit
	}
	name := op.Name()
	if name == "" {
		return unit.ErrEmptyUnitName
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.units[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateUnit, name)
	}
	f.units[name] = op
	f.inlets[name] = make([]string, op.NumInlets())
	f.outlets[name] = make([]string, op.NumOutlets())
	f.unitSeq = append(f.unitSeq, name)

	return nil
}

// AddStream registers a stream object as a graph edge candidate.
// Returns ErrNilStream for nil, ErrDuplicateStream if the ID is taken.
// Complexity: O(1).
func (f *Flowsheet) AddStream(s *stream.Stream) error {
	if s == nil {
		return ErrNilStream
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.streams[s.ID()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStream, s.ID())
	}
	f.streams[s.ID()] = s

	return nil
}

// BindOutlet wires outlet slot `slot` of the named unit to a registered
// stream, making the unit the stream's producer.
//
// Steps:
//  1. Resolve unit and stream (ErrUnknownUnit / ErrUnknownStream).
//  2. Range-check the slot (ErrBadPort) and reject rebinding (ErrPortBound).
//  3. Reject a second producer for the stream (ErrStreamProduced).
//
// Complexity: O(1).
func (f *Flowsheet) BindOutlet(unitName string, slot int, streamID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots, err := f.resolveLocked(unitName, streamID, f.outlets)
	if err != nil {
		return err
	}
	if slot < 0 || slot >= len(slots) {
		return fmt.Errorf("%w: outlet %d of %q (arity %d)", ErrBadPort, slot, unitName, len(slots))
	}
	if slots[slot] != "" {
		return fmt.Errorf("%w: outlet %d of %q", ErrPortBound, slot, unitName)
	}
	if owner, taken := f.producer[streamID]; taken {
		return fmt.Errorf("%w: %q produced by %q", ErrStreamProduced, streamID, owner)
	}

	slots[slot] = streamID
	f.producer[streamID] = unitName

	return nil
}

// BindInlet wires inlet slot `slot` of the named unit to a registered
// stream, making the unit the stream's consumer. Mirror of BindOutlet.
// Complexity: O(1).
func (f *Flowsheet) BindInlet(unitName string, slot int, streamID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots, err := f.resolveLocked(unitName, streamID, f.inlets)
	if err != nil {
		return err
	}
	if slot < 0 || slot >= len(slots) {
		return fmt.Errorf("%w: inlet %d of %q (arity %d)", ErrBadPort, slot, unitName, len(slots))
	}
	if slots[slot] != "" {
		return fmt.Errorf("%w: inlet %d of %q", ErrPortBound, slot, unitName)
	}
	if owner, taken := f.consumer[streamID]; taken {
		return fmt.Errorf("%w: %q consumed by %q", ErrStreamConsumed, streamID, owner)
	}

	slots[slot] = streamID
	f.consumer[streamID] = unitName

	return nil
}

// Pipe is the common-case convenience: registers a fresh stream with the
// given ID (created with defaults if not yet registered) and binds it from
// (fromUnit, fromSlot) to (toUnit, toSlot). An empty streamID gets a
// generated identity. Returns the stream ID.
func (f *Flowsheet) Pipe(streamID, fromUnit string, fromSlot int, toUnit string, toSlot int) (string, error) {
	s := f.Stream(streamID)
	if s == nil {
		s = stream.New(streamID)
		if err := f.AddStream(s); err != nil {
			return "", err
		}
	}
	id := s.ID()
	if err := f.BindOutlet(fromUnit, fromSlot, id); err != nil {
		return "", err
	}
	if err := f.BindInlet(toUnit, toSlot, id); err != nil {
		return "", err
	}

	return id, nil
}

// resolveLocked validates unit and stream existence under the held lock and
// returns the unit's slot slice from the given binding table.
func (f *Flowsheet) resolveLocked(unitName, streamID string, table map[string][]string) ([]string, error) {
	slots, ok := table[unitName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unitName)
	}
	if _, ok = f.streams[streamID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStream, streamID)
	}

	return slots, nil
}

// Validate checks the structural invariants ahead of planning: every port
// of every unit is bound, and every registered stream passes its own
// consistency check. Returns the first violation found.
// Complexity: O(U·ports + S·species).
func (f *Flowsheet) Validate() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, name := range f.unitSeq {
		for slot, sid := range f.inlets[name] {
			if sid == "" {
				return fmt.Errorf("%w: inlet %d of %q", ErrUnboundPort, slot, name)
			}
		}
		for slot, sid := range f.outlets[name] {
			if sid == "" {
				return fmt.Errorf("%w: outlet %d of %q", ErrUnboundPort, slot, name)
			}
		}
	}
	for _, s := range f.streams {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	return nil
}
