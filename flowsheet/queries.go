// Package flowsheet: read-only queries over the process graph.
package flowsheet

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/flowsheet/stream"
	"github.com/katalvlaran/flowsheet/unit"
)

// Unit returns the registered operation by name, or nil if absent.
func (f *Flowsheet) Unit(name string) unit.Operation {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.units[name]
}

// Stream returns the registered stream by ID, or nil if absent.
func (f *Flowsheet) Stream(id string) *stream.Stream {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.streams[id]
}

// Units returns all unit names in registration order.
func (f *Flowsheet) Units() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]string(nil), f.unitSeq...)
}

// Streams returns all stream IDs in sorted order.
func (f *Flowsheet) Streams() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]string, 0, len(f.streams))
	for id := range f.streams {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// Inlets returns the streams bound to the unit's inlet slots, in port order.
// Unbound slots yield nil entries; Validate rejects those before planning.
func (f *Flowsheet) Inlets(unitName string) ([]*stream.Stream, error) {
	return f.boundStreams(unitName, f.inlets)
}

// Outlets returns the streams bound to the unit's outlet slots, in port order.
func (f *Flowsheet) Outlets(unitName string) ([]*stream.Stream, error) {
	return f.boundStreams(unitName, f.outlets)
}

// boundStreams resolves one binding table row to live stream pointers.
func (f *Flowsheet) boundStreams(unitName string, table map[string][]string) ([]*stream.Stream, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	slots, ok := table[unitName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unitName)
	}
	out := make([]*stream.Stream, len(slots))
	for i, sid := range slots {
		if sid != "" {
			out[i] = f.streams[sid]
		}
	}

	return out, nil
}

// Producer returns the name of the unit producing the stream, or "" for a
// feed. Returns ErrUnknownStream for unregistered IDs.
func (f *Flowsheet) Producer(streamID string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if _, ok := f.streams[streamID]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStream, streamID)
	}

	return f.producer[streamID], nil
}

// Consumer returns the name of the unit consuming the stream, or "" for a
// product. Returns ErrUnknownStream for unregistered IDs.
func (f *Flowsheet) Consumer(streamID string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if _, ok := f.streams[streamID]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStream, streamID)
	}

	return f.consumer[streamID], nil
}

// Predecessors returns the distinct units feeding the named unit, sorted.
// Returns ErrUnknownUnit for unregistered names.
// Complexity: O(inlets·log inlets).
func (f *Flowsheet) Predecessors(unitName string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	slots, ok := f.inlets[unitName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unitName)
	}

	return f.adjacentLocked(slots, f.producer), nil
}

// Successors returns the distinct units fed by the named unit, sorted.
// Returns ErrUnknownUnit for unregistered names.
func (f *Flowsheet) Successors(unitName string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	slots, ok := f.outlets[unitName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unitName)
	}

	return f.adjacentLocked(slots, f.consumer), nil
}

// adjacentLocked maps bound stream IDs through a reverse index to the
// distinct, sorted set of adjacent unit names.
func (f *Flowsheet) adjacentLocked(slots []string, index map[string]string) []string {
	seen := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))
	for _, sid := range slots {
		if sid == "" {
			continue
		}
		u, ok := index[sid]
		if !ok {
			continue // feed or product end of the edge
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	sort.Strings(out)

	return out
}

// FeedStreams returns sorted IDs of streams with no producing unit.
func (f *Flowsheet) FeedStreams() []string {
	return f.boundary(func(id string) bool {
		_, produced := f.producer[id]
		return !produced
	})
}

// ProductStreams returns sorted IDs of streams with no consuming unit.
func (f *Flowsheet) ProductStreams() []string {
	return f.boundary(func(id string) bool {
		_, consumed := f.consumer[id]
		return !consumed
	})
}

// boundary collects sorted stream IDs matching the predicate.
func (f *Flowsheet) boundary(keep func(id string) bool) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]string, 0, len(f.streams))
	for id := range f.streams {
		if keep(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}

// Edges returns the full dependency table, sorted by stream ID. Each row
// names the stream and its producing/consuming units (empty for feeds and
// products respectively). This is the node/edge view the recycle planner
// and diagnostics consume.
// Complexity: O(S·log S).
func (f *Flowsheet) Edges() []Edge {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Edge, 0, len(f.streams))
	for id := range f.streams {
		out = append(out, Edge{
			Stream: id,
			From:   f.producer[id],
			To:     f.consumer[id],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stream < out[j].Stream })

	return out
}
