// Package flowsheet: diagnostic snapshot and per-trial cloning.
package flowsheet

import (
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/flowsheet/stream"
)

// UnitSnapshot is one node row of the diagnostic table.
type UnitSnapshot struct {
	Name    string   `yaml:"name"`
	Inlets  []string `yaml:"inlets,omitempty"`
	Outlets []string `yaml:"outlets,omitempty"`
}

// Snapshot is a serializable view of the whole graph: node table, edge
// table, and the current state of every stream.
type Snapshot struct {
	Units   []UnitSnapshot `yaml:"units"`
	Edges   []Edge         `yaml:"edges"`
	Streams []stream.State `yaml:"streams"`
}

// Snapshot captures the graph structure and current stream states.
// The result shares no storage with the flowsheet.
// Complexity: O(U·ports + S·species).
func (f *Flowsheet) Snapshot() Snapshot {
	edges := f.Edges() // takes its own read lock

	f.mu.RLock()
	defer f.mu.RUnlock()

	snap := Snapshot{
		Units:   make([]UnitSnapshot, 0, len(f.unitSeq)),
		Edges:   edges,
		Streams: make([]stream.State, 0, len(f.streams)),
	}
	for _, name := range f.unitSeq {
		snap.Units = append(snap.Units, UnitSnapshot{
			Name:    name,
			Inlets:  append([]string(nil), f.inlets[name]...),
			Outlets: append([]string(nil), f.outlets[name]...),
		})
	}
	for _, e := range edges {
		snap.Streams = append(snap.Streams, f.streams[e.Stream].Snapshot())
	}

	return snap
}

// DiagnosticYAML renders the snapshot as YAML for logs and bug reports.
func (f *Flowsheet) DiagnosticYAML() ([]byte, error) {
	snap := f.Snapshot()

	return yaml.Marshal(snap)
}

// Clone returns a flowsheet with identical structure and independently
// cloned stream state, for running independent trials over the same
// topology. Unit operations are shared by reference: implementations that
// keep mutable per-run results must not be simulated from concurrent
// clones.
// Complexity: O(U·ports + S·species).
func (f *Flowsheet) Clone() *Flowsheet {
	f.mu.RLock()
	defer f.mu.RUnlock()

	c := New()
	for name, op := range f.units {
		c.units[name] = op
		c.inlets[name] = append([]string(nil), f.inlets[name]...)
		c.outlets[name] = append([]string(nil), f.outlets[name]...)
	}
	c.unitSeq = append([]string(nil), f.unitSeq...)
	for id, s := range f.streams {
		c.streams[id] = s.Clone()
	}
	for id, u := range f.producer {
		c.producer[id] = u
	}
	for id, u := range f.consumer {
		c.consumer[id] = u
	}

	return c
}
