// Package flowsheet: types and sentinel errors for the process graph.
// Registration and binding live in flowsheet.go, queries in queries.go,
// diagnostics in snapshot.go.
package flowsheet

import (
	"errors"
	"sync"

	"github.com/katalvlaran/flowsheet/stream"
	"github.com/katalvlaran/flowsheet/unit"
)

var (
	// ErrNilUnit indicates a nil unit.Operation was registered.
	ErrNilUnit = errors.New("flowsheet: unit is nil")

	// ErrNilStream indicates a nil *stream.Stream was registered.
	ErrNilStream = errors.New("flowsheet: stream is nil")

	// ErrDuplicateUnit indicates a unit name was registered twice.
	ErrDuplicateUnit = errors.New("flowsheet: duplicate unit name")

	// ErrDuplicateStream indicates a stream ID was registered twice.
	ErrDuplicateStream = errors.New("flowsheet: duplicate stream id")

	// ErrUnknownUnit indicates an operation referenced an unregistered unit.
	ErrUnknownUnit = errors.New("flowsheet: unit not found")

	// ErrUnknownStream indicates an operation referenced an unregistered stream.
	ErrUnknownStream = errors.New("flowsheet: stream not found")

	// ErrBadPort indicates a port slot outside the unit's declared arity.
	ErrBadPort = errors.New("flowsheet: port slot out of range")

	// ErrPortBound indicates a port slot that is already bound to a stream.
	ErrPortBound = errors.New("flowsheet: port already bound")

	// ErrStreamProduced indicates a stream that already has a producing unit.
	ErrStreamProduced = errors.New("flowsheet: stream already has a producer")

	// ErrStreamConsumed indicates a stream that already has a consuming unit.
	ErrStreamConsumed = errors.New("flowsheet: stream already has a consumer")

	// ErrUnboundPort indicates Validate found a port with no stream bound.
	ErrUnboundPort = errors.New("flowsheet: unbound port")
)

// Edge is one row of the dependency table: a stream carrying material from
// its producing unit to its consuming unit. From is empty for feed streams,
// To is empty for product streams.
type Edge struct {
	Stream string `yaml:"stream"`
	From   string `yaml:"from,omitempty"`
	To     string `yaml:"to,omitempty"`
}

// Flowsheet is the explicit registry of units and streams for one process.
// The zero value is not usable; construct with New.
type Flowsheet struct {
	mu sync.RWMutex

	units   map[string]unit.Operation
	streams map[string]*stream.Stream

	// Port bindings: per unit, the stream ID bound to each slot
	// ("" = unbound). Slice lengths equal the unit's declared arity.
	inlets  map[string][]string
	outlets map[string][]string

	// Reverse indices: stream ID → unit name.
	producer map[string]string
	consumer map[string]string

	// unitSeq preserves registration order for deterministic tie-breaking.
	unitSeq []string
}

// New creates an empty Flowsheet.
func New() *Flowsheet {
	return &Flowsheet{
		units:    make(map[string]unit.Operation),
		streams:  make(map[string]*stream.Stream),
		inlets:   make(map[string][]string),
		outlets:  make(map[string][]string),
		producer: make(map[string]string),
		consumer: make(map[string]string),
	}
}
