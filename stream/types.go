// Package stream: types, sentinel errors and construction options for the
// material-stream record. Methods live in stream.go; the residual metric in
// residual.go.
package stream

import (
	"errors"

	"github.com/google/uuid"
)

// Species identifies a chemical component by name (e.g. "Water", "Ethanol").
type Species string

// Phase classifies the bulk phase of a stream.
type Phase uint8

const (
	// Liquid marks a fully condensed stream.
	Liquid Phase = iota
	// Vapor marks a fully vaporized stream.
	Vapor
	// Mixed marks a two-phase stream.
	Mixed
)

// String returns the lowercase phase label used in snapshots.
func (p Phase) String() string {
	switch p {
	case Liquid:
		return "liquid"
	case Vapor:
		return "vapor"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// ResidualFloor is the absolute denominator floor used by Residual to keep
// relative differences finite against near-zero baselines.
const ResidualFloor = 1e-12

// Default thermodynamic state for streams constructed without options:
// ambient temperature and atmospheric pressure.
const (
	DefaultTemperature = 298.15   // K
	DefaultPressure    = 101325.0 // Pa
)

var (
	// ErrNilStream is returned when a nil *Stream is passed to an operation
	// that requires one.
	ErrNilStream = errors.New("stream: stream is nil")

	// ErrNegativeFlow indicates an attempt to set a negative species flow.
	ErrNegativeFlow = errors.New("stream: negative species flow")

	// ErrBadTemperature indicates a non-positive absolute temperature.
	ErrBadTemperature = errors.New("stream: temperature must be positive")

	// ErrBadPressure indicates a non-positive absolute pressure.
	ErrBadPressure = errors.New("stream: pressure must be positive")
)

// Stream is the mutable material state flowing along one flowsheet edge.
// The zero value is not usable; construct with New.
type Stream struct {
	id    string
	flow  map[Species]float64 // kmol/h per species; absent key means zero
	phase Phase
	temp  float64 // K
	pres  float64 // Pa
}

// Option configures a Stream at construction time.
type Option func(*Stream)

// WithTemperature sets the initial temperature in kelvin.
func WithTemperature(tK float64) Option {
	return func(s *Stream) { s.temp = tK }
}

// WithPressure sets the initial pressure in pascal.
func WithPressure(pPa float64) Option {
	return func(s *Stream) { s.pres = pPa }
}

// WithPhase sets the initial phase descriptor.
func WithPhase(p Phase) Option {
	return func(s *Stream) { s.phase = p }
}

// WithFlow sets one initial species flow in kmol/h. Negative values are
// clamped to zero; use SetFlow after construction for strict validation.
func WithFlow(sp Species, kmolPerH float64) Option {
	return func(s *Stream) {
		if kmolPerH < 0 {
			kmolPerH = 0
		}
		s.flow[sp] = kmolPerH
	}
}

// New creates a Stream with the given identity and options. An empty id is
// replaced by a generated one so every stream is addressable in diagnostics.
// Defaults: empty flow vector, Liquid phase, DefaultTemperature,
// DefaultPressure.
func New(id string, opts ...Option) *Stream {
	if id == "" {
		id = "s-" + uuid.NewString()
	}
	s := &Stream{
		id:    id,
		flow:  make(map[Species]float64),
		phase: Liquid,
		temp:  DefaultTemperature,
		pres:  DefaultPressure,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State is a deep-copy snapshot of a Stream, safe to hold across simulation
// passes and marshalable for diagnostics.
type State struct {
	ID          string              `yaml:"id"`
	Flow        map[Species]float64 `yaml:"flow,omitempty"`
	Phase       string              `yaml:"phase"`
	Temperature float64             `yaml:"temperature"`
	Pressure    float64             `yaml:"pressure"`
}
