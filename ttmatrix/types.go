package ttmatrix

import "errors"

// Sentinel errors returned by Build.
var (
	// ErrNilMapIndex indicates Build was called with a nil *core.MapIndex.
	ErrNilMapIndex = errors.New("ttmatrix: map index is nil")

	// ErrNoKeys indicates Build was called with an empty key set.
	ErrNoKeys = errors.New("ttmatrix: no key intersections supplied")

	// ErrUnknownKey indicates one of the key intersections does not exist
	// in the supplied map index.
	ErrUnknownKey = errors.New("ttmatrix: unknown key intersection")

	// ErrBadTurnPenalty indicates a negative turn penalty was supplied.
	ErrBadTurnPenalty = errors.New("ttmatrix: turn penalty must be non-negative")
)

// Options configures a Build call.
//
// TurnPenalty – seconds added whenever consecutive segments on a shortest
//               path change street identity, mirroring package astar's
//               turn-cost model so the matrix and point-to-point routing
//               agree on path cost. Must be ≥ 0. Default 0.
type Options struct {
	TurnPenalty float64
}

// Option is a functional option for configuring Build.
type Option func(*Options)

// WithTurnPenalty sets the seconds charged for a street-identity change.
// Panics via ErrBadTurnPenalty if penalty is negative.
func WithTurnPenalty(penalty float64) Option {
	return func(o *Options) {
		if penalty < 0 {
			panic(ErrBadTurnPenalty.Error())
		}
		o.TurnPenalty = penalty
	}
}

// DefaultOptions returns the zero-penalty default.
func DefaultOptions() Options {
	return Options{TurnPenalty: 0}
}
