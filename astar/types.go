package astar

import "errors"

// Sentinel errors returned by FindPath.
var (
	// ErrNilMapIndex indicates FindPath was called with a nil *core.MapIndex.
	ErrNilMapIndex = errors.New("astar: map index is nil")

	// ErrSourceNotFound indicates the source intersection does not exist.
	ErrSourceNotFound = errors.New("astar: source intersection not found")

	// ErrDestinationNotFound indicates the destination intersection does not exist.
	ErrDestinationNotFound = errors.New("astar: destination intersection not found")

	// ErrBadTurnPenalty indicates a negative turn penalty was supplied.
	ErrBadTurnPenalty = errors.New("astar: turn penalty must be non-negative")
)

// Options configures a FindPath call.
//
// TurnPenalty   – seconds added to a transition's cost whenever it changes
//                 street identity at the shared intersection. Must be ≥ 0.
//                 Default 0 (no penalty; plain travel-time shortest path).
// MaxExpansions – optional cap on the number of intersection states popped
//                 from the open set before giving up and returning
//                 ErrNoPath. Default 0 means unbounded.
type Options struct {
	TurnPenalty   float64
	MaxExpansions int
}

// Option is a functional option for configuring FindPath.
type Option func(*Options)

// WithTurnPenalty sets the seconds charged for a street-identity change at
// an intersection. Panics via ErrBadTurnPenalty if penalty is negative.
func WithTurnPenalty(penalty float64) Option {
	return func(o *Options) {
		if penalty < 0 {
			panic(ErrBadTurnPenalty.Error())
		}
		o.TurnPenalty = penalty
	}
}

// WithMaxExpansions caps the number of states FindPath will settle before
// concluding no path exists. A non-positive value disables the cap.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		o.MaxExpansions = n
	}
}

// DefaultOptions returns the zero-penalty, unbounded-expansion defaults.
func DefaultOptions() Options {
	return Options{
		TurnPenalty:   0,
		MaxExpansions: 0,
	}
}
