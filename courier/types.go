package courier

import (
	"errors"
	"time"

	"github.com/meridianmaps/citymap/core"
)

// Sentinel errors returned by Plan and its helpers.
var (
	// ErrNilMapIndex indicates Plan was called with a nil *core.MapIndex.
	ErrNilMapIndex = errors.New("courier: map index is nil")

	// ErrNoDeliveries indicates Plan was called with no deliveries to route.
	ErrNoDeliveries = errors.New("courier: no deliveries supplied")

	// ErrUnknownIntersection indicates the depot or a delivery endpoint does
	// not exist in the supplied map index.
	ErrUnknownIntersection = errors.New("courier: unknown intersection")

	// ErrBadTurnPenalty indicates a negative turn penalty was supplied.
	ErrBadTurnPenalty = errors.New("courier: turn penalty must be non-negative")

	// ErrBadMaxIterations indicates a negative iteration cap was supplied.
	ErrBadMaxIterations = errors.New("courier: max iterations must be non-negative")

	// ErrIterationCapExceeded indicates the greedy construction loop ran
	// longer than its defensive safety cap without finishing — this
	// signals a bug in the construction logic, not an infeasible instance.
	ErrIterationCapExceeded = errors.New("courier: greedy construction exceeded its iteration cap")

	// ErrInfeasiblePlan indicates no legal next stop exists, which happens
	// only if some key intersection is unreachable from the current stop.
	ErrInfeasiblePlan = errors.New("courier: no legal next stop is reachable")

	// ErrDropoffBeforePickup indicates a candidate stop sequence visits a
	// delivery's dropoff before its pickup.
	ErrDropoffBeforePickup = errors.New("courier: dropoff precedes pickup")

	// ErrDuplicateStop indicates a candidate stop sequence visits the same
	// pickup or dropoff more than once.
	ErrDuplicateStop = errors.New("courier: duplicate stop in sequence")

	// ErrIncompletePlan indicates a candidate stop sequence omits a
	// delivery's pickup or dropoff.
	ErrIncompletePlan = errors.New("courier: plan omits a pickup or dropoff")

	// ErrMalformedStop indicates a stop carries an invalid Kind or
	// DeliveryIndex.
	ErrMalformedStop = errors.New("courier: malformed stop")
)

// DefaultDeadlineBudget is the wall-clock budget Plan applies to its local
// search phase when PlanOptions.Deadline is the zero Time.
const DefaultDeadlineBudget = 50 * time.Second

// Delivery is one pickup-delivery pair the courier must serve.
type Delivery struct {
	Pickup  core.IntersectionID
	Dropoff core.IntersectionID
}

// StopKind classifies a Stop's role in a planned route.
type StopKind int

// Stop kinds.
const (
	StopDepot StopKind = iota
	StopPickup
	StopDropoff
)

// Stop is one visit in a planned route. DeliveryIndex indexes the
// Deliveries slice passed to Plan and is -1 for StopDepot.
type Stop struct {
	Kind          StopKind
	DeliveryIndex int
	Intersection  core.IntersectionID
}

// CourierSubPath is the segment-level route between two consecutive stops
// of a Plan, resolved via package astar so the planner's notion of cost
// agrees exactly with point-to-point routing.
type CourierSubPath struct {
	From       core.IntersectionID
	To         core.IntersectionID
	Segments   []core.SegmentID
	TravelTime float64
}

// Result is the plan returned by a successful Plan call.
type Result struct {
	Stops     []Stop
	SubPaths  []CourierSubPath
	TotalTime float64 // seconds, including turn penalties
	RequestID string  // correlates this plan with logs/traces
}

// PlanOptions configures a Plan call.
//
// TurnPenalty   – seconds charged for a street-identity change, forwarded
//                 to the underlying ttmatrix.Matrix. Must be ≥ 0. Default 0.
// Deadline      – absolute wall-clock time at which local search must stop.
//                 The zero Time means "use DefaultDeadlineBudget from now".
// Seed          – seeds the local-search RNG for reproducible perturbation
//                 sequences. Default 0.
// MaxIterations – caps the number of local-search iterations regardless of
//                 the deadline. Zero means unbounded (deadline-only).
type PlanOptions struct {
	TurnPenalty   float64
	Deadline      time.Time
	Seed          int64
	MaxIterations int
}

// Option is a functional option for configuring Plan.
type Option func(*PlanOptions)

// WithTurnPenalty sets the seconds charged for a street-identity change.
// Panics via ErrBadTurnPenalty if penalty is negative.
func WithTurnPenalty(penalty float64) Option {
	return func(o *PlanOptions) {
		if penalty < 0 {
			panic(ErrBadTurnPenalty.Error())
		}
		o.TurnPenalty = penalty
	}
}

// WithDeadline sets the absolute wall-clock deadline for local search.
func WithDeadline(deadline time.Time) Option {
	return func(o *PlanOptions) {
		o.Deadline = deadline
	}
}

// WithSeed sets the local-search RNG seed.
func WithSeed(seed int64) Option {
	return func(o *PlanOptions) {
		o.Seed = seed
	}
}

// WithMaxIterations caps the number of local-search iterations. Panics via
// ErrBadMaxIterations if n is negative.
func WithMaxIterations(n int) Option {
	return func(o *PlanOptions) {
		if n < 0 {
			panic(ErrBadMaxIterations.Error())
		}
		o.MaxIterations = n
	}
}

// DefaultPlanOptions returns the zero-penalty, deadline-governed defaults.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{
		TurnPenalty:   0,
		Deadline:      time.Time{},
		Seed:          0,
		MaxIterations: 0,
	}
}
