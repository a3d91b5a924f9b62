package courier

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/meridianmaps/citymap/core"
	"github.com/meridianmaps/citymap/ttmatrix"
)

// Plan computes a tour for a single courier that starts at whichever depot
// in depots begins the cheapest first pickup leg, serves every delivery
// exactly once respecting pickup-before-dropoff precedence, and ends at
// whichever depot in depots is cheapest to reach from the final stop.
//
// Pipeline:
//
//  1. Collect every depot and delivery endpoint into a key set and build a
//     travel-time matrix over them (package ttmatrix).
//  2. Greedily construct an initial route: choose the cheapest depot/first
//     pickup pair, then repeatedly travel to whichever legal candidate (an
//     unvisited pickup, or a pending dropoff) is cheapest from the current
//     stop, then close with the cheapest reachable depot.
//  3. Improve the route with randomized local search until opts.Deadline
//     (default DefaultDeadlineBudget from now) or opts.MaxIterations is
//     reached.
func Plan(idx *core.MapIndex, depots []core.IntersectionID, deliveries []Delivery, opts ...Option) (*Result, error) {
	if idx == nil {
		return nil, ErrNilMapIndex
	}
	if len(deliveries) == 0 {
		return nil, ErrNoDeliveries
	}
	if len(depots) == 0 {
		return nil, fmt.Errorf("%w: no depots supplied", ErrUnknownIntersection)
	}

	cfg := DefaultPlanOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Deadline.IsZero() {
		cfg.Deadline = time.Now().Add(DefaultDeadlineBudget)
	}

	for i, d := range depots {
		if _, ok := idx.Intersection(d); !ok {
			return nil, fmt.Errorf("%w: depot %d (index %d)", ErrUnknownIntersection, d, i)
		}
	}
	for i, d := range deliveries {
		if _, ok := idx.Intersection(d.Pickup); !ok {
			return nil, fmt.Errorf("%w: delivery %d pickup %d", ErrUnknownIntersection, i, d.Pickup)
		}
		if _, ok := idx.Intersection(d.Dropoff); !ok {
			return nil, fmt.Errorf("%w: delivery %d dropoff %d", ErrUnknownIntersection, i, d.Dropoff)
		}
	}

	keys := collectKeys(depots, deliveries)
	mat, err := ttmatrix.Build(idx, keys, ttmatrix.WithTurnPenalty(cfg.TurnPenalty))
	if err != nil {
		return nil, fmt.Errorf("courier: building travel-time matrix: %w", err)
	}

	stops, err := greedyConstruct(mat, depots, deliveries)
	if err != nil {
		return nil, err
	}

	cost, err := CalculatePathCost(mat, stops)
	if err != nil {
		return nil, err
	}

	stops, cost = improve(mat, deliveries, stops, cost, cfg)

	subPaths, err := resolveSubPaths(idx, stops, cfg.TurnPenalty)
	if err != nil {
		return nil, err
	}

	return &Result{
		Stops:     stops,
		SubPaths:  subPaths,
		TotalTime: cost,
		RequestID: uuid.NewString(),
	}, nil
}

// collectKeys gathers every depot and delivery endpoint into a
// deduplicated key list, depots first, for ttmatrix.Build.
func collectKeys(depots []core.IntersectionID, deliveries []Delivery) []core.IntersectionID {
	seen := make(map[core.IntersectionID]bool, len(depots)+2*len(deliveries))
	var keys []core.IntersectionID

	add := func(id core.IntersectionID) {
		if !seen[id] {
			seen[id] = true
			keys = append(keys, id)
		}
	}

	for _, d := range depots {
		add(d)
	}
	for _, d := range deliveries {
		add(d.Pickup)
		add(d.Dropoff)
	}

	return keys
}

// greedyConstruct builds an initial stop sequence: it starts at whichever
// depot/pickup pair minimizes T[depot][pickup], repeatedly appends
// whichever legal candidate (an unvisited pickup, or a dropoff whose
// pickup has already been visited) is cheapest to reach from the current
// stop, breaking ties toward the lowest delivery index, and closes with
// whichever depot minimizes T[current][depot].
//
// Complexity: O(D^2 + depots*(D + depots)) where D = len(deliveries).
func greedyConstruct(mat *ttmatrix.Matrix, depots []core.IntersectionID, deliveries []Delivery) ([]Stop, error) {
	n := len(deliveries)

	startDepot, firstPickup, ok := bestDepotPickupPair(mat, depots, deliveries)
	if !ok {
		return nil, ErrInfeasiblePlan
	}

	pending := make([]bool, n)  // pickup not yet visited
	awaiting := make([]bool, n) // picked up, dropoff not yet visited
	for i := range deliveries {
		pending[i] = true
	}
	pending[firstPickup] = false
	awaiting[firstPickup] = true

	stops := make([]Stop, 0, 2*n+2)
	stops = append(stops, Stop{Kind: StopDepot, DeliveryIndex: -1, Intersection: startDepot})
	stops = append(stops, Stop{Kind: StopPickup, DeliveryIndex: firstPickup, Intersection: deliveries[firstPickup].Pickup})
	current := deliveries[firstPickup].Pickup

	iterCap := 10 * n
	for iter := 0; iter < 2*n-1; iter++ {
		if iter >= iterCap {
			return nil, ErrIterationCapExceeded
		}

		bestCost := math.Inf(1)
		var bestStop Stop
		found := false

		for i, d := range deliveries {
			if pending[i] {
				if t, ok := mat.TravelTime(current, d.Pickup); ok && t < bestCost {
					bestCost = t
					bestStop = Stop{Kind: StopPickup, DeliveryIndex: i, Intersection: d.Pickup}
					found = true
				}
			}
			if awaiting[i] {
				if t, ok := mat.TravelTime(current, d.Dropoff); ok && t < bestCost {
					bestCost = t
					bestStop = Stop{Kind: StopDropoff, DeliveryIndex: i, Intersection: d.Dropoff}
					found = true
				}
			}
		}

		if !found {
			return nil, ErrInfeasiblePlan
		}

		switch bestStop.Kind {
		case StopPickup:
			pending[bestStop.DeliveryIndex] = false
			awaiting[bestStop.DeliveryIndex] = true
		case StopDropoff:
			awaiting[bestStop.DeliveryIndex] = false
		}

		stops = append(stops, bestStop)
		current = bestStop.Intersection
	}

	endDepot, ok := bestDepot(mat, depots, current)
	if !ok {
		return nil, ErrInfeasiblePlan
	}
	stops = append(stops, Stop{Kind: StopDepot, DeliveryIndex: -1, Intersection: endDepot})

	return stops, nil
}

// bestDepotPickupPair returns the depot/pickup-delivery-index pair
// minimizing T[depot][pickup] over every depot and every delivery's pickup.
func bestDepotPickupPair(mat *ttmatrix.Matrix, depots []core.IntersectionID, deliveries []Delivery) (core.IntersectionID, int, bool) {
	bestCost := math.Inf(1)
	var bestDepotID core.IntersectionID
	bestIdx := -1
	found := false

	for _, dep := range depots {
		for i, d := range deliveries {
			if t, ok := mat.TravelTime(dep, d.Pickup); ok && t < bestCost {
				bestCost = t
				bestDepotID = dep
				bestIdx = i
				found = true
			}
		}
	}

	return bestDepotID, bestIdx, found
}

// bestDepot returns whichever depot minimizes T[current][depot].
func bestDepot(mat *ttmatrix.Matrix, depots []core.IntersectionID, current core.IntersectionID) (core.IntersectionID, bool) {
	bestCost := math.Inf(1)
	var best core.IntersectionID
	found := false

	for _, dep := range depots {
		if t, ok := mat.TravelTime(current, dep); ok && t < bestCost {
			bestCost = t
			best = dep
			found = true
		}
	}

	return best, found
}
