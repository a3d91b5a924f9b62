package courier

import (
	"math/rand"
	"time"

	"github.com/meridianmaps/citymap/ttmatrix"
)

// improve runs iterated local search over stops: each iteration perturbs
// the current best route with a randomized three-way segment reversal
// (perturbThreeWay) and accepts the result only if it is both a legal
// route and strictly cheaper than the current best. Iteration stops at
// cfg.Deadline or, if set, after cfg.MaxIterations attempts.
//
// This is deliberately a hill-climbing accept/reject loop rather than an
// unconditional swap: an unconditional move can only wander away from a
// good tour once random perturbation is involved, so every candidate is
// cost-checked before it replaces the incumbent.
func improve(mat *ttmatrix.Matrix, deliveries []Delivery, stops []Stop, cost float64, cfg PlanOptions) ([]Stop, float64) {
	// Middle portion (stops[1:len(stops)-1]) needs at least 5 hops to admit
	// two distinct non-trivial cut points.
	if len(stops) < 7 {
		return stops, cost
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	best := stops
	bestCost := cost

	for iter := 0; cfg.MaxIterations <= 0 || iter < cfg.MaxIterations; iter++ {
		if time.Now().After(cfg.Deadline) {
			break
		}

		candidate := perturbThreeWay(best, rng)
		if err := LegalPathCheck(candidate, deliveries); err != nil {
			continue
		}

		candidateCost, err := CalculatePathCost(mat, candidate)
		if err != nil {
			continue
		}

		if candidateCost < bestCost {
			best = candidate
			bestCost = candidateCost
		}
	}

	return best, bestCost
}

// perturbThreeWay partitions the middle portion of the tour, stops[1:n-1],
// excluding the start and end depot legs, into three contiguous,
// non-empty subpaths at two random cut points, reverses the shortest of
// the three, and rejoins them in order. Reversing one contiguous block is a
// single 2-opt-style reversal, restricted here to the shortest of the three
// blocks.
func perturbThreeWay(stops []Stop, rng *rand.Rand) []Stop {
	n := len(stops)
	middle := n - 2
	if middle < 5 {
		return append([]Stop(nil), stops...)
	}

	lo := 1 + rng.Intn(middle-2)
	hi := lo + 1 + rng.Intn(middle-1-lo)

	segA := append([]Stop(nil), stops[1:lo+1]...)
	segB := append([]Stop(nil), stops[lo+1:hi+1]...)
	segC := append([]Stop(nil), stops[hi+1:n-1]...)

	segs := [3][]Stop{segA, segB, segC}
	shortest := 0
	for i := 1; i < 3; i++ {
		if len(segs[i]) < len(segs[shortest]) {
			shortest = i
		}
	}
	reverseStopsInPlace(segs[shortest])

	out := make([]Stop, 0, n)
	out = append(out, stops[0])
	out = append(out, segs[0]...)
	out = append(out, segs[1]...)
	out = append(out, segs[2]...)
	out = append(out, stops[n-1])

	return out
}

// reverseStopsInPlace reverses s in place.
func reverseStopsInPlace(s []Stop) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
