// Package courier plans a single courier's round trip from a depot through
// a set of pickup-delivery pairs and back, honoring the precedence
// constraint that a delivery's pickup stop must precede its dropoff stop.
//
// The pipeline mirrors a classic metaheuristic TSP solver's shape (see the
// companion packages astar and ttmatrix for the routing primitives this
// builds on):
//
//  1. Greedy nearest-neighbor construction: starting at the depot, repeatedly
//     travel to whichever legal next stop (an unvisited pickup, or a pending
//     dropoff) is closest by travel time.
//  2. Randomized local search: iterated-local-search perturbation of the
//     stop sequence, accepting a candidate only when it is both legal and
//     strictly cheaper than the current best, bounded by a wall-clock
//     deadline.
//
// Every travel-time lookup is served by a precomputed ttmatrix.Matrix over
// the depot and every pickup/dropoff intersection, so the optimization loop
// never re-invokes pathfinding.
//
// Complexity:
//
//   - Construction: O(D^2) where D = number of deliveries (each of the 2D
//     stops scans the remaining O(D) candidates).
//   - Local search: O(iterations * stops) per accepted-or-rejected move,
//     bounded by PlanOptions.Deadline and PlanOptions.MaxIterations.
package courier
