// Package ttmatrix computes a dense travel-time matrix between a set of key
// intersections (depots, pickups, dropoffs) by running one multi-target
// Dijkstra search per key intersection, in parallel, over a *core.MapIndex.
//
// Each search explores outward from a single source until every other key
// intersection has been settled, then stops early rather than exploring the
// full map — the matrix only needs travel times between keys, not to every
// intersection. One goroutine runs each source's search and writes
// exclusively to its own row of the matrix, so no synchronization is needed
// on the matrix itself.
//
// Complexity:
//
//   - Time:  O(K * (V + E) log V) sequential work, O((V + E) log V) wall
//     clock with K goroutines running concurrently, where K = len(keys).
//   - Space: O(K^2) for the matrix plus O(V + E) per in-flight search.
package ttmatrix
