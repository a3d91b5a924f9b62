// Package astar implements A* shortest-path search over a *core.MapIndex,
// with a turn penalty applied whenever the path changes street identity at
// an intersection.
//
// Unlike a plain vertex-to-vertex shortest path, the state explored here is
// (intersection, arriving segment): the same intersection reached via two
// different streets carries a different turn cost to every outgoing
// segment, so the arriving segment is part of the search state rather than
// incidental to it.
//
// Complexity:
//
//   - Time:  O((V + E) log V), the same bound as plain Dijkstra — the turn
//     penalty only changes edge weights, not the shape of the search.
//   - Space: O(V + E) for the open set and score maps.
package astar
