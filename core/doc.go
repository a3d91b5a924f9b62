// Package core defines the static road-network data model — intersections,
// street segments, streets, OSM nodes/ways, features and POIs — and the
// MapIndex that preprocesses a loaded RawDatabase into the derived tables
// every other package in this module reads.
//
// Every identifier is a dense, non-negative integer index into its table:
// IntersectionID(i) names intersections[i], SegmentID(i) names segments[i],
// and so on. This mirrors how the raw `.streets.bin`/`.osm.bin` databases
// hand out IDs and keeps every lookup in this package O(1).
//
// MapIndex is built once by Build (called from the top-level LoadMap) and is
// immutable for the remainder of the loaded map's lifetime: queries, the A*
// router, and the multi-target Dijkstra all borrow it read-only. There is no
// in-place mutation API here by design — a freshly built MapIndex is the
// unit of "reload", matching the re-architecture spec.md §9 calls for: an
// owned value threaded through callers instead of module-level state.
package core
