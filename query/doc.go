// Package query implements the pure, read-only geometric and lookup
// queries that sit on top of a built *core.MapIndex: nearest
// intersection/POI, street length and bounding box, turn angle between two
// segments, feature area, OSM way length, OSM node tag lookup, street-name
// prefix search, and the intersections shared by two streets.
//
// Every function here is a pure function of (MapIndex, arguments) — none of
// them retain state or mutate the index. They are the thin, documented
// facade the out-of-scope UI/renderer consumes (spec.md §6).
package query
