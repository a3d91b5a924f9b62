// Package citymap is a street-map routing engine: it loads a parsed map
// database, answers spatial and metadata queries over it, finds
// turn-penalty-aware shortest paths between intersections, and plans
// multi-stop pickup-delivery routes for a single courier.
//
// The engine is organized under focused subpackages:
//
//	geo/       — equirectangular projection, distance and area primitives
//	core/      — the immutable MapIndex built from a parsed street/OSM database
//	query/     — spatial lookups and metadata accessors over a MapIndex
//	astar/     — turn-penalty-aware point-to-point shortest paths
//	ttmatrix/  — parallel multi-target travel-time matrices
//	courier/   — pickup-delivery route planning
//	geoexport/ — GeoJSON rendering of map features, POIs and computed paths
//
// citymap itself exposes the package's external surface: LoadMap/CloseMap
// over a package-level map singleton, thin query forwarders, and the three
// routing entry points (FindPathBetweenIntersections,
// ComputePathTravelTime, TravelingCourier). It holds no routing logic of
// its own — every operation forwards into the subpackage that owns it.
package citymap
