// File accessors.go: thin, read-only getters over a built MapIndex.
// Policy: no algorithms here — just O(1)/O(log n) lookups into the derived
// tables Build populated. Callers that need a query (nearest intersection,
// bounding box, ...) live in package query and are built on top of these.
package core

import (
	"sort"
	"strings"
)

// IntersectionCount returns the number of intersections in the map.
func (idx *MapIndex) IntersectionCount() int { return len(idx.intersections) }

// SegmentCount returns the number of street segments in the map.
func (idx *MapIndex) SegmentCount() int { return len(idx.segments) }

// StreetCount returns the number of streets in the map.
func (idx *MapIndex) StreetCount() int { return len(idx.streets) }

// FeatureCount returns the number of features in the map.
func (idx *MapIndex) FeatureCount() int { return len(idx.features) }

// POICount returns the number of points of interest in the map.
func (idx *MapIndex) POICount() int { return len(idx.pois) }

// Intersection returns the intersection with the given id.
func (idx *MapIndex) Intersection(id IntersectionID) (Intersection, bool) {
	if int(id) < 0 || int(id) >= len(idx.intersections) {
		return Intersection{}, false
	}

	return idx.intersections[id], true
}

// Intersections returns every intersection in the map, ordered by id.
// Callers must not mutate the returned slice's elements' slice fields.
func (idx *MapIndex) Intersections() []Intersection { return idx.intersections }

// Segment returns the street segment with the given id.
func (idx *MapIndex) Segment(id SegmentID) (StreetSegment, bool) {
	if int(id) < 0 || int(id) >= len(idx.segments) {
		return StreetSegment{}, false
	}

	return idx.segments[id], true
}

// Segments returns every street segment in the map, ordered by id.
func (idx *MapIndex) Segments() []StreetSegment { return idx.segments }

// Street returns the street with the given id.
func (idx *MapIndex) Street(id StreetID) (Street, bool) {
	if int(id) < 0 || int(id) >= len(idx.streets) {
		return Street{}, false
	}

	return idx.streets[id], true
}

// Streets returns every street in the map, ordered by id.
func (idx *MapIndex) Streets() []Street { return idx.streets }

// Feature returns the feature with the given id.
func (idx *MapIndex) Feature(id FeatureID) (Feature, bool) {
	if int(id) < 0 || int(id) >= len(idx.features) {
		return Feature{}, false
	}

	return idx.features[id], true
}

// Features returns every feature in the map, ordered by id.
func (idx *MapIndex) Features() []Feature { return idx.features }

// POI returns the point of interest with the given id.
func (idx *MapIndex) POI(id POIID) (POI, bool) {
	if int(id) < 0 || int(id) >= len(idx.pois) {
		return POI{}, false
	}

	return idx.pois[id], true
}

// POIs returns every point of interest in the map, ordered by id.
func (idx *MapIndex) POIs() []POI { return idx.pois }

// OSMNode looks up a node by its OSM id. Total over the loaded database:
// ok is false only if the id was never present in the source database.
func (idx *MapIndex) OSMNode(id OSMNodeID) (*OSMNode, bool) {
	n, ok := idx.osmNodes[id]

	return n, ok
}

// OSMWay looks up a way by its OSM id.
func (idx *MapIndex) OSMWay(id OSMWayID) (*OSMWay, bool) {
	w, ok := idx.osmWays[id]

	return w, ok
}

// Adjacency returns the intersections directly reachable from id in one
// hop, honoring one-way restrictions. Complexity: O(1).
func (idx *MapIndex) Adjacency(id IntersectionID) []IntersectionID {
	if int(id) < 0 || int(id) >= len(idx.adjacency) {
		return nil
	}

	return idx.adjacency[id]
}

// SegmentsOfIntersection returns every segment incident to id, regardless
// of direction. Complexity: O(1).
func (idx *MapIndex) SegmentsOfIntersection(id IntersectionID) []SegmentID {
	if int(id) < 0 || int(id) >= len(idx.segmentsByIntersection) {
		return nil
	}

	return idx.segmentsByIntersection[id]
}

// SegmentLength returns the precomputed length, in meters, of segment id.
func (idx *MapIndex) SegmentLength(id SegmentID) (float64, bool) {
	if int(id) < 0 || int(id) >= len(idx.segmentLength) {
		return 0, false
	}

	return idx.segmentLength[id], true
}

// SegmentTravelTime returns the precomputed travel time, in seconds, of
// segment id (length / speed limit).
func (idx *MapIndex) SegmentTravelTime(id SegmentID) (float64, bool) {
	if int(id) < 0 || int(id) >= len(idx.segmentTravelTime) {
		return 0, false
	}

	return idx.segmentTravelTime[id], true
}

// MaxSpeed returns the fastest speed limit, in meters/second, observed
// across every segment in the loaded map. The A* heuristic in package astar
// uses this as its "fastest plausible speed" constant so that the heuristic
// stays admissible for whatever map is actually loaded (spec.md §9).
func (idx *MapIndex) MaxSpeed() float64 { return idx.maxSpeed }

// StreetIDsByPrefix returns the ids of every street whose normalized name
// (lowercased, whitespace-stripped) starts with the normalized form of
// prefix. An empty prefix returns no results. Complexity: O(log S + k)
// where S = number of streets and k = number of matches.
func (idx *MapIndex) StreetIDsByPrefix(prefix string) []StreetID {
	key := normalizeStreetName(prefix)
	if key == "" {
		return nil
	}

	lo := sort.Search(len(idx.streetNameIndex), func(i int) bool {
		return idx.streetNameIndex[i].key >= key
	})

	var out []StreetID
	for i := lo; i < len(idx.streetNameIndex); i++ {
		entry := idx.streetNameIndex[i]
		if !strings.HasPrefix(entry.key, key) {
			break
		}
		out = append(out, entry.streetID)
	}

	return out
}
