package query

import (
	"math"

	"github.com/meridianmaps/citymap/core"
	"github.com/meridianmaps/citymap/geo"
)

// NoAngle is the sentinel TurnAngle returns for illegal or undefined turn
// geometry. Compare with IsNoAngle rather than ==, since the sentinel is
// NaN and NaN never equals itself.
var NoAngle = math.NaN()

// IsNoAngle reports whether a value returned by TurnAngle is the NoAngle
// sentinel.
func IsNoAngle(v float64) bool { return math.IsNaN(v) }

// BoundingBox is an axis-aligned lat/lon rectangle.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// ClosestIntersection returns the id of the intersection nearest to p under
// the geo.Distance metric. Ties are broken by lowest id (first encountered,
// since intersections are scanned in id order). ok is false if the map has
// no intersections.
//
// Complexity: O(n).
func ClosestIntersection(idx *core.MapIndex, p geo.Point) (core.IntersectionID, bool) {
	intersections := idx.Intersections()
	if len(intersections) == 0 {
		return 0, false
	}

	best := intersections[0].ID
	bestDist := geo.Distance(p, intersections[0].Position)
	for _, in := range intersections[1:] {
		d := geo.Distance(p, in.Position)
		if d < bestDist {
			bestDist = d
			best = in.ID
		}
	}

	return best, true
}

// ClosestPOI returns the id of the nearest POI of the given type to p.
// Ties are broken by lowest id. ok is false if no POI of that type exists.
//
// Complexity: O(n).
func ClosestPOI(idx *core.MapIndex, p geo.Point, poiType string) (core.POIID, bool) {
	var best core.POIID
	var bestDist float64
	found := false

	for _, poi := range idx.POIs() {
		if poi.Type != poiType {
			continue
		}
		d := geo.Distance(p, poi.Position)
		if !found || d < bestDist {
			found = true
			bestDist = d
			best = poi.ID
		}
	}

	return best, found
}

// StreetLength returns the total length, in meters, of every segment
// belonging to street s. ok is false if s does not exist.
//
// Complexity: O(segments in s).
func StreetLength(idx *core.MapIndex, s core.StreetID) (float64, bool) {
	st, ok := idx.Street(s)
	if !ok {
		return 0, false
	}

	var total float64
	for _, segID := range st.Segments {
		l, _ := idx.SegmentLength(segID)
		total += l
	}

	return total, true
}

// StreetBoundingBox returns the axis-aligned box enclosing every endpoint
// and curve point of every segment belonging to street s. ok is false if s
// does not exist or has no segments.
//
// Complexity: O(segments in s * avg curve length).
func StreetBoundingBox(idx *core.MapIndex, s core.StreetID) (BoundingBox, bool) {
	st, ok := idx.Street(s)
	if !ok || len(st.Segments) == 0 {
		return BoundingBox{}, false
	}

	first := true
	var box BoundingBox
	include := func(p geo.Point) {
		if first {
			box = BoundingBox{MinLat: p.Lat, MaxLat: p.Lat, MinLon: p.Lon, MaxLon: p.Lon}
			first = false

			return
		}
		if p.Lat < box.MinLat {
			box.MinLat = p.Lat
		}
		if p.Lat > box.MaxLat {
			box.MaxLat = p.Lat
		}
		if p.Lon < box.MinLon {
			box.MinLon = p.Lon
		}
		if p.Lon > box.MaxLon {
			box.MaxLon = p.Lon
		}
	}

	for _, segID := range st.Segments {
		seg, ok := idx.Segment(segID)
		if !ok {
			continue
		}
		fromPos, _ := idx.Intersection(seg.From)
		toPos, _ := idx.Intersection(seg.To)
		include(fromPos.Position)
		for _, p := range seg.Curve {
			include(p)
		}
		include(toPos.Position)
	}

	return box, true
}

// TurnAngle returns the angle, in radians, between the direction of travel
// arriving at the intersection shared by src and dst, and the direction of
// travel departing it along dst. Returns NoAngle if the segments share no
// intersection, or if the turn is geometrically illegal: entering src at
// its From end when src is one-way, or exiting dst at its To end when dst
// is one-way.
func TurnAngle(idx *core.MapIndex, src, dst core.SegmentID) float64 {
	segSrc, ok := idx.Segment(src)
	if !ok {
		return NoAngle
	}
	segDst, ok := idx.Segment(dst)
	if !ok {
		return NoAngle
	}

	shared, ok := sharedIntersection(segSrc, segDst)
	if !ok {
		return NoAngle
	}

	if segSrc.OneWay && shared == segSrc.From {
		return NoAngle
	}
	if segDst.OneWay && shared == segDst.To {
		return NoAngle
	}

	approach := adjacentPoint(idx, segSrc, shared)
	sharedIn, hasShared := idx.Intersection(shared)
	if !hasShared {
		return NoAngle
	}
	depart := adjacentPoint(idx, segDst, shared)

	angle, ok := geo.TurnVectorAngle(approach, sharedIn.Position, depart)
	if !ok {
		return NoAngle
	}

	return angle
}

// sharedIntersection returns the intersection id common to both segments'
// endpoints, preferring a's From before a's To when both match.
func sharedIntersection(a, b core.StreetSegment) (core.IntersectionID, bool) {
	switch {
	case a.From == b.From || a.From == b.To:
		return a.From, true
	case a.To == b.From || a.To == b.To:
		return a.To, true
	default:
		return 0, false
	}
}

// adjacentPoint returns the "closest approach" point of seg relative to the
// shared intersection: the curve point nearest shared if seg has curve
// points, otherwise seg's opposite intersection.
func adjacentPoint(idx *core.MapIndex, seg core.StreetSegment, shared core.IntersectionID) geo.Point {
	if len(seg.Curve) > 0 {
		if shared == seg.To {
			return seg.Curve[len(seg.Curve)-1]
		}

		return seg.Curve[0]
	}

	var opposite core.IntersectionID
	if shared == seg.To {
		opposite = seg.From
	} else {
		opposite = seg.To
	}
	in, _ := idx.Intersection(opposite)

	return in.Position
}

// FeatureArea returns the area, in square meters, enclosed by feature f's
// boundary. Returns 0 for non-polygon features (fewer than three points, or
// an unclosed boundary). ok is false only if f does not exist.
func FeatureArea(idx *core.MapIndex, f core.FeatureID) (float64, bool) {
	feat, ok := idx.Feature(f)
	if !ok {
		return 0, false
	}

	return geo.FeatureArea(feat.Boundary), true
}

// WayLength sums the distance between consecutive member nodes of the OSM
// way with the given id. Returns 0 if the way is unknown or has fewer than
// two member nodes, or if a member node id cannot be resolved.
func WayLength(idx *core.MapIndex, way core.OSMWayID) float64 {
	w, ok := idx.OSMWay(way)
	if !ok || len(w.NodeIDs) < 2 {
		return 0
	}

	var total float64
	prev, ok := idx.OSMNode(w.NodeIDs[0])
	if !ok {
		return 0
	}
	for _, nodeID := range w.NodeIDs[1:] {
		next, ok := idx.OSMNode(nodeID)
		if !ok {
			return 0
		}
		total += geo.Distance(prev.Position, next.Position)
		prev = next
	}

	return total
}

// NodeTagValue returns the value of the first tag matching key on the OSM
// node with the given id. Returns "" if the node is unknown or has no such
// tag.
func NodeTagValue(idx *core.MapIndex, node core.OSMNodeID, key string) string {
	n, ok := idx.OSMNode(node)
	if !ok {
		return ""
	}

	return n.Tags[key]
}

// StreetIDsByPrefix returns the ids of every street whose case/whitespace
// normalized name starts with the normalized form of prefix. An empty
// prefix returns no results.
func StreetIDsByPrefix(idx *core.MapIndex, prefix string) []core.StreetID {
	return idx.StreetIDsByPrefix(prefix)
}

// IntersectionsOfTwoStreets returns the intersections shared by streets a
// and b: the intersection of their unique-intersection sets, deduplicated
// and sorted by id.
func IntersectionsOfTwoStreets(idx *core.MapIndex, a, b core.StreetID) []core.IntersectionID {
	streetA, ok := idx.Street(a)
	if !ok {
		return nil
	}
	streetB, ok := idx.Street(b)
	if !ok {
		return nil
	}

	inB := make(map[core.IntersectionID]struct{}, len(streetB.Intersections))
	for _, id := range streetB.Intersections {
		inB[id] = struct{}{}
	}

	var out []core.IntersectionID
	for _, id := range streetA.Intersections {
		if _, ok := inB[id]; ok {
			out = append(out, id)
		}
	}

	return out
}
