// Package geo: projection, distance, area and vector-angle primitives.
//
// All functions here operate in the same equirectangular projection: a point
// (lat, lon) in degrees projects to meters as
//
//	x = EarthRadiusMeters * toRadians(lon) * cos(avgLatRadians)
//	y = EarthRadiusMeters * toRadians(lat)
//
// where avgLatRadians is supplied by the caller rather than fixed globally,
// so that callers needing a consistent frame across many points (area,
// bounding boxes, turn geometry) can thread the same average through every
// projection, while pairwise distance picks the average of just the two
// points involved.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by every projection and
// distance computation in this module.
const EarthRadiusMeters = 6371000.0

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// Project converts p to equirectangular meters using avgLatRadians as the
// shared latitude of the local projection frame.
func Project(p Point, avgLatRadians float64) (x, y float64) {
	x = EarthRadiusMeters * toRadians(p.Lon) * math.Cos(avgLatRadians)
	y = EarthRadiusMeters * toRadians(p.Lat)

	return x, y
}

// Distance returns the projected-plane distance between p1 and p2, in
// meters, using the average of their two latitudes as the projection frame.
// Distance is symmetric: Distance(a, b) == Distance(b, a).
//
// Complexity: O(1).
func Distance(p1, p2 Point) float64 {
	avgLat := toRadians((p1.Lat + p2.Lat) / 2)
	x1, y1 := Project(p1, avgLat)
	x2, y2 := Project(p2, avgLat)
	dx := x2 - x1
	dy := y2 - y1

	return math.Hypot(dx, dy)
}

// FeatureArea returns the area, in square meters, enclosed by a closed
// boundary given as an ordered list of points whose first and last entries
// coincide. Returns 0 if there are fewer than three points, or the first and
// last points do not coincide (i.e. the boundary is not closed).
//
// Each edge's trapezoid contribution is projected using that edge's own
// average latitude (the mean of its two endpoints), not one latitude shared
// by the whole polygon, per spec.md §4.1's Σ ΔR·lat · R·(lon_next+lon_now)·
// cos(lat_avg)/2 — lat_avg is inside the sum, so it varies edge to edge.
//
// Complexity: O(n) where n = len(points).
func FeatureArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	first, last := points[0], points[n-1]
	if first.Lat != last.Lat || first.Lon != last.Lon {
		return 0
	}

	var sum float64
	for i := 0; i < n-1; i++ {
		now, next := points[i], points[i+1]
		nowLat, nextLat := toRadians(now.Lat), toRadians(next.Lat)
		nowLon, nextLon := toRadians(now.Lon), toRadians(next.Lon)
		avgLat := (nextLat + nowLat) / 2
		sum += EarthRadiusMeters * (nextLat - nowLat) * (EarthRadiusMeters*nextLon*math.Cos(avgLat) + EarthRadiusMeters*nowLon*math.Cos(avgLat)) / 2
	}

	return math.Abs(sum)
}

// TurnVectorAngle returns the angle in radians between the vector arriving
// at shared (from approach) and the vector departing shared (to depart).
// The shared projection frame is the mean latitude of approach and depart
// only — the two "closest approach" points — excluding shared's own
// latitude, matching spec.md §4.1's "project all four points with a shared
// latitude average" as implemented by the original's
// latAvgsrc = (srcStartLat + dstFinishLat) / 2.
//
// ok is false if either vector has zero length (degenerate geometry), in
// which case the angle is meaningless and callers should treat the turn as
// having NO_ANGLE per the query layer's contract.
func TurnVectorAngle(approach, shared, depart Point) (radians float64, ok bool) {
	avgLat := toRadians((approach.Lat + depart.Lat) / 2)
	ax, ay := Project(approach, avgLat)
	sx, sy := Project(shared, avgLat)
	dx, dy := Project(depart, avgLat)

	// u: direction of travel arriving at the intersection (approach -> shared).
	ux, uy := sx-ax, sy-ay
	// v: direction of travel departing the intersection (shared -> depart).
	vx, vy := dx-sx, dy-sy

	uMag := math.Hypot(ux, uy)
	vMag := math.Hypot(vx, vy)
	if uMag == 0 || vMag == 0 {
		return 0, false
	}

	cos := (ux*vx + uy*vy) / (uMag * vMag)
	// Clamp for float drift before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos), true
}
