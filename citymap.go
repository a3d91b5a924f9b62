package citymap

import (
	"strings"
	"sync"

	"github.com/meridianmaps/citymap/astar"
	"github.com/meridianmaps/citymap/core"
	"github.com/meridianmaps/citymap/courier"
	"github.com/meridianmaps/citymap/geo"
	"github.com/meridianmaps/citymap/query"
)

// DatabaseLoader parses the paired `.streets.bin`/`.osm.bin` files named by
// streetsPath and osmPath into a core.RawDatabase. Parsing the binary
// formats themselves is an external collaborator's job; DatabaseLoader is
// the seam LoadMap calls through, so tests can substitute an in-memory
// fake without touching a real file pair.
type DatabaseLoader interface {
	Load(streetsPath, osmPath string) (*core.RawDatabase, error)
}

var (
	mapMu  sync.RWMutex
	loaded *core.MapIndex
)

// osmSuffix is appended in place of streetsSuffix to derive the paired OSM
// database path from a `.streets.bin` path.
const (
	streetsSuffix = ".streets.bin"
	osmSuffix     = ".osm.bin"
)

// LoadMap loads the map database named by path, which must end in
// ".streets.bin"; the paired OSM database path is derived by replacing that
// suffix with ".osm.bin". It reports false, and leaves any previously
// loaded map in place, if path has the wrong suffix or loader.Load fails.
// On success the loaded map replaces any previous one, atomically with
// respect to concurrent callers of the query and routing functions below.
func LoadMap(path string, loader DatabaseLoader) bool {
	if !strings.HasSuffix(path, streetsSuffix) {
		return false
	}
	osmPath := strings.TrimSuffix(path, streetsSuffix) + osmSuffix

	raw, err := loader.Load(path, osmPath)
	if err != nil {
		return false
	}

	idx, err := core.Build(raw)
	if err != nil {
		return false
	}

	mapMu.Lock()
	loaded = idx
	mapMu.Unlock()

	return true
}

// CloseMap discards the currently loaded map. Subsequent calls to the query
// and routing functions below behave as if no map was ever loaded.
func CloseMap() {
	mapMu.Lock()
	loaded = nil
	mapMu.Unlock()
}

// currentMap returns the loaded map index, or nil if none is loaded.
func currentMap() *core.MapIndex {
	mapMu.RLock()
	defer mapMu.RUnlock()

	return loaded
}

// ClosestIntersection forwards to package query over the loaded map.
func ClosestIntersection(p geo.Point) (core.IntersectionID, bool) {
	idx := currentMap()
	if idx == nil {
		return 0, false
	}

	return query.ClosestIntersection(idx, p)
}

// ClosestPOI forwards to package query over the loaded map.
func ClosestPOI(p geo.Point, poiType string) (core.POIID, bool) {
	idx := currentMap()
	if idx == nil {
		return 0, false
	}

	return query.ClosestPOI(idx, p, poiType)
}

// StreetLength forwards to package query over the loaded map.
func StreetLength(s core.StreetID) (float64, bool) {
	idx := currentMap()
	if idx == nil {
		return 0, false
	}

	return query.StreetLength(idx, s)
}

// StreetBoundingBox forwards to package query over the loaded map.
func StreetBoundingBox(s core.StreetID) (query.BoundingBox, bool) {
	idx := currentMap()
	if idx == nil {
		return query.BoundingBox{}, false
	}

	return query.StreetBoundingBox(idx, s)
}

// TurnAngle forwards to package query over the loaded map. Returns
// query.NoAngle if no map is loaded.
func TurnAngle(src, dst core.SegmentID) float64 {
	idx := currentMap()
	if idx == nil {
		return query.NoAngle
	}

	return query.TurnAngle(idx, src, dst)
}

// FeatureArea forwards to package query over the loaded map.
func FeatureArea(f core.FeatureID) (float64, bool) {
	idx := currentMap()
	if idx == nil {
		return 0, false
	}

	return query.FeatureArea(idx, f)
}

// WayLength forwards to package query over the loaded map. Returns 0 if no
// map is loaded.
func WayLength(way core.OSMWayID) float64 {
	idx := currentMap()
	if idx == nil {
		return 0
	}

	return query.WayLength(idx, way)
}

// NodeTagValue forwards to package query over the loaded map. Returns "" if
// no map is loaded.
func NodeTagValue(node core.OSMNodeID, key string) string {
	idx := currentMap()
	if idx == nil {
		return ""
	}

	return query.NodeTagValue(idx, node, key)
}

// StreetIDsByPrefix forwards to package query over the loaded map. Returns
// nil if no map is loaded.
func StreetIDsByPrefix(prefix string) []core.StreetID {
	idx := currentMap()
	if idx == nil {
		return nil
	}

	return query.StreetIDsByPrefix(idx, prefix)
}

// IntersectionsOfTwoStreets forwards to package query over the loaded map.
// Returns nil if no map is loaded.
func IntersectionsOfTwoStreets(a, b core.StreetID) []core.IntersectionID {
	idx := currentMap()
	if idx == nil {
		return nil
	}

	return query.IntersectionsOfTwoStreets(idx, a, b)
}

// FindPathBetweenIntersections returns the ordered segment ids of the
// cheapest turnPenalty-weighted route from src to dst. Returns nil if no
// map is loaded, either intersection is unknown, or no route exists.
func FindPathBetweenIntersections(turnPenalty float64, src, dst core.IntersectionID) []core.SegmentID {
	idx := currentMap()
	if idx == nil {
		return nil
	}

	path, err := astar.FindPath(idx, src, dst, astar.WithTurnPenalty(turnPenalty))
	if err != nil {
		return nil
	}

	return path.Segments
}

// ComputePathTravelTime returns the turnPenalty-weighted travel time, in
// seconds, of following path in order. ok is false if no map is loaded,
// turnPenalty is negative, or path names an unknown segment id. Whether
// consecutive segments are actually connected is not checked.
func ComputePathTravelTime(turnPenalty float64, path []core.SegmentID) (float64, bool) {
	idx := currentMap()
	if idx == nil {
		return 0, false
	}

	t, err := astar.ComputePathTravelTime(idx, path, turnPenalty)
	if err != nil {
		return 0, false
	}

	return t, true
}

// TravelingCourier plans a tour starting and ending at whichever depots in
// depots are cheapest, serving every delivery exactly once. Returns nil if
// no map is loaded or courier.Plan reports an error (no deliveries, an
// unknown depot or delivery intersection, or an unreachable stop). The
// planner's default time budget bounds only its local-search phase; running
// out of it returns the best plan found, not nil.
func TravelingCourier(turnPenalty float64, deliveries []courier.Delivery, depots []core.IntersectionID) []courier.CourierSubPath {
	idx := currentMap()
	if idx == nil {
		return nil
	}

	plan, err := courier.Plan(idx, depots, deliveries, courier.WithTurnPenalty(turnPenalty))
	if err != nil {
		return nil
	}

	return plan.SubPaths
}
