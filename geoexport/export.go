package geoexport

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/paulmach/go.geojson"

	"github.com/meridianmaps/citymap/astar"
	"github.com/meridianmaps/citymap/core"
	"github.com/meridianmaps/citymap/geo"
)

// Sentinel errors returned by the export functions.
var (
	// ErrNilMapIndex indicates an export function was called with a nil
	// *core.MapIndex.
	ErrNilMapIndex = errors.New("geoexport: map index is nil")

	// ErrNilPath indicates ExportPath was called with a nil *astar.Path.
	ErrNilPath = errors.New("geoexport: path is nil")

	// ErrFeatureNotFound indicates the requested FeatureID has no
	// corresponding row in the index.
	ErrFeatureNotFound = errors.New("geoexport: feature not found")

	// ErrPOINotFound indicates the requested POIID has no corresponding
	// row in the index.
	ErrPOINotFound = errors.New("geoexport: poi not found")
)

// coord converts a geo.Point to GeoJSON's [lon, lat] coordinate order.
func coord(p geo.Point) []float64 { return []float64{p.Lon, p.Lat} }

// ExportFeature renders the polygonal feature f as a GeoJSON Feature with a
// Polygon geometry and a "type"/"name" property set.
func ExportFeature(idx *core.MapIndex, id core.FeatureID) (*geojson.Feature, error) {
	if idx == nil {
		return nil, ErrNilMapIndex
	}
	f, ok := idx.Feature(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrFeatureNotFound, id)
	}

	ring := make([][]float64, len(f.Boundary))
	for i, p := range f.Boundary {
		ring[i] = coord(p)
	}

	feature := geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{ring}))
	feature.SetProperty("type", f.Type.String())
	if f.Name != nil {
		feature.SetProperty("name", *f.Name)
	}

	return feature, nil
}

// ExportPOI renders the point of interest p as a GeoJSON Feature with a
// Point geometry and a "type"/"name" property set.
func ExportPOI(idx *core.MapIndex, id core.POIID) (*geojson.Feature, error) {
	if idx == nil {
		return nil, ErrNilMapIndex
	}
	p, ok := idx.POI(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPOINotFound, id)
	}

	feature := geojson.NewFeature(geojson.NewPointGeometry(coord(p.Position)))
	feature.SetProperty("type", p.Type)
	if p.Name != nil {
		feature.SetProperty("name", *p.Name)
	}

	return feature, nil
}

// ExportPath renders a computed astar.Path as a GeoJSON Feature with a
// LineString geometry tracing every intersection the path visits, and a
// "travel_time_seconds" property.
func ExportPath(idx *core.MapIndex, path *astar.Path) (*geojson.Feature, error) {
	if idx == nil {
		return nil, ErrNilMapIndex
	}
	if path == nil {
		return nil, ErrNilPath
	}

	line := make([][]float64, 0, len(path.Intersections))
	for _, id := range path.Intersections {
		in, ok := idx.Intersection(id)
		if !ok {
			return nil, fmt.Errorf("%w: intersection %d", core.ErrIntersectionNotFound, id)
		}
		line = append(line, coord(in.Position))
	}

	feature := geojson.NewFeature(geojson.NewLineStringGeometry(line))
	feature.SetProperty("travel_time_seconds", path.TravelTime)

	return feature, nil
}

// ExportMapFeatureCollection renders every feature and POI in idx as a
// single GeoJSON FeatureCollection.
func ExportMapFeatureCollection(idx *core.MapIndex) (*geojson.FeatureCollection, error) {
	if idx == nil {
		return nil, ErrNilMapIndex
	}

	fc := geojson.NewFeatureCollection()
	for _, f := range idx.Features() {
		feature, err := ExportFeature(idx, f.ID)
		if err != nil {
			return nil, err
		}
		fc.AddFeature(feature)
	}
	for _, p := range idx.POIs() {
		feature, err := ExportPOI(idx, p.ID)
		if err != nil {
			return nil, err
		}
		fc.AddFeature(feature)
	}

	return fc, nil
}

// Marshal encodes v as JSON using goccy/go-json.
func Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }
