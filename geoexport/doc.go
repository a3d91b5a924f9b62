// Package geoexport renders map features, points of interest, and computed
// routes as GeoJSON, for handing off to an external renderer or inspection
// tool. Geometry construction uses github.com/paulmach/go.geojson;
// encoding uses github.com/goccy/go-json as a drop-in, faster replacement
// for encoding/json.
package geoexport
