package core

import (
	"errors"

	"github.com/meridianmaps/citymap/geo"
)

// Sentinel errors returned while validating and building a MapIndex.
var (
	// ErrNilRawDatabase indicates Build was called with a nil RawDatabase.
	ErrNilRawDatabase = errors.New("core: raw database is nil")

	// ErrInvalidSegmentEndpoint indicates a segment references an
	// intersection index outside the bounds of the intersections table.
	ErrInvalidSegmentEndpoint = errors.New("core: segment endpoint out of range")

	// ErrNonPositiveSpeedLimit indicates a segment's speed limit is zero or
	// negative, which would make travel time undefined or infinite.
	ErrNonPositiveSpeedLimit = errors.New("core: segment speed limit must be positive")

	// ErrDuplicateOSMNodeID indicates two OSM nodes share the same ID.
	ErrDuplicateOSMNodeID = errors.New("core: duplicate OSM node id")

	// ErrDuplicateOSMWayID indicates two OSM ways share the same ID.
	ErrDuplicateOSMWayID = errors.New("core: duplicate OSM way id")

	// ErrIntersectionNotFound indicates a requested IntersectionID has no
	// corresponding row in the index.
	ErrIntersectionNotFound = errors.New("core: intersection not found")

	// ErrSegmentNotFound indicates a requested SegmentID has no
	// corresponding row in the index.
	ErrSegmentNotFound = errors.New("core: segment not found")

	// ErrStreetNotFound indicates a requested StreetID has no corresponding
	// row in the index.
	ErrStreetNotFound = errors.New("core: street not found")
)

// IntersectionID indexes the MapIndex's intersection table.
type IntersectionID int

// SegmentID indexes the MapIndex's segment table.
type SegmentID int

// StreetID indexes the MapIndex's street table.
type StreetID int

// FeatureID indexes the MapIndex's feature table.
type FeatureID int

// POIID indexes the MapIndex's POI table.
type POIID int

// OSMNodeID is an externally assigned OSM node identifier (not dense).
type OSMNodeID int64

// OSMWayID is an externally assigned OSM way identifier (not dense).
type OSMWayID int64

// Intersection is a graph node: a geographic point where segments meet.
type Intersection struct {
	ID       IntersectionID
	Position geo.Point
	Name     string
}

// StreetSegment is a directed-or-bidirectional edge between two
// intersections. Curve holds the ordered interior shape points strictly
// between From and To (excluding the endpoints themselves); it may be empty
// for a straight segment.
type StreetSegment struct {
	ID         SegmentID
	From       IntersectionID
	To         IntersectionID
	StreetID   StreetID
	OneWay     bool
	SpeedLimit float64 // meters/second
	Curve      []geo.Point
}

// Street is a named collection of segments sharing an identifier.
type Street struct {
	ID            StreetID
	Name          string
	Segments      []SegmentID
	Intersections []IntersectionID // unique member intersections, sorted
}

// FeatureType classifies a Feature's kind.
type FeatureType int

// Feature kinds.
const (
	FeatureUnknown FeatureType = iota
	FeaturePark
	FeatureBeach
	FeatureLake
	FeatureRiver
	FeatureGreenspace
	FeatureIsland
	FeatureBuilding
)

// String renders the FeatureType for logging/debugging.
func (t FeatureType) String() string {
	switch t {
	case FeaturePark:
		return "PARK"
	case FeatureBeach:
		return "BEACH"
	case FeatureLake:
		return "LAKE"
	case FeatureRiver:
		return "RIVER"
	case FeatureGreenspace:
		return "GREENSPACE"
	case FeatureIsland:
		return "ISLAND"
	case FeatureBuilding:
		return "BUILDING"
	default:
		return "UNKNOWN"
	}
}

// OSMNode is a raw OpenStreetMap node: an id, coordinates, and tags.
type OSMNode struct {
	ID       OSMNodeID
	Position geo.Point
	Tags     map[string]string
}

// OSMWay is a raw OpenStreetMap way: an id and its ordered member node ids.
type OSMWay struct {
	ID      OSMWayID
	NodeIDs []OSMNodeID
}

// Feature is a polygonal map feature (park, lake, building, ...). Boundary
// is the ordered list of boundary points; a well-formed polygon repeats its
// first point as its last.
type Feature struct {
	ID       FeatureID
	Type     FeatureType
	Boundary []geo.Point
	Name     *string
}

// POI is a labeled point of interest.
type POI struct {
	ID       POIID
	Type     string
	Position geo.Point
	Name     *string
}
