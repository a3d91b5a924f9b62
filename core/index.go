package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gotidy/ptr"

	"github.com/meridianmaps/citymap/geo"
)

// MapIndex holds every derived table the query layer, the A* router, and
// the multi-target Dijkstra need, precomputed once by Build so that every
// read afterwards is O(1) or O(log n). It is immutable after construction;
// all of its exported methods are read-only and safe to call concurrently
// from multiple goroutines (including the parallel matrix workers in
// ttmatrix), since nothing here mutates shared state once Build returns.
type MapIndex struct {
	intersections []Intersection
	segments      []StreetSegment
	streets       []Street
	features      []Feature
	pois          []POI

	osmNodes map[OSMNodeID]*OSMNode
	osmWays  map[OSMWayID]*OSMWay

	adjacency              [][]IntersectionID // adjacency[i] = neighbors reachable from intersection i
	segmentsByIntersection [][]SegmentID      // all segments incident to intersection i
	segmentLength          []float64          // meters, by SegmentID
	segmentTravelTime      []float64          // seconds, by SegmentID

	streetNameIndex []streetNameEntry // sorted by normalized key, stable by insertion for ties
	maxSpeed        float64           // fastest speed limit observed across the loaded map
}

// streetNameEntry is one row of the case/space-normalized street-name
// prefix index.
type streetNameEntry struct {
	key      string
	streetID StreetID
}

// normalizeStreetName lowercases and strips whitespace from name, producing
// the key used by the street-name prefix index and by StreetIDsByPrefix.
func normalizeStreetName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Build preprocesses raw into a MapIndex: adjacency lists, segments per
// intersection/street, unique intersections per street, segment length and
// travel time, the street-name prefix index, and the OSM id lookup tables.
//
// Complexity: O(V + E log E + S) where V = intersections, E = segments,
// S = total curve points across all segments.
func Build(raw *RawDatabase) (*MapIndex, error) {
	if raw == nil {
		return nil, ErrNilRawDatabase
	}

	idx := &MapIndex{
		intersections: make([]Intersection, len(raw.Intersections)),
		osmNodes:      make(map[OSMNodeID]*OSMNode, len(raw.OSMNodes)),
		osmWays:       make(map[OSMWayID]*OSMWay, len(raw.OSMWays)),
	}

	for i, ri := range raw.Intersections {
		idx.intersections[i] = Intersection{
			ID:       IntersectionID(i),
			Position: ri.Position,
			Name:     ri.Name,
		}
	}

	if err := idx.buildSegmentsAndStreets(raw); err != nil {
		return nil, err
	}
	idx.buildAdjacencyAndIncidence()
	idx.buildStreetNameIndex()
	if err := idx.buildOSMTables(raw); err != nil {
		return nil, err
	}
	idx.buildFeaturesAndPOIs(raw)

	return idx, nil
}

// buildSegmentsAndStreets validates segment endpoints/speed limits, groups
// segments into Street rows by first-seen street name, and computes each
// segment's length and travel time in one pass.
func (idx *MapIndex) buildSegmentsAndStreets(raw *RawDatabase) error {
	n := len(idx.intersections)
	idx.segments = make([]StreetSegment, len(raw.Segments))
	idx.segmentLength = make([]float64, len(raw.Segments))
	idx.segmentTravelTime = make([]float64, len(raw.Segments))

	streetIDByName := make(map[string]StreetID)
	var streets []Street

	for i, rs := range raw.Segments {
		if int(rs.From) < 0 || int(rs.From) >= n || int(rs.To) < 0 || int(rs.To) >= n {
			return fmt.Errorf("%w: segment %d", ErrInvalidSegmentEndpoint, i)
		}
		if rs.SpeedLimit <= 0 {
			return fmt.Errorf("%w: segment %d", ErrNonPositiveSpeedLimit, i)
		}

		sid, ok := streetIDByName[rs.StreetName]
		if !ok {
			sid = StreetID(len(streets))
			streetIDByName[rs.StreetName] = sid
			streets = append(streets, Street{ID: sid, Name: rs.StreetName})
		}

		length := segmentLength(idx.intersections[rs.From].Position, rs.Curve, idx.intersections[rs.To].Position)
		idx.segmentLength[i] = length
		idx.segmentTravelTime[i] = length / rs.SpeedLimit
		if rs.SpeedLimit > idx.maxSpeed {
			idx.maxSpeed = rs.SpeedLimit
		}

		idx.segments[i] = StreetSegment{
			ID:         SegmentID(i),
			From:       rs.From,
			To:         rs.To,
			StreetID:   sid,
			OneWay:     rs.OneWay,
			SpeedLimit: rs.SpeedLimit,
			Curve:      rs.Curve,
		}

		streets[sid].Segments = append(streets[sid].Segments, SegmentID(i))
	}

	// Unique intersections per street: union of From/To of its segments.
	for s := range streets {
		seen := make(map[IntersectionID]struct{})
		for _, segID := range streets[s].Segments {
			seg := idx.segments[segID]
			seen[seg.From] = struct{}{}
			seen[seg.To] = struct{}{}
		}
		uniq := make([]IntersectionID, 0, len(seen))
		for id := range seen {
			uniq = append(uniq, id)
		}
		sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
		streets[s].Intersections = uniq
	}

	idx.streets = streets

	return nil
}

// segmentLength sums consecutive distances from `from`, through the
// segment's curve points in order, to `to`.
func segmentLength(from geo.Point, curve []geo.Point, to geo.Point) float64 {
	var total float64
	prev := from
	for _, p := range curve {
		total += geo.Distance(prev, p)
		prev = p
	}
	total += geo.Distance(prev, to)

	return total
}

// buildAdjacencyAndIncidence computes, for every intersection, its outgoing
// neighbors (respecting one-way restrictions) and the flat list of segments
// incident to it (regardless of direction).
func (idx *MapIndex) buildAdjacencyAndIncidence() {
	n := len(idx.intersections)
	idx.adjacency = make([][]IntersectionID, n)
	idx.segmentsByIntersection = make([][]SegmentID, n)

	adjSeen := make([]map[IntersectionID]struct{}, n)
	for i := range adjSeen {
		adjSeen[i] = make(map[IntersectionID]struct{})
	}

	for _, seg := range idx.segments {
		idx.segmentsByIntersection[seg.From] = append(idx.segmentsByIntersection[seg.From], seg.ID)
		if seg.To != seg.From {
			idx.segmentsByIntersection[seg.To] = append(idx.segmentsByIntersection[seg.To], seg.ID)
		}

		// from -> to is always legal.
		if _, dup := adjSeen[seg.From][seg.To]; !dup {
			adjSeen[seg.From][seg.To] = struct{}{}
			idx.adjacency[seg.From] = append(idx.adjacency[seg.From], seg.To)
		}

		// to -> from is legal unless the segment is one-way (and not a
		// cul-de-sac, which is already covered by the from->to branch above).
		if seg.OneWay || seg.To == seg.From {
			continue
		}
		if _, dup := adjSeen[seg.To][seg.From]; !dup {
			adjSeen[seg.To][seg.From] = struct{}{}
			idx.adjacency[seg.To] = append(idx.adjacency[seg.To], seg.From)
		}
	}
}

// buildStreetNameIndex builds the lowercased, space-stripped street-name ->
// street id index, sorted by key with ties broken by insertion (street id)
// order.
func (idx *MapIndex) buildStreetNameIndex() {
	entries := make([]streetNameEntry, len(idx.streets))
	for i, st := range idx.streets {
		entries[i] = streetNameEntry{key: normalizeStreetName(st.Name), streetID: st.ID}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	idx.streetNameIndex = entries
}

// buildOSMTables builds the id -> node/way lookup hash tables, failing on
// duplicate ids within either input slice.
func (idx *MapIndex) buildOSMTables(raw *RawDatabase) error {
	for i := range raw.OSMNodes {
		n := raw.OSMNodes[i]
		if _, dup := idx.osmNodes[n.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateOSMNodeID, n.ID)
		}
		node := OSMNode{ID: n.ID, Position: n.Position, Tags: n.Tags}
		idx.osmNodes[n.ID] = &node
	}
	for i := range raw.OSMWays {
		w := raw.OSMWays[i]
		if _, dup := idx.osmWays[w.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateOSMWayID, w.ID)
		}
		way := OSMWay{ID: w.ID, NodeIDs: append([]OSMNodeID(nil), w.NodeIDs...)}
		idx.osmWays[w.ID] = &way
	}

	return nil
}

// buildFeaturesAndPOIs copies the raw feature/POI rows into dense tables,
// normalizing each row's "" (no name tag found by the loader) into a nil
// Feature.Name/POI.Name rather than carrying the empty string forward.
func (idx *MapIndex) buildFeaturesAndPOIs(raw *RawDatabase) {
	idx.features = make([]Feature, len(raw.Features))
	for i, rf := range raw.Features {
		idx.features[i] = Feature{ID: FeatureID(i), Type: rf.Type, Boundary: rf.Boundary, Name: optionalName(rf.Name)}
	}
	idx.pois = make([]POI, len(raw.POIs))
	for i, rp := range raw.POIs {
		idx.pois[i] = POI{ID: POIID(i), Type: rp.Type, Position: rp.Position, Name: optionalName(rp.Name)}
	}
}

// optionalName builds the *string carried by Feature.Name/POI.Name from a
// raw loader's plain name field, treating "" as "unnamed".
func optionalName(name string) *string {
	if name == "" {
		return nil
	}

	return ptr.String(name)
}
