package core

import (
	"testing"

	"github.com/meridianmaps/citymap/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridRaw builds a small 2x2 grid of intersections:
//
//	0 --- 1
//	|     |
//	2 --- 3
//
// with one one-way segment (2 -> 0) to exercise adjacency legality, and a
// self-loop cul-de-sac at 3.
func gridRaw() *RawDatabase {
	pt := func(lat, lon float64) geo.Point { return geo.Point{Lat: lat, Lon: lon} }

	return &RawDatabase{
		Intersections: []RawIntersection{
			{Position: pt(0, 0), Name: "A"},
			{Position: pt(0, 1), Name: "B"},
			{Position: pt(1, 0), Name: "C"},
			{Position: pt(1, 1), Name: "D"},
		},
		Segments: []RawSegment{
			{From: 0, To: 1, StreetName: "Main Street", SpeedLimit: 10},
			{From: 2, To: 0, StreetName: "Oak Ave", OneWay: true, SpeedLimit: 10},
			{From: 2, To: 3, StreetName: "Oak Ave", SpeedLimit: 10},
			{From: 1, To: 3, StreetName: "Birch Ave", SpeedLimit: 10},
			{From: 3, To: 3, StreetName: "Cul De Sac", SpeedLimit: 10},
		},
	}
}

func TestBuildRejectsNil(t *testing.T) {
	_, err := Build(nil)
	require.ErrorIs(t, err, ErrNilRawDatabase)
}

func TestBuildRejectsBadEndpoint(t *testing.T) {
	raw := gridRaw()
	raw.Segments[0].To = 99
	_, err := Build(raw)
	require.ErrorIs(t, err, ErrInvalidSegmentEndpoint)
}

func TestBuildRejectsNonPositiveSpeed(t *testing.T) {
	raw := gridRaw()
	raw.Segments[0].SpeedLimit = 0
	_, err := Build(raw)
	require.ErrorIs(t, err, ErrNonPositiveSpeedLimit)
}

func TestAdjacencyRespectsOneWay(t *testing.T) {
	idx, err := Build(gridRaw())
	require.NoError(t, err)

	// 2 -> 0 is one-way: 0 should not reach 2 directly.
	assert.Contains(t, idx.Adjacency(2), IntersectionID(0))
	assert.NotContains(t, idx.Adjacency(0), IntersectionID(2))

	// 2 -> 3 is bidirectional.
	assert.Contains(t, idx.Adjacency(2), IntersectionID(3))
	assert.Contains(t, idx.Adjacency(3), IntersectionID(2))
}

func TestCulDeSacSelfLoopAddedOnce(t *testing.T) {
	idx, err := Build(gridRaw())
	require.NoError(t, err)

	neighbors := idx.Adjacency(3)
	count := 0
	for _, n := range neighbors {
		if n == 3 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestStreetLengthConsistency(t *testing.T) {
	idx, err := Build(gridRaw())
	require.NoError(t, err)

	for _, st := range idx.Streets() {
		var sum float64
		for _, segID := range st.Segments {
			l, ok := idx.SegmentLength(segID)
			require.True(t, ok)
			sum += l
		}
		// streetLength is exercised in package query; here we just verify the
		// per-segment lengths that back it. The cul-de-sac self-loop has no
		// curve points and starts and ends at the same position, so its
		// street has zero length; every other street spans two distinct
		// intersections and has positive length.
		if len(st.Intersections) == 1 {
			assert.Equal(t, 0.0, sum)
		} else {
			assert.Greater(t, sum, 0.0)
		}
	}
}

func TestStreetIntersectionsEqualsUnionOfEndpoints(t *testing.T) {
	idx, err := Build(gridRaw())
	require.NoError(t, err)

	oak, ok := idx.Street(1) // "Oak Ave": segments 2->0 and 2->3
	require.True(t, ok)
	assert.ElementsMatch(t, []IntersectionID{0, 2, 3}, oak.Intersections)
}

func TestStreetIDsByPrefix(t *testing.T) {
	idx, err := Build(gridRaw())
	require.NoError(t, err)

	assert.Empty(t, idx.StreetIDsByPrefix(""))

	ids := idx.StreetIDsByPrefix("oak")
	require.Len(t, ids, 1)
	st, _ := idx.Street(ids[0])
	assert.Equal(t, "Oak Ave", st.Name)

	// Case and whitespace insensitive.
	ids2 := idx.StreetIDsByPrefix("  O A K ")
	assert.Equal(t, ids, ids2)
}

func TestMaxSpeedAcrossMap(t *testing.T) {
	raw := gridRaw()
	raw.Segments[0].SpeedLimit = 25
	idx, err := Build(raw)
	require.NoError(t, err)
	assert.Equal(t, 25.0, idx.MaxSpeed())
}

func TestOSMLookupDuplicateID(t *testing.T) {
	raw := gridRaw()
	raw.OSMNodes = []RawOSMNode{
		{ID: 1, Position: geo.Point{}},
		{ID: 1, Position: geo.Point{}},
	}
	_, err := Build(raw)
	require.ErrorIs(t, err, ErrDuplicateOSMNodeID)
}

func TestFeatureAndPOINameNormalization(t *testing.T) {
	raw := gridRaw()
	raw.Features = []RawFeature{
		{Type: FeaturePark, Boundary: []geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 0, Lon: 0}}, Name: "Stanley Park"},
		{Type: FeatureLake, Boundary: []geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 0, Lon: 0}}},
	}
	raw.POIs = []RawPOI{
		{Type: "cafe", Position: geo.Point{Lat: 0, Lon: 0}, Name: "Corner Cafe"},
		{Type: "bench", Position: geo.Point{Lat: 0, Lon: 0}},
	}

	idx, err := Build(raw)
	require.NoError(t, err)

	named, ok := idx.Feature(0)
	require.True(t, ok)
	require.NotNil(t, named.Name)
	assert.Equal(t, "Stanley Park", *named.Name)

	unnamed, ok := idx.Feature(1)
	require.True(t, ok)
	assert.Nil(t, unnamed.Name)

	namedPOI, ok := idx.POI(0)
	require.True(t, ok)
	require.NotNil(t, namedPOI.Name)
	assert.Equal(t, "Corner Cafe", *namedPOI.Name)

	unnamedPOI, ok := idx.POI(1)
	require.True(t, ok)
	assert.Nil(t, unnamedPOI.Name)
}
