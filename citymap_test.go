package citymap

import (
	"errors"
	"testing"

	"github.com/meridianmaps/citymap/core"
	"github.com/meridianmaps/citymap/courier"
	"github.com/meridianmaps/citymap/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader is a DatabaseLoader that serves an in-memory grid regardless
// of the paths it is asked to load, while recording what it was asked for.
type fakeLoader struct {
	raw         *core.RawDatabase
	err         error
	streetsPath string
	osmPath     string
}

func (f *fakeLoader) Load(streetsPath, osmPath string) (*core.RawDatabase, error) {
	f.streetsPath = streetsPath
	f.osmPath = osmPath

	return f.raw, f.err
}

// gridRaw builds a 2x3 grid: 0-1-2 on top, 3-4-5 on bottom, vertically
// linked, all two-way.
func gridRaw() *core.RawDatabase {
	pt := func(lat, lon float64) geo.Point { return geo.Point{Lat: lat, Lon: lon} }
	seg := func(from, to core.IntersectionID, name string) core.RawSegment {
		return core.RawSegment{From: from, To: to, StreetName: name, SpeedLimit: 10}
	}

	return &core.RawDatabase{
		Intersections: []core.RawIntersection{
			{Position: pt(0, 0)},
			{Position: pt(0, 1)},
			{Position: pt(0, 2)},
			{Position: pt(1, 0)},
			{Position: pt(1, 1)},
			{Position: pt(1, 2)},
		},
		Segments: []core.RawSegment{
			seg(0, 1, "Top"), seg(1, 2, "Top"),
			seg(3, 4, "Bottom"), seg(4, 5, "Bottom"),
			seg(0, 3, "Left"), seg(1, 4, "Mid"), seg(2, 5, "Right"),
		},
	}
}

func TestLoadMapDerivesOSMPathAndBuildsIndex(t *testing.T) {
	defer CloseMap()

	loader := &fakeLoader{raw: gridRaw()}
	ok := LoadMap("/data/city.streets.bin", loader)
	require.True(t, ok)
	assert.Equal(t, "/data/city.streets.bin", loader.streetsPath)
	assert.Equal(t, "/data/city.osm.bin", loader.osmPath)

	id, found := ClosestIntersection(geo.Point{Lat: 0, Lon: 0})
	require.True(t, found)
	assert.Equal(t, core.IntersectionID(0), id)
}

func TestLoadMapRejectsWrongSuffix(t *testing.T) {
	defer CloseMap()

	loader := &fakeLoader{raw: gridRaw()}
	ok := LoadMap("/data/city.bin", loader)
	assert.False(t, ok)
}

func TestLoadMapFalseOnLoaderError(t *testing.T) {
	defer CloseMap()

	loader := &fakeLoader{err: errors.New("disk error")}
	ok := LoadMap("/data/city.streets.bin", loader)
	assert.False(t, ok)
}

func TestCloseMapClearsQueries(t *testing.T) {
	loader := &fakeLoader{raw: gridRaw()}
	require.True(t, LoadMap("/data/city.streets.bin", loader))

	CloseMap()

	_, found := ClosestIntersection(geo.Point{Lat: 0, Lon: 0})
	assert.False(t, found)
}

func TestFindPathBetweenIntersectionsRoundTrips(t *testing.T) {
	defer CloseMap()
	require.True(t, LoadMap("/data/city.streets.bin", &fakeLoader{raw: gridRaw()}))

	segs := FindPathBetweenIntersections(0, 0, 2)
	require.NotEmpty(t, segs)

	tt, ok := ComputePathTravelTime(0, segs)
	require.True(t, ok)
	assert.Greater(t, tt, 0.0)
}

func TestFindPathBetweenIntersectionsNilWithoutLoadedMap(t *testing.T) {
	segs := FindPathBetweenIntersections(0, 0, 2)
	assert.Nil(t, segs)

	_, ok := ComputePathTravelTime(0, []core.SegmentID{0})
	assert.False(t, ok)
}

func TestTravelingCourierProducesSubPaths(t *testing.T) {
	defer CloseMap()
	require.True(t, LoadMap("/data/city.streets.bin", &fakeLoader{raw: gridRaw()}))

	subPaths := TravelingCourier(0, []courier.Delivery{{Pickup: 2, Dropoff: 3}}, []core.IntersectionID{0})
	require.NotEmpty(t, subPaths)
	assert.Equal(t, core.IntersectionID(0), subPaths[0].From)
}

func TestTravelingCourierNilWithoutLoadedMap(t *testing.T) {
	subPaths := TravelingCourier(0, []courier.Delivery{{Pickup: 2, Dropoff: 3}}, []core.IntersectionID{0})
	assert.Nil(t, subPaths)
}
