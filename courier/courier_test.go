package courier

import (
	"testing"
	"time"

	"github.com/meridianmaps/citymap/core"
	"github.com/meridianmaps/citymap/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridRaw builds a small two-way grid with a depot at 0 and four
// delivery endpoints scattered around it:
//
//	0 -- 1 -- 2
//	|    |    |
//	3 -- 4 -- 5
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

func buildGrid(t *testing.T) *core.MapIndex {
	t.Helper()
	idx, err := core.Build(gridRaw())
	require.NoError(t, err)

	return idx
}

func TestPlanServesEveryDeliveryExactlyOnce(t *testing.T) {
	idx := buildGrid(t)
	deliveries := []Delivery{
		{Pickup: 2, Dropoff: 3},
		{Pickup: 5, Dropoff: 1},
	}

	plan, err := Plan(idx, []core.IntersectionID{0}, deliveries, WithMaxIterations(50))
	require.NoError(t, err)
	require.NoError(t, LegalPathCheck(plan.Stops, deliveries))

	assert.Equal(t, StopDepot, plan.Stops[0].Kind)
	assert.Equal(t, core.IntersectionID(0), plan.Stops[0].Intersection)
	assert.Equal(t, StopDepot, plan.Stops[len(plan.Stops)-1].Kind)
	assert.Equal(t, core.IntersectionID(0), plan.Stops[len(plan.Stops)-1].Intersection)
	assert.NotEmpty(t, plan.RequestID)
	assert.Greater(t, plan.TotalTime, 0.0)

	require.Len(t, plan.SubPaths, len(plan.Stops)-1)
	var subPathTotal float64
	for i, sp := range plan.SubPaths {
		assert.Equal(t, plan.Stops[i].Intersection, sp.From)
		assert.Equal(t, plan.Stops[i+1].Intersection, sp.To)
		subPathTotal += sp.TravelTime
	}
	assert.InDelta(t, plan.TotalTime, subPathTotal, 1e-9)
}

// TestPlanToyThreeHopRoundTrip mirrors the canonical one-depot,
// one-delivery case: the result is exactly three hops D->P, P->Q, Q->D.
func TestPlanToyThreeHopRoundTrip(t *testing.T) {
	idx := buildGrid(t)
	deliveries := []Delivery{{Pickup: 2, Dropoff: 3}}

	plan, err := Plan(idx, []core.IntersectionID{0}, deliveries, WithMaxIterations(10))
	require.NoError(t, err)
	require.NoError(t, LegalPathCheck(plan.Stops, deliveries))

	require.Len(t, plan.Stops, 4)
	assert.Equal(t, StopDepot, plan.Stops[0].Kind)
	assert.Equal(t, StopPickup, plan.Stops[1].Kind)
	assert.Equal(t, StopDropoff, plan.Stops[2].Kind)
	assert.Equal(t, StopDepot, plan.Stops[3].Kind)
	require.Len(t, plan.SubPaths, 3)
}

// TestPlanChoosesCheaperEndDepot verifies the end-leg picks whichever
// depot is cheapest to reach from the final stop, even when it differs
// from the starting depot.
func TestPlanChoosesCheaperEndDepot(t *testing.T) {
	idx := buildGrid(t)
	deliveries := []Delivery{{Pickup: 1, Dropoff: 2}}

	plan, err := Plan(idx, []core.IntersectionID{0, 2}, deliveries, WithMaxIterations(10))
	require.NoError(t, err)
	require.NoError(t, LegalPathCheck(plan.Stops, deliveries))

	assert.Equal(t, core.IntersectionID(0), plan.Stops[0].Intersection)
	assert.Equal(t, core.IntersectionID(2), plan.Stops[len(plan.Stops)-1].Intersection)
}

func TestPlanRejectsEmptyDeliveries(t *testing.T) {
	idx := buildGrid(t)
	_, err := Plan(idx, []core.IntersectionID{0}, nil)
	assert.ErrorIs(t, err, ErrNoDeliveries)
}

func TestPlanRejectsNilIndex(t *testing.T) {
	_, err := Plan(nil, []core.IntersectionID{0}, []Delivery{{Pickup: 1, Dropoff: 2}})
	assert.ErrorIs(t, err, ErrNilMapIndex)
}

func TestPlanRejectsNoDepots(t *testing.T) {
	idx := buildGrid(t)
	_, err := Plan(idx, nil, []Delivery{{Pickup: 1, Dropoff: 2}})
	assert.ErrorIs(t, err, ErrUnknownIntersection)
}

func TestPlanRejectsUnknownIntersection(t *testing.T) {
	idx := buildGrid(t)
	_, err := Plan(idx, []core.IntersectionID{99}, []Delivery{{Pickup: 1, Dropoff: 2}})
	assert.ErrorIs(t, err, ErrUnknownIntersection)
}

func TestLegalPathCheckCatchesDropoffBeforePickup(t *testing.T) {
	deliveries := []Delivery{{Pickup: 1, Dropoff: 2}}
	stops := []Stop{
		{Kind: StopDepot, DeliveryIndex: -1, Intersection: 0},
		{Kind: StopDropoff, DeliveryIndex: 0, Intersection: 2},
		{Kind: StopPickup, DeliveryIndex: 0, Intersection: 1},
		{Kind: StopDepot, DeliveryIndex: -1, Intersection: 0},
	}
	err := LegalPathCheck(stops, deliveries)
	assert.ErrorIs(t, err, ErrDropoffBeforePickup)
}

func TestLegalPathCheckCatchesIncompletePlan(t *testing.T) {
	deliveries := []Delivery{{Pickup: 1, Dropoff: 2}, {Pickup: 3, Dropoff: 4}}
	stops := []Stop{
		{Kind: StopDepot, DeliveryIndex: -1, Intersection: 0},
		{Kind: StopPickup, DeliveryIndex: 0, Intersection: 1},
		{Kind: StopDropoff, DeliveryIndex: 0, Intersection: 2},
		{Kind: StopDepot, DeliveryIndex: -1, Intersection: 0},
	}
	err := LegalPathCheck(stops, deliveries)
	assert.ErrorIs(t, err, ErrIncompletePlan)
}

func TestLegalPathCheckCatchesDuplicateStop(t *testing.T) {
	deliveries := []Delivery{{Pickup: 1, Dropoff: 2}}
	stops := []Stop{
		{Kind: StopDepot, DeliveryIndex: -1, Intersection: 0},
		{Kind: StopPickup, DeliveryIndex: 0, Intersection: 1},
		{Kind: StopPickup, DeliveryIndex: 0, Intersection: 1},
		{Kind: StopDropoff, DeliveryIndex: 0, Intersection: 2},
		{Kind: StopDepot, DeliveryIndex: -1, Intersection: 0},
	}
	err := LegalPathCheck(stops, deliveries)
	assert.ErrorIs(t, err, ErrDuplicateStop)
}

func TestLegalPathCheckRequiresEndingDepot(t *testing.T) {
	deliveries := []Delivery{{Pickup: 1, Dropoff: 2}}
	stops := []Stop{
		{Kind: StopDepot, DeliveryIndex: -1, Intersection: 0},
		{Kind: StopPickup, DeliveryIndex: 0, Intersection: 1},
		{Kind: StopDropoff, DeliveryIndex: 0, Intersection: 2},
	}
	err := LegalPathCheck(stops, deliveries)
	assert.ErrorIs(t, err, ErrMalformedStop)
}

func TestPlanTurnPenaltyIncreasesTotalTime(t *testing.T) {
	idx := buildGrid(t)
	deliveries := []Delivery{{Pickup: 2, Dropoff: 5}}

	cheap, err := Plan(idx, []core.IntersectionID{0}, deliveries, WithMaxIterations(20))
	require.NoError(t, err)

	expensive, err := Plan(idx, []core.IntersectionID{0}, deliveries, WithMaxIterations(20), WithTurnPenalty(1000))
	require.NoError(t, err)

	assert.Greater(t, expensive.TotalTime, cheap.TotalTime)
}

func TestPlanRespectsDeadline(t *testing.T) {
	idx := buildGrid(t)
	deliveries := []Delivery{
		{Pickup: 2, Dropoff: 3},
		{Pickup: 5, Dropoff: 1},
	}

	start := time.Now()
	_, err := Plan(idx, []core.IntersectionID{0}, deliveries, WithDeadline(time.Now().Add(10*time.Millisecond)))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWithTurnPenaltyPanicsOnNegative(t *testing.T) {
	opt := WithTurnPenalty(-1)
	assert.Panics(t, func() {
		opt(&PlanOptions{})
	})
}

func TestWithMaxIterationsPanicsOnNegative(t *testing.T) {
	opt := WithMaxIterations(-1)
	assert.Panics(t, func() {
		opt(&PlanOptions{})
	})
}
