package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: 49.2827, Lon: -123.1207}
	b := Point{Lat: 49.2900, Lon: -123.1100}

	require.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
	assert.Greater(t, Distance(a, b), 0.0)
	assert.Equal(t, 0.0, Distance(a, a))
}

func TestFeatureAreaRejectsOpenOrShortBoundary(t *testing.T) {
	assert.Equal(t, 0.0, FeatureArea(nil))
	assert.Equal(t, 0.0, FeatureArea([]Point{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}))

	open := []Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}}
	assert.Equal(t, 0.0, FeatureArea(open))
}

func TestFeatureAreaSquare(t *testing.T) {
	// A small square near the equator where projection distortion is negligible.
	square := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.01},
		{Lat: 0.01, Lon: 0.01},
		{Lat: 0.01, Lon: 0},
		{Lat: 0, Lon: 0},
	}
	side := EarthRadiusMeters * toRadians(0.01)
	expected := side * side
	assert.InDelta(t, expected, FeatureArea(square), expected*0.01)
}

func TestTurnVectorAngleStraightAndRightAngle(t *testing.T) {
	// Straight line: angle should be ~0.
	approach := Point{Lat: 0, Lon: -0.001}
	shared := Point{Lat: 0, Lon: 0}
	depart := Point{Lat: 0, Lon: 0.001}
	angle, ok := TurnVectorAngle(approach, shared, depart)
	require.True(t, ok)
	assert.InDelta(t, 0, angle, 1e-6)

	// Perpendicular turn: angle should be ~pi/2.
	depart90 := Point{Lat: 0.001, Lon: 0}
	angle90, ok := TurnVectorAngle(approach, shared, depart90)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, angle90, 1e-2)
}

func TestTurnVectorAngleDegenerate(t *testing.T) {
	p := Point{Lat: 1, Lon: 1}
	_, ok := TurnVectorAngle(p, p, Point{Lat: 2, Lon: 2})
	assert.False(t, ok)
}
