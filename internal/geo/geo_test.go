package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	// Algiers center to Bab Ezzouar, roughly 14 km.
	d := HaversineKm(36.7538, 3.0588, 36.7203, 3.1847)
	assert.InDelta(t, 11.8, d, 1.0)

	assert.Zero(t, HaversineKm(36.75, 3.05, 36.75, 3.05))

	// Symmetry.
	a := HaversineKm(35.6971, -0.6308, 36.7538, 3.0588)
	b := HaversineKm(36.7538, 3.0588, 35.6971, -0.6308)
	assert.InDelta(t, a, b, 1e-9)

	// Oran to Algiers is about 355 km as the crow flies.
	assert.InDelta(t, 355, a, 15)
}

func TestBoundingBox(t *testing.T) {
	box := BoundingBox(36.75, 3.05, 25)

	assert.InDelta(t, 36.75-25.0/111.0, box.MinLat, 1e-9)
	assert.InDelta(t, 36.75+25.0/111.0, box.MaxLat, 1e-9)
	assert.Less(t, box.MinLng, 3.05)
	assert.Greater(t, box.MaxLng, 3.05)

	// Longitude span must widen away from the equator.
	eq := BoundingBox(0, 3.05, 25)
	north := BoundingBox(60, 3.05, 25)
	assert.Greater(t, north.MaxLng-north.MinLng, eq.MaxLng-eq.MinLng)
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	const lat, lng, radius = 36.75, 3.05, 25.0
	box := BoundingBox(lat, lng, radius)

	// Points at the cardinal extremes of the circle stay inside the box.
	for _, p := range [][2]float64{
		{lat + radius/111.0, lng},
		{lat - radius/111.0, lng},
		{lat, box.MinLng + 1e-9},
		{lat, box.MaxLng - 1e-9},
	} {
		assert.True(t, box.Contains(p[0], p[1]), "point %v should be inside", p)
	}

	assert.False(t, box.Contains(lat+1.0, lng))
	assert.False(t, box.Contains(lat, lng+1.0))
}

func TestBoundingBoxPolarClamp(t *testing.T) {
	box := BoundingBox(90, 0, 25)
	assert.False(t, math.IsNaN(box.MinLng))
	assert.False(t, math.IsInf(box.MinLng, 0))
	assert.Greater(t, box.MaxLng, box.MinLng)
}
