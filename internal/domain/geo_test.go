package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_IdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{37.7749, -122.4194},
		{-90, 0},
		{90, 180},
	}
	for _, p := range points {
		assert.InDelta(t, 0, Haversine(p[0], p[1], p[0], p[1]), 1e-6)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	d1 := Haversine(37.7749, -122.4194, 40.7128, -74.0060)
	d2 := Haversine(40.7128, -74.0060, 37.7749, -122.4194)
	assert.Equal(t, d1, d2)
}

func TestHaversine_OneDegreeAtEquator(t *testing.T) {
	// One degree of longitude at the equator: 2*pi*R/360.
	d := Haversine(0, 0, 0, 1)
	assert.InEpsilon(t, 111195, d, 0.01)
}

func TestHaversine_ShortHop(t *testing.T) {
	d := Haversine(37.7749, -122.4194, 37.7750, -122.4180)
	assert.InDelta(t, 124, d, 1.0)
}

func TestHaversine_Antipodal(t *testing.T) {
	// Half the Earth's circumference, and no NaN from the arccos domain edge.
	d := Haversine(0, 0, 0, 180)
	assert.InEpsilon(t, 3.14159265*EarthRadiusMeters, d, 0.001)
	assert.False(t, d != d, "antipodal distance must not be NaN")
}
