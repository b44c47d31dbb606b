package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordFrom(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"decimal degrees", 37.7749, f64(37.7749)},
		{"scaled E7 integer", 377749000.0, f64(37.7749)},
		{"negative E7", -1224194000.0, f64(-122.4194)},
		{"numeric string", "37.7749", f64(37.7749)},
		{"still out of range after scaling", 2.5e9, nil},
		{"boundary 180", 180.0, f64(180)},
		{"non-numeric", "north", nil},
		{"absent", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coordFrom(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestLatLngFrom(t *testing.T) {
	t.Run("degree-sign form", func(t *testing.T) {
		lat, lon := latLngFrom("37.7749°, -122.4194°")
		require.NotNil(t, lat)
		require.NotNil(t, lon)
		assert.InDelta(t, 37.7749, *lat, 1e-9)
		assert.InDelta(t, -122.4194, *lon, 1e-9)
	})

	t.Run("without degree signs", func(t *testing.T) {
		lat, lon := latLngFrom("10.5,20.25")
		require.NotNil(t, lat)
		require.NotNil(t, lon)
		assert.InDelta(t, 10.5, *lat, 1e-9)
		assert.InDelta(t, 20.25, *lon, 1e-9)
	})

	t.Run("missing comma", func(t *testing.T) {
		lat, lon := latLngFrom("37.7749° -122.4194°")
		assert.Nil(t, lat)
		assert.Nil(t, lon)
	})

	t.Run("one malformed half drops both", func(t *testing.T) {
		lat, lon := latLngFrom("37.7749°, west")
		assert.Nil(t, lat)
		assert.Nil(t, lon)
	})
}

func TestPointFrom(t *testing.T) {
	cases := []struct {
		name    string
		in      any
		wantLat float64
		wantLon float64
	}{
		{"latLng string object", map[string]any{"latLng": "37.7749°, -122.4194°"}, 37.7749, -122.4194},
		{"bare string", "1.5°, 2.5°", 1.5, 2.5},
		{"E7 pair", map[string]any{"latitudeE7": 377749000.0, "longitudeE7": -1224194000.0}, 37.7749, -122.4194},
		{"short E7 pair", map[string]any{"latE7": 377749000.0, "lngE7": -1224194000.0}, 37.7749, -122.4194},
		{"plain pair", map[string]any{"latitude": 37.7749, "longitude": -122.4194}, 37.7749, -122.4194},
		{"abbreviated pair", map[string]any{"lat": 1.0, "lng": 2.0}, 1, 2},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon := pointFrom(tt.in)
			require.NotNil(t, lat)
			require.NotNil(t, lon)
			assert.InDelta(t, tt.wantLat, *lat, 1e-9)
			assert.InDelta(t, tt.wantLon, *lon, 1e-9)
		})
	}

	t.Run("unusable shapes", func(t *testing.T) {
		for _, in := range []any{nil, 42.0, map[string]any{"x": 1.0}, []any{1.0, 2.0}} {
			lat, lon := pointFrom(in)
			assert.Nil(t, lat)
			assert.Nil(t, lon)
		}
	})
}

func TestTimeFrom(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		ts := timeFrom("2025-06-01T08:30:00Z")
		require.NotNil(t, ts)
		assert.Equal(t, time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC), ts.UTC())
	})

	t.Run("RFC3339 with offset", func(t *testing.T) {
		ts := timeFrom("2025-06-01T08:30:00.250-07:00")
		require.NotNil(t, ts)
		assert.Equal(t, time.Date(2025, 6, 1, 15, 30, 0, 250000000, time.UTC), ts.UTC())
	})

	t.Run("epoch millisecond string", func(t *testing.T) {
		ts := timeFrom("1718000000000")
		require.NotNil(t, ts)
		assert.Equal(t, time.UnixMilli(1718000000000).UTC(), *ts)
	})

	t.Run("epoch millisecond number", func(t *testing.T) {
		ts := timeFrom(1718000000000.0)
		require.NotNil(t, ts)
		assert.Equal(t, time.UnixMilli(1718000000000).UTC(), *ts)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, in := range []any{"yesterday", "", nil, true} {
			assert.Nil(t, timeFrom(in))
		}
	})
}

func TestProbabilityFrom(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"mid range", 0.5, f64(0.5)},
		{"zero", 0.0, f64(0)},
		{"one", 1.0, f64(1)},
		{"string form", "0.9", f64(0.9)},
		{"above one", 1.5, nil},
		{"negative", -0.1, nil},
		{"absent", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := probabilityFrom(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestNonNegativeFrom(t *testing.T) {
	require.NotNil(t, nonNegativeFrom(123.4))
	assert.Nil(t, nonNegativeFrom(-1.0))
	assert.Nil(t, nonNegativeFrom("not a number"))
}

func TestStringFrom(t *testing.T) {
	got := stringFrom("  WALKING  ")
	require.NotNil(t, got)
	assert.Equal(t, "WALKING", *got)
	assert.Nil(t, stringFrom(""))
	assert.Nil(t, stringFrom("   "))
	assert.Nil(t, stringFrom(7.0))
}

// f64 returns a pointer to v, for building expected values.
func f64(v float64) *float64 { return &v }
