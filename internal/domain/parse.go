package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Field parsers. Each accepts the raw decoded JSON value for one field and
// returns nil when the value is absent or malformed, so the fallback policy
// lives in one place instead of inline checks at every call site.

// timeFrom parses a timestamp value: RFC 3339 strings (with or without
// fractional seconds) or legacy epoch-millisecond values, either as a digit
// string or a JSON number.
func timeFrom(v any) *time.Time {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return &ts
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
			ts := time.UnixMilli(ms).UTC()
			return &ts
		}
	case float64:
		if t > 0 {
			ts := time.UnixMilli(int64(t)).UTC()
			return &ts
		}
	}
	return nil
}

// floatFrom parses a numeric value, accepting JSON numbers and numeric
// strings. NaN and infinities are malformed.
func floatFrom(v any) *float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}
	return nil
}

// nonNegativeFrom parses a numeric value that must be zero or greater
// (distances, durations).
func nonNegativeFrom(v any) *float64 {
	f := floatFrom(v)
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

// probabilityFrom parses a confidence value, valid only inside [0, 1].
func probabilityFrom(v any) *float64 {
	f := floatFrom(v)
	if f == nil || *f < 0 || *f > 1 {
		return nil
	}
	return f
}

// coordFrom parses one coordinate component in decimal degrees. Values with
// |v| > 180 are assumed to be the fixed-point E7 encoding and are scaled
// down; anything still out of range after scaling is malformed.
func coordFrom(v any) *float64 {
	f := floatFrom(v)
	if f == nil {
		return nil
	}
	deg := *f
	if math.Abs(deg) > 180 {
		deg /= 1e7
	}
	if math.Abs(deg) > 180 {
		return nil
	}
	return &deg
}

// latLngFrom parses the degree-sign string form "37.7749°, -122.4194°".
// The degree signs are optional; the comma is not.
func latLngFrom(s string) (lat, lon *float64) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, nil
	}
	clean := func(p string) any {
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), "°"))
	}
	lat = coordFrom(clean(parts[0]))
	lon = coordFrom(clean(parts[1]))
	if lat == nil || lon == nil {
		return nil, nil
	}
	return lat, lon
}

// pointFrom parses a point value in any of the export's shapes: a latLng
// string, an object wrapping one under "latLng" or "point", an E7 pair, or
// plain latitude/longitude numbers.
func pointFrom(v any) (lat, lon *float64) {
	switch p := v.(type) {
	case string:
		return latLngFrom(p)
	case map[string]any:
		for _, key := range []string{"latLng", "point"} {
			if s, ok := p[key].(string); ok {
				return latLngFrom(s)
			}
		}
		pairs := [][2]string{
			{"latitudeE7", "longitudeE7"},
			{"latE7", "lngE7"},
			{"latitude", "longitude"},
			{"lat", "lng"},
		}
		for _, pair := range pairs {
			latRaw, okLat := p[pair[0]]
			lonRaw, okLon := p[pair[1]]
			if !okLat || !okLon {
				continue
			}
			lat, lon = coordFrom(latRaw), coordFrom(lonRaw)
			if lat != nil && lon != nil {
				return lat, lon
			}
			return nil, nil
		}
	}
	return nil, nil
}

// stringFrom returns a non-empty trimmed string value, else nil.
func stringFrom(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
