// Command genfixture writes a synthetic location-history export covering
// every segment shape the extractor recognizes. It exists to produce demo
// inputs and reproducible fixtures without shipping anyone's real timeline.
//
// Usage:
//
//	go run ./cmd/genfixture -out fixture.json -segments 50 -seed 1
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
)

// Walks start from downtown San Francisco and drift from there.
const (
	baseLat = 37.7749
	baseLon = -122.4194
)

var activityTypes = []string{
	"WALKING", "IN_PASSENGER_VEHICLE", "CYCLING", "RUNNING", "STILL",
}

var semanticTypes = []string{"HOME", "WORK", "SEARCHED_ADDRESS", "INFERRED_PLACE"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the fixture JSON")
	segments := flag.Int("segments", 50, "number of segments to generate")
	seed := flag.Int64("seed", 1, "random seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))
	clk := clockwork.NewFakeClockAt(time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC))

	lat, lon := baseLat, baseLon
	segs := make([]map[string]any, 0, *segments)
	for i := 0; i < *segments; i++ {
		seg, nextLat, nextLon := generateSegment(rng, clk, i%5, lat, lon)
		segs = append(segs, seg)
		lat, lon = nextLat, nextLon
		clk.Advance(time.Duration(10+rng.Intn(110)) * time.Minute)
	}

	doc := map[string]any{"semanticSegments": segs}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	log.Printf("wrote %d segments to %s", len(segs), *out)
	return nil
}

// generateSegment builds one segment of the given shape, returning the
// coordinates the next segment should continue from.
func generateSegment(rng *rand.Rand, clk clockwork.Clock, shape int, lat, lon float64) (map[string]any, float64, float64) {
	start := clk.Now()
	end := start.Add(time.Duration(5+rng.Intn(55)) * time.Minute)
	seg := map[string]any{
		"startTime": start.Format(time.RFC3339),
		"endTime":   end.Format(time.RFC3339),
	}

	switch shape {
	case 0: // activity
		endLat := lat + (rng.Float64()-0.5)*0.02
		endLon := lon + (rng.Float64()-0.5)*0.02
		seg["activity"] = map[string]any{
			"start":          map[string]any{"latLng": latLng(lat, lon)},
			"end":            map[string]any{"latLng": latLng(endLat, endLon)},
			"distanceMeters": float64(100 + rng.Intn(9900)),
			"topCandidate": map[string]any{
				"type":        activityTypes[rng.Intn(len(activityTypes))],
				"probability": 0.5 + rng.Float64()*0.5,
			},
		}
		return seg, endLat, endLon
	case 1: // visit
		seg["visit"] = map[string]any{
			"probability": 0.5 + rng.Float64()*0.5,
			"topCandidate": map[string]any{
				"placeId":       fmt.Sprintf("place-%06d", rng.Intn(1000000)),
				"semanticType":  semanticTypes[rng.Intn(len(semanticTypes))],
				"probability":   0.5 + rng.Float64()*0.5,
				"placeLocation": map[string]any{"latLng": latLng(lat, lon)},
			},
		}
	case 2: // timelinePath
		fixes := make([]map[string]any, 0, 4)
		for f := 0; f < 4; f++ {
			fixes = append(fixes, map[string]any{
				"point":                              latLng(lat+float64(f)*0.001, lon+float64(f)*0.001),
				"durationMinutesOffsetFromStartTime": fmt.Sprintf("%d", f*3),
			})
		}
		seg["timelinePath"] = fixes
	case 3: // activityRecords
		recs := make([]map[string]any, 0, 3)
		for r := 0; r < 3; r++ {
			recs = append(recs, map[string]any{
				"timestamp": start.Add(time.Duration(r) * time.Minute).Format(time.RFC3339),
				"probableActivities": []map[string]any{
					{"type": activityTypes[rng.Intn(len(activityTypes))], "confidence": rng.Float64()},
				},
			})
		}
		seg["activityRecords"] = recs
	case 4: // wifiScans
		seg["wifiScans"] = []map[string]any{
			{"deliveryTime": start.Format(time.RFC3339)},
		}
	}
	return seg, lat, lon
}

func latLng(lat, lon float64) string {
	return fmt.Sprintf("%.7f°, %.7f°", lat, lon)
}
