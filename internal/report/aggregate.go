// Package report derives summary statistics from flattened timeline records
// and renders them as deterministic text. Reports are ephemeral: rebuilt on
// every run, never persisted except through the renderer.
package report

import (
	"time"

	"github.com/hollyoak/timeline-etl/internal/domain"
)

// ActivityStats aggregates one activity type across the whole input.
type ActivityStats struct {
	Count          int
	DistanceMeters float64
	WithDistance   int // records that actually carried a distance
}

// AggregateReport is the full single-run summary. Percentages are not stored;
// the renderer computes them so derived values cannot go stale.
type AggregateReport struct {
	GeneratedAt time.Time

	TotalRecords    int
	SkippedSegments int
	FieldAnomalies  int

	TypeCounts   map[domain.RecordType]int
	TypeDistance map[domain.RecordType]float64

	// Activities covers activity and activity_record types only.
	Activities map[string]ActivityStats

	Earliest *time.Time
	Latest   *time.Time

	TotalDistanceMeters float64
	WithLocation        int
}

// Build computes an AggregateReport from the flattened record sequence and
// the extractor's accounting. Records with nil fields contribute nothing to
// the corresponding sums, keeping "no data" distinct from zero.
func Build(records []domain.FlatRecord, stats domain.ExtractStats) *AggregateReport {
	r := &AggregateReport{
		GeneratedAt:     clock.Now().UTC(),
		TotalRecords:    len(records),
		SkippedSegments: stats.Skipped,
		FieldAnomalies:  stats.Anomalies,
		TypeCounts:      make(map[domain.RecordType]int),
		TypeDistance:    make(map[domain.RecordType]float64),
		Activities:      make(map[string]ActivityStats),
	}

	for _, rec := range records {
		r.TypeCounts[rec.Type]++

		if rec.DistanceMeters != nil {
			r.TotalDistanceMeters += *rec.DistanceMeters
			r.TypeDistance[rec.Type] += *rec.DistanceMeters
		}

		if rec.HasLocation() {
			r.WithLocation++
		}

		if ts := rec.Timestamp; ts != nil {
			if r.Earliest == nil || ts.Before(*r.Earliest) {
				r.Earliest = ts
			}
			if r.Latest == nil || ts.After(*r.Latest) {
				r.Latest = ts
			}
		}

		if rec.IsActivityKind() && rec.ActivityType != nil {
			agg := r.Activities[*rec.ActivityType]
			agg.Count++
			if rec.DistanceMeters != nil {
				agg.DistanceMeters += *rec.DistanceMeters
				agg.WithDistance++
			}
			r.Activities[*rec.ActivityType] = agg
		}
	}

	return r
}

// Span returns the overall time span, or false when fewer than one record
// carries a timestamp.
func (r *AggregateReport) Span() (time.Duration, bool) {
	if r.Earliest == nil || r.Latest == nil {
		return 0, false
	}
	return r.Latest.Sub(*r.Earliest), true
}
