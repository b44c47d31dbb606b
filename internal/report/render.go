package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hollyoak/timeline-etl/internal/domain"
)

const (
	ruleWide   = "============================================================"
	ruleDetail = "================================================================================"
)

// RenderReport formats an AggregateReport as structured text with a stable
// section order: header, record types, period, activity breakdown, distance
// shares, location coverage.
func RenderReport(r *AggregateReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nTIMELINE ANALYSIS\n%s\n", ruleWide, ruleWide)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total Records: %d\n", r.TotalRecords)
	fmt.Fprintf(&b, "Skipped Segments: %d\n", r.SkippedSegments)
	fmt.Fprintf(&b, "Field Anomalies: %d\n", r.FieldAnomalies)

	b.WriteString("\nRecord Types:\n")
	for _, t := range domain.RecordTypes {
		count := r.TypeCounts[t]
		if count == 0 {
			continue
		}
		fmt.Fprintf(&b, "  - %s: %d (%.1f%%)\n", t, count, percent(count, r.TotalRecords))
	}

	b.WriteString("\nPeriod:\n")
	if span, ok := r.Span(); ok {
		fmt.Fprintf(&b, "  From: %s\n", r.Earliest.Format(time.RFC3339))
		fmt.Fprintf(&b, "  To:   %s\n", r.Latest.Format(time.RFC3339))
		fmt.Fprintf(&b, "  Span: %.1f days\n", span.Hours()/24)
	} else {
		b.WriteString("  unavailable (no timestamped records)\n")
	}

	b.WriteString("\nActivity Breakdown:\n")
	if len(r.Activities) == 0 {
		b.WriteString("  none\n")
	}
	for _, entry := range sortedActivities(r.Activities) {
		fmt.Fprintf(&b, "  - %s: %d (%.1f%% of records), %.2f km\n",
			entry.Type, entry.Stats.Count,
			percent(entry.Stats.Count, r.TotalRecords),
			entry.Stats.DistanceMeters/1000)
	}

	b.WriteString("\nDistance:\n")
	fmt.Fprintf(&b, "  Total: %.2f km\n", r.TotalDistanceMeters/1000)
	for _, t := range domain.RecordTypes {
		meters, ok := r.TypeDistance[t]
		if !ok {
			continue
		}
		share := 0.0
		if r.TotalDistanceMeters > 0 {
			share = meters / r.TotalDistanceMeters * 100
		}
		fmt.Fprintf(&b, "  - %s: %.2f km (%.1f%%)\n", t, meters/1000, share)
	}

	fmt.Fprintf(&b, "\nLocation Coverage: %.1f%% (%d/%d)\n",
		percent(r.WithLocation, r.TotalRecords), r.WithLocation, r.TotalRecords)

	return b.String()
}

// RenderMonthly formats the month buckets in ascending chronological order,
// one block per month in the layout downstream tooling greps for.
func RenderMonthly(s *MonthlySummary) string {
	var b strings.Builder

	for _, bucket := range s.Buckets {
		fmt.Fprintf(&b, "\n%s\nMONTH: %s\n%s\n", ruleWide, bucket.Month, ruleWide)
		fmt.Fprintf(&b, "Total Activities: %d\n", len(bucket.Rows))
		fmt.Fprintf(&b, "Total Distance: %.2f km\n", bucket.DistanceMeters/1000)
		fmt.Fprintf(&b, "Total Duration: %.2f hours\n", bucket.DurationSeconds/3600)
		fmt.Fprintf(&b, "Visits: %d\n", bucket.Visits)

		b.WriteString("\nActivity Breakdown:\n")
		for _, entry := range sortedActivityCounts(bucket.ActivityCounts) {
			fmt.Fprintf(&b, "  - %s: %d\n", entry.Type, entry.Count)
		}
	}

	if s.Anomalies > 0 {
		fmt.Fprintf(&b, "\nRows without a usable month: %d of %d\n", s.Anomalies, s.TotalRows)
	}

	return b.String()
}

// RenderMonthDetail formats the row-by-row listing for one month.
func RenderMonthDetail(s *MonthlySummary, month string) string {
	bucket := s.Bucket(month)
	if bucket == nil {
		return fmt.Sprintf("No data found for month: %s\n", month)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nDETAILED ACTIVITIES FOR %s\n%s\n\n", ruleDetail, month, ruleDetail)

	for i, row := range bucket.Rows {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, row["timestamp"], row["end_timestamp"])
		fmt.Fprintf(&b, "   Type: %s | %s\n", row["record_type"], row["activity_type"])
		fmt.Fprintf(&b, "   Distance: %.2f km | Duration: %.1f min\n\n",
			cellFloat(row, "distance_meters")/1000,
			cellFloat(row, "duration_seconds")/60)
	}

	return b.String()
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

type activityEntry struct {
	Type  string
	Stats ActivityStats
}

func sortedActivities(activities map[string]ActivityStats) []activityEntry {
	out := make([]activityEntry, 0, len(activities))
	for t, stats := range activities {
		out = append(out, activityEntry{Type: t, Stats: stats})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stats.Count != out[j].Stats.Count {
			return out[i].Stats.Count > out[j].Stats.Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}
