package report

import (
	"sort"
	"strconv"
	"strings"
)

// MonthlyBucket aggregates the tabular export's rows for one calendar month.
type MonthlyBucket struct {
	Month string // "YYYY-MM"

	Rows            []map[string]string
	ActivityCounts  map[string]int
	Visits          int
	DistanceMeters  float64
	DurationSeconds float64
}

// MonthlySummary holds the chronologically ordered buckets plus row-level
// accounting for the whole table.
type MonthlySummary struct {
	Buckets   []*MonthlyBucket
	TotalRows int
	Anomalies int // rows whose month could not be determined
}

// SummarizeMonths re-aggregates the tabular export by calendar month. This is
// an independent second pass over already-flattened data: every cell is
// re-read from text, and missing or non-numeric cells contribute zero rather
// than failing. Rows with no usable month still count toward the total.
func SummarizeMonths(rows []map[string]string) *MonthlySummary {
	s := &MonthlySummary{}
	byMonth := make(map[string]*MonthlyBucket)

	for _, row := range rows {
		s.TotalRows++

		month := monthKey(row)
		if month == "" {
			s.Anomalies++
			continue
		}

		bucket := byMonth[month]
		if bucket == nil {
			bucket = &MonthlyBucket{Month: month, ActivityCounts: make(map[string]int)}
			byMonth[month] = bucket
		}

		bucket.Rows = append(bucket.Rows, row)
		bucket.DistanceMeters += cellFloat(row, "distance_meters")
		bucket.DurationSeconds += cellFloat(row, "duration_seconds")

		switch row["record_type"] {
		case "activity":
			if t := row["activity_type"]; t != "" {
				bucket.ActivityCounts[t]++
			}
		case "visit":
			bucket.Visits++
		}
	}

	s.Buckets = make([]*MonthlyBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		s.Buckets = append(s.Buckets, bucket)
	}
	sort.Slice(s.Buckets, func(i, j int) bool {
		return s.Buckets[i].Month < s.Buckets[j].Month
	})
	return s
}

// Bucket returns the bucket for a month key, or nil.
func (s *MonthlySummary) Bucket(month string) *MonthlyBucket {
	for _, b := range s.Buckets {
		if b.Month == month {
			return b
		}
	}
	return nil
}

// monthKey derives "YYYY-MM" from the row's date cell, falling back to the
// timestamp cell. Returns "" when neither yields a plausible month.
func monthKey(row map[string]string) string {
	for _, cell := range []string{row["date"], row["timestamp"]} {
		if m := monthPrefix(cell); m != "" {
			return m
		}
	}
	return ""
}

func monthPrefix(s string) string {
	if len(s) < 7 || s[4] != '-' {
		return ""
	}
	year, errY := strconv.Atoi(s[:4])
	month, errM := strconv.Atoi(s[5:7])
	if errY != nil || errM != nil || year < 1 || month < 1 || month > 12 {
		return ""
	}
	return s[:7]
}

// cellFloat parses a numeric cell, contributing zero for anything missing or
// malformed.
func cellFloat(row map[string]string, col string) float64 {
	cell := strings.TrimSpace(row[col])
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return v
}

// activityCount is one entry of a breakdown ordered by descending count,
// ties broken alphabetically.
type activityCount struct {
	Type  string
	Count int
}

func sortedActivityCounts(counts map[string]int) []activityCount {
	out := make([]activityCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, activityCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}
