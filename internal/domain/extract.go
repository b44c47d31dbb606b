package domain

import "time"

// ExtractStats accumulates per-run extraction accounting. It is returned by
// value alongside the records; the extractor keeps no package-level state.
type ExtractStats struct {
	Segments  int // top-level segments seen
	Skipped   int // segments with no recognized interpretation
	Anomalies int // fields or list entries present but unusable
}

// ExtractAll flattens every recognized sub-shape in the input sequence.
// Unrecognized or malformed segments are skipped and counted, never fatal.
func ExtractAll(segs []RawSegment) ([]FlatRecord, ExtractStats) {
	var stats ExtractStats
	var records []FlatRecord
	for _, seg := range segs {
		stats.Segments++
		recs, ok := extractSegment(seg, &stats)
		if !ok {
			stats.Skipped++
			continue
		}
		records = append(records, recs...)
	}
	return records, stats
}

// ExtractSegment flattens a single segment, reporting whether any
// interpretation applied.
func ExtractSegment(seg RawSegment) ([]FlatRecord, bool) {
	var stats ExtractStats
	return extractSegment(seg, &stats)
}

// extractSegment dispatches on the payload keys in fixed priority order:
// activity, visit, timelinePath, activityRecords, wifiScans. A segment can
// carry several keys at once; the first applicable interpretation wins.
func extractSegment(seg RawSegment, stats *ExtractStats) ([]FlatRecord, bool) {
	if act, ok := seg["activity"].(map[string]any); ok {
		return []FlatRecord{extractActivity(seg, act, stats)}, true
	}
	if visit, ok := seg["visit"].(map[string]any); ok {
		return []FlatRecord{extractVisit(seg, visit)}, true
	}
	if path, ok := seg["timelinePath"].([]any); ok {
		return extractTimelinePath(seg, path, stats), true
	}
	if list, ok := seg["activityRecords"].([]any); ok {
		return extractActivityRecords(list, stats), true
	}
	if scans, ok := seg["wifiScans"].([]any); ok {
		return extractWifiScans(scans, stats), true
	}
	return nil, false
}

func extractActivity(seg RawSegment, act map[string]any, stats *ExtractStats) FlatRecord {
	rec := FlatRecord{Type: RecordActivity}
	rec.Timestamp = timeFrom(seg["startTime"])
	rec.EndTimestamp = timeFrom(seg["endTime"])
	rec.DurationSeconds = spanSeconds(rec.Timestamp, rec.EndTimestamp, stats)

	if cand := bestCandidate(act); cand != nil {
		rec.ActivityType = candidateType(cand)
		rec.Probability = candidateProbability(cand)
	}

	rec.StartLat, rec.StartLon = pointFrom(act["start"])
	rec.EndLat, rec.EndLon = pointFrom(act["end"])

	if raw, ok := act["distanceMeters"]; ok {
		rec.DistanceMeters = nonNegativeFrom(raw)
		if rec.DistanceMeters == nil {
			stats.Anomalies++
		}
	}
	if rec.DistanceMeters == nil &&
		rec.StartLat != nil && rec.StartLon != nil && rec.EndLat != nil && rec.EndLon != nil {
		d := Haversine(*rec.StartLat, *rec.StartLon, *rec.EndLat, *rec.EndLon)
		rec.DistanceMeters = &d
	}
	return rec
}

func extractVisit(seg RawSegment, visit map[string]any) FlatRecord {
	rec := FlatRecord{Type: RecordVisit}
	rec.Timestamp = timeFrom(seg["startTime"])
	rec.EndTimestamp = timeFrom(seg["endTime"])
	rec.DurationSeconds = spanSeconds(rec.Timestamp, rec.EndTimestamp, nil)

	if cand := bestCandidate(visit); cand != nil {
		rec.PlaceID = stringFrom(cand["placeId"])
		rec.SemanticType = stringFrom(cand["semanticType"])
		rec.Probability = candidateProbability(cand)
		// A visit has no movement: the single point fills both ends.
		rec.StartLat, rec.StartLon = pointFrom(cand["placeLocation"])
		rec.EndLat, rec.EndLon = rec.StartLat, rec.StartLon
	}
	if rec.Probability == nil {
		rec.Probability = probabilityFrom(visit["probability"])
	}
	return rec
}

func extractTimelinePath(seg RawSegment, path []any, stats *ExtractStats) []FlatRecord {
	start := timeFrom(seg["startTime"])
	records := make([]FlatRecord, 0, len(path))
	for _, entry := range path {
		fix, ok := entry.(map[string]any)
		if !ok {
			stats.Anomalies++
			continue
		}
		rec := FlatRecord{Type: RecordPosition}
		rec.StartLat, rec.StartLon = pointFrom(fix["point"])
		rec.EndLat, rec.EndLon = rec.StartLat, rec.StartLon
		rec.Timestamp = fixTime(fix, start)
		records = append(records, rec)
	}
	return records
}

// fixTime resolves a path fix's own timestamp: an absolute "time" value, or
// a minute offset from the segment start.
func fixTime(fix map[string]any, start *time.Time) *time.Time {
	if ts := timeFrom(fix["time"]); ts != nil {
		return ts
	}
	offset := floatFrom(fix["durationMinutesOffsetFromStartTime"])
	if offset == nil || start == nil {
		return nil
	}
	ts := start.Add(time.Duration(*offset * float64(time.Minute)))
	return &ts
}

func extractActivityRecords(list []any, stats *ExtractStats) []FlatRecord {
	records := make([]FlatRecord, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			stats.Anomalies++
			continue
		}
		rec := FlatRecord{Type: RecordActivityRecord}
		rec.Timestamp = timeFrom(m["timestamp"])
		if rec.Timestamp == nil {
			rec.Timestamp = timeFrom(m["time"])
		}
		if probable, ok := m["probableActivities"].([]any); ok {
			if cand := bestOfList(probable); cand != nil {
				rec.ActivityType = candidateType(cand)
				rec.Probability = candidateProbability(cand)
			}
		}
		records = append(records, rec)
	}
	return records
}

func extractWifiScans(scans []any, stats *ExtractStats) []FlatRecord {
	records := make([]FlatRecord, 0, len(scans))
	for _, entry := range scans {
		m, ok := entry.(map[string]any)
		if !ok {
			stats.Anomalies++
			continue
		}
		rec := FlatRecord{Type: RecordWifiScan}
		rec.Timestamp = timeFrom(m["deliveryTime"])
		if rec.Timestamp == nil {
			rec.Timestamp = timeFrom(m["timestamp"])
		}
		records = append(records, rec)
	}
	return records
}

// bestCandidate picks the classification from a payload's "candidates" list,
// falling back to its "topCandidate". Selection scans the list in order and
// only a strictly greater probability displaces the current pick, so the
// first of equally likely candidates wins.
func bestCandidate(payload map[string]any) map[string]any {
	if list, ok := payload["candidates"].([]any); ok {
		if cand := bestOfList(list); cand != nil {
			return cand
		}
	}
	if top, ok := payload["topCandidate"].(map[string]any); ok {
		return top
	}
	return nil
}

func bestOfList(list []any) map[string]any {
	var best map[string]any
	bestProb := -1.0
	for _, entry := range list {
		cand, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		prob := 0.0
		if p := candidateProbability(cand); p != nil {
			prob = *p
		}
		if prob > bestProb {
			best, bestProb = cand, prob
		}
	}
	return best
}

// candidateProbability reads a candidate's confidence under either key the
// export uses.
func candidateProbability(cand map[string]any) *float64 {
	if p := probabilityFrom(cand["probability"]); p != nil {
		return p
	}
	return probabilityFrom(cand["confidence"])
}

func candidateType(cand map[string]any) *string {
	if t := stringFrom(cand["type"]); t != nil {
		return t
	}
	return stringFrom(cand["activityType"])
}

// spanSeconds derives a duration from both bounds when present. Inverted
// spans are malformed and decay to nil.
func spanSeconds(start, end *time.Time, stats *ExtractStats) *float64 {
	if start == nil || end == nil {
		return nil
	}
	secs := end.Sub(*start).Seconds()
	if secs < 0 {
		if stats != nil {
			stats.Anomalies++
		}
		return nil
	}
	return &secs
}
