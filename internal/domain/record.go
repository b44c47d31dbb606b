package domain

import "time"

// RawSegment is one entry of the export's top-level sequence: an untyped
// nested mapping whose shape determines how it flattens. Segments are never
// mutated; unknown keys stay in the map and are never inspected.
type RawSegment map[string]any

// RecordType tags a flattened record with the segment shape it came from.
type RecordType string

const (
	RecordActivity       RecordType = "activity"
	RecordVisit          RecordType = "visit"
	RecordPosition       RecordType = "position"
	RecordActivityRecord RecordType = "activity_record"
	RecordWifiScan       RecordType = "wifi_scan"
)

// RecordTypes lists all record types in their canonical output order.
var RecordTypes = []RecordType{
	RecordActivity,
	RecordVisit,
	RecordPosition,
	RecordActivityRecord,
	RecordWifiScan,
}

// FlatRecord is the normalized unit produced for every recognized sub-shape.
// Optional fields are pointers: nil means the source carried no usable value,
// which downstream aggregation must distinguish from an actual zero.
// Records are immutable once extracted.
type FlatRecord struct {
	Type RecordType

	Timestamp    *time.Time
	EndTimestamp *time.Time

	ActivityType *string
	Probability  *float64

	StartLat *float64
	StartLon *float64
	EndLat   *float64
	EndLon   *float64

	DistanceMeters  *float64
	DurationSeconds *float64

	// Visit records only.
	PlaceID      *string
	SemanticType *string
}

// HasLocation reports whether any coordinate field is populated.
func (r FlatRecord) HasLocation() bool {
	return r.StartLat != nil || r.StartLon != nil || r.EndLat != nil || r.EndLon != nil
}

// IsActivityKind reports whether the record participates in the
// per-activity-type breakdown.
func (r FlatRecord) IsActivityKind() bool {
	return r.Type == RecordActivity || r.Type == RecordActivityRecord
}
