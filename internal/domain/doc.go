// Package domain models records from a Google Timeline location-history
// export (the "semantic segments" shape produced by the on-device Takeout
// flow).
//
// # Input shape
//
// The export is a JSON document whose top level is either a bare array of
// segments or an object carrying "semanticSegments" and "rawSignals" arrays.
// Each segment is a mapping with optional "startTime"/"endTime" bounds and
// one of the recognized payload keys:
//
//	activity         movement between two points with a transport-mode
//	                 candidate list ("candidates" / "topCandidate")
//	visit            a stationary stay with place candidates
//	timelinePath     a list of raw GPS fixes, each with its own time or a
//	                 minute offset from the segment start
//	activityRecords  device-reported periodic activity classifications
//	wifiScans        wireless-scan snapshots, never carrying coordinates
//
// A segment may carry several of these keys at once; they are probed in
// exactly the order above and the first applicable interpretation wins.
// Anything else is skipped and counted, never fatal. Unknown extra keys may
// appear anywhere and are ignored.
//
// # Coordinate encodings
//
// Coordinates appear in three forms, all accepted by the field parsers:
//
//   - plain decimal degrees as JSON numbers
//   - fixed-point E7 integers (latitudeE7/lngE7 style): 377749000 = 37.7749°.
//     A plain numeric value with |v| > 180 is assumed to be E7 and divided
//     by 1e7.
//   - the degree-sign string form used by newer exports:
//     "37.7749°, -122.4194°"
//
// # Timestamps
//
// RFC 3339 strings with offsets are the native form. Legacy
// epoch-millisecond strings ("timestampMs" style) are also accepted.
// A malformed timestamp, like any malformed field, decays to nil rather
// than failing the record.
package domain
