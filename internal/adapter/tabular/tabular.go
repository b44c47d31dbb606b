// Package tabular writes flattened records to the CSV timeline export and
// reads such exports back for the monthly pass. The column order is a fixed
// contract shared with downstream consumers.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/hollyoak/timeline-etl/internal/domain"
)

// Columns is the tabular export's header, in contract order.
var Columns = []string{
	"timestamp",
	"end_timestamp",
	"date",
	"time",
	"record_type",
	"activity_type",
	"probability",
	"start_latitude",
	"start_longitude",
	"end_latitude",
	"end_longitude",
	"distance_meters",
	"duration_seconds",
	"place_id",
	"semantic_type",
}

// Row is one export row keyed by column name. Missing values are absent or
// empty, never the literal "null".
type Row = map[string]string

// rowFor flattens one record into contract column order.
func rowFor(rec domain.FlatRecord) []string {
	return []string{
		formatTime(rec.Timestamp, time.RFC3339),
		formatTime(rec.EndTimestamp, time.RFC3339),
		formatTime(rec.Timestamp, "2006-01-02"),
		formatTime(rec.Timestamp, "15:04:05"),
		string(rec.Type),
		orEmpty(rec.ActivityType),
		formatFloat(rec.Probability),
		formatFloat(rec.StartLat),
		formatFloat(rec.StartLon),
		formatFloat(rec.EndLat),
		formatFloat(rec.EndLon),
		formatFloat(rec.DistanceMeters),
		formatFloat(rec.DurationSeconds),
		orEmpty(rec.PlaceID),
		orEmpty(rec.SemanticType),
	}
}

func formatTime(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ReadFile reads a previously written export into header-keyed rows. Short
// rows are tolerated; their missing cells stay absent.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tabular export %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read tabular header %s: %w", path, err)
	}

	var rows []Row
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tabular row %s: %w", path, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
