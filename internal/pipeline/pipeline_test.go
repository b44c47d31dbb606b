package pipeline_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollyoak/timeline-etl/internal/adapter/tabular"
	"github.com/hollyoak/timeline-etl/internal/adapter/takeout"
	"github.com/hollyoak/timeline-etl/internal/domain"
	"github.com/hollyoak/timeline-etl/internal/pipeline"
	"github.com/hollyoak/timeline-etl/internal/report"
)

const sampleExport = `{
  "semanticSegments": [
    {
      "startTime": "2025-06-01T08:00:00Z",
      "endTime": "2025-06-01T08:30:00Z",
      "activity": {
        "start": {"latLng": "37.7749°, -122.4194°"},
        "end": {"latLng": "37.7750°, -122.4180°"},
        "distanceMeters": 130.0,
        "topCandidate": {"type": "WALKING", "probability": 0.9}
      }
    },
    {
      "startTime": "2025-06-01T09:00:00Z",
      "endTime": "2025-06-01T10:00:00Z",
      "visit": {
        "topCandidate": {
          "placeId": "place-1",
          "semanticType": "HOME",
          "probability": 0.8,
          "placeLocation": {"latLng": "37.7749°, -122.4194°"}
        }
      }
    },
    {
      "startTime": "2025-07-02T11:00:00Z",
      "timelinePath": [
        {"point": "37.7751°, -122.4190°", "durationMinutesOffsetFromStartTime": "5"}
      ]
    },
    {"unrecognizedShape": {"payload": true}}
  ]
}`

func newPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	logger := slog.Default()
	return pipeline.New(takeout.NewReader(logger), tabular.NewWriter(logger), logger)
}

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "location-history.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	input := writeExport(t, sampleExport)
	csvPath := filepath.Join(filepath.Dir(input), "timeline.csv")

	result, err := newPipeline(t).Run(context.Background(), input, csvPath)
	require.NoError(t, err)

	assert.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.Equal(t, 3, result.Report.TotalRecords)
	assert.Equal(t, 1, result.Report.TypeCounts[domain.RecordActivity])
	assert.Equal(t, 1, result.Report.TypeCounts[domain.RecordVisit])
	assert.Equal(t, 1, result.Report.TypeCounts[domain.RecordPosition])

	rows, err := tabular.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

// The monthly pass over the written table must reproduce the totals the
// aggregator computed directly from the records.
func TestRun_TabularRoundTripMatchesAggregator(t *testing.T) {
	input := writeExport(t, sampleExport)
	csvPath := filepath.Join(filepath.Dir(input), "timeline.csv")

	result, err := newPipeline(t).Run(context.Background(), input, csvPath)
	require.NoError(t, err)

	rows, err := tabular.ReadFile(csvPath)
	require.NoError(t, err)

	summary := report.SummarizeMonths(rows)
	assert.Equal(t, result.Report.TotalRecords, summary.TotalRows)

	total := 0.0
	for _, bucket := range summary.Buckets {
		total += bucket.DistanceMeters
	}
	assert.InDelta(t, result.Report.TotalDistanceMeters, total, 1e-6)

	// June and July segments land in distinct, ordered buckets.
	require.Len(t, summary.Buckets, 2)
	assert.Equal(t, "2025-06", summary.Buckets[0].Month)
	assert.Equal(t, "2025-07", summary.Buckets[1].Month)
}

func TestRun_Idempotent(t *testing.T) {
	input := writeExport(t, sampleExport)

	first, err := newPipeline(t).Run(context.Background(), input, "")
	require.NoError(t, err)
	second, err := newPipeline(t).Run(context.Background(), input, "")
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first.Records, second.Records))
	assert.Equal(t, first.Stats, second.Stats)
}

func TestRun_ZeroRecognizedSegmentsIsNotAnError(t *testing.T) {
	input := writeExport(t, `[{"mystery": 1}, {"alsoMystery": 2}]`)

	result, err := newPipeline(t).Run(context.Background(), input, "")
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 2, result.Stats.Skipped)
	assert.Equal(t, 0, result.Report.TotalRecords)
}

func TestRun_SkipsCSVWhenPathEmpty(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(input, []byte(sampleExport), 0o644))

	_, err := newPipeline(t).Run(context.Background(), input, "")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1) // just the input
}

func TestRun_FatalErrors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		_, err := newPipeline(t).Run(context.Background(), filepath.Join(t.TempDir(), "absent.json"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read input")
	})

	t.Run("undecodable input", func(t *testing.T) {
		input := writeExport(t, "not json at all")
		_, err := newPipeline(t).Run(context.Background(), input, "")
		require.Error(t, err)
	})

	t.Run("unwritable export path", func(t *testing.T) {
		input := writeExport(t, sampleExport)
		_, err := newPipeline(t).Run(context.Background(), input, filepath.Join(t.TempDir(), "missing", "out.csv"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "write tabular export")
	})
}
