// Package pipeline orchestrates one full analysis run: decode the export,
// flatten every recognized segment, aggregate, and emit the tabular file.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hollyoak/timeline-etl/internal/domain"
	"github.com/hollyoak/timeline-etl/internal/report"
)

// Source decodes the raw export into segments.
type Source interface {
	Read(path string) ([]domain.RawSegment, error)
}

// TableWriter persists flattened records as the tabular export.
type TableWriter interface {
	Write(path string, records []domain.FlatRecord) error
}

// Pipeline wires the analysis stages together.
type Pipeline struct {
	source Source
	table  TableWriter
	logger *slog.Logger
}

// New creates a Pipeline with the given stages.
func New(source Source, table TableWriter, logger *slog.Logger) *Pipeline {
	return &Pipeline{source: source, table: table, logger: logger}
}

// Result carries everything one run produced. Runs are independent and
// idempotent given the same input file.
type Result struct {
	Records []domain.FlatRecord
	Stats   domain.ExtractStats
	Report  *report.AggregateReport
}

// Run executes one pass over the export at inputPath. When csvPath is
// non-empty the flattened records are also written there. Zero recognized
// segments is a valid, reportable outcome, not an error; only failure to
// read or decode the input, or to write the export, is.
func (p *Pipeline) Run(ctx context.Context, inputPath, csvPath string) (*Result, error) {
	segments, err := p.source.Read(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	p.logger.Info("export decoded", "path", inputPath, "segments", len(segments))

	records, stats := domain.ExtractAll(segments)
	p.logger.Info("segments flattened",
		"records", len(records),
		"skipped", stats.Skipped,
		"anomalies", stats.Anomalies,
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if csvPath != "" {
		if err := p.table.Write(csvPath, records); err != nil {
			return nil, fmt.Errorf("write tabular export: %w", err)
		}
	}

	return &Result{
		Records: records,
		Stats:   stats,
		Report:  report.Build(records, stats),
	}, nil
}
