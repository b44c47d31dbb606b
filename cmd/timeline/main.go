// Command timeline analyzes a Google Timeline location-history export.
//
// Analyze mode flattens the export, prints the analysis report, and
// optionally writes the tabular CSV export:
//
//	timeline -input location-history.json -export -csv timeline.csv -report timeline-report.txt
//
// Monthly mode re-aggregates a previously written tabular export by
// calendar month, independently of the raw input:
//
//	timeline -monthly -csv timeline.csv -out monthly-summary.txt
//	timeline -monthly -csv timeline.csv -detail 2025-06
//
// Exit status is 0 on success, including runs where zero segments were
// recognized, and 1 when the input cannot be read or decoded.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/hollyoak/timeline-etl/internal/adapter/tabular"
	"github.com/hollyoak/timeline-etl/internal/adapter/takeout"
	"github.com/hollyoak/timeline-etl/internal/config"
	"github.com/hollyoak/timeline-etl/internal/observability"
	"github.com/hollyoak/timeline-etl/internal/pipeline"
	"github.com/hollyoak/timeline-etl/internal/report"
)

type options struct {
	input      string
	csvPath    string
	reportPath string
	detail     string
	out        string
	export     bool
	monthly    bool
	quiet      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "", "path to the location-history JSON export (analyze mode)")
	flag.BoolVar(&opts.export, "export", false, "also write the tabular CSV export (analyze mode)")
	flag.StringVar(&opts.csvPath, "csv", "", "tabular export path (default from TIMELINE_CSV)")
	flag.StringVar(&opts.reportPath, "report", "", "also write the text report to this path")
	flag.BoolVar(&opts.monthly, "monthly", false, "summarize a previously written tabular export by month")
	flag.StringVar(&opts.detail, "detail", "", "with -monthly, print the row listing for one YYYY-MM month")
	flag.StringVar(&opts.out, "out", "", "with -monthly, also write the summary to this path")
	flag.BoolVar(&opts.quiet, "quiet", false, "suppress stdout output")
	flag.Parse()

	os.Exit(run(opts))
}

func run(opts options) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	logger := observability.NewLogger(cfg).With("run_id", uuid.NewString())

	// Flags override the environment; the environment supplies defaults.
	if opts.csvPath == "" {
		opts.csvPath = cfg.CSVPath
	}
	if opts.reportPath == "" {
		opts.reportPath = cfg.ReportPath
	}
	if opts.out == "" {
		opts.out = cfg.MonthlyPath
	}

	if opts.monthly {
		return runMonthly(opts, logger)
	}
	return runAnalyze(opts, logger)
}

func runAnalyze(opts options, logger *slog.Logger) int {
	if opts.input == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -input")
		flag.Usage()
		return 1
	}

	p := pipeline.New(takeout.NewReader(logger), tabular.NewWriter(logger), logger)

	csvOut := ""
	if opts.export {
		csvOut = opts.csvPath
	}

	result, err := p.Run(context.Background(), opts.input, csvOut)
	if err != nil {
		logger.Error("analysis failed", "input", opts.input, "error", err)
		return 1
	}

	text := report.RenderReport(result.Report)
	if !opts.quiet {
		fmt.Print(text)
	}
	if opts.reportPath != "" {
		if err := writeText(opts.reportPath, text); err != nil {
			logger.Error("write report failed", "path", opts.reportPath, "error", err)
			return 1
		}
		logger.Info("report written", "path", opts.reportPath)
	}
	return 0
}

func runMonthly(opts options, logger *slog.Logger) int {
	rows, err := tabular.ReadFile(opts.csvPath)
	if err != nil {
		logger.Error("monthly summary failed", "csv", opts.csvPath, "error", err)
		return 1
	}

	summary := report.SummarizeMonths(rows)
	logger.Info("tabular export summarized",
		"rows", summary.TotalRows,
		"months", len(summary.Buckets),
		"anomalies", summary.Anomalies,
	)

	text := report.RenderMonthly(summary)
	if opts.detail != "" {
		text = report.RenderMonthDetail(summary, opts.detail)
	}

	if !opts.quiet {
		fmt.Print(text)
	}
	if opts.out != "" {
		if err := writeText(opts.out, text); err != nil {
			logger.Error("write summary failed", "path", opts.out, "error", err)
			return 1
		}
		logger.Info("summary written", "path", opts.out)
	}
	return 0
}

func writeText(path, text string) error {
	return os.WriteFile(path, []byte(text), 0o644)
}
