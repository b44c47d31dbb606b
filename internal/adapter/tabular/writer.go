package tabular

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hollyoak/timeline-etl/internal/domain"
)

// Writer persists flattened records as the CSV export.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a Writer.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write writes header plus one row per record to path. The file is written
// to a temp sibling and renamed into place, so a failure partway through
// never leaves a truncated file at the destination.
func (w *Writer) Write(path string, records []domain.FlatRecord) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp export: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	cw := csv.NewWriter(tmp)
	if err = cw.Write(Columns); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, rec := range records {
		if err = cw.Write(rowFor(rec)); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync export: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalize export %s: %w", path, err)
	}

	w.logger.Info("tabular export written", "path", path, "rows", len(records))
	return nil
}
