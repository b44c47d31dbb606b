// Package takeout reads the location-history JSON export from disk and
// decodes it into raw segments.
package takeout

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/hollyoak/timeline-etl/internal/domain"
)

// Reader decodes a location-history export file.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read loads and decodes the export at path. The file may be a bare JSON
// array of segments or an object wrapping one under "semanticSegments";
// unknown keys anywhere are tolerated. Failure to read or decode the
// container is the one fatal error class in the pipeline.
func (r *Reader) Read(path string) ([]domain.RawSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}

	var segments []domain.RawSegment
	if err := json.Unmarshal(data, &segments); err == nil {
		r.logger.Debug("decoded export", "path", path, "segments", len(segments), "layout", "array")
		return segments, nil
	}

	var wrapped struct {
		SemanticSegments []domain.RawSegment `json:"semanticSegments"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode export %s: %w", path, err)
	}
	if wrapped.SemanticSegments == nil {
		return nil, fmt.Errorf("decode export %s: no segment array found", path)
	}

	r.logger.Debug("decoded export", "path", path, "segments", len(wrapped.SemanticSegments), "layout", "semanticSegments")
	return wrapped.SemanticSegments, nil
}
