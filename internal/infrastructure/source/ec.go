package source

import (
	"context"
	"strings"

	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// noECSentinel is the placeholder the upstream network writer emits for
// transformations without an EC annotation.
const noECSentinel = "NOEC"

// MetNetECReader extracts EC number annotations from the metabolic network
// CSV: the transformation id sits in the second column, the bracketed EC list
// in the twelfth.
type MetNetECReader struct {
	path   string
	logger logging.Logger
}

// NewMetNetECReader constructs a reader over the CSV at path.
func NewMetNetECReader(path string, logger logging.Logger) *MetNetECReader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MetNetECReader{path: path, logger: logger.Named("ec-source")}
}

// ECNumbers implements transformation.ECSource.  The NOEC sentinel and empty
// entries are filtered out, so unannotated transformations map to nil.
func (r *MetNetECReader) ECNumbers(_ context.Context) (map[string][]string, error) {
	rows, err := readCSVFile(r.path, ',')
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string)
	for i, row := range rows {
		if i == 0 || len(row) < 12 {
			continue
		}
		transfoID := strings.TrimSpace(row[1])
		if transfoID == "" {
			continue
		}
		for _, ec := range parseBracketList(row[11]) {
			if ec == noECSentinel {
				continue
			}
			out[transfoID] = append(out[transfoID], ec)
		}
	}

	r.logger.Debug("metabolic network read",
		logging.String("path", r.path),
		logging.Int("annotated_transformations", len(out)),
	)
	return out, nil
}

// parseBracketList parses "[a, b, c]" into its trimmed, non-empty elements.
func parseBracketList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SinkCSVReader reads the sink species set: one species id per row, first
// column, header skipped.
type SinkCSVReader struct {
	path   string
	logger logging.Logger
}

// NewSinkCSVReader constructs a reader over the CSV at path.
func NewSinkCSVReader(path string, logger logging.Logger) *SinkCSVReader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SinkCSVReader{path: path, logger: logger.Named("sink-source")}
}

// Sink implements transformation.SinkSource.
func (r *SinkCSVReader) Sink(_ context.Context) (map[string]struct{}, error) {
	rows, err := readCSVFile(r.path, ',')
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Newf(errors.ErrCodeSourceEmpty, "sink file %s is empty", r.path)
	}

	out := make(map[string]struct{}, len(rows)-1)
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if id := strings.TrimSpace(row[0]); id != "" {
			out[id] = struct{}{}
		}
	}

	r.logger.Debug("sink file read",
		logging.String("path", r.path),
		logging.Int("species", len(out)),
	)
	return out, nil
}
