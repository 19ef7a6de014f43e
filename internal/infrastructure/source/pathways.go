// Package source provides file-backed adapters for the completion engine's
// input ports: master pathways, EC annotations, sink species, compound
// structures, rule scores, and a fixture-style rebuild service.
package source

import (
	"context"
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// PathwayCSVReader reads master pathways and their transformations from the
// retrosynthesis search's pathway CSV.  Each row is one transformation of one
// master pathway; columns are resolved by header name.
type PathwayCSVReader struct {
	path   string
	logger logging.Logger
}

// NewPathwayCSVReader constructs a reader over the CSV at path.
func NewPathwayCSVReader(path string, logger logging.Logger) *PathwayCSVReader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PathwayCSVReader{path: path, logger: logger.Named("pathway-source")}
}

// Read implements transformation.PathwaySource.  Master pathways come back
// sorted by ascending id; the transformation order within each pathway is the
// row order of the file.  The "Unique ID" column carries a two-character
// iteration suffix that is stripped to obtain the transformation id.
func (r *PathwayCSVReader) Read(_ context.Context) ([]transformation.MasterPathway, map[string]*transformation.Transformation, error) {
	rows, err := readCSVFile(r.path, ',')
	if err != nil {
		return nil, nil, err
	}
	if len(rows) <= 1 {
		return nil, nil, errors.Newf(errors.ErrCodeSourceEmpty, "pathway file %s holds no rows", r.path)
	}

	cols, err := headerIndex(rows[0], "Path ID", "Unique ID", "Rule ID", "Left", "Right")
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeSourceMalformed, r.path)
	}

	transfos := make(map[string]*transformation.Transformation)
	byMaster := make(map[int][]string)
	for _, row := range rows[1:] {
		pathID, err := strconv.Atoi(strings.TrimSpace(row[cols["Path ID"]]))
		if err != nil {
			return nil, nil, errors.Newf(errors.ErrCodeInvalidPathwayID,
				"pathway id %q is not an integer", row[cols["Path ID"]])
		}

		uid := strings.TrimSpace(row[cols["Unique ID"]])
		if len(uid) <= 2 {
			return nil, nil, errors.Newf(errors.ErrCodeSourceMalformed,
				"unique id %q is too short to carry an iteration suffix", uid)
		}
		transfoID := uid[:len(uid)-2]

		byMaster[pathID] = append(byMaster[pathID], transfoID)

		if _, ok := transfos[transfoID]; ok {
			continue
		}
		left, err := parseSide(row[cols["Left"]])
		if err != nil {
			return nil, nil, err
		}
		right, err := parseSide(row[cols["Right"]])
		if err != nil {
			return nil, nil, err
		}
		transfos[transfoID] = &transformation.Transformation{
			ID:      transfoID,
			Left:    left,
			Right:   right,
			RuleIDs: splitList(row[cols["Rule ID"]]),
		}
	}

	masters := make([]transformation.MasterPathway, 0, len(byMaster))
	for id, transfoIDs := range byMaster {
		masters = append(masters, transformation.MasterPathway{ID: id, TransfoIDs: transfoIDs})
	}
	sort.Slice(masters, func(i, j int) bool { return masters[i].ID < masters[j].ID })

	r.logger.Debug("pathway file read",
		logging.String("path", r.path),
		logging.Int("master_pathways", len(masters)),
		logging.Int("transformations", len(transfos)),
	)
	return masters, transfos, nil
}

// parseSide parses a stoichiometry list of the form
// "1.CMPD_0000000003:2.MNXM13": colon-separated entries, each a coefficient
// and a species id joined by the first dot.
func parseSide(raw string) (map[string]int, error) {
	out := make(map[string]int)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}
	for _, entry := range strings.Split(raw, ":") {
		parts := strings.SplitN(entry, ".", 2)
		if len(parts) != 2 {
			return nil, errors.Newf(errors.ErrCodeSourceMalformed,
				"stoichiometry entry %q is not of the form sto.species", entry)
		}
		sto, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, errors.Newf(errors.ErrCodeSourceMalformed,
				"stoichiometry coefficient %q is not numeric", parts[0])
		}
		out[parts[1]] += int(sto)
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readCSVFile loads every record of the file at path.  Records may have a
// variable number of fields; the callers validate what they need.
func readCSVFile(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceNotFound, path)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceMalformed, path)
	}
	return rows, nil
}

// headerIndex maps the wanted column names to their positions in header.
func headerIndex(header []string, wanted ...string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}
	out := make(map[string]int, len(wanted))
	for _, name := range wanted {
		idx, ok := byName[name]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeSourceMalformed, "missing column %q", name)
		}
		out[name] = idx
	}
	return out, nil
}
