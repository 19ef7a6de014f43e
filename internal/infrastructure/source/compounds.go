package source

import (
	"strconv"
	"strings"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// LoadCompounds registers the compounds of the tab-separated structure file
// at path (header row, then species id and SMILES per row) into registry.
// It returns the number of compounds registered.  Registration is
// first-record-wins, so pre-seeded registry entries are preserved.
func LoadCompounds(path string, registry *pathway.Registry, logger logging.Logger) (int, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	rows, err := readCSVFile(path, '\t')
	if err != nil {
		return 0, err
	}
	if len(rows) <= 1 {
		return 0, errors.Newf(errors.ErrCodeSourceEmpty, "compound file %s holds no rows", path)
	}

	count := 0
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		id := strings.TrimSpace(row[0])
		if id == "" {
			continue
		}
		smiles := strings.TrimSpace(row[1])
		registry.Register(pathway.NewCompound(id, pathway.Structure{SMILES: smiles}))
		count++
	}

	logger.Debug("compound file read",
		logging.String("path", path),
		logging.Int("compounds", count),
	)
	return count, nil
}

// ScoreTSVReader loads a rule score table from the tab-separated rule file:
// columns resolved by header name, one score per (rule, template reaction)
// pair.
type ScoreTSVReader struct {
	path   string
	logger logging.Logger
}

// NewScoreTSVReader constructs a reader over the TSV at path.
func NewScoreTSVReader(path string, logger logging.Logger) *ScoreTSVReader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ScoreTSVReader{path: path, logger: logger.Named("score-source")}
}

// Load reads the whole table into memory.  Later rows win on duplicate
// (rule, template) pairs.
func (r *ScoreTSVReader) Load() (transformation.StaticScoreTable, error) {
	rows, err := readCSVFile(r.path, '\t')
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, errors.Newf(errors.ErrCodeSourceEmpty, "rule score file %s holds no rows", r.path)
	}

	cols, err := headerIndex(rows[0], "Rule_ID", "Reaction_ID", "Score")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceMalformed, r.path)
	}

	table := make(transformation.StaticScoreTable)
	for _, row := range rows[1:] {
		ruleID := strings.TrimSpace(row[cols["Rule_ID"]])
		templateID := strings.TrimSpace(row[cols["Reaction_ID"]])
		score, err := strconv.ParseFloat(strings.TrimSpace(row[cols["Score"]]), 64)
		if err != nil {
			return nil, errors.Newf(errors.ErrCodeSourceMalformed,
				"rule score %q is not numeric", row[cols["Score"]])
		}
		if table[ruleID] == nil {
			table[ruleID] = make(map[string]float64)
		}
		table[ruleID][templateID] = score
	}

	r.logger.Debug("rule score file read",
		logging.String("path", r.path),
		logging.Int("rules", len(table)),
	)
	return table, nil
}
