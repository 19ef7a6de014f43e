package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// rebuildSide mirrors one side of a template record on disk.
type rebuildSide struct {
	Struct   map[string]int `json:"struct"`
	NoStruct map[string]int `json:"nostruct"`
}

// rebuildTemplate is one template reaction record of a rule.
type rebuildTemplate struct {
	ID    string      `json:"id"`
	Left  rebuildSide `json:"left"`
	Right rebuildSide `json:"right"`
}

// FileRebuildService answers rebuild queries from a precomputed JSON
// document mapping rule ids to their template reaction records.  The reaction
// expression is ignored; the document is assumed to be computed for the same
// transformation set the run reads.
type FileRebuildService struct {
	byRule map[string][]rebuildTemplate
	logger logging.Logger
}

// NewFileRebuildService loads the JSON document at path.
func NewFileRebuildService(path string, logger logging.Logger) (*FileRebuildService, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceNotFound, path)
	}
	byRule := make(map[string][]rebuildTemplate)
	if err := json.Unmarshal(raw, &byRule); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, path)
	}

	return &FileRebuildService{byRule: byRule, logger: logger.Named("rebuild-source")}, nil
}

// Rebuild implements transformation.RebuildService.  A rule absent from the
// document resolves to an empty completion, not an error.
func (s *FileRebuildService) Rebuild(_ context.Context, ruleID, _, direction string) (transformation.RuleCompletion, error) {
	if direction != transformation.DirectionForward {
		return transformation.RuleCompletion{}, errors.Newf(errors.ErrCodeRebuildFailed,
			"unsupported rebuild direction %q", direction)
	}

	templates, ok := s.byRule[ruleID]
	if !ok {
		s.logger.Debug("rule absent from rebuild document", logging.String("rule", ruleID))
		return transformation.RuleCompletion{}, nil
	}

	rc := transformation.RuleCompletion{
		TemplateIDs: make([]string, 0, len(templates)),
		ByTemplate:  make(map[string]transformation.AddedCompounds, len(templates)),
	}
	for _, tmpl := range templates {
		rc.TemplateIDs = append(rc.TemplateIDs, tmpl.ID)
		rc.ByTemplate[tmpl.ID] = transformation.AddedCompounds{
			Left:  transformation.SideCompounds{Struct: tmpl.Left.Struct, NoStruct: tmpl.Left.NoStruct},
			Right: transformation.SideCompounds{Struct: tmpl.Right.Struct, NoStruct: tmpl.Right.NoStruct},
		}
	}
	return rc, nil
}
