package transformation

import (
	"context"
	"sort"
	"strings"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
)

// Completer queries the rebuild service once per candidate rule of a
// transformation and stores the per-template added-compounds records in the
// transformation's complement map.
type Completer struct {
	rebuild  RebuildService
	registry *pathway.Registry
	logger   logging.Logger
}

// NewCompleter constructs a Completer.  The registry supplies the SMILES of
// the transformation's own species when rendering the reaction expression.
func NewCompleter(rebuild RebuildService, registry *pathway.Registry, logger logging.Logger) *Completer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Completer{rebuild: rebuild, registry: registry, logger: logger.Named("completer")}
}

// Complete populates t.Complement and t.EC.  Each rule is queried
// independently; a rule the service cannot resolve maps to an empty
// completion and contributes no candidates, without aborting the
// transformation.
func (c *Completer) Complete(ctx context.Context, t *Transformation, ec []string) error {
	t.EC = ec
	t.Complement = make(map[string]RuleCompletion, len(t.RuleIDs))

	expr := c.reactionExpression(t)

	for _, ruleID := range t.RuleIDs {
		rc, err := c.rebuild.Rebuild(ctx, ruleID, expr, DirectionForward)
		if err != nil {
			c.logger.Warn("rebuild lookup failed, rule contributes no candidates",
				logging.String("transformation", t.ID),
				logging.String("rule", ruleID),
				logging.Err(err),
			)
			t.Complement[ruleID] = RuleCompletion{}
			continue
		}
		t.Complement[ruleID] = rc
	}

	return ctx.Err()
}

// reactionExpression renders the transformation as a single reaction
// expression: left-side SMILES joined by ".", ">>", right-side likewise.
// Species ids are resolved through the registry; unknown structures render
// as empty strings.
func (c *Completer) reactionExpression(t *Transformation) string {
	return c.sideExpression(t.Left) + ">>" + c.sideExpression(t.Right)
}

func (c *Completer) sideExpression(side map[string]int) string {
	ids := make([]string, 0, len(side))
	for id := range side {
		ids = append(ids, id)
	}
	// Sorted for a reproducible expression; the rebuild service treats the
	// expression as an unordered compound set.
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if cmpd, ok := c.registry.Lookup(id); ok {
			parts = append(parts, cmpd.SMILES)
		} else {
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, ".")
}
