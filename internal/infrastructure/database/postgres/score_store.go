// Package postgres provides a PostgreSQL-backed rule score table for
// deployments where the score corpus is too large to ship as a flat file.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// Config holds the PostgreSQL connection settings.
type Config struct {
	DSN string `mapstructure:"dsn"`
}

// ScoreStore resolves rule scores from the rule_scores table.  Lookup misses
// report "not found"; transport errors are logged and likewise degrade to a
// miss so a flaky database cannot abort a run mid-expansion.
type ScoreStore struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewScoreStore connects to PostgreSQL and verifies the connection.
func NewScoreStore(ctx context.Context, cfg Config, logger logging.Logger) (*ScoreStore, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "creating postgres pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "pinging postgres")
	}

	return &ScoreStore{pool: pool, logger: logger.Named("score-store")}, nil
}

// Score implements transformation.RuleScoreTable.
func (s *ScoreStore) Score(ctx context.Context, ruleID, templateID string) (float64, bool) {
	var score float64
	err := s.pool.QueryRow(ctx,
		`SELECT score FROM rule_scores WHERE rule_id = $1 AND template_id = $2`,
		ruleID, templateID,
	).Scan(&score)
	if err == pgx.ErrNoRows {
		return 0, false
	}
	if err != nil {
		s.logger.Warn("rule score query failed",
			logging.String("rule", ruleID),
			logging.String("template", templateID),
			logging.Err(err),
		)
		return 0, false
	}
	return score, true
}

// Close releases the pool's connections.
func (s *ScoreStore) Close() {
	s.pool.Close()
}
