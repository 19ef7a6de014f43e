// Package redis provides a Redis-backed compound structure cache.  Species
// structures resolved by previous runs are shared across processes through
// hashes keyed by species id.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

const compoundKeyPrefix = "cmpd:"

// Config holds the Redis connection settings.
type Config struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CompoundCache resolves compound structures from Redis hashes.  Cache
// misses and transport errors both report "not found"; the caller degrades
// to a placeholder compound either way.
type CompoundCache struct {
	client *redis.Client
	logger logging.Logger
}

// NewCompoundCache connects to Redis and verifies the connection.
func NewCompoundCache(cfg Config, logger logging.Logger) (*CompoundCache, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, fmt.Sprintf("pinging redis at %s", cfg.Addr))
	}

	return &CompoundCache{client: client, logger: logger.Named("compound-cache")}, nil
}

// Structure implements transformation.CompoundSource.
func (c *CompoundCache) Structure(ctx context.Context, id string) (pathway.Structure, bool) {
	fields, err := c.client.HGetAll(ctx, compoundKeyPrefix+id).Result()
	if err != nil {
		c.logger.Warn("compound cache lookup failed",
			logging.String("species", id), logging.Err(err))
		return pathway.Structure{}, false
	}
	if len(fields) == 0 {
		return pathway.Structure{}, false
	}
	return pathway.Structure{
		SMILES:   fields["smiles"],
		InChI:    fields["inchi"],
		InChIKey: fields["inchikey"],
		Formula:  fields["formula"],
		Name:     fields["name"],
	}, true
}

// Store caches the structure of one species.
func (c *CompoundCache) Store(ctx context.Context, id string, strc pathway.Structure) error {
	err := c.client.HSet(ctx, compoundKeyPrefix+id, map[string]interface{}{
		"smiles":   strc.SMILES,
		"inchi":    strc.InChI,
		"inchikey": strc.InChIKey,
		"formula":  strc.Formula,
		"name":     strc.Name,
	}).Err()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "storing compound "+id)
	}
	return nil
}

// Close releases the client's connections.
func (c *CompoundCache) Close() error {
	return c.client.Close()
}
