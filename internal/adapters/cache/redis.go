// Package cache provides an optional Redis-backed prediction cache.
//
// Cache keys embed the snapshot's trained-at instant, so entries computed
// against a superseded model stop being addressed after a retrain and expire
// by TTL. The cache is strictly best-effort: every miss or Redis error falls
// through to the engine.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pitchside/oracle/internal/domain/model"
	"github.com/pitchside/oracle/pkg/logger"
	"github.com/pitchside/oracle/pkg/metrics"
)

const defaultTTL = 10 * time.Minute

// PredictionCache stores computed predictions keyed by fixture and model
// generation.
type PredictionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// Option applies a configuration option to the PredictionCache.
type Option func(*PredictionCache)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *PredictionCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New creates a cache backed by the given Redis client.
func New(client *redis.Client, opts ...Option) *PredictionCache {
	c := &PredictionCache{
		client: client,
		ttl:    defaultTTL,
		logger: logger.Get().Named("cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds the cache key for a fixture under the model trained at the
// given instant.
func Key(trainedAt time.Time, team1, team2, venue string) string {
	return fmt.Sprintf("oracle:prediction:%d:%s|%s|%s", trainedAt.Unix(), team1, team2, venue)
}

// Get returns the cached prediction for key, if present.
func (c *PredictionCache) Get(ctx context.Context, key string) (model.Prediction, bool) {
	b, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.RecordPredictionCacheMiss()
		return model.Prediction{}, false
	}
	if err != nil {
		metrics.RecordPredictionCacheMiss()
		c.logger.Warn(ctx, "prediction cache read failed", logger.Error(err))
		return model.Prediction{}, false
	}
	var p model.Prediction
	if err := json.Unmarshal(b, &p); err != nil {
		metrics.RecordPredictionCacheMiss()
		c.logger.Warn(ctx, "prediction cache entry corrupt", logger.Error(err))
		return model.Prediction{}, false
	}
	metrics.RecordPredictionCacheHit()
	return p, true
}

// Set stores the prediction under key with the configured TTL. Failures are
// logged and ignored.
func (c *PredictionCache) Set(ctx context.Context, key string, p model.Prediction) {
	b, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn(ctx, "prediction cache encode failed", logger.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "prediction cache write failed", logger.Error(err))
	}
}

// Close releases the Redis client.
func (c *PredictionCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close prediction cache: %w", err)
	}
	return nil
}
