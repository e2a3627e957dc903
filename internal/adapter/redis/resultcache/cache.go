package resultcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

const resultKeyPrefix = "judge:result:"

var _ secondary.ResultCache = (*ResultCache)(nil)

// ResultCache implements the ResultCache interface with Redis
type ResultCache struct {
	redisClient redis.UniversalClient
	ttl         time.Duration
	logger      primary.Logger
}

// NewResultCache creates a new Redis result cache
func NewResultCache(redisClient redis.UniversalClient, ttl time.Duration, logger primary.Logger) *ResultCache {
	return &ResultCache{
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

// Get retrieves a cached verdict by fingerprint
func (c *ResultCache) Get(ctx context.Context, fingerprint string) (*domain.ExecutionResult, bool, error) {
	data, err := c.redisClient.Get(ctx, resultKeyPrefix+fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get cached result", "fingerprint", fingerprint, "error", err)
		return nil, false, fmt.Errorf("failed to get cached result: %w", err)
	}

	var result domain.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	return &result, true, nil
}

// Set stores a verdict with the configured expiration
func (c *ResultCache) Set(ctx context.Context, fingerprint string, result *domain.ExecutionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.redisClient.Set(ctx, resultKeyPrefix+fingerprint, data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to cache result", "fingerprint", fingerprint, "error", err)
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}
