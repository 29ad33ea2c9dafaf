package problemcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

const (
	problemKeyPrefix = "problems:daily:"
	cacheExpiration  = 26 * time.Hour
)

var _ secondary.ProblemCache = (*ProblemCache)(nil)

// ProblemCache implements the ProblemCache interface with Redis. A
// day's set is immutable once generated, so the whole document is
// cached under one dated key.
type ProblemCache struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewProblemCache creates a new Redis problem cache
func NewProblemCache(redisClient *redis.Client, logger primary.Logger) *ProblemCache {
	return &ProblemCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

func cacheKey(category domain.Category, asOf time.Time) string {
	return fmt.Sprintf("%s%s:%s", problemKeyPrefix, category, asOf.UTC().Format("2006-01-02"))
}

// GetDaily returns the cached set for the day or (nil, nil) on a miss.
func (c *ProblemCache) GetDaily(ctx context.Context, category domain.Category, asOf time.Time) (*domain.ProblemSet, error) {
	data, err := c.redisClient.Get(ctx, cacheKey(category, asOf)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached problem set: %w", err)
	}

	var problems []domain.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached problem set: %w", err)
	}

	return &domain.ProblemSet{Date: asOf, Category: category, Problems: problems}, nil
}

// PutDaily caches a set until well past the end of its day.
func (c *ProblemCache) PutDaily(ctx context.Context, set *domain.ProblemSet) error {
	data, err := json.Marshal(set.Problems)
	if err != nil {
		return fmt.Errorf("failed to marshal problem set: %w", err)
	}

	key := cacheKey(set.Category, set.Date)
	if err := c.redisClient.Set(ctx, key, data, cacheExpiration).Err(); err != nil {
		c.logger.Error("Failed to cache problem set", "key", key, "error", err)
		return fmt.Errorf("failed to cache problem set: %w", err)
	}
	return nil
}
