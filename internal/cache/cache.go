package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"heala/config"
	"heala/internal/domain"
)

const practitionerKeyPrefix = "practitioner:"

// PractitionerCache caches public practitioner profiles. Nil is a valid
// receiver on every method so callers don't need to branch when the cache
// is not configured.
type PractitionerCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewPractitionerCache(cfg config.RedisConfig, logger *zap.Logger) (*PractitionerCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &PractitionerCache{
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

func (c *PractitionerCache) Get(ctx context.Context, id string) (*domain.Practitioner, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, practitionerKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}

	var practitioner domain.Practitioner
	if err := json.Unmarshal(data, &practitioner); err != nil {
		c.logger.Warn("discarding corrupt cache entry", zap.String("id", id), zap.Error(err))
		c.client.Del(ctx, practitionerKeyPrefix+id)
		return nil, false
	}

	return &practitioner, true
}

func (c *PractitionerCache) Set(ctx context.Context, practitioner *domain.Practitioner) {
	if c == nil {
		return
	}

	data, err := json.Marshal(practitioner)
	if err != nil {
		c.logger.Warn("marshalling practitioner for cache", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, practitionerKeyPrefix+practitioner.ID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("writing practitioner cache entry", zap.Error(err))
	}
}

func (c *PractitionerCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, practitionerKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("invalidating practitioner cache entry", zap.Error(err))
	}
}

func (c *PractitionerCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
