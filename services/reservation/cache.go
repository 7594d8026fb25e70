package reservation

import (
	"context"
	"encoding/json"
	"time"

	"bookwise/models"
	"bookwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const bucketKeyPrefix = "daybucket:"

// BucketCache is the read-through cache over day buckets. A miss (or
// any cache failure) falls through to the repository; entries are
// invalidated after every successful mutation and never written on a
// failed persist.
type BucketCache interface {
	Get(ctx context.Context, key string) ([]models.ReservationRecord, bool)
	Set(ctx context.Context, key string, records []models.ReservationRecord)
	Invalidate(ctx context.Context, key string)
}

type redisBucketCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBucketCache wraps a Redis client as a BucketCache.
func NewRedisBucketCache(client *redis.Client, ttl time.Duration) BucketCache {
	return &redisBucketCache{client: client, ttl: ttl}
}

func (c *redisBucketCache) Get(ctx context.Context, key string) ([]models.ReservationRecord, bool) {
	raw, err := c.client.Get(ctx, bucketKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var records []models.ReservationRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		utils.GetLogger().Warn("dropping corrupt day-bucket cache entry", zap.String("key", key), zap.Error(err))
		c.Invalidate(ctx, key)
		return nil, false
	}
	return records, true
}

func (c *redisBucketCache) Set(ctx context.Context, key string, records []models.ReservationRecord) {
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, bucketKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache day bucket", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisBucketCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, bucketKeyPrefix+key).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate day bucket", zap.String("key", key), zap.Error(err))
	}
}
