package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisSnapshotCache stores one JSON-encoded snapshot per campaign. Entries
// carry a TTL as a backstop; explicit invalidation on approval is the
// primary freshness mechanism.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(campaignID string) string { return "fundraiser:snapshot:" + campaignID }

func (c *RedisSnapshotCache) Get(ctx context.Context, campaignID string) (domain.Snapshot, bool, error) {
	raw, err := c.client.Get(ctx, snapshotKey(campaignID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// A decode failure means a stale or corrupt entry; treat as a miss.
		return domain.Snapshot{}, false, nil
	}
	return snapshot, true, nil
}

func (c *RedisSnapshotCache) Put(ctx context.Context, snapshot domain.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey(snapshot.CampaignID), raw, c.ttl).Err()
}

func (c *RedisSnapshotCache) Invalidate(ctx context.Context, campaignID string) error {
	return c.client.Del(ctx, snapshotKey(campaignID)).Err()
}

// RedisViewCounter tracks campaign page views with a plain INCR.
type RedisViewCounter struct {
	client *redis.Client
}

func NewRedisViewCounter(client *redis.Client) *RedisViewCounter {
	return &RedisViewCounter{client: client}
}

func viewKey(campaignID string) string { return "fundraiser:views:" + campaignID }

func (c *RedisViewCounter) Increment(ctx context.Context, campaignID string) (int64, error) {
	return c.client.Incr(ctx, viewKey(campaignID)).Result()
}

func (c *RedisViewCounter) Get(ctx context.Context, campaignID string) (int64, error) {
	n, err := c.client.Get(ctx, viewKey(campaignID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
