package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pdv/terminal/internal/domain/catalog"
)

// SnapshotCache stores the last good catalog snapshot per tenant so a
// restarted terminal can render the grid before the first live refresh
// completes.
type SnapshotCache interface {
	Get(ctx context.Context, tenantID string) (*catalog.Snapshot, error)
	Set(ctx context.Context, tenantID string, snapshot *catalog.Snapshot) error
	Invalidate(ctx context.Context, tenantID string) error
}

// ErrCacheMiss is returned when no snapshot is cached for the tenant
var ErrCacheMiss = errors.New("snapshot cache miss")

const keyPrefix = "pdv:snapshot:"

// RedisSnapshotCache is a Redis-backed SnapshotCache storing snapshots as
// JSON with a TTL
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSnapshotCache creates a Redis-backed snapshot cache
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSnapshotCache {
	return &RedisSnapshotCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func snapshotKey(tenantID string) string {
	return keyPrefix + tenantID
}

// Get returns the cached snapshot for the tenant, or ErrCacheMiss
func (c *RedisSnapshotCache) Get(ctx context.Context, tenantID string) (*catalog.Snapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get snapshot: %w", err)
	}

	var snapshot catalog.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// A corrupt entry is treated as a miss so the loader refetches
		c.logger.Warn("discarding corrupt cached snapshot",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		return nil, ErrCacheMiss
	}
	return &snapshot, nil
}

// Set stores the snapshot for the tenant
func (c *RedisSnapshotCache) Set(ctx context.Context, tenantID string, snapshot *catalog.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("cache: marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(tenantID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for the tenant
func (c *RedisSnapshotCache) Invalidate(ctx context.Context, tenantID string) error {
	if err := c.client.Del(ctx, snapshotKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("cache: invalidate snapshot: %w", err)
	}
	return nil
}

// NoopSnapshotCache is used when Redis is not configured. Every read is a
// miss and writes are dropped.
type NoopSnapshotCache struct{}

// NewNoopSnapshotCache creates a cache that never hits
func NewNoopSnapshotCache() *NoopSnapshotCache { return &NoopSnapshotCache{} }

func (*NoopSnapshotCache) Get(context.Context, string) (*catalog.Snapshot, error) {
	return nil, ErrCacheMiss
}

func (*NoopSnapshotCache) Set(context.Context, string, *catalog.Snapshot) error { return nil }

func (*NoopSnapshotCache) Invalidate(context.Context, string) error { return nil }

var (
	_ SnapshotCache = (*RedisSnapshotCache)(nil)
	_ SnapshotCache = (*NoopSnapshotCache)(nil)
)
