package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fleet-ops-service/internal/domain"
	"fleet-ops-service/internal/platform/obs"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotCache stores computed snapshots as JSON in Redis so several
// server instances can share them.
type RedisSnapshotCache struct {
	Client *redis.Client
}

func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{Client: client}
}

// Connect to Redis at addr and verify the connection.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("dial redis %s: ping: %w", addr, err)
	}

	log.Printf("connected to redis addr=%s", addr)
	return client, nil
}

func (c *RedisSnapshotCache) GetSnapshot(ctx context.Context, key string) (_ domain.Snapshot, _ bool, err error) {
	defer obs.Time(ctx, "snapshot.cache.Get")(&err)

	if c.Client == nil {
		return domain.Snapshot{}, false, errors.New("snapshot cache: redis client is nil")
	}

	data, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("get snapshot %s: %w", key, err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("get snapshot %s: decode: %w", key, err)
	}
	return snap, true, nil
}

func (c *RedisSnapshotCache) PutSnapshot(ctx context.Context, key string, snap domain.Snapshot, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "snapshot.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("snapshot cache: redis client is nil")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("put snapshot %s: encode: %w", key, err)
	}
	if err := c.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return nil
}
