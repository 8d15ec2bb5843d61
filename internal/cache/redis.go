package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsKey caches the dashboard aggregates under the "dashboard:" namespace
// that InvalidateDashboard clears.
const StatsKey = "dashboard:stats"

// StatsTTL keeps dashboard aggregates slightly stale at most.
const StatsTTL = 5 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. A failed connection degrades to a
// nil client and every cache call becomes a no-op.
func Init(addr, password string, db int) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when the cache is disabled.
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key.
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL.
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateDashboard clears every dashboard aggregate. Called after each
// state-changing dispatch; recomputation happens lazily on the next read.
func InvalidateDashboard(ctx context.Context) {
	InvalidatePattern(ctx, "dashboard:*")
}

// IsHealthy returns true if the Redis connection is working.
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
