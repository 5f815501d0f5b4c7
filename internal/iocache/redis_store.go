package iocache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/schema"
)

// redisKeyPrefix namespaces cache entries. Each entry is a hash with the fields
// value, version and ts.
const redisKeyPrefix = "pulse:cache:"

// redisOpTimeout bounds every single store operation.
const redisOpTimeout = 5 * time.Second

// RedisStore stores cached responses in Redis hashes.
type RedisStore struct {
	client *redis.Client
}

var _ contract.CacheStore = &RedisStore{} // Compile-time check

// NewRedisStore connects to the Redis server at url (redis://host:port/db).
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis. Check that the server is running and the url is valid: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves a value by key. A missing entry returns redis.Nil.
func (rs *RedisStore) Get(key string) ([]byte, int, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	fields, err := rs.client.HGetAll(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return nil, 0, 0, err
	}
	if len(fields) == 0 {
		return nil, 0, 0, redis.Nil
	}
	version, err := strconv.Atoi(fields["version"])
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache version for %s: %w", key, err)
	}
	ts, err := strconv.ParseInt(fields["ts"], 10, 64)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache timestamp for %s: %w", key, err)
	}
	return []byte(fields["value"]), version, ts, nil
}

// Set writes the entry, replacing any previous one.
func (rs *RedisStore) Set(key string, value []byte, version int, timestamp int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return rs.client.HSet(ctx, redisKeyPrefix+key, "value", value, "version", version, "ts", timestamp).Err()
}

// GetStatus scans the cache keys to report entry counts and times.
func (rs *RedisStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: string(schema.RedisBackend), Connected: true}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	keys, err := scanKeys(ctx, rs.client)
	if err != nil {
		return status, fmt.Errorf("failed to scan cache keys: %w", err)
	}
	status.TotalEntries = len(keys)
	if len(keys) == 0 {
		return status, nil
	}

	pipe := rs.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.HGetAll(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return status, fmt.Errorf("failed to read cache entries: %w", err)
	}

	var oldest, last int64
	for _, cmd := range cmds {
		fields := cmd.Val()
		status.TableSizeBytes += int64(len(fields["value"]))
		ts, err := strconv.ParseInt(fields["ts"], 10, 64)
		if err != nil {
			continue
		}
		if oldest == 0 || ts < oldest {
			oldest = ts
		}
		if ts > last {
			last = ts
		}
	}
	status.OldestEntryTime = time.Unix(oldest, 0)
	status.LastEntryTime = time.Unix(last, 0)
	return status, nil
}

// Close closes the client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// scanKeys lists every cache key without blocking the server.
func scanKeys(ctx context.Context, client *redis.Client) ([]string, error) {
	var keys []string
	iter := client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

// clearRedis deletes every cache key from the server at url.
func clearRedis(url string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	keys, err := scanKeys(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}
