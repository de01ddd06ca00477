package iostate

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/redis/go-redis/v9"
)

// RedisStore reads and writes values with plain GET/SET. Every command leases a
// connection from the client pool and returns it before the call completes.
type RedisStore struct {
	client *redis.Client
}

var _ contract.KVStore = &RedisStore{} // Compile-time check

// NewRedisStore connects to the Redis instance described by connStr.
func NewRedisStore(ctx context.Context, connStr string) (*RedisStore, error) {
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w. Expected redis://[:password@]host:port/db", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s. Check that the server is running: %w", opts.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the raw value, or contract.ErrKeyNotFound.
func (rs *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, contract.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

// Set overwrites the value without expiry.
func (rs *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return rs.client.Set(ctx, key, value, 0).Err()
}

// GetStatus reports whether the key exists and how large it is.
func (rs *RedisStore) GetStatus(ctx context.Context, key string) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend: string(schema.RedisBackend),
		Key:     key,
	}
	if err := rs.client.Ping(ctx).Err(); err != nil {
		return status, nil
	}
	status.Connected = true

	n, err := rs.client.Exists(ctx, key).Result()
	if err != nil {
		return status, fmt.Errorf("failed to check key: %w", err)
	}
	status.KeyPresent = n > 0
	if !status.KeyPresent {
		return status, nil
	}

	size, err := rs.client.StrLen(ctx, key).Result()
	if err != nil {
		return status, fmt.Errorf("failed to get value size: %w", err)
	}
	status.SizeBytes = size
	return status, nil
}

// Close closes the client and its pool.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
