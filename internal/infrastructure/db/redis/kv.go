package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kapurocks/directory/internal/infrastructure/store"
)

const defaultPrefix = "directory:"

// KV stores each document as a plain string value.
// Key format: <prefix><key>
//
// Durability depends on the server's persistence settings (AOF or RDB).
type KV struct {
	client *redis.Client
	prefix string
}

// NewKV wraps client. An empty prefix falls back to "directory:".
func NewKV(client *redis.Client, prefix string) *KV {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &KV{client: client, prefix: prefix}
}

func (k *KV) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := k.client.Get(ctx, k.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (k *KV) Save(ctx context.Context, key string, data []byte) error {
	if err := k.client.Set(ctx, k.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (k *KV) Ping(ctx context.Context) error {
	return k.client.Ping(ctx).Err()
}

// Close releases the client connection pool.
func (k *KV) Close() error {
	return k.client.Close()
}
