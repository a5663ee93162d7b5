package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTimeout = 5 * time.Second

// Config captures the server and the key namespace of the store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key. Empty selects "directory:".
	Prefix string
	// Timeout bounds dialing, each command and the startup ping.
	Timeout time.Duration
}

// Open initialises a Redis client, validates connectivity with a ping and
// returns the key-value backend under cfg.Prefix.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*KV, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	kv := NewKV(client, cfg.Prefix)
	log.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Str("prefix", kv.prefix).
		Msg("redis connected")
	return kv, nil
}
