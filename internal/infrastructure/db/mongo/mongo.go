package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "directory"
)

// Config selects the server, database and collection that hold the store.
type Config struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds server selection, the initial connect and the ping.
	Timeout time.Duration
}

// Open connects to MongoDB and returns the key-value backend once the
// selected database answers a ping.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*KV, error) {
	if cfg.Database == "" {
		return nil, errors.New("mongo: database name is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	kv := NewKV(client.Database(cfg.Database), cfg.Collection)
	if err := kv.Ping(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	log.Info().
		Str("database", cfg.Database).
		Str("collection", kv.coll.Name()).
		Dur("timeout", timeout).
		Msg("mongo connected")
	return kv, nil
}
