package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/api/handler"
	"github.com/kapurocks/directory/internal/infrastructure/config"
	mongodb "github.com/kapurocks/directory/internal/infrastructure/db/mongo"
	redisdb "github.com/kapurocks/directory/internal/infrastructure/db/redis"
	"github.com/kapurocks/directory/internal/infrastructure/db/sqldb"
	"github.com/kapurocks/directory/internal/infrastructure/store"
)

// backend is the opened document store with its readiness check.
type backend struct {
	kv    store.Backend
	ready map[string]handler.Pinger
	close func()
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	b := &backend{close: func() {}}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		b.kv = store.NewMemory()

	case config.DriverSQLite, config.DriverPostgres:
		sc := sqldb.Config{Dialect: sqldb.DialectPostgres, DSN: cfg.Store.PostgresDSN, Timeout: cfg.Store.ConnectTimeout}
		if cfg.Store.Driver == config.DriverSQLite {
			if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
			sc.Dialect, sc.DSN = sqldb.DialectSQLite, cfg.Store.SQLitePath
		}
		db, err := sqldb.Open(ctx, sc)
		if err != nil {
			return nil, err
		}
		b.kv = sqldb.NewKV(db, sc.Dialect)
		b.close = func() { _ = db.Close() }

	case config.DriverMongo:
		kv, err := mongodb.Open(ctx, mongodb.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			Timeout:    cfg.Store.ConnectTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		b.kv = kv
		b.close = func() { _ = kv.Close(context.Background()) }

	case config.DriverRedis:
		kv, err := redisdb.Open(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			Timeout:  cfg.Store.ConnectTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		b.kv = kv
		b.close = func() { _ = kv.Close() }

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	b.ready = map[string]handler.Pinger{cfg.Store.Driver: b.kv}
	log.Info().Str("driver", cfg.Store.Driver).Msg("store opened")
	return b, nil
}
