package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kapurocks/directory/internal/infrastructure/store"
)

// KV stores each document as one row of kv_entries.
type KV struct {
	db        *sql.DB
	loadQuery string
	saveQuery string
}

func NewKV(db *sql.DB, d Dialect) *KV {
	kv := &KV{db: db}
	switch d {
	case DialectPostgres:
		kv.loadQuery = `SELECT entry_value FROM kv_entries WHERE entry_key = $1`
		kv.saveQuery = `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`
	default:
		kv.loadQuery = `SELECT entry_value FROM kv_entries WHERE entry_key = ?`
		kv.saveQuery = `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`
	}
	return kv
}

func (k *KV) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := k.db.QueryRowContext(ctx, k.loadQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return []byte(value), nil
}

func (k *KV) Save(ctx context.Context, key string, data []byte) error {
	if _, err := k.db.ExecContext(ctx, k.saveQuery, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (k *KV) Ping(ctx context.Context) error {
	return k.db.PingContext(ctx)
}
