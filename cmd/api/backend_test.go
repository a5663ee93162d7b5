package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/infrastructure/config"
)

func TestOpenBackend_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}

	b, err := openBackend(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.close()

	if err := b.ready[config.DriverMemory].Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestOpenBackend_SQLiteCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "directory.db")
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: path}}

	b, err := openBackend(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.close()

	if err := b.kv.Save(context.Background(), "users", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestOpenBackend_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "cassandra"}}
	if _, err := openBackend(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
