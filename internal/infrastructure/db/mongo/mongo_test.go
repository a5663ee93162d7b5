package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestOpen_RequiresDatabase(t *testing.T) {
	if _, err := Open(context.Background(), Config{URI: "mongodb://127.0.0.1:1"}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for missing database name")
	}
}

func TestOpen_Unreachable(t *testing.T) {
	cfg := Config{URI: "mongodb://127.0.0.1:1", Database: "directory", Timeout: 200 * time.Millisecond}
	if _, err := Open(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected ping error")
	}
}
