// Package sqldb backs the document store with a single SQL table, on SQLite
// for local installs or PostgreSQL for shared ones.
package sqldb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const defaultTimeout = 10 * time.Second

// Dialect selects the SQL driver and placeholder style.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) driverName() (string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite", nil
	case DialectPostgres:
		return "pgx", nil
	}
	return "", fmt.Errorf("unsupported sql dialect %q", d)
}

func (d Dialect) gooseDialect() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// Config captures what is needed to open and migrate a database.
type Config struct {
	Dialect Dialect
	DSN     string
	Timeout time.Duration
}

// Open connects, pings and applies the embedded migrations.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	driver, err := cfg.Dialect.driverName()
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if cfg.Dialect == DialectSQLite {
		// SQLite allows one writer; an in-memory database also lives on a
		// single connection.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sql ping: %w", err)
	}

	if err := Migrate(ctx, db, cfg.Dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d.gooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
