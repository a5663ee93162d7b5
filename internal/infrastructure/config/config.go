package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
)

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	JWTSecret      string        `env:"JWT_SECRET,      default=change-me"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,       default=24h"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`

	Auth   AuthConfig
	Store  StoreConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Seed   SeedConfig
	Notify NotifyConfig
}

type AuthConfig struct {
	OTPCode    string        `env:"OTP_DEMO_CODE, default=123456"`
	BcryptCost int           `env:"BCRYPT_COST,   default=10"`
	ResetTTL   time.Duration `env:"RESET_TTL,     default=30m"`
}

type StoreConfig struct {
	Driver         string        `env:"STORE_DRIVER,          default=sqlite"`
	SQLitePath     string        `env:"SQLITE_PATH,           default=./data/directory.db"`
	PostgresDSN    string        `env:"POSTGRES_DSN"`
	ConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT, default=10s"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=community_directory"`
	Collection string `env:"MONGO_COLLECTION, default=kv"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Prefix   string `env:"REDIS_PREFIX,   default=directory:"`
}

type SeedConfig struct {
	SampleContent bool   `env:"SEED_SAMPLE_CONTENT, default=true"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
	OwnerPassword string `env:"SEED_OWNER_PASSWORD, default=owner123"`
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverMongo, DriverRedis:
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Store.ConnectTimeout <= 0 {
		return fmt.Errorf("STORE_CONNECT_TIMEOUT must be positive")
	}
	if c.Notify.Workers <= 0 {
		return fmt.Errorf("NOTIFY_WORKERS must be positive")
	}
	return nil
}
