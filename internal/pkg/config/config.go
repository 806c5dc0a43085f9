package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	TokenTTL           time.Duration `env:"TOKEN_TTL,            default=12h"`
	TokenRefreshWindow time.Duration `env:"TOKEN_REFRESH_WINDOW, default=30m"`

	DB        DBConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Bootstrap BootstrapConfig
}

type DBConfig struct {
	Driver          string        `env:"DB_DRIVER,            default=sqlite"`
	DSN             string        `env:"DB_DSN,               default=inventory.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=0"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,    default=0"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=30m"`
	Debug           bool          `env:"DB_DEBUG,             default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// BootstrapConfig describes the built-in accounts created on first start.
type BootstrapConfig struct {
	AdminUsername  string `env:"ADMIN_USERNAME,  default=admin"`
	AdminEmail     string `env:"ADMIN_EMAIL,     default=admin@localhost"`
	AdminPassword  string `env:"ADMIN_PASSWORD"`
	SeedSeller     bool   `env:"SEED_SELLER,     default=false"`
	SellerUsername string `env:"SELLER_USERNAME, default=seller"`
	SellerEmail    string `env:"SELLER_EMAIL,    default=seller@localhost"`
	SellerPassword string `env:"SELLER_PASSWORD"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.TokenRefreshWindow >= cfg.TokenTTL {
		return nil, fmt.Errorf("config: TOKEN_REFRESH_WINDOW (%s) must be shorter than TOKEN_TTL (%s)", cfg.TokenRefreshWindow, cfg.TokenTTL)
	}
	return &cfg, nil
}
