package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DB.Driver != "sqlite" {
		t.Fatalf("unexpected defaults: port=%s driver=%s", cfg.Port, cfg.DB.Driver)
	}
	if cfg.TokenTTL != 12*time.Hour || cfg.TokenRefreshWindow != 30*time.Minute {
		t.Fatalf("unexpected token settings: ttl=%v window=%v", cfg.TokenTTL, cfg.TokenRefreshWindow)
	}
	if cfg.Redis.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("unexpected idempotency ttl %v", cfg.Redis.IdempotencyTTL)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":  "s3cret",
		"ENV":         "production",
		"DB_DRIVER":   "postgres",
		"DB_DSN":      "host=db user=app dbname=inventory",
		"SEED_SELLER": "true",
		"TOKEN_TTL":   "1h",
	}))
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.IsDevelopment() || cfg.DB.Driver != "postgres" || !cfg.Bootstrap.SeedSeller || cfg.TokenTTL != time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoad_RejectsWideRefreshWindow(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "s3cret",
		"TOKEN_TTL":            "20m",
		"TOKEN_REFRESH_WINDOW": "30m",
	}))
	if err == nil {
		t.Fatalf("expected error when the refresh window exceeds the ttl")
	}
}
