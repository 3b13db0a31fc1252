package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECRET_KEY": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected port 8000, got %q", cfg.Port)
	}
	if cfg.Auth.Algorithm != "HS256" {
		t.Errorf("expected HS256, got %q", cfg.Auth.Algorithm)
	}
	if cfg.Auth.TokenTTL() != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.Auth.TokenTTL())
	}
	if cfg.MySQL.DSN != "" || cfg.Redis.Addr != "" || cfg.Mongo.URI != "" || cfg.RabbitMQ.URL != "" {
		t.Error("external stores must be disabled by default")
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Capacity != 10 || cfg.RateLimit.RefillInterval != 6*time.Second {
		t.Errorf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Errorf("expected no trusted proxies by default, got %v", cfg.TrustedProxies)
	}
	if cfg.IsProduction() {
		t.Error("default env must not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECRET_KEY":                  "s3cret",
		"ALGORITHM":                   "HS512",
		"ACCESS_TOKEN_EXPIRE_MINUTES": "5",
		"ENV":                         "production",
		"MYSQL_DSN":                   "trip:trip@tcp(db:3306)/trip",
		"REDIS_ADDR":                  "redis:6379",
		"DISPATCH_WORKERS":            "16",
		"TRUSTED_PROXIES":             "10.0.0.0/8,172.16.0.0/12",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.Algorithm != "HS512" || cfg.Auth.TokenTTL() != 5*time.Minute {
		t.Errorf("unexpected auth config %+v", cfg.Auth)
	}
	if !cfg.IsProduction() || cfg.DispatchWorkers != 16 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "172.16.0.0/12" {
		t.Errorf("unexpected trusted proxies %v", cfg.TrustedProxies)
	}
	if cfg.MySQL.DSN == "" || cfg.Redis.Addr != "redis:6379" {
		t.Errorf("stores not picked up: %+v %+v", cfg.MySQL, cfg.Redis)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when SECRET_KEY is missing")
	}
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECRET_KEY":                  "s3cret",
		"ACCESS_TOKEN_EXPIRE_MINUTES": "0",
	}))
	if err == nil {
		t.Fatal("expected error for zero TTL")
	}
}
