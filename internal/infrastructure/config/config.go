package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT,          default=8000"`
	Env          string `env:"ENV,           default=development"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`
	CookieSecure bool   `env:"COOKIE_SECURE, default=false"`

	// TrustedProxies are CIDR ranges allowed to set X-Forwarded-For.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// DispatchWorkers is the number of booking event workers.
	DispatchWorkers int `env:"DISPATCH_WORKERS, default=4"`

	Auth      AuthConfig
	MySQL     MySQLConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	RateLimit RateLimitConfig
}

type AuthConfig struct {
	SecretKey          string `env:"SECRET_KEY, required"`
	Algorithm          string `env:"ALGORITHM,  default=HS256"`
	AccessTokenMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
}

// TokenTTL is the session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenMinutes) * time.Minute
}

// MySQLConfig selects the relational store. An empty DSN runs the server on
// the in-memory store.
type MySQLConfig struct {
	DSN             string        `env:"MYSQL_DSN"`
	MaxOpenConns    int           `env:"MYSQL_MAX_OPEN_CONNS,    default=25"`
	MaxIdleConns    int           `env:"MYSQL_MAX_IDLE_CONNS,    default=25"`
	ConnMaxLifetime time.Duration `env:"MYSQL_CONN_MAX_LIFETIME, default=5m"`
}

// MongoConfig selects the audit trail store. An empty URI disables auditing.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=trip_backend"`
}

// RedisConfig backs rate limiting and idempotency keys. An empty address
// disables both.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// RabbitMQConfig selects the broker booking events are published to.
type RabbitMQConfig struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE, default=trip.bookings"`
}

// RateLimitConfig tunes the token bucket guarding the login endpoint.
type RateLimitConfig struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED,         default=true"`
	Prefix         string        `env:"RATE_LIMIT_PREFIX,          default=rl"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY,        default=10"`
	RefillTokens   int           `env:"RATE_LIMIT_REFILL_TOKENS,   default=1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL, default=6s"`
	TTL            time.Duration `env:"RATE_LIMIT_TTL,             default=10m"`
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file when present and then the process environment.
// Values already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.AccessTokenMinutes <= 0 {
		return nil, fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", cfg.Auth.AccessTokenMinutes)
	}
	return &cfg, nil
}
