package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSOrigins lists the origins allowed by the browser-facing API.
	// "*" is the development default; set explicit origins in production.
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

// TokenConfig holds the signing settings for bearer tokens. Secret has no
// default on purpose: startup fails fast when it is absent or too short.
type TokenConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"TOKEN_TTL, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in a development
// environment, which enables pretty console logging.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
