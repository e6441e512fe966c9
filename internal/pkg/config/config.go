// Package config loads application settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      int           `env:"PORT, default=8080"`
	Env       string        `env:"APP_ENV, default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig   `env:", prefix=MONGO_"`
	Redis   RedisConfig   `env:", prefix=REDIS_"`
	Storage StorageConfig `env:", prefix=STORAGE_"`
}

type MongoConfig struct {
	URI      string `env:"URI, default=mongodb://localhost:27017"`
	Database string `env:"DATABASE, default=expense_system"`
}

type RedisConfig struct {
	Addr string `env:"ADDR, default=localhost:6379"`
	DB   int    `env:"DB, default=0"`
}

type StorageConfig struct {
	Dir        string `env:"DIR, default=./data/files"`
	BaseURL    string `env:"BASE_URL, default=http://localhost:8080"`
	SignSecret string `env:"SIGN_SECRET, required"`
}

// Load reads configuration from process environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
