// Package config loads and validates service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// NotifyMinInterval is the minimum time between permitted notification
	// emissions per tenant.
	NotifyMinInterval time.Duration `env:"NOTIFY_MIN_INTERVAL" default:"1s"`

	MaxClientsPerTenant     int `env:"MAX_CLIENTS_PER_TENANT" default:"100"`
	MaxWebSocketConnections int `env:"MAX_WEBSOCKET_CONNECTIONS" default:"10000"`

	APIRatePerSecond float64 `env:"API_RATE_PER_SECOND" default:"20"`
	APIRateBurst     int     `env:"API_RATE_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.NotifyMinInterval <= 0 {
		return fmt.Errorf("NOTIFY_MIN_INTERVAL must be positive, got %v", cfg.NotifyMinInterval)
	}
	if cfg.MaxClientsPerTenant <= 0 {
		return fmt.Errorf("MAX_CLIENTS_PER_TENANT must be positive, got %d", cfg.MaxClientsPerTenant)
	}
	if cfg.MaxWebSocketConnections <= 0 {
		return fmt.Errorf("MAX_WEBSOCKET_CONNECTIONS must be positive, got %d", cfg.MaxWebSocketConnections)
	}
	return nil
}
