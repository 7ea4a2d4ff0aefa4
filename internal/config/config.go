package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"DOMINO_ADDR" envDefault:":8080"`
	DatabaseDSN     string        `env:"DOMINO_DB_DSN" envDefault:"domino_league.db?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"`
	MigrationsURL   string        `env:"DOMINO_MIGRATIONS_URL" envDefault:"file://migrations"`
	SessionLifetime time.Duration `env:"DOMINO_SESSION_LIFETIME" envDefault:"24h"`
	LogLevel        string        `env:"DOMINO_LOG_LEVEL" envDefault:"info"`

	DefaultTargetScore int `env:"DOMINO_DEFAULT_TARGET_SCORE" envDefault:"100"`

	// Variant switches of the league app
	AllowRestart       bool `env:"DOMINO_ALLOW_RESTART" envDefault:"true"`
	SingleOngoingMatch bool `env:"DOMINO_SINGLE_ONGOING_MATCH" envDefault:"true"`
	ShowStats          bool `env:"DOMINO_SHOW_STATS" envDefault:"true"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DefaultTargetScore <= 0 {
		return fmt.Errorf("DOMINO_DEFAULT_TARGET_SCORE must be positive, got %d", c.DefaultTargetScore)
	}
	if c.SessionLifetime <= 0 {
		return fmt.Errorf("DOMINO_SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid DOMINO_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
