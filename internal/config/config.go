package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/RxDataLab/go-yfinance"
)

type Config struct {
	Port     string
	LogLevel string

	// Persistence; empty disables the sqlite store
	DBPath string

	// Fetching
	HTTPTimeout      time.Duration
	StatementBaseURL string
	QuoteBaseURL     string

	DefaultPeriod yfinance.PeriodType

	// Graceful shutdown
	ShutdownTimeout time.Duration
}

// Load reads a .env file when one exists, then the environment
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env, relying on environment", "error", err)
	}

	cfg := Config{
		Port:     envOr("YF_PORT", "8091"),
		LogLevel: envOr("YF_LOG_LEVEL", "info"),

		DBPath: os.Getenv("YF_DB_PATH"),

		HTTPTimeout:      envDuration("YF_HTTP_TIMEOUT", yfinance.DefaultTimeout),
		StatementBaseURL: envOr("YF_STATEMENT_BASE_URL", yfinance.DefaultStatementBaseURL),
		QuoteBaseURL:     envOr("YF_QUOTE_BASE_URL", yfinance.DefaultQuoteBaseURL),

		DefaultPeriod: yfinance.PeriodType(envOr("YF_DEFAULT_PERIOD", string(yfinance.Annual))),

		ShutdownTimeout: envDuration("YF_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = yfinance.DefaultTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("YF_PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("YF_PORT must be numeric: %q", c.Port)
	}
	if _, err := yfinance.ParsePeriodType(string(c.DefaultPeriod)); err != nil {
		return fmt.Errorf("YF_DEFAULT_PERIOD: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
