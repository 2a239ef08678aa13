package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"

	"github.com/glbter/portfolio-dashboard/snapshot/client/rabbit"
)

const (
	ProviderYahoo  = "yahoo"
	ProviderStatic = "static"
)

type Config struct {
	HTTPAddr        string
	QuoteProvider   string
	QuoteBaseURL    string
	QuoteTimeout    time.Duration
	RefreshInterval time.Duration
	HoldingsFile    string
	Currency        string
	RabbitURL       string
	SnapshotQueue   string
	LogLevel        string
}

// LoadConfig reads the configuration from the environment. Variables from a
// .env file in the working directory are applied first; they never override
// what is already set.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		QuoteProvider: env("QUOTE_PROVIDER", ProviderYahoo),
		QuoteBaseURL:  env("QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),
		HoldingsFile:  os.Getenv("HOLDINGS_FILE"),
		Currency:      env("CURRENCY", "INR"),
		RabbitURL:     os.Getenv("RABBIT_URL_SNAPSHOTS"),
		SnapshotQueue: env("SNAPSHOT_QUEUE", rabbit.SNAPSHOT_QUEUE),
		LogLevel:      env("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.QuoteTimeout, err = duration("QUOTE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RefreshInterval, err = duration("REFRESH_INTERVAL", 15*time.Second); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.QuoteProvider != ProviderYahoo && c.QuoteProvider != ProviderStatic {
		return fmt.Errorf("unknown QUOTE_PROVIDER %q", c.QuoteProvider)
	}
	if c.RefreshInterval <= 0 {
		return errors.New("REFRESH_INTERVAL must be positive")
	}
	if c.QuoteTimeout <= 0 {
		return errors.New("QUOTE_TIMEOUT must be positive")
	}
	if money.GetCurrency(c.Currency) == nil {
		return fmt.Errorf("unknown CURRENCY %q", c.Currency)
	}
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
