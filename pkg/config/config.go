package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Backend REST API consumed by the catalog and order clients.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:3000"`

	// Where local state (cart, session token) lives. Empty keeps everything
	// in memory for the process lifetime.
	StoragePath   string `env:"STORAGE_PATH"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file"`

	Currency      string        `env:"CURRENCY" envDefault:"INR"`
	ShippingFee   int64         `env:"SHIPPING_FEE" envDefault:"4900"`
	TaxRate       float64       `env:"TAX_RATE" envDefault:"0.05"`
	SubmitTimeout time.Duration `env:"SUBMIT_TIMEOUT" envDefault:"15s"`

	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"30s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
