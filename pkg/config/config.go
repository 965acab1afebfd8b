package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	Cart     CartConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PEDILOYA_APP_ENV" required:"true"`
	Port         string `envconfig:"PEDILOYA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PEDILOYA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PEDILOYA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points at the upstream menu API that owns commerce and
// product data.
type CatalogConfig struct {
	BaseURL      string        `envconfig:"PEDILOYA_CATALOG_BASE_URL" required:"true"`
	FetchTimeout time.Duration `envconfig:"PEDILOYA_CATALOG_FETCH_TIMEOUT" default:"10s"`
	CacheTTL     time.Duration `envconfig:"PEDILOYA_CATALOG_CACHE_TTL" default:"1m"`
}

func (c CatalogConfig) validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%s must be an http(s) url", EnvCatalogBaseURL)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"PEDILOYA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PEDILOYA_REDIS_ADDR"`
	Password     string        `envconfig:"PEDILOYA_REDIS_PASSWORD"`
	DB           int           `envconfig:"PEDILOYA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PEDILOYA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PEDILOYA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PEDILOYA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PEDILOYA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PEDILOYA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig controls how long abandoned cart snapshots stay around.
type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"PEDILOYA_CART_SNAPSHOT_TTL" default:"168h"`
}

// CheckoutConfig points at the upstream order-submission endpoint.
type CheckoutConfig struct {
	SubmitURL     string        `envconfig:"PEDILOYA_CHECKOUT_SUBMIT_URL" required:"true"`
	SubmitTimeout time.Duration `envconfig:"PEDILOYA_CHECKOUT_SUBMIT_TIMEOUT" default:"15s"`
}
