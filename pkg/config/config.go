package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Redis     RedisConfig
	Settings  SettingsConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Settings.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARDFINDERZ_APP_ENV" required:"true"`
	Port         string `envconfig:"CARDFINDERZ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARDFINDERZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARDFINDERZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	BaseURL  string        `envconfig:"CARDFINDERZ_CATALOG_BASE_URL" default:"https://api.pokemontcg.io/v2"`
	APIKey   string        `envconfig:"CARDFINDERZ_CATALOG_API_KEY"`
	Timeout  time.Duration `envconfig:"CARDFINDERZ_CATALOG_TIMEOUT" default:"10s"`
	PageSize int           `envconfig:"CARDFINDERZ_CATALOG_PAGE_SIZE" default:"250"`
	CacheTTL time.Duration `envconfig:"CARDFINDERZ_CATALOG_CACHE_TTL" default:"15m"`
}

// RedisConfig is optional; an empty URL and address disables the lookup cache
// and the search rate limit.
type RedisConfig struct {
	URL          string        `envconfig:"CARDFINDERZ_REDIS_URL"`
	Address      string        `envconfig:"CARDFINDERZ_REDIS_ADDR"`
	Password     string        `envconfig:"CARDFINDERZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARDFINDERZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARDFINDERZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARDFINDERZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARDFINDERZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARDFINDERZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARDFINDERZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SettingsConfig struct {
	DefaultCurrency string          `envconfig:"CARDFINDERZ_DEFAULT_CURRENCY" default:"PEN"`
	DefaultRate     decimal.Decimal `envconfig:"CARDFINDERZ_DEFAULT_EXCHANGE_RATE" default:"3.7"`
	MinRate         decimal.Decimal `envconfig:"CARDFINDERZ_EXCHANGE_RATE_MIN" default:"1.0"`
	MaxRate         decimal.Decimal `envconfig:"CARDFINDERZ_EXCHANGE_RATE_MAX" default:"5.0"`
}

// ClampRate bounds a requested rate to the configured slider range.
func (s SettingsConfig) ClampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.LessThan(s.MinRate) {
		return s.MinRate
	}
	if rate.GreaterThan(s.MaxRate) {
		return s.MaxRate
	}
	return rate
}

func (s SettingsConfig) validate() error {
	if !s.MinRate.IsPositive() {
		return fmt.Errorf("%s must be positive", EnvExchangeRateMin)
	}
	if s.MaxRate.LessThan(s.MinRate) {
		return fmt.Errorf("%s must not be below %s", EnvExchangeRateMax, EnvExchangeRateMin)
	}
	if !s.DefaultRate.IsPositive() {
		return fmt.Errorf("%s must be positive", EnvDefaultExchangeRate)
	}
	return nil
}

type RateLimitConfig struct {
	SearchWindow  time.Duration `envconfig:"CARDFINDERZ_RATE_LIMIT_SEARCH_WINDOW" default:"1m"`
	SearchIPLimit int           `envconfig:"CARDFINDERZ_RATE_LIMIT_SEARCH_IP_LIMIT" default:"30"`

	// TrustProxyHeaders keys limits on X-Forwarded-For / X-Real-IP. Enable
	// only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `envconfig:"CARDFINDERZ_RATE_LIMIT_TRUST_PROXY" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CARDFINDERZ_CORS_ALLOWED_ORIGINS" default:"http://localhost:8081,http://localhost:19006"`
}

// CLIConfig is the subset the command line tool needs; it has no required
// server settings.
type CLIConfig struct {
	LogLevel string `envconfig:"CARDFINDERZ_LOG_LEVEL" default:"warn"`
	Catalog  CatalogConfig
	Settings SettingsConfig
}

func LoadCLI() (*CLIConfig, error) {
	var cfg CLIConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Settings.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
