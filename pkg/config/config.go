package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	Maps    MapsConfig
	Momo    MomoConfig
	Cache   CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EATZY_APP_ENV" required:"true"`
	Port         string `envconfig:"EATZY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"EATZY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EATZY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the core Eatzy REST backend that owns carts,
// restaurants, orders, and the user address book.
type BackendConfig struct {
	BaseURL string        `envconfig:"EATZY_BACKEND_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"EATZY_BACKEND_API_KEY"`
	Timeout time.Duration `envconfig:"EATZY_BACKEND_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"EATZY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"EATZY_REDIS_ADDR"`
	Password     string        `envconfig:"EATZY_REDIS_PASSWORD"`
	DB           int           `envconfig:"EATZY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EATZY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EATZY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EATZY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EATZY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EATZY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// MapsConfig configures the routing and reverse-geocoding provider.
type MapsConfig struct {
	APIKey  string        `envconfig:"EATZY_MAPS_API_KEY" required:"true"`
	BaseURL string        `envconfig:"EATZY_MAPS_BASE_URL"`
	Timeout time.Duration `envconfig:"EATZY_MAPS_TIMEOUT" default:"10s"`
}

// MomoConfig carries the wallet partner credentials used to open payment
// sessions.
type MomoConfig struct {
	PartnerCode string        `envconfig:"EATZY_MOMO_PARTNER_CODE" required:"true"`
	AccessKey   string        `envconfig:"EATZY_MOMO_ACCESS_KEY" required:"true"`
	SecretKey   string        `envconfig:"EATZY_MOMO_SECRET_KEY" required:"true"`
	BaseURL     string        `envconfig:"EATZY_MOMO_BASE_URL"`
	RedirectURL string        `envconfig:"EATZY_MOMO_REDIRECT_URL" required:"true"`
	NotifyURL   string        `envconfig:"EATZY_MOMO_NOTIFY_URL" required:"true"`
	Timeout     time.Duration `envconfig:"EATZY_MOMO_TIMEOUT" default:"15s"`
}

type CacheConfig struct {
	RestaurantTTL time.Duration `envconfig:"EATZY_CACHE_RESTAURANT_TTL" default:"5m"`
}
