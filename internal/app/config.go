package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backends accepted by STORE_BACKEND.
const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisEnabled  bool          `envconfig:"REDIS_ENABLED" default:"true"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CSRFSecret       string `envconfig:"CSRF_SECRET" required:"true"`
	AuthPasswordHash string `envconfig:"AUTH_PASSWORD_HASH"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`

	StoreBackend   string        `envconfig:"STORE_BACKEND" default:"memory"`
	StoreLoadDelay time.Duration `envconfig:"STORE_LOAD_DELAY" default:"1s"`
	SeedRandom     int64         `envconfig:"SEED_RANDOM" default:"1"`
	MockJitterSeed int64         `envconfig:"MOCK_JITTER_SEED" default:"0"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	WarmupCron string `envconfig:"WARMUP_CRON" default:"*/15 * * * *"`
	ReseedCron string `envconfig:"RESEED_CRON" default:""`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("session secret must be provided")
	}
	if c.CSRFSecret == "" {
		return errors.New("csrf secret must be provided")
	}
	switch c.StoreBackend {
	case StoreBackendMemory:
	case StoreBackendRedis:
		if !c.RedisEnabled {
			return errors.New("store backend redis requires REDIS_ENABLED")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
