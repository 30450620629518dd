package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Хранилища кэша
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config содержит конфигурацию сервера
type Config struct {
	AppAddr           string        `envconfig:"APP_ADDR" default:":8000"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	MaxPrincipal   float64 `envconfig:"MAX_PRINCIPAL" default:"1e9"`
	MaxRate        float64 `envconfig:"MAX_RATE" default:"200"`
	MaxTenureYears int     `envconfig:"MAX_TENURE_YEARS" default:"50"`

	OTELEndpoint    string  `envconfig:"OTEL_ENDPOINT"`
	OTELServiceName string  `envconfig:"OTEL_SERVICE_NAME" default:"emi-schedule-server"`
	OTELSampleRatio float64 `envconfig:"OTEL_SAMPLE_RATIO" default:"1"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	CacheBackend string        `envconfig:"CACHE_BACKEND" default:"memory"`
	CacheSize    int           `envconfig:"CACHE_SIZE" default:"1000"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	RedisAddr    string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет лимиты и допустимые значения
func (c *Config) Validate() error {
	if c.MaxPrincipal <= 0 {
		return fmt.Errorf("MAX_PRINCIPAL must be positive, got %v", c.MaxPrincipal)
	}
	if c.MaxRate <= 0 {
		return fmt.Errorf("MAX_RATE must be positive, got %v", c.MaxRate)
	}
	if c.MaxTenureYears <= 0 {
		return fmt.Errorf("MAX_TENURE_YEARS must be positive, got %d", c.MaxTenureYears)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("CACHE_SIZE must be positive, got %d", c.CacheSize)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.OTELSampleRatio < 0 || c.OTELSampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATIO must be in [0, 1], got %v", c.OTELSampleRatio)
	}
	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}
