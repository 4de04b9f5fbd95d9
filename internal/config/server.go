package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// ServerConfig is the API server's runtime configuration, read from the environment.
type ServerConfig struct {
	Port      string
	Env       string
	StaticDir string

	// PricingFile replaces the built-in catalog when set.
	PricingFile string

	ResultStore   string
	ResultTTL     time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string
}

// ServerFromEnv reads ServerConfig from environment variables, applying defaults.
func ServerFromEnv() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:          getEnv("API_PORT", "8080"),
		Env:           getEnv("API_ENV", "development"),
		StaticDir:     getEnv("STATIC_DIR", "./web/dist"),
		PricingFile:   getEnv("PRICING_FILE", ""),
		ResultStore:   strings.ToLower(getEnv("RESULT_STORE", StoreMemory)),
		ResultTTL:     getEnvDuration("RESULT_TTL", time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
	}
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) Validate() error {
	if c.ResultStore != StoreMemory && c.ResultStore != StoreRedis {
		return fmt.Errorf("RESULT_STORE must be %q or %q (got %q)", StoreMemory, StoreRedis, c.ResultStore)
	}
	if c.ResultTTL <= 0 {
		return fmt.Errorf("RESULT_TTL must be > 0 (got %s)", c.ResultTTL)
	}
	if c.ResultStore == StoreRedis && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when RESULT_STORE=redis")
	}
	return nil
}

// Production reports whether the server runs in release mode.
func (c *ServerConfig) Production() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
