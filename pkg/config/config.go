package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alllucky/server/internal/storage"
)

// Config holds all configuration for the application.
// 所有環境變量只在這裡讀取。
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Cache
	Cache CacheConfig

	// Redis (optional cache backend)
	Redis RedisConfig

	// API keys
	APIKey APIKeyConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// CacheConfig holds TTL cache settings.
type CacheConfig struct {
	Backend       string // "memory" or "redis"
	SweepInterval time.Duration
	FortuneTTL    time.Duration
	AlmanacTTL    time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// APIKeyConfig holds API key issuance settings.
type APIKeyConfig struct {
	Prefix           string
	Secret           string
	TTL              time.Duration
	RateLimitWindow  time.Duration
	RateLimitMaxReqs int
}

// Load reads configuration from environment variables.
// 只有這個函數調用 os.Getenv()。
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("ENV", "development"),

		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", "memory"),
			SweepInterval: getEnvAsDuration("CACHE_SWEEP_INTERVAL", time.Minute),
			FortuneTTL:    getEnvAsDuration("FORTUNE_CACHE_TTL", storage.TTLFortune),
			AlmanacTTL:    getEnvAsDuration("ALMANAC_CACHE_TTL", storage.TTLFortune),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},

		APIKey: APIKeyConfig{
			Prefix:           getEnv("API_KEY_PREFIX", "lucky_"),
			Secret:           getEnv("API_KEY_SECRET", ""),
			TTL:              getEnvAsDuration("API_KEY_TTL", storage.TTLAPIKey),
			RateLimitWindow:  getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
			RateLimitMaxReqs: getEnvAsInt("RATE_LIMIT_MAX", 60),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis")
	}

	// Missing key secret is a process-scope configuration error, not a
	// per-request one. Development runs without issued keys.
	if c.Env != "development" && c.APIKey.Secret == "" {
		return fmt.Errorf("API_KEY_SECRET is required when ENV=%s", c.Env)
	}

	if c.APIKey.RateLimitMaxReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}

	return duration
}
