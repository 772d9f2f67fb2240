package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the Push Analytics Service
type Config struct {
	Port        string
	DatabaseURL string
	RabbitMQ    RabbitMQConfig
	Redis       RedisConfig
	Analysis    AnalysisConfig
	RateLimit   RateLimitConfig
}

// RabbitMQConfig holds RabbitMQ publisher configuration.
// An empty URL disables notification dispatch.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// RedisConfig holds Redis cache configuration.
// An empty Addr disables response caching.
type RedisConfig struct {
	Addr     string
	CacheTTL time.Duration
}

// AnalysisConfig holds scoring parameters
type AnalysisConfig struct {
	PeriodDays int
}

// RateLimitConfig holds per-IP rate limiting parameters
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load loads configuration from environment variables with default values
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "7777"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RabbitMQ: RabbitMQConfig{
			URL:        getEnv("RABBITMQ_URL", ""),
			Exchange:   getEnv("RABBITMQ_EXCHANGE", "push.notifications"),
			RoutingKey: getEnv("RABBITMQ_ROUTING_KEY", "push.notifications.generated"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Analysis: AnalysisConfig{
			PeriodDays: getEnvInt("ANALYSIS_PERIOD_DAYS", 90),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT", 60),
			Window:   getEnvDuration("RATE_WINDOW", time.Minute),
		},
	}
}

// getEnv retrieves an environment variable or returns a default value if not set
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
