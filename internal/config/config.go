package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	SessionSecret      string
	SessionTTL         time.Duration
	SessionRememberTTL time.Duration
	CookieSecure       bool

	CatalogCacheTTL time.Duration

	RabbitMQURL      string
	OrderEventsQueue string

	SwaggerHost string
	ResetDB     bool
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		MySQLDSN:           getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/storefront?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionRememberTTL: getEnvDuration("SESSION_REMEMBER_TTL", 31*24*time.Hour),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		CatalogCacheTTL:    getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		OrderEventsQueue:   getEnv("ORDER_EVENTS_QUEUE", "orders.placed"),
		SwaggerHost:        os.Getenv("SWAGGER_HOST"),
		ResetDB:            getEnvBool("RESET_DB", false),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("90m", "24h").
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
