package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr     string
	CookieSecure bool
	LogLevel     string

	// Upstream API
	APIBaseURL         string
	SwaggerURL         string
	SwaggerInsecureTLS bool
	UpstreamTimeout    time.Duration
	UpstreamRPS        float64

	// Local storage
	StoreDriver string
	RedisAddr   string
	RedisPass   string
	DatabaseURL string

	// List screens
	SearchDebounce   time.Duration
	DefaultPageSize  int
	QueryStaleTime   time.Duration
	WorkspaceIdleTTL time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:     getEnv("HTTP_ADDR", ":3000"),
		CookieSecure: strings.ToLower(getEnv("COOKIE_SECURE", "false")) == "true",
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		APIBaseURL:         getEnv("API_URL", "http://localhost:8080"),
		SwaggerURL:         getEnv("SWAGGER_URL", "https://localhost:8000/swagger/v1/swagger.json"),
		SwaggerInsecureTLS: strings.ToLower(getEnv("SWAGGER_INSECURE_TLS", "false")) == "true",
		UpstreamTimeout:    getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		UpstreamRPS:        getEnvFloat("UPSTREAM_RPS", 0),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "memory")),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		SearchDebounce:   getEnvDuration("SEARCH_DEBOUNCE", 500*time.Millisecond),
		DefaultPageSize:  getEnvInt("PAGE_SIZE", 10),
		QueryStaleTime:   getEnvDuration("QUERY_STALE_TIME", 0),
		WorkspaceIdleTTL: getEnvDuration("WORKSPACE_IDLE_TTL", 12*time.Hour),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}
