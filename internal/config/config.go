package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database (optional: recipe and dish routes are disabled without it)
	DatabaseURL    string
	MigrationsPath string // empty uses the migrations built into the binary

	// Redis (optional: falls back to in-process limiter and settings store)
	RedisURL string

	// Hosted auth provider
	SupabaseJWTSecret string

	// AI gateway
	AIGatewayURL     string
	AIGatewayAPIKey  string
	AIImageModel     string
	AITextModel      string
	AITextProvider   string
	AIRequestTimeout time.Duration

	// Gemini (only when AITextProvider is "gemini")
	GeminiAPIKey string
	GeminiModel  string

	// Proxy rate limiting
	ProxyRequestsPerMin int
	ProxyBurst          int
	// Only honor X-Forwarded-For / X-Real-IP behind a trusted reverse proxy.
	TrustProxyHeaders bool
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Env:                 getEnvOrDefault("ENV", "development"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		DatabaseURL:         getEnvOrDefault("DATABASE_URL", ""),
		MigrationsPath:      getEnvOrDefault("MIGRATIONS_PATH", ""),
		RedisURL:            getEnvOrDefault("REDIS_URL", ""),
		SupabaseJWTSecret:   getEnvOrDefault("SUPABASE_JWT_SECRET", ""),
		AIGatewayURL:        getEnvOrDefault("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
		AIGatewayAPIKey:     getEnvOrDefault("LOVABLE_API_KEY", ""),
		AIImageModel:        getEnvOrDefault("AI_IMAGE_MODEL", "google/gemini-2.5-flash-image-preview"),
		AITextModel:         getEnvOrDefault("AI_TEXT_MODEL", "google/gemini-2.5-flash"),
		AITextProvider:      getEnvOrDefault("AI_TEXT_PROVIDER", "gateway"),
		AIRequestTimeout:    getEnvAsDurationOrDefault("AI_REQUEST_TIMEOUT", 120*time.Second),
		GeminiAPIKey:        getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:         getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		ProxyRequestsPerMin: getEnvAsIntOrDefault("PROXY_REQUESTS_PER_MINUTE", 20),
		ProxyBurst:          getEnvAsIntOrDefault("PROXY_BURST", 5),
		TrustProxyHeaders:   getEnvAsBoolOrDefault("TRUST_PROXY_HEADERS", false),
	}

	if cfg.AITextProvider == "gemini" {
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	}

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
