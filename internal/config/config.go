package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	DatabaseURL      string
	ServerPort       string
	BaseURL          string
	FrontendURL      string
	CalibrationPath  string
	RedisURL         string
	RateLimit        string
	RabbitMQURL      string
	RabbitMQPrefetch int
	OIDCIssuer       string
	OIDCClientID     string
	OIDCJWKSURL      string
	EnableHSTS       bool
	ServerDebugMode  bool
	WorkerDebugMode  bool
	OTELEnabled      bool
	OTELEndpoint     string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		CalibrationPath:  getEnv("CALIBRATION_PATH", ""),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RateLimit:        getEnv("RATE_LIMIT", "20-S"),
		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		RabbitMQPrefetch: getEnvInt("RABBITMQ_PREFETCH", 1),
		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCJWKSURL:      getEnv("OIDC_JWKS_URL", ""),
		EnableHSTS:       getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode:  getEnvBool("SERVER_DEBUG_MODE", false),
		WorkerDebugMode:  getEnvBool("WORKER_DEBUG_MODE", false),
		OTELEnabled:      getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.RabbitMQURL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required for rescoring jobs")
	}

	if cfg.OIDCIssuer != "" && cfg.OIDCJWKSURL == "" {
		// Standard discovery layout; overridable for providers that deviate.
		cfg.OIDCJWKSURL = cfg.OIDCIssuer + "/.well-known/jwks.json"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
