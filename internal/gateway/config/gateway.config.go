package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	HTTPAddr string

	// Downstream services the gateway fronts.
	AuthServiceURL string
	UserServiceURL string

	// Remote validation.
	ValidateTimeout time.Duration
	RetryAttempts   int
	RetryBackoff    time.Duration
	BreakerFailures int
	BreakerCooldown time.Duration

	// Validation result cache.
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Paths served without a token.
	PublicPaths []string
}

func Load() AppConfig {
	cfg := AppConfig{
		HTTPAddr:        getEnv("GATEWAY_HTTP_ADDR", ":8000"),
		AuthServiceURL:  getEnv("AUTH_SERVICE_URL", "http://auth-service:8001"),
		UserServiceURL:  getEnv("USER_SERVICE_URL", "http://user-service:8002"),
		ValidateTimeout: getEnvDuration("VALIDATE_TIMEOUT", 3*time.Second),
		RetryAttempts:   getEnvInt("VALIDATE_RETRY_ATTEMPTS", 3),
		RetryBackoff:    getEnvDuration("VALIDATE_RETRY_BACKOFF", 100*time.Millisecond),
		BreakerFailures: getEnvInt("BREAKER_FAILURES", 5),
		BreakerCooldown: getEnvDuration("BREAKER_COOLDOWN", 10*time.Second),
		RedisAddr:       getEnv("REDIS_ADDR", "redis-service:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CacheTTL:        getEnvDuration("VALIDATION_CACHE_TTL", 30*time.Second),
		PublicPaths: getEnvSlice("PUBLIC_PATHS", []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/validate",
			"/api/v1/auth/health",
			"/health",
			"/metrics",
		}),
	}
	log.Printf("Gateway config loaded, listening at %s", cfg.HTTPAddr)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
