package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	HTTPAddr     string
	KafkaBrokers []string

	TokenSecret string
	TokenIssuer string
	TokenTTL    time.Duration
	ClockSkew   time.Duration

	SnowflakeNode int64
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8001"),
		KafkaBrokers:  getEnvSlice("KAFKA_BROKERS", []string{"kafka-service:9092"}),
		TokenSecret:   getEnv("TOKEN_SECRET", ""),
		TokenIssuer:   getEnv("TOKEN_ISSUER", "auth-service"),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 24*time.Hour),
		ClockSkew:     getEnvDuration("TOKEN_CLOCK_SKEW", 0),
		SnowflakeNode: getEnvInt64("SNOWFLAKE_NODE", 1),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		return strings.Split(v, ",")
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
