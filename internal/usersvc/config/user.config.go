package config

import (
	"os"
	"strings"
)

type AppConfig struct {
	HTTPAddr      string
	KafkaBrokers  []string
	ConsumerGroup string
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8002"),
		KafkaBrokers:  getEnvSlice("KAFKA_BROKERS", []string{"kafka-service:9092"}),
		ConsumerGroup: getEnv("CONSUMER_GROUP", "user-service"),
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
