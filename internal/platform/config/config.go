// Package config builds runtime configuration from environment variables so
// main stays lean. Storage and broker backends are optional; when their URLs
// are absent the server falls back to in-memory stores.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures the full server configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string

	DatabaseURL string
	RedisURL    string

	KafkaBrokers    []string
	KafkaAuditTopic string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	SettleDelay       time.Duration
	SettleSuccessRate float64
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:              getenv("JANSEVA_ADDR", ":8080"),
		LogLevel:          getenv("JANSEVA_LOG_LEVEL", "info"),
		LogFormat:         getenv("JANSEVA_LOG_FORMAT", "text"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaAuditTopic:   getenv("KAFKA_AUDIT_TOPIC", "janseva.audit"),
		JWTSigningKey:     getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:         getenv("JWT_ISSUER", "janseva"),
		JWTAudience:       getenv("JWT_AUDIENCE", "janseva-portal"),
		SettleDelay:       getduration("SETTLE_DELAY", 2*time.Second),
		SettleSuccessRate: getfloat("SETTLE_SUCCESS_RATE", 0.95),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
	}
	return fallback
}
