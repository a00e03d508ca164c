package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver string
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration
	JWTIssuer string

	// CardEncryptionKey is a base64 encoded 32 byte key; empty means an
	// ephemeral key is generated at boot.
	CardEncryptionKey string

	RabbitMQURL      string
	RabbitMQExchange string

	AdminEmail    string
	AdminPassword string

	LogLevel          string
	CompressResponses bool
}

const defaultJWTSecret = "food_marketplace_dev_secret"

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", ttl)
	}

	compress, err := strconv.ParseBool(getEnv("COMPRESS_RESPONSES", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPRESS_RESPONSES: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBSource:          getEnv("DB_SOURCE", "food_marketplace.db"),
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:            ttl,
		JWTIssuer:         getEnv("JWT_ISSUER", "food-marketplace-api"),
		CardEncryptionKey: os.Getenv("CARD_ENCRYPTION_KEY"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:  getEnv("RABBITMQ_EXCHANGE", "orders_topic"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CompressResponses: compress,
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverSQLiteCgo, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.GinMode == "release" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in release mode")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
