// Package config loads service settings from an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Backend names the storage implementation selected by the environment.
type Backend string

const (
	BackendMongo    Backend = "mongo"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Host string `validate:"required"`
	Port int    `validate:"min=1,max=65535"`

	MongoAddress  string `validate:"omitempty,url"`
	MongoDatabase string `validate:"required"`
	DatabaseURL   string `validate:"omitempty,url"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`
	DevSeed   bool

	RateLimitRPS   float64 `validate:"gte=0"`
	RateLimitBurst int     `validate:"gte=1"`

	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Addr is the listen address.
func (c Config) Addr() string { return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) }

// Backend picks Mongo, then Postgres, then the in-memory store.
func (c Config) Backend() Backend {
	switch {
	case c.MongoAddress != "":
		return BackendMongo
	case c.DatabaseURL != "":
		return BackendPostgres
	default:
		return BackendMemory
	}
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	var errs []error
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil { errs = append(errs, fmt.Errorf("PORT: %w", err)) }
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64)
	if err != nil { errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS: %w", err)) }
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil { errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST: %w", err)) }
	shutdown, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil { errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)) }
	if len(errs) > 0 { return Config{}, errors.Join(errs...) }

	cfg := Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            port,
		MongoAddress:    os.Getenv("MONGO_ADDRESS"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "moviecatalog"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		DevSeed:         truthy(os.Getenv("DEV_SEED")),
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		ShutdownTimeout: shutdown,
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
