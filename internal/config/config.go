package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	Environment        string
	DBConnectionString string
	JWTSecret          string
	AccessTokenTTL     time.Duration
	CORSOrigins        []string
}

// Load reads the configuration from the environment, after loading a .env file when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, continuing with system environment variables")
	}

	ttl, err := time.ParseDuration(getEnv("ACCESS_TOKEN_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "dev"),
		DBConnectionString: os.Getenv("DB_CONNECTION_STRING"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenTTL:     ttl,
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DBConnectionString == "" {
		errs = append(errs, errors.New("no DB_CONNECTION_STRING provided"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("no JWT_SECRET provided"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
