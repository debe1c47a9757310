package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port            string
	DatabaseURL     string
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	DBMaxConns      int32
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:    fallback(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:   fallback(os.Getenv("LOG_FORMAT"), "json"),
	}

	if n, err := strconv.Atoi(fallback(os.Getenv("DB_MAX_CONNS"), "0")); err == nil && n > 0 {
		cfg.DBMaxConns = int32(n)
	}

	seconds := fallback(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"), "15")
	if s, err := strconv.Atoi(seconds); err == nil && s > 0 {
		cfg.ShutdownTimeout = time.Duration(s) * time.Second
	} else {
		cfg.ShutdownTimeout = 15 * time.Second
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
