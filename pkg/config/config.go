package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port string
	Env  string

	// CORS configuration
	AllowedOrigins []string

	// Bitpanda API configuration
	BitpandaBaseURL string
	BitpandaAPIKey  string

	// CoinGecko API configuration
	CoinGeckoBaseURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "*")),
		BitpandaBaseURL:  getEnv("BITPANDA_BASE_URL", "https://api.bitpanda.com/v1"),
		BitpandaAPIKey:   getEnv("BITPANDA_API_KEY", ""),
		CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}

	if c.BitpandaBaseURL == "" {
		return fmt.Errorf("BITPANDA_BASE_URL is required")
	}

	if c.CoinGeckoBaseURL == "" {
		return fmt.Errorf("COINGECKO_BASE_URL is required")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma-separated environment value into trimmed entries
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
