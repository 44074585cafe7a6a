package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Rates    RatesConfig
	Ledger   LedgerConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// StoreConfig points at the external JSON store. An empty URL runs the
// service against a seeded in-memory store, useful for local development.
type StoreConfig struct {
	URL     string
	Timeout int // seconds
}

// RatesConfig points at the exchange-rate service. TableBase is the currency
// the rate table is requested against.
type RatesConfig struct {
	URL       string
	TableBase string
	Timeout   int // seconds
}

// LedgerConfig carries the ledger policy knobs. An empty IntentLogPath
// disables the local write-ahead record.
type LedgerConfig struct {
	BaseCurrency  string
	IntentLogPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Store: StoreConfig{
			URL:     getEnv("STORE_URL", ""),
			Timeout: getEnvAsInt("STORE_TIMEOUT", 10),
		},
		Rates: RatesConfig{
			URL:       getEnv("RATES_URL", "https://api.exchangerate-api.com/v4/latest"),
			TableBase: getEnv("RATES_TABLE_BASE", "USD"),
			Timeout:   getEnvAsInt("RATES_TIMEOUT", 10),
		},
		Ledger: LedgerConfig{
			BaseCurrency:  getEnv("BASE_CURRENCY", "KES"),
			IntentLogPath: getEnv("INTENT_LOG_PATH", "ministore-intents.db"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Ledger.BaseCurrency == "" {
		return fmt.Errorf("BASE_CURRENCY is required")
	}

	if c.Rates.URL == "" {
		return fmt.Errorf("RATES_URL is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
