package config

import (
	"os"
	"strconv"

	"fluxgear/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Report   ReportConfig
}

// DatabaseConfig holds database connection settings. URL is optional: when
// empty the application runs with the in-memory sweep repository.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ReportConfig holds report output settings
type ReportConfig struct {
	// XLSXPath is where the workbook report is written; empty disables it.
	XLSXPath string
	// Rounding is the decimal precision used by presentation layers.
	Rounding int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Report: ReportConfig{
			XLSXPath: getEnvOrDefault("REPORT_XLSX", ""),
			Rounding: getEnvIntOrDefault("REPORT_ROUNDING", 2),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Report.Rounding < 0 || config.Report.Rounding > 10 {
		return errors.ConfigInvalid("report rounding must be in [0, 10]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
