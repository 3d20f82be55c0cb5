package config

import (
	"os"
	"strconv"
	"strings"

	"txdash/internal/errors"
)

// Data source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	Server   ServerConfig
	Render   RenderConfig
	LogLevel string
}

// DataConfig holds where the pre-computed datasets come from
type DataConfig struct {
	Source string
	Dir    string
}

// DatabaseConfig holds database connection settings for the postgres source
type DatabaseConfig struct {
	URL    string
	Schema string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
	Title   string
}

// RenderConfig holds section rendering settings
type RenderConfig struct {
	HistogramBins int
	PreviewRows   int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			Source: strings.ToLower(getEnvOrDefault("DATA_SOURCE", SourceCSV)),
			Dir:    getEnvOrDefault("DATA_DIR", "processed"),
		},
		Database: DatabaseConfig{
			URL:    os.Getenv("DATABASE_URL"),
			Schema: os.Getenv("DATABASE_SCHEMA"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
			Title:   getEnvOrDefault("DASHBOARD_TITLE", "Gensyn Analysis Dashboard"),
		},
		Render: RenderConfig{
			HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", 50),
			PreviewRows:   getEnvIntOrDefault("PREVIEW_ROWS", 5),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourceCSV:
		if config.Data.Dir == "" {
			return errors.ConfigInvalid("DATA_DIR is required for the csv source")
		}
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres source")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be csv or postgres, got " + strconv.Quote(config.Data.Source))
	}
	if config.Render.HistogramBins < 1 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	if config.Render.PreviewRows < 1 {
		return errors.ConfigInvalid("PREVIEW_ROWS must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
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
