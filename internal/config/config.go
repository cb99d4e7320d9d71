package config

import (
	"os"
	"strconv"
	"time"

	"acsward/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Census   CensusConfig `validate:"required"`
	Output   OutputConfig `validate:"required"`
	Database DatabaseConfig
}

// CensusConfig holds Census API request settings
type CensusConfig struct {
	BaseURL   string `validate:"required"`
	Year      string `validate:"required"`
	Dataset   string `validate:"required"`
	StateFIPS string `validate:"required"`
	Timeout   time.Duration
}

// OutputConfig holds file output settings
type OutputConfig struct {
	BaseDir   string `validate:"required"`
	Filename  string `validate:"required"`
	ExcelFile string
}

// DatabaseConfig holds optional Postgres load settings
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Census:   loadCensusConfig(),
		Output:   loadOutputConfig(),
		Database: loadDatabaseConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadCensusConfig() CensusConfig {
	return CensusConfig{
		BaseURL:   getEnvOrDefault("CENSUS_BASE_URL", "https://api.census.gov/data"),
		Year:      getEnvOrDefault("ACS_YEAR", "2019"),
		Dataset:   getEnvOrDefault("ACS_DATASET", "acs/acs5"),
		StateFIPS: getEnvOrDefault("STATE_FIPS", "11"),
		Timeout:   getEnvDurationOrDefault("HTTP_TIMEOUT", 30*time.Second),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		BaseDir:   getEnvOrDefault("OUTPUT_DIR", "data"),
		Filename:  getEnvOrDefault("OUTPUT_FILE", "acs_ward_under5_pop.csv"),
		ExcelFile: getEnvOrDefault("EXCEL_FILE", ""),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL: getEnvOrDefault("DATABASE_URL", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Census.Year == "" {
		return errors.ConfigInvalid("ACS year is required")
	}
	if _, err := strconv.Atoi(config.Census.Year); err != nil {
		return errors.ConfigInvalid("ACS year must be numeric")
	}
	if config.Census.Dataset == "" {
		return errors.ConfigInvalid("ACS dataset is required")
	}
	if config.Census.StateFIPS == "" {
		return errors.ConfigInvalid("state FIPS code is required")
	}
	if config.Output.BaseDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Output.Filename == "" {
		return errors.ConfigInvalid("output filename is required")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
