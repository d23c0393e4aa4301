package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment. The config file is
// optional: the two required Steam values can come entirely from the
// STEAM_API_KEY and STEAM_ID environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Environment overrides
	v.BindEnv("steam.api_key", "STEAM_API_KEY")
	v.BindEnv("steam.steam_id", "STEAM_ID")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".backlogr"))
		}

		// Check /etc
		v.AddConfigPath("/etc/backlogr/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Output defaults
	v.SetDefault("output.path", "steam_library.csv")

	// Beaten heuristic defaults
	v.SetDefault("beaten.threshold", 0.5)

	// Backoff defaults
	v.SetDefault("fetch.min_wait_seconds", 1)
	v.SetDefault("fetch.max_wait_seconds", 60)
	v.SetDefault("fetch.max_attempts", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Steam.APIKey == "" {
		return fmt.Errorf("steam.api_key is required (or set STEAM_API_KEY)")
	}

	if cfg.Beaten.Threshold <= 0 || cfg.Beaten.Threshold > 1 {
		return fmt.Errorf("beaten.threshold must be in (0, 1], got %v", cfg.Beaten.Threshold)
	}

	if cfg.Fetch.MinWaitSeconds < 1 {
		return fmt.Errorf("fetch.min_wait_seconds must be at least 1")
	}
	if cfg.Fetch.MaxWaitSeconds < cfg.Fetch.MinWaitSeconds {
		return fmt.Errorf("fetch.max_wait_seconds must be >= fetch.min_wait_seconds")
	}
	if cfg.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("fetch.max_attempts must be at least 1")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
