package config

// Config represents the complete configuration structure
type Config struct {
	Steam   SteamConfig   `mapstructure:"steam"`
	Output  OutputConfig  `mapstructure:"output"`
	Beaten  BeatenConfig  `mapstructure:"beaten"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SteamConfig holds the Steam Web API credentials. Both values can also be
// supplied through the STEAM_API_KEY and STEAM_ID environment variables.
type SteamConfig struct {
	APIKey  string `mapstructure:"api_key"`
	SteamID string `mapstructure:"steam_id"`
}

// OutputConfig controls where the report is written
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// BeatenConfig tunes the completion heuristic
type BeatenConfig struct {
	// Threshold is the fraction of achievements that must be unlocked
	// before a game counts as beaten.
	Threshold float64 `mapstructure:"threshold"`
}

// FetchConfig tunes the rate-limit backoff
type FetchConfig struct {
	MinWaitSeconds int `mapstructure:"min_wait_seconds"`
	MaxWaitSeconds int `mapstructure:"max_wait_seconds"`
	MaxAttempts    int `mapstructure:"max_attempts"`
}

// FilterConfig contains the default filter expression
type FilterConfig struct {
	DefaultExpression string `mapstructure:"default_expression"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
