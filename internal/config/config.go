package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrMissingBaseURL = errors.New("api base URL is not configured")

// Config holds all application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Search   SearchConfig   `mapstructure:"search"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// APIConfig holds settings for the primary backend API.
type APIConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	StaticBaseURL string `mapstructure:"static_base_url"`
	Timeout       int    `mapstructure:"timeout"` // seconds
}

// TMDBConfig holds settings for the third-party metadata service.
type TMDBConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	ImageBaseURL string `mapstructure:"image_base_url"`
	APIKey       string `mapstructure:"api_key"`
	Timeout      int    `mapstructure:"timeout"` // seconds
}

// SearchConfig holds the search engine tuning knobs.
type SearchConfig struct {
	PageSize        int `mapstructure:"page_size"`
	QueryDebounceMS int `mapstructure:"query_debounce_ms"`
	RangeDebounceMS int `mapstructure:"range_debounce_ms"`
	PageDebounceMS  int `mapstructure:"page_debounce_ms"`
}

// ResolverConfig holds image resolution settings.
type ResolverConfig struct {
	Workers            int    `mapstructure:"workers"`
	PosterPlaceholder  string `mapstructure:"poster_placeholder"`
	ProfilePlaceholder string `mapstructure:"profile_placeholder"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Default returns a Config with default values.
func Default() *Config {
	cfg := &Config{}
	v := viper.New()
	setDefaults(v)
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.cinetrail")
	}

	v.SetEnvPrefix("CINETRAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings the application cannot run without.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("search.page_size must be positive, got %d", c.Search.PageSize)
	}
	if c.Resolver.Workers <= 0 {
		return fmt.Errorf("resolver.workers must be positive, got %d", c.Resolver.Workers)
	}
	return nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "http://localhost:8000/api/")
	v.SetDefault("api.static_base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", 15)

	// TMDB defaults
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.timeout", 10)

	// Search defaults; the debounce intervals mirror the per-field-class
	// delays the UI applies before firing a query.
	v.SetDefault("search.page_size", 8)
	v.SetDefault("search.query_debounce_ms", 500)
	v.SetDefault("search.range_debounce_ms", 300)
	v.SetDefault("search.page_debounce_ms", 250)

	// Resolver defaults
	v.SetDefault("resolver.workers", 4)
	v.SetDefault("resolver.poster_placeholder", "/assets/movie_poster_placeholder.png")
	v.SetDefault("resolver.profile_placeholder", "/assets/profile_pic_placeholder.png")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)
}
