package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is used when SUPPLIER_API_BASE_URL is not set.
	DefaultBaseURL = "http://localhost:8000/api/v1"
	// DefaultClientType identifies this front end to the backend role filter.
	DefaultClientType = "web"
)

// SupportedLanguages lists the interface languages a user may persist.
var SupportedLanguages = []string{"en", "ru"}

// Config represents the complete client configuration
type Config struct {
	API           APIConfig
	Storage       StorageConfig
	Preferences   PreferencesConfig
	Observability ObservabilityConfig
	Environment   string
}

// APIConfig holds backend connection settings
type APIConfig struct {
	BaseURL    string
	ClientType string
	Timeout    time.Duration
}

// StorageConfig holds the location of the persisted session state.
// An empty Dir keeps state in memory only.
type StorageConfig struct {
	Dir      string
	FileName string
}

// PreferencesConfig holds user interface preferences
type PreferencesConfig struct {
	Language string
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or console
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		API: APIConfig{
			BaseURL:    strings.TrimRight(getEnv("SUPPLIER_API_BASE_URL", DefaultBaseURL), "/"),
			ClientType: getEnv("SUPPLIER_CLIENT_TYPE", DefaultClientType),
			Timeout:    getEnvAsDuration("SUPPLIER_API_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Dir:      getEnv("SUPPLIER_STATE_DIR", defaultStateDir()),
			FileName: getEnv("SUPPLIER_STATE_FILE", "session.json"),
		},
		Preferences: PreferencesConfig{
			Language: getEnv("SUPPLIER_LANGUAGE", "en"),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "warn"),
			LogFormat: getEnv("LOG_FORMAT", "console"),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.ClientType == "" {
		return fmt.Errorf("client type is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}

	if !IsSupportedLanguage(c.Preferences.Language) {
		return fmt.Errorf("unsupported language %q (supported: %s)",
			c.Preferences.Language, strings.Join(SupportedLanguages, ", "))
	}

	// Observability validation
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}
	switch c.Observability.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console, got %q", c.Observability.LogFormat)
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Path returns the state file location, or "" when state is kept in memory.
func (c *StorageConfig) Path() string {
	if c.Dir == "" {
		return ""
	}
	return filepath.Join(c.Dir, c.FileName)
}

// IsSupportedLanguage reports whether lang is a known interface language.
func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Helper functions

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".supplierctl")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
