// Package config provides configuration loading and credential resolution.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// the environment.
type Config struct {
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key (fallback when requests carry none)
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for draft/override storage (optional)

	MaxContentChars  int    `json:"max_content_chars,omitempty"`  // Source content length bound (runes)
	MaxAttempts      int    `json:"max_attempts,omitempty"`       // Outbound retry budget
	RetryBaseDelayMS int    `json:"retry_base_delay_ms,omitempty"`// Backoff base delay
	GeminiModel      string `json:"gemini_model,omitempty"`       // Text generation model override
	ImagenModel      string `json:"imagen_model,omitempty"`       // Image generation model override
	GeminiBaseURL    string `json:"gemini_base_url,omitempty"`    // API base URL override (for testing)
}

// Defaults mirrored by the client and validator packages.
const (
	DefaultPort            = 8080
	DefaultMaxContentChars = 5000
	DefaultMaxAttempts     = 3
	DefaultRetryBaseDelay  = time.Second
)

// Load reads configuration from a JSON file. Returns an error if the file
// cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Used when no config
// file is given; a loaded file merges over this via ApplyEnvFallbacks.
func FromEnv() Config {
	var cfg Config
	cfg.ApplyEnvFallbacks()
	return cfg
}

// ApplyEnvFallbacks fills empty fields from the environment.
func (c *Config) ApplyEnvFallbacks() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
			c.Port = port
		}
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxContentChars < 0 {
		return fmt.Errorf("config error: 'max_content_chars' must be non-negative")
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("config error: 'max_attempts' must be non-negative")
	}
	if c.RetryBaseDelayMS < 0 {
		return fmt.Errorf("config error: 'retry_base_delay_ms' must be non-negative")
	}
	return nil
}

// EffectivePort returns the configured port or the default.
func (c *Config) EffectivePort() int {
	if c.Port > 0 {
		return c.Port
	}
	return DefaultPort
}

// EffectiveMaxContentChars returns the configured bound or the default.
func (c *Config) EffectiveMaxContentChars() int {
	if c.MaxContentChars > 0 {
		return c.MaxContentChars
	}
	return DefaultMaxContentChars
}

// EffectiveRetryBaseDelay returns the configured backoff base or the default.
func (c *Config) EffectiveRetryBaseDelay() time.Duration {
	if c.RetryBaseDelayMS > 0 {
		return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
	}
	return DefaultRetryBaseDelay
}

// EffectiveMaxAttempts returns the configured retry budget or the default.
func (c *Config) EffectiveMaxAttempts() int {
	if c.MaxAttempts > 0 {
		return c.MaxAttempts
	}
	return DefaultMaxAttempts
}
