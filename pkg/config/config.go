// Package config loads client configuration from YAML with
// environment variable overrides, for the CLI and other long-lived
// embedders.
//
// Loading order: hardcoded defaults, then the YAML file, then
// environment variables. Credentials are usually supplied through the
// environment so config files can be committed without secrets.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/haystack-rest/haystack-go/pkg/session"
)

// Config is the root configuration structure.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	HTTP    HTTPConfig    `yaml:"http"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// ProjectConfig identifies the project and credentials.
type ProjectConfig struct {
	// URL is the project URL, e.g. "https://host/api/demo/".
	URL string `yaml:"url"`

	// Username and Password are the SCRAM credentials. Prefer the
	// HAYSTACK_USERNAME and HAYSTACK_PASSWORD environment variables
	// over putting these in a file.
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	// TimeoutSeconds is the per-request timeout (default: 30).
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent"`
}

// CaptureConfig contains event capture settings.
type CaptureConfig struct {
	// Enabled turns binary capture on.
	Enabled bool `yaml:"enabled"`

	// Path is the capture file, created if missing.
	Path string `yaml:"path"`
}

// LoggingConfig contains console logging settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error (default: info).
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path skips the file and uses defaults plus
// environment only.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
		},
		Capture: CaptureConfig{
			Path: "./haystack.hlog",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// applyEnvOverrides applies HAYSTACK_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HAYSTACK_URL"); v != "" {
		cfg.Project.URL = v
	}
	if v := os.Getenv("HAYSTACK_USERNAME"); v != "" {
		cfg.Project.Username = v
	}
	if v := os.Getenv("HAYSTACK_PASSWORD"); v != "" {
		cfg.Project.Password = v
	}
	if v := os.Getenv("HAYSTACK_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTP.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("HAYSTACK_CAPTURE_PATH"); v != "" {
		cfg.Capture.Enabled = true
		cfg.Capture.Path = v
	}
	if v := os.Getenv("HAYSTACK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for gaps that would fail later.
func (c *Config) Validate() error {
	if c.Project.URL == "" {
		return fmt.Errorf("project.url is required")
	}
	if _, err := session.NormalizeURL(c.Project.URL); err != nil {
		return err
	}
	if c.Project.Username == "" {
		return fmt.Errorf("project.username is required")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
