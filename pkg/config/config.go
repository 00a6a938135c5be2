// Package config loads client configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is used when nothing else is configured.
const DefaultServerURL = "http://localhost:8000/api"

// Config holds everything the client needs to reach the ticket service.
type Config struct {
	ServerURL      string `yaml:"server_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogFile        string `yaml:"log_file"`
}

// Timeout returns the request timeout as a duration; zero means the
// client default applies.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Path returns the default config file location
// (~/.config/tickdesk/config.yaml).
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tickdesk", "config.yaml"), nil
}

// Load reads the config file at path (missing file is not an error) and
// then applies TICKDESK_URL and TICKDESK_TIMEOUT from the environment.
func Load(path string) (Config, error) {
	cfg := Config{ServerURL: DefaultServerURL}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing %s: %w", path, err)
			}
			if cfg.ServerURL == "" {
				cfg.ServerURL = DefaultServerURL
			}
		}
	}

	if v := os.Getenv("TICKDESK_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("TICKDESK_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("TICKDESK_TIMEOUT: %w", err)
		}
		cfg.TimeoutSeconds = secs
	}
	return cfg, nil
}
