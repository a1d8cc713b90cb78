// Copyright 2026 Rollgate, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for rollgate with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. A .env file in the
// working directory is loaded best-effort before environment variables are
// read, so pipelines can keep credentials next to the checkout.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .rollgate.yaml (current directory)
//   - .rollgate.yml (current directory)
//   - ~/.rollgate/config.yaml
//   - ~/.rollgate/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Pick up a local .env if present; missing files are not an error.
	_ = godotenv.Load()

	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".rollgate.yaml",
			".rollgate.yml",
			filepath.Join(os.Getenv("HOME"), ".rollgate", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".rollgate", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("ROLLBAR_API_ENDPOINT"); endpoint != "" {
		cfg.Rollbar.APIEndpoint = endpoint
	}
	if tokenEnv := os.Getenv("ROLLGATE_TOKEN_ENV"); tokenEnv != "" {
		cfg.Rollbar.TokenEnv = tokenEnv
	}
	if timeout := os.Getenv("ROLLGATE_REQUEST_TIMEOUT"); timeout != "" {
		if seconds, err := parsePositiveInt(timeout); err == nil {
			cfg.Defaults.RequestTimeoutSeconds = seconds
		}
	}
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from %q: %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. This should
// be called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Rollbar.APIEndpoint == "" {
		return fmt.Errorf("rollbar API endpoint cannot be empty")
	}
	if c.Rollbar.TokenEnv == "" {
		return fmt.Errorf("rollbar token environment variable name cannot be empty")
	}
	if c.Defaults.Checks < 1 {
		return fmt.Errorf("default checks must be at least 1, got: %d", c.Defaults.Checks)
	}
	if c.Defaults.CheckSeconds < 0 {
		return fmt.Errorf("default check seconds cannot be negative, got: %d", c.Defaults.CheckSeconds)
	}
	if c.Defaults.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %d", c.Defaults.RequestTimeoutSeconds)
	}
	return nil
}
