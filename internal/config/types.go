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

// Package config types define the configuration structures used throughout
// rollgate. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for rollgate. It consolidates
// settings from various sources and provides a unified interface for
// accessing configuration values throughout the application.
type Config struct {
	Rollbar  RollbarConfig  `yaml:"rollbar"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// RollbarConfig contains Rollbar-specific settings including the API
// endpoint and the name of the environment variable holding the read-scope
// access token. A custom endpoint is mainly useful for tests and for
// proxied deployments.
type RollbarConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	TokenEnv    string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to every check run
// unless overridden by command-line flags. These control the shape of the
// monitoring window and the outbound HTTP behavior.
type DefaultsConfig struct {
	Checks                int `yaml:"checks"`
	CheckSeconds          int `yaml:"check_seconds"`
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases: the public Rollbar API, a single check, no delay, and a 30
// second request timeout.
func DefaultConfig() *Config {
	return &Config{
		Rollbar: RollbarConfig{
			APIEndpoint: "https://api.rollbar.com",
			TokenEnv:    "ROLLBAR_READ_TOKEN",
		},
		Defaults: DefaultsConfig{
			Checks:                1,
			CheckSeconds:          0,
			RequestTimeoutSeconds: 30,
		},
	}
}

// RequestTimeout returns the outbound HTTP timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Defaults.RequestTimeoutSeconds) * time.Second
}
