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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rollgate/rollgate/internal/config"
	rollgateerrors "github.com/rollgate/rollgate/internal/errors"
	"github.com/rollgate/rollgate/internal/gate"
	"github.com/rollgate/rollgate/internal/rollbar"
)

// Allowed ranges for check inputs. The token length matches Rollbar project
// access tokens; identifiers are capped to keep request URLs bounded.
const (
	accessTokenLength   = 32
	maxIdentifierLength = 200
)

// checkOptions holds the fully resolved inputs for one check run.
// Immutable once built; the process exits when the run completes.
type checkOptions struct {
	token        string
	codeVersion  string
	environment  string
	threshold    int
	checks       int
	checkSeconds int
}

// checkCmd represents the check command
func newCheckCommand() *cobra.Command {
	var (
		accessToken   string
		codeVersion   string
		environment   string
		itemThreshold int
		checks        int
		checkSeconds  int
		configPath    string
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a code version is healthy enough to keep rolling out",
		Long: `Check new and reactivated Rollbar item counts for a code version and
environment against a threshold.

Authentication is required via a read-scope Rollbar project access token:
  - Use --access-token to provide the token directly
  - Or set the ROLLBAR_READ_TOKEN environment variable

Exit codes:

  0   - No new or reactivated items of level Error or Critical
  1   - New items of level Error or Critical
  2   - Reactivated items of level Error or Critical
  3   - New and reactivated items of level Error or Critical
  100 - General error
  101 - Web request error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Flags win over config-file defaults only when set.
			if !cmd.Flags().Changed("checks") {
				checks = cfg.Defaults.Checks
			}
			if !cmd.Flags().Changed("check-seconds") {
				checkSeconds = cfg.Defaults.CheckSeconds
			}

			token := resolveToken(accessToken, cfg.Rollbar.TokenEnv)
			if token == "" {
				return fmt.Errorf("rollbar access token not found. Set %s or use --access-token flag", cfg.Rollbar.TokenEnv)
			}

			opts := checkOptions{
				token:        token,
				codeVersion:  codeVersion,
				environment:  environment,
				threshold:    itemThreshold,
				checks:       checks,
				checkSeconds: checkSeconds,
			}

			return runCheck(cmd.Context(), cfg, opts, newLogger(logLevel, os.Stderr))
		},
	}

	// Define flags
	cmd.Flags().StringVar(&accessToken, "access-token", "", "Rollbar project access token with read scope (overrides ROLLBAR_READ_TOKEN)")
	cmd.Flags().StringVar(&codeVersion, "code-version", "", "Code version of the deployed build, typically a commit SHA")
	cmd.Flags().StringVar(&environment, "environment", "", "Environment the build is deployed to")
	cmd.Flags().IntVar(&itemThreshold, "item-threshold", 0, "Item count above which the check fails, applied per category")
	cmd.Flags().IntVar(&checks, "checks", 1, "Number of checks to run. Used for progressive deployments")
	cmd.Flags().IntVar(&checkSeconds, "check-seconds", 0, "Number of seconds between checks")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: .rollgate.yaml)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	_ = cmd.MarkFlagRequired("code-version")
	_ = cmd.MarkFlagRequired("environment")
	_ = cmd.MarkFlagRequired("item-threshold")

	return cmd
}

// runCheck executes the check command
func runCheck(ctx context.Context, cfg *config.Config, opts checkOptions, log *slog.Logger) error {
	if err := validateOptions(opts); err != nil {
		return err
	}

	log.Info("checking build quality with rollbar",
		"code_version", opts.codeVersion,
		"environment", opts.environment,
		"item_threshold", opts.threshold,
		"checks", opts.checks,
		"check_seconds", opts.checkSeconds)

	client := rollbar.NewHTTPClient(opts.token, cfg.Rollbar.APIEndpoint, cfg.RequestTimeout())

	runner := &gate.Runner{
		Client:    client,
		Threshold: opts.threshold,
		Checks:    opts.checks,
		Interval:  time.Duration(opts.checkSeconds) * time.Second,
		Log:       log,
	}

	result, err := runner.Run(ctx, opts.codeVersion, opts.environment)
	if err != nil {
		return err
	}
	if result != gate.Success {
		return &gate.StatusError{Result: result}
	}
	return nil
}

// resolveToken returns the access token from the flag or, when the flag is
// empty, from the configured environment variable.
func resolveToken(flagToken, tokenEnv string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(tokenEnv)
}

// validateOptions verifies that each input has an allowed value before any
// network call is made.
func validateOptions(opts checkOptions) error {
	if len(opts.token) != accessTokenLength || !isAlphanumeric(opts.token) {
		return fmt.Errorf("the access-token argument is not valid: %w", rollgateerrors.ErrInvalidInput)
	}
	if opts.codeVersion == "" || len(opts.codeVersion) > maxIdentifierLength {
		return fmt.Errorf("the code-version argument is not valid: %w", rollgateerrors.ErrInvalidInput)
	}
	if !isEnvironmentName(opts.environment) || len(opts.environment) > maxIdentifierLength {
		return fmt.Errorf("the environment argument is not valid: %w", rollgateerrors.ErrInvalidInput)
	}
	if opts.threshold < 0 {
		return fmt.Errorf("the item-threshold argument is not valid: %w", rollgateerrors.ErrInvalidInput)
	}
	if opts.checks < 1 {
		return fmt.Errorf("the checks argument is not valid: %w", rollgateerrors.ErrInvalidInput)
	}
	if opts.checkSeconds < 0 {
		return fmt.Errorf("the check-seconds argument is not valid: %w", rollgateerrors.ErrInvalidInput)
	}
	return nil
}

// isAlphanumeric reports whether s is non-empty ASCII letters and digits.
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlphanumericRune(r) {
			return false
		}
	}
	return true
}

// isEnvironmentName reports whether s is a valid environment label:
// non-empty ASCII letters and digits plus '.', '_' and '-'.
func isEnvironmentName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlphanumericRune(r) && r != '.' && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

func isAlphanumericRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
