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

package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rollgate/rollgate/internal/rollbar"
)

// SleepFunc pauses between checks. Implementations must return early with
// ctx.Err() when the context is canceled.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Runner repeats the version check across a monitoring window during a
// progressive rollout. It stops at the first check whose counts exceed the
// threshold and reports that result; only a run where every check passes
// is a Success.
type Runner struct {
	Client    rollbar.Client
	Threshold int
	Checks    int
	Interval  time.Duration

	// Sleep pauses between checks. Defaults to a context-aware wait on
	// the wall clock; tests inject a fake.
	Sleep SleepFunc

	Log *slog.Logger
}

// Run performs up to r.Checks checks for the given code version and
// environment, sleeping r.Interval between checks when another check
// follows. Any client failure aborts the run immediately.
func (r *Runner) Run(ctx context.Context, codeVersion, environment string) (Result, error) {
	sleep := r.Sleep
	if sleep == nil {
		sleep = waitClock
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	result := Success
	for i := 1; i <= r.Checks; i++ {
		log.Info("checking build quality",
			"check", i,
			"checks", r.Checks,
			"code_version", codeVersion,
			"environment", environment)

		stats, err := r.Client.VersionStats(ctx, codeVersion, environment)
		if err != nil {
			return Success, fmt.Errorf("check %d of %d: %w", i, r.Checks, err)
		}

		log.Info("item counts at error level and above",
			"new", stats.New,
			"reactivated", stats.Reactivated,
			"repeated", stats.Repeated,
			"resolved", stats.Resolved)

		result = Evaluate(stats, r.Threshold)
		if result != Success {
			log.Warn("item threshold exceeded",
				"result", result.String(),
				"threshold", r.Threshold)
			return result, nil
		}

		if i < r.Checks {
			if err := sleep(ctx, r.Interval); err != nil {
				return Success, fmt.Errorf("wait before check %d: %w", i+1, err)
			}
		}
	}

	log.Info("build quality check passed",
		"checks", r.Checks,
		"threshold", r.Threshold)
	return result, nil
}

// waitClock blocks for d or until ctx is canceled.
func waitClock(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
