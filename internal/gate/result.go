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

// Package gate implements the build-quality decision: comparing Rollbar
// item counts against a threshold and repeating the check across a
// monitoring window.
package gate

import (
	"fmt"

	"github.com/rollgate/rollgate/internal/rollbar"
)

// Result classifies one build-quality check. The numeric value doubles as
// the process exit code, so the constants must not be renumbered.
type Result int

const (
	// Success means neither the new nor the reactivated Error/Critical
	// count exceeds the threshold.
	Success Result = 0

	// NewItems means the new item count exceeds the threshold.
	NewItems Result = 1

	// ReactivatedItems means the reactivated item count exceeds the threshold.
	ReactivatedItems Result = 2

	// NewAndReactivatedItems means both counts exceed the threshold.
	NewAndReactivatedItems Result = NewItems + ReactivatedItems
)

// String returns a human-readable name for the result.
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case NewItems:
		return "new items"
	case ReactivatedItems:
		return "reactivated items"
	case NewAndReactivatedItems:
		return "new and reactivated items"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// ExitCode returns the process exit code for the result.
func (r Result) ExitCode() int {
	return int(r)
}

// Evaluate compares the new and reactivated counts against the threshold,
// each independently and strictly. Repeated and resolved counts never
// affect the outcome. Pure function of its inputs.
func Evaluate(stats *rollbar.VersionStats, threshold int) Result {
	result := Success
	if stats.New > threshold {
		result += NewItems
	}
	if stats.Reactivated > threshold {
		result += ReactivatedItems
	}
	return result
}

// StatusError reports a non-Success check result through the error return
// of the command layer so it can be mapped to the matching exit code.
type StatusError struct {
	Result Result
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("build quality check failed: %s", e.Result)
}
