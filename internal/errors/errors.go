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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrWebRequest indicates the Rollbar Versions API call could not be
	// completed: network failure, non-2xx status, or an unusable body.
	// Maps to exit code 101.
	ErrWebRequest = errors.New("web request failed")

	// ErrInvalidInput indicates a flag or configuration value is outside
	// its allowed range. Maps to exit code 100.
	ErrInvalidInput = errors.New("invalid input")
)
