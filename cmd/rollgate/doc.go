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

// Package main implements the rollgate command-line interface.
// This tool polls the Rollbar Versions API for new and reactivated items
// at Error or Critical level and reports through its exit code whether a
// build is healthy enough to keep rolling out.
//
// The CLI supports:
//   - A single check (default behavior)
//   - Repeated checks with a fixed delay for staged rollouts (--checks,
//     --check-seconds)
//   - Rollbar token authentication via flag or environment variable
//   - YAML configuration files with environment variable overrides
//
// Usage:
//
//	rollgate check [flags]
//
// Example:
//
//	export ROLLBAR_READ_TOKEN=your_token
//	rollgate check --code-version 1a2b3c4d --environment production --item-threshold 0
//
// Exit codes:
//   - 0: No new or reactivated Error/Critical items
//   - 1: New Error/Critical items present
//   - 2: Reactivated Error/Critical items present
//   - 3: Both new and reactivated Error/Critical items present
//   - 100: General error (bad arguments, unexpected internal failure)
//   - 101: Web request error (network/HTTP failure)
package main
