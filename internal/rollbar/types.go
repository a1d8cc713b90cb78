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

// Package rollbar provides types and a client for the Rollbar Versions API.
package rollbar

// SeverityCounts holds per-severity item counts for one item status bucket
// (new, reactivated, repeated or resolved) in a Versions API response.
type SeverityCounts struct {
	Debug    int `json:"debug"`
	Info     int `json:"info"`
	Warning  int `json:"warning"`
	Error    int `json:"error"`
	Critical int `json:"critical"`
}

// ErrorAndAbove returns the combined count of Error and Critical items.
// Lower severities never influence a build-quality decision.
func (s SeverityCounts) ErrorAndAbove() int {
	return s.Error + s.Critical
}

// itemStats mirrors result.item_stats in a Versions API response.
// See https://explorer.docs.rollbar.com/#tag/Versions
type itemStats struct {
	New         SeverityCounts `json:"new"`
	Reactivated SeverityCounts `json:"reactivated"`
	Repeated    SeverityCounts `json:"repeated"`
	Resolved    SeverityCounts `json:"resolved"`
}

// versionEnvelope mirrors the standard Rollbar API response envelope.
// A non-zero Err means the API rejected the request even though the
// HTTP layer succeeded.
type versionEnvelope struct {
	Err     int    `json:"err"`
	Message string `json:"message"`
	Result  struct {
		ItemStats itemStats `json:"item_stats"`
	} `json:"result"`
}

// VersionStats holds Error/Critical item counts for one
// (code version, environment) pair. New and Reactivated drive the gate
// decision; Repeated and Resolved are reported for operator context only.
// Created fresh per API response and never persisted.
type VersionStats struct {
	New         int
	Reactivated int
	Repeated    int
	Resolved    int
}
