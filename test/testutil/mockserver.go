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

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// MockServer provides common mock Versions API configurations for testing
type MockServer struct {
	*httptest.Server
	requestCount int32
}

// RequestCount returns how many requests the server has handled.
func (s *MockServer) RequestCount() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// severityCounts mirrors one status bucket of a Versions API response.
type severityCounts struct {
	Debug    int `json:"debug"`
	Info     int `json:"info"`
	Warning  int `json:"warning"`
	Error    int `json:"error"`
	Critical int `json:"critical"`
}

// VersionResponse is a scriptable Versions API response body.
type VersionResponse struct {
	Err    int `json:"err"`
	Result struct {
		ItemStats struct {
			New         severityCounts `json:"new"`
			Reactivated severityCounts `json:"reactivated"`
			Repeated    severityCounts `json:"repeated"`
			Resolved    severityCounts `json:"resolved"`
		} `json:"item_stats"`
	} `json:"result"`
}

// GenerateVersionResponse builds a Versions API response with the given
// Error-level counts for new and reactivated items, padded with noise at
// lower severities that a correct client must ignore.
func GenerateVersionResponse(newCount, reactivatedCount int) *VersionResponse {
	resp := &VersionResponse{}
	resp.Result.ItemStats.New = severityCounts{Debug: 12, Info: 5, Warning: 3, Error: newCount}
	resp.Result.ItemStats.Reactivated = severityCounts{Info: 2, Error: reactivatedCount}
	resp.Result.ItemStats.Repeated = severityCounts{Warning: 8, Error: 1}
	resp.Result.ItemStats.Resolved = severityCounts{Error: 2}
	return resp
}

// NewVersionsServer creates a mock server that always answers with the
// given response.
func NewVersionsServer(t *testing.T, response *VersionResponse) *MockServer {
	t.Helper()

	server := &MockServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&server.requestCount, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	return server
}

// NewSequenceServer creates a mock server that replays the given responses
// in order, repeating the last one once exhausted.
func NewSequenceServer(t *testing.T, responses ...*VersionResponse) *MockServer {
	t.Helper()

	server := &MockServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := atomic.AddInt32(&server.requestCount, 1)

		idx := int(count) - 1
		if idx >= len(responses) {
			idx = len(responses) - 1
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(responses[idx])
	}))
	return server
}

// NewErrorServer creates a mock server that always returns the specified
// HTTP status.
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()

	server := &MockServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&server.requestCount, 1)
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	}))
	return server
}

// NewMalformedServer creates a mock server that returns 200 with a body
// that is not valid JSON.
func NewMalformedServer(t *testing.T) *MockServer {
	t.Helper()

	server := &MockServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&server.requestCount, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"err": 0, "result": {`))
	}))
	return server
}
