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

package rollbar

import "context"

// MockResponse scripts one VersionStats call in a MockClient.
type MockResponse struct {
	Stats *VersionStats
	Err   error
}

// MockClient is a scriptable implementation of the Client interface for
// testing. Each call consumes the next MockResponse; the final response
// repeats once the script is exhausted. Calls are recorded so tests can
// verify how the check loop drove the client.
type MockClient struct {
	Responses []MockResponse

	// Track calls for verification
	CallCount       int
	LastCodeVersion string
	LastEnvironment string
}

// VersionStats implements the Client interface.
func (m *MockClient) VersionStats(ctx context.Context, codeVersion, environment string) (*VersionStats, error) {
	m.CallCount++
	m.LastCodeVersion = codeVersion
	m.LastEnvironment = environment

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(m.Responses) == 0 {
		return &VersionStats{}, nil
	}

	idx := m.CallCount - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}

	r := m.Responses[idx]
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Stats, nil
}
