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

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	rollgateerrors "github.com/rollgate/rollgate/internal/errors"
)

// maxResponseBytes caps how much of a Versions API response is read.
// A well-formed response is a few kilobytes; anything larger is not a
// response we can trust.
const maxResponseBytes = 1 << 20

// HTTPClient implements the Client interface against the Rollbar REST API.
// It issues exactly one GET per VersionStats call with no retries; repeat
// checking is the caller's concern.
type HTTPClient struct {
	endpoint string
	http     *http.Client
}

// NewHTTPClient creates a Rollbar Versions API client. The access token is
// sent on every request via the X-Rollbar-Access-Token header. endpoint is
// the API base URL, e.g. https://api.rollbar.com. The client is configured
// with:
//   - Authentication via the provided token
//   - A per-request timeout covering connect, send and read
//   - Response size limiting to guard against pathological bodies
//   - Connection pooling sized for a short-lived CLI process
func NewHTTPClient(token, endpoint string, timeout time.Duration) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				token: token,
				base:  transport,
			},
		},
	}
}

// VersionStats issues one GET to /api/1/versions/{codeVersion} scoped to the
// given environment and sums the Error and Critical counts per item status.
// Every failure mode wraps errors.ErrWebRequest: the gate treats an
// unreadable answer the same as no answer.
func (c *HTTPClient) VersionStats(ctx context.Context, codeVersion, environment string) (*VersionStats, error) {
	endpoint := fmt.Sprintf("%s/api/1/versions/%s?environment=%s",
		c.endpoint, url.PathEscape(codeVersion), url.QueryEscape(environment))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build versions request: %v: %w", err, rollgateerrors.ErrWebRequest)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call versions api: %v: %w", err, rollgateerrors.ErrWebRequest)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read versions response: %v: %w", err, rollgateerrors.ErrWebRequest)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("versions api returned status %d: %w", resp.StatusCode, rollgateerrors.ErrWebRequest)
	}

	var envelope versionEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse versions response: %v: %w", err, rollgateerrors.ErrWebRequest)
	}
	if envelope.Err != 0 {
		return nil, fmt.Errorf("versions api error %d: %s: %w",
			envelope.Err, envelope.Message, rollgateerrors.ErrWebRequest)
	}

	stats := envelope.Result.ItemStats
	return &VersionStats{
		New:         stats.New.ErrorAndAbove(),
		Reactivated: stats.Reactivated.ErrorAndAbove(),
		Repeated:    stats.Repeated.ErrorAndAbove(),
		Resolved:    stats.Resolved.ErrorAndAbove(),
	}, nil
}
