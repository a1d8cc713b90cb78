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

import "net/http"

const userAgent = "rollgate"

// authTransport injects the Rollbar access token and a User-Agent header
// into every outgoing request. The token never appears in URLs, so it
// cannot leak through logs or proxies that record request lines.
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Rollbar-Access-Token", t.token)
	clone.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(clone)
}
