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

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rollgate/rollgate/test/testutil"
)

// runWrapper executes run_task.sh with the given positional arguments and
// environment additions, returning the exit code and stderr.
func runWrapper(t *testing.T, args []string, env map[string]string) (int, string) {
	t.Helper()

	root, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	// Tests run from test/integration; the wrapper lives at the repo root.
	script := filepath.Join(root, "..", "..", "run_task.sh")

	cmd := exec.Command("bash", append([]string{script}, args...)...)
	cmd.Env = []string{"PATH=" + os.Getenv("PATH")}
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Dir = t.TempDir()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return 0, stderr.String()
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), stderr.String()
	}
	t.Fatalf("run wrapper: %v", err)
	return -1, ""
}

func TestWrapperPropagatesExitCode(t *testing.T) {
	binary := testutil.BuildBinary(t)

	tests := []struct {
		name             string
		newCount         int
		reactivatedCount int
		wantExit         int
	}{
		{name: "healthy build", wantExit: 0},
		{name: "new items", newCount: 1, wantExit: 1},
		{name: "reactivated items", reactivatedCount: 1, wantExit: 2},
		{name: "both", newCount: 1, reactivatedCount: 1, wantExit: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewVersionsServer(t,
				testutil.GenerateVersionResponse(tt.newCount, tt.reactivatedCount))
			defer server.Close()

			code, stderr := runWrapper(t,
				[]string{"v1.2.3", "production"},
				map[string]string{
					"ROLLGATE_BIN":         binary,
					"ROLLBAR_READ_TOKEN":   testutil.TestToken,
					"ROLLBAR_API_ENDPOINT": server.URL,
				})

			if code != tt.wantExit {
				t.Errorf("exit code = %d, want %d\nstderr: %s", code, tt.wantExit, stderr)
			}

			// The wrapper performs exactly one check.
			if got := server.RequestCount(); got != 1 {
				t.Errorf("request count = %d, want 1", got)
			}
		})
	}
}

func TestWrapperMissingToken(t *testing.T) {
	binary := testutil.BuildBinary(t)

	code, stderr := runWrapper(t,
		[]string{"v1.2.3", "production"},
		map[string]string{"ROLLGATE_BIN": binary})

	if code != 100 {
		t.Errorf("exit code = %d, want 100\nstderr: %s", code, stderr)
	}
}

func TestWrapperWrongArgumentCount(t *testing.T) {
	binary := testutil.BuildBinary(t)

	for _, args := range [][]string{
		{},
		{"v1.2.3"},
		{"v1.2.3", "production", "extra"},
	} {
		code, stderr := runWrapper(t, args,
			map[string]string{
				"ROLLGATE_BIN":       binary,
				"ROLLBAR_READ_TOKEN": testutil.TestToken,
			})

		if code != 100 {
			t.Errorf("args %v: exit code = %d, want 100\nstderr: %s", args, code, stderr)
		}
	}
}

func TestWrapperWebRequestError(t *testing.T) {
	binary := testutil.BuildBinary(t)

	server := testutil.NewErrorServer(t, 503)
	defer server.Close()

	code, stderr := runWrapper(t,
		[]string{"v1.2.3", "production"},
		map[string]string{
			"ROLLGATE_BIN":         binary,
			"ROLLBAR_READ_TOKEN":   testutil.TestToken,
			"ROLLBAR_API_ENDPOINT": server.URL,
		})

	if code != 101 {
		t.Errorf("exit code = %d, want 101\nstderr: %s", code, stderr)
	}
}
