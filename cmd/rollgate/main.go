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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rollgateerrors "github.com/rollgate/rollgate/internal/errors"
	"github.com/rollgate/rollgate/internal/gate"
)

var version = "dev"

// Exit codes for failures outside the check-result range. The result codes
// 0-3 come from gate.Result itself.
const (
	exitGeneralError    = 100
	exitWebRequestError = 101
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rollgate",
		Short: "Gate progressive deployments on Rollbar error counts",
		Long: `Rollgate decides whether a deployed build is healthy enough to keep
rolling out. It polls the Rollbar Versions API for new and reactivated
items at Error or Critical level, compares the counts against a threshold,
and reports the verdict through its exit code so canary and blue-green
pipelines can promote or roll back automatically.`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newCheckCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to the exit codes the deploy
// pipeline contract promises: 0-3 for check results, 100 for general
// errors, 101 for web request failures.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	var statusErr *gate.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Result.ExitCode()
	}

	if errors.Is(err, rollgateerrors.ErrWebRequest) {
		return exitWebRequestError
	}

	return exitGeneralError
}
