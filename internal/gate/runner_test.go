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

package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	rollgateerrors "github.com/rollgate/rollgate/internal/errors"
	"github.com/rollgate/rollgate/internal/rollbar"
)

// fakeSleep records every pause the runner requests without waiting.
type fakeSleep struct {
	calls []time.Duration
	err   error
}

func (f *fakeSleep) sleep(ctx context.Context, d time.Duration) error {
	f.calls = append(f.calls, d)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunAllChecksPass(t *testing.T) {
	mock := &rollbar.MockClient{
		Responses: []rollbar.MockResponse{
			{Stats: &rollbar.VersionStats{New: 3, Reactivated: 2}},
		},
	}
	sleeper := &fakeSleep{}

	runner := &Runner{
		Client:    mock,
		Threshold: 5,
		Checks:    3,
		Interval:  10 * time.Second,
		Sleep:     sleeper.sleep,
		Log:       discardLogger(),
	}

	result, err := runner.Run(context.Background(), "v1.2.3", "production")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != Success {
		t.Errorf("result = %v, want Success", result)
	}
	if mock.CallCount != 3 {
		t.Errorf("client calls = %d, want 3", mock.CallCount)
	}

	// Sleeps happen between checks only, never after the last one.
	if len(sleeper.calls) != 2 {
		t.Fatalf("sleeps = %d, want 2", len(sleeper.calls))
	}
	for i, d := range sleeper.calls {
		if d != 10*time.Second {
			t.Errorf("sleep %d duration = %v, want 10s", i+1, d)
		}
	}
}

func TestRunStopsOnFirstFailingCheck(t *testing.T) {
	mock := &rollbar.MockClient{
		Responses: []rollbar.MockResponse{
			{Stats: &rollbar.VersionStats{New: 6}},
		},
	}
	sleeper := &fakeSleep{}

	runner := &Runner{
		Client:    mock,
		Threshold: 5,
		Checks:    3,
		Interval:  10 * time.Second,
		Sleep:     sleeper.sleep,
		Log:       discardLogger(),
	}

	result, err := runner.Run(context.Background(), "v1.2.3", "production")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != NewItems {
		t.Errorf("result = %v, want NewItems", result)
	}
	if mock.CallCount != 1 {
		t.Errorf("client calls = %d, want 1 (run must stop at first failure)", mock.CallCount)
	}
	if len(sleeper.calls) != 0 {
		t.Errorf("sleeps = %d, want 0", len(sleeper.calls))
	}
}

func TestRunFailureOnLaterCheck(t *testing.T) {
	mock := &rollbar.MockClient{
		Responses: []rollbar.MockResponse{
			{Stats: &rollbar.VersionStats{}},
			{Stats: &rollbar.VersionStats{}},
			{Stats: &rollbar.VersionStats{New: 6}},
		},
	}
	sleeper := &fakeSleep{}

	runner := &Runner{
		Client:    mock,
		Threshold: 5,
		Checks:    3,
		Interval:  10 * time.Second,
		Sleep:     sleeper.sleep,
		Log:       discardLogger(),
	}

	result, err := runner.Run(context.Background(), "v1.2.3", "production")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != NewItems {
		t.Errorf("result = %v, want NewItems", result)
	}
	if mock.CallCount != 3 {
		t.Errorf("client calls = %d, want 3", mock.CallCount)
	}
	if len(sleeper.calls) != 2 {
		t.Errorf("sleeps = %d, want 2", len(sleeper.calls))
	}
}

func TestRunBothCategoriesExceed(t *testing.T) {
	mock := &rollbar.MockClient{
		Responses: []rollbar.MockResponse{
			{Stats: &rollbar.VersionStats{New: 6, Reactivated: 6}},
		},
	}

	runner := &Runner{
		Client:    mock,
		Threshold: 5,
		Checks:    1,
		Log:       discardLogger(),
	}

	result, err := runner.Run(context.Background(), "v1.2.3", "production")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != NewAndReactivatedItems {
		t.Errorf("result = %v, want NewAndReactivatedItems", result)
	}
}

func TestRunClientErrorAbortsImmediately(t *testing.T) {
	webErr := fmt.Errorf("versions api returned status 502: %w", rollgateerrors.ErrWebRequest)
	mock := &rollbar.MockClient{
		Responses: []rollbar.MockResponse{
			{Stats: &rollbar.VersionStats{}},
			{Err: webErr},
		},
	}
	sleeper := &fakeSleep{}

	runner := &Runner{
		Client:    mock,
		Threshold: 5,
		Checks:    5,
		Interval:  time.Second,
		Sleep:     sleeper.sleep,
		Log:       discardLogger(),
	}

	_, err := runner.Run(context.Background(), "v1.2.3", "production")
	if err == nil {
		t.Fatal("Run succeeded, want error")
	}
	if !errors.Is(err, rollgateerrors.ErrWebRequest) {
		t.Errorf("error %v does not wrap ErrWebRequest", err)
	}
	if mock.CallCount != 2 {
		t.Errorf("client calls = %d, want 2 (no retries after a failure)", mock.CallCount)
	}
}

func TestRunCanceledDuringSleep(t *testing.T) {
	mock := &rollbar.MockClient{
		Responses: []rollbar.MockResponse{
			{Stats: &rollbar.VersionStats{}},
		},
	}
	sleeper := &fakeSleep{err: context.Canceled}

	runner := &Runner{
		Client:    mock,
		Threshold: 5,
		Checks:    2,
		Interval:  time.Minute,
		Sleep:     sleeper.sleep,
		Log:       discardLogger(),
	}

	_, err := runner.Run(context.Background(), "v1.2.3", "production")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if mock.CallCount != 1 {
		t.Errorf("client calls = %d, want 1", mock.CallCount)
	}
}

func TestRunPassesArgumentsThrough(t *testing.T) {
	mock := &rollbar.MockClient{}

	runner := &Runner{
		Client: mock,
		Checks: 1,
		Log:    discardLogger(),
	}

	if _, err := runner.Run(context.Background(), "deadbeef", "staging"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if mock.LastCodeVersion != "deadbeef" {
		t.Errorf("LastCodeVersion = %q, want deadbeef", mock.LastCodeVersion)
	}
	if mock.LastEnvironment != "staging" {
		t.Errorf("LastEnvironment = %q, want staging", mock.LastEnvironment)
	}
}

func TestWaitClock(t *testing.T) {
	// Zero and negative intervals return without blocking.
	if err := waitClock(context.Background(), 0); err != nil {
		t.Errorf("waitClock(0) = %v, want nil", err)
	}
	if err := waitClock(context.Background(), -time.Second); err != nil {
		t.Errorf("waitClock(-1s) = %v, want nil", err)
	}

	// A canceled context interrupts the wait.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := waitClock(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Errorf("waitClock with canceled context = %v, want context.Canceled", err)
	}
}
