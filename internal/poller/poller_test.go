package poller

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"cricket-live-service/internal/metrics"
	"cricket-live-service/internal/teststubs"
)

func TestPollerRefreshesOnStartAndTick(t *testing.T) {
	refresher := &teststubs.StubRefresher{Notify: make(chan struct{})}
	rec := metrics.NewRecorder()

	p := New(refresher, nil, rec, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-refresher.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	deadline := time.Now().Add(time.Second)
	for refresher.Calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	_ = p.Stop(context.Background())

	if refresher.Calls.Load() < 2 {
		t.Fatalf("expected a ticker refresh, got %d calls", refresher.Calls.Load())
	}
	if rec.Feed().RefreshCycles < 2 {
		t.Fatalf("expected refresh cycles recorded, got %+v", rec.Feed())
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	refresher := &teststubs.StubRefresher{Notify: make(chan struct{})}

	p := New(refresher, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-refresher.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	cancel()
	_ = p.Stop(context.Background())

	time.Sleep(10 * time.Millisecond)
	callsAfterStop := refresher.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if refresher.Calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional refreshes after stop; before=%d after=%d", callsAfterStop, refresher.Calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

type blockingRefresher struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRefresher) Refresh(ctx context.Context) error {
	_ = ctx
	close(b.entered)
	<-b.release
	return nil
}

func TestPollerStopWaitsForInFlightRefresh(t *testing.T) {
	refresher := &blockingRefresher{entered: make(chan struct{}), release: make(chan struct{})}
	p := New(refresher, nil, nil, time.Hour)
	p.Start(context.Background())
	<-refresher.entered

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := p.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected stop to give up while refresh is blocked, got %v", err)
	}

	close(refresher.release)
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("expected stop to complete once refresh returns, got %v", err)
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	refresher := &teststubs.StubRefresher{}
	refresher.SetErr(errors.New("boom"))
	rec := metrics.NewRecorder()

	p := New(refresher, nil, rec, time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p.refreshOnce(ctx)
	}
	status := p.Status()
	if status.ConsecutiveFailures != 3 {
		t.Fatalf("expected 3 failures, got %d", status.ConsecutiveFailures)
	}
	if status.LastError != "boom" {
		t.Fatalf("expected last error recorded, got %q", status.LastError)
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failures")
	}
	if rec.Feed().RefreshErrors != 3 {
		t.Fatalf("expected refresh errors recorded, got %+v", rec.Feed())
	}

	refresher.SetErr(nil)
	p.refreshOnce(ctx)
	status = p.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected failures reset, got %+v", status)
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestStatusIsReadyToleratesOccasionalFailures(t *testing.T) {
	cases := []struct {
		name   string
		status Status
		ready  bool
	}{
		{"never succeeded", Status{}, false},
		{"healthy", Status{LastSuccess: time.Unix(1, 0)}, true},
		{"two failures", Status{LastSuccess: time.Unix(1, 0), ConsecutiveFailures: 2}, true},
		{"three failures", Status{LastSuccess: time.Unix(1, 0), ConsecutiveFailures: 3}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.status.IsReady(); got != tc.ready {
				t.Fatalf("expected ready=%v, got %v", tc.ready, got)
			}
		})
	}
}

func TestPollerLogsFailures(t *testing.T) {
	refresher := &teststubs.StubRefresher{}
	refresher.SetErr(errors.New("scorecard down"))
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))

	p := New(refresher, logger, nil, time.Second)
	p.refreshOnce(context.Background())

	if !strings.Contains(buf.String(), "refresh failed") || !strings.Contains(buf.String(), "scorecard down") {
		t.Fatalf("expected failure log, got %s", buf.String())
	}
}
