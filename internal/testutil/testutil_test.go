package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"cricket-live-service/internal/feed"
	"cricket-live-service/internal/metrics"
	"cricket-live-service/internal/poller"
	"cricket-live-service/internal/viewmodel"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if got := NowAtMillis(1700000000000)().UnixMilli(); got != 1700000000000 {
		t.Fatalf("expected millis clock to round trip, got %d", got)
	}
}

func TestFixturesHelper(t *testing.T) {
	vm := SampleView("m1", 3)
	if vm.MatchID != "m1" || vm.Version != 3 || vm.CurrentStriker == nil {
		t.Fatalf("unexpected view fixture %+v", vm)
	}

	payload, err := feed.DecodePayload([]byte(SamplePayload))
	if err != nil {
		t.Fatalf("expected sample payload to decode, got %v", err)
	}
	if _, ok := payload["score"]; !ok {
		t.Fatalf("expected score key in sample payload")
	}
}

func TestServiceHelper(t *testing.T) {
	svc := NewServiceWithViews(SampleView("m1", 1), SampleView("m2", 1))
	defer svc.Close()

	views := svc.Views(time.UnixMilli(1700000000000))
	if len(views) != 2 {
		t.Fatalf("expected two stored views, got %d", len(views))
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestSnapshotHelpers(t *testing.T) {
	w := NewTempWriter(t, time.Hour)
	WriteView(t, w, "m1")
	data, err := os.ReadFile(ViewPath(w, "m1"))
	if err != nil {
		t.Fatalf("expected view file, got %v", err)
	}
	var vm viewmodel.ViewModel
	if err := json.Unmarshal(data, &vm); err != nil {
		t.Fatalf("expected view json, got %v", err)
	}
	if vm.MatchID != "m1" {
		t.Fatalf("expected match id m1, got %q", vm.MatchID)
	}
}

func TestWriteViewPayloadHandlesNilWriter(t *testing.T) {
	if err := writeViewPayload(nil, "m1"); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop"), StatusVal: poller.Status{ConsecutiveFailures: 2}}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.Starts.Load() != 1 || p.Stops.Load() != 1 || p.Status().ConsecutiveFailures != 2 {
		t.Fatalf("unexpected poller stub state")
	}

	sh := &StubHTTPServer{ListenErr: http.ErrServerClosed, ShutdownErr: errors.New("down")}
	if err := sh.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected scripted listen error, got %v", err)
	}
	if err := sh.Shutdown(context.Background()); err == nil || sh.Addr() != ":0" || sh.Handler() != nil {
		t.Fatalf("unexpected stub server behaviour")
	}
	if sh.ListenCalls() != 1 || sh.ShutdownCalls() != 1 {
		t.Fatalf("expected one listen and one shutdown, got %d/%d", sh.ListenCalls(), sh.ShutdownCalls())
	}

	blocking := &StubHTTPServer{AddrVal: ":8080", Block: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := blocking.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected blocked shutdown to time out, got %v", err)
	}
	close(blocking.Block)
	if err := blocking.Shutdown(context.Background()); err != nil || blocking.Addr() != ":8080" {
		t.Fatalf("expected released shutdown to succeed, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	fake := &FakeMetricsSetup{}
	rec, handler, shutdown, err := fake.Setup(context.Background(), metrics.TelemetryConfig{Port: "9191"})
	if err != nil || rec == nil || handler == nil || shutdown == nil {
		t.Fatalf("expected working telemetry from fake setup")
	}
	if fake.Calls != 1 || fake.Last.Port != "9191" {
		t.Fatalf("expected call recorded, got %+v", fake)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}

	failing := &FakeMetricsSetup{Err: errors.New("exporter down")}
	if _, _, _, err := failing.Setup(context.Background(), metrics.TelemetryConfig{}); err == nil {
		t.Fatalf("expected configured error")
	}
}
