package testutil

import (
	"context"
	"net/http"

	"cricket-live-service/internal/metrics"
)

// FakeMetricsSetup stands in for metrics.Setup. It returns a fresh recorder and an empty mux, or
// Err when set, and remembers the config it was called with.
type FakeMetricsSetup struct {
	Err   error
	Calls int
	Last  metrics.TelemetryConfig
}

// Setup matches the metrics.Setup signature.
func (f *FakeMetricsSetup) Setup(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	_ = ctx
	f.Calls++
	f.Last = cfg
	if f.Err != nil {
		return nil, nil, nil, f.Err
	}
	return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
}
