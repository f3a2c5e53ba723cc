package testutil

import (
	"context"
	"net/http"
	"sync/atomic"

	"cricket-live-service/internal/poller"
)

// StubPoller records Start and Stop calls and returns canned values.
type StubPoller struct {
	Err       error
	StatusVal poller.Status

	Starts atomic.Int32
	Stops  atomic.Int32
}

func (p *StubPoller) Start(ctx context.Context) {
	_ = ctx
	p.Starts.Add(1)
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.Stops.Add(1)
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// StubHTTPServer stands in for a listening server. ListenAndServe returns ListenErr at once;
// Shutdown waits on Block, when set, until it closes or the context ends.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	listens   atomic.Int32
	shutdowns atomic.Int32
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.listens.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdowns.Add(1)
	if s.Block != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Block:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// ListenCalls reports how many times ListenAndServe ran.
func (s *StubHTTPServer) ListenCalls() int { return int(s.listens.Load()) }

// ShutdownCalls reports how many times Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int { return int(s.shutdowns.Load()) }
