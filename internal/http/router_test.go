package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cricket-live-service/internal/engine"
	"cricket-live-service/internal/http/handlers"
	"cricket-live-service/internal/teststubs"
	"cricket-live-service/internal/testutil"
)

func newTestHandler(t *testing.T) *handlers.Handler {
	t.Helper()
	eng := engine.New(engine.Config{Subscriber: &teststubs.StubSubscriber{}})
	t.Cleanup(eng.Stop)
	svc := testutil.NewServiceWithViews(testutil.SampleView("m1", 1))
	t.Cleanup(svc.Close)
	return handlers.NewHandler(eng, svc, nil, nil)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := NewRouter(newTestHandler(t), nil)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/live", http.StatusNotFound}, // nothing tracked yet
		{http.MethodGet, "/live/diagnostics", http.StatusOK},
		{http.MethodPost, "/live/retry", http.StatusConflict},
		{http.MethodGet, "/matches", http.StatusOK},
		{http.MethodGet, "/matches/m1", http.StatusOK},
		{http.MethodGet, "/matches/foo", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("%s %s expected status %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}

func TestRouterTrackSwitchesEngine(t *testing.T) {
	router := NewRouter(newTestHandler(t), nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/live/track?matchId=m9", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/live", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected waiting status after tracking, got %d", rr.Code)
	}
}

func TestRouterAdminRouteOptional(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	NewRouter(h, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/export", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without admin handler, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	admin := handlers.NewAdminHandler(nil, nil, "secret", nil)
	NewRouter(h, admin).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/export", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 from admin route, got %d", rr.Code)
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := NewRouter(newTestHandler(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
