package transport

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestTopicFor(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"live/{matchId}", "live/m1"},
		{"odds.{matchId}.{matchId}", "odds.m1.m1"},
		{"scores/", "scores/m1"},
		{"scores", "scores/m1"},
	}
	for _, tc := range cases {
		if got := TopicFor(tc.pattern, "m1"); got != tc.want {
			t.Fatalf("TopicFor(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestTopicsForSkipsBlanksAndDuplicates(t *testing.T) {
	got := TopicsFor([]string{"live/{matchId}", " ", "live/{matchId}", "odds/{matchId}"}, "m1")
	want := []string{"live/m1", "odds/m1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStreamCloseReportsErrClosed(t *testing.T) {
	closed := false
	st := newStream(context.Background(), 1, func() error { closed = true; return nil })
	if err := st.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if !closed {
		t.Fatalf("expected close hook to run")
	}
	if !errors.Is(st.Err(), ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", st.Err())
	}
	if st.deliver([]byte("x")) {
		t.Fatalf("expected delivery to fail after close")
	}
	_ = st.Close()
}

func TestStreamFinishKeepsFirstError(t *testing.T) {
	st := newStream(context.Background(), 1, nil)
	boom := errors.New("boom")
	st.finish(boom)
	st.finish(errors.New("later"))
	if _, ok := <-st.Messages(); ok {
		t.Fatalf("expected messages channel closed")
	}
	if !errors.Is(st.Err(), boom) {
		t.Fatalf("expected first error kept, got %v", st.Err())
	}
}

func TestStreamClosesOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	st := newStream(ctx, 1, func() error { close(done); return nil })
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected stream to close on context cancel")
	}
	if !errors.Is(st.Err(), ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", st.Err())
	}
}
