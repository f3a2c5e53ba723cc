package testutil

import (
	"testing"
	"time"

	"cricket-live-service/internal/snapshots"
)

// NewTempWriter returns a view writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention time.Duration) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteView writes a sample view for matchID.
func WriteView(t *testing.T, w *snapshots.Writer, matchID string) {
	t.Helper()
	if err := writeViewPayload(w, matchID); err != nil {
		t.Fatalf("failed to write view %s: %v", matchID, err)
	}
}

func writeViewPayload(w *snapshots.Writer, matchID string) error {
	return w.WriteView(SampleView(matchID, 1))
}

// ViewPath returns the expected file path for a match view.
func ViewPath(w *snapshots.Writer, matchID string) string {
	return snapshots.MatchViewPath(w.BasePath(), matchID)
}
