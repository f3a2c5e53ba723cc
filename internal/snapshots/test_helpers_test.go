package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/viewmodel"
)

func simpleView(matchID string, version uint64) viewmodel.ViewModel {
	return viewmodel.ViewModel{
		MatchID:   matchID,
		Version:   version,
		SessionID: "s1",
		TeamScore: "132/4",
		Overs:     "17.3",
		Staleness: match.StalenessSignal{Tier: match.TierFresh},
	}
}

func writeView(t *testing.T, w *Writer, vm viewmodel.ViewModel) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for match %s", vm.MatchID)
	}
	if err := w.WriteView(vm); err != nil {
		t.Fatalf("failed to write view %s: %v", vm.MatchID, err)
	}
}

func loadManifest(t *testing.T, dir string) Manifest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	return m
}
