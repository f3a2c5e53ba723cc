package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"cricket-live-service/internal/viewmodel"
)

const defaultRetention = 24 * time.Hour

// Writer exports view models as JSON files and keeps manifest.json current. Nothing reads the
// files back; they exist for static renderers and debugging.
type Writer struct {
	basePath  string
	retention time.Duration
	now       func() time.Time

	mu sync.Mutex
}

// NewWriter constructs a writer rooted at basePath. Matches not updated within retention are pruned.
func NewWriter(basePath string, retention time.Duration) *Writer {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Writer{
		basePath:  basePath,
		retention: retention,
		now:       time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteView atomically writes vm to its match file. Unchanged content is not rewritten.
func (w *Writer) WriteView(vm viewmodel.ViewModel) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if vm.MatchID == "" {
		return fmt.Errorf("match id required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := MatchViewPath(w.basePath, vm.MatchID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(vm, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(vm, target)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return w.updateManifest(vm, target)
}

func (w *Writer) updateManifest(vm viewmodel.ViewModel, target string) error {
	m, _ := readManifest(filepath.Join(w.basePath, manifestName), w.retention)
	now := w.now().UTC()

	rel, err := filepath.Rel(w.basePath, target)
	if err != nil {
		return err
	}
	entry := MatchEntry{
		MatchID:   vm.MatchID,
		File:      filepath.ToSlash(rel),
		Version:   vm.Version,
		SessionID: vm.SessionID,
		Tier:      string(vm.Staleness.Tier),
		UpdatedAt: now,
	}

	cutoff := now.Add(-w.retention)
	kept := []MatchEntry{entry}
	for _, e := range m.Matches {
		if e.MatchID == vm.MatchID {
			continue
		}
		if e.UpdatedAt.Before(cutoff) {
			_ = os.Remove(MatchViewPath(w.basePath, e.MatchID))
			continue
		}
		kept = append(kept, e)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].MatchID < kept[j].MatchID })

	m.Matches = kept
	m.Retention.Hours = int(w.retention.Hours())
	return writeManifest(w.basePath, m)
}
