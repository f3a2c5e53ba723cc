package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest indexes the exported match views.
type Manifest struct {
	Version     int          `json:"version"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Retention   Retention    `json:"retention"`
	Matches     []MatchEntry `json:"matches"`
}

type Retention struct {
	Hours int `json:"hours"`
}

// MatchEntry describes the last export of one match.
type MatchEntry struct {
	MatchID   string    `json:"matchId"`
	File      string    `json:"file"`
	Version   uint64    `json:"version"`
	SessionID string    `json:"sessionId,omitempty"`
	Tier      string    `json:"tier"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func defaultManifest(retention time.Duration) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention: Retention{
			Hours: int(retention.Hours()),
		},
		Matches: []MatchEntry{},
	}
}

func readManifest(path string, retention time.Duration) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retention), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retention), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(basePath, manifestName)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
