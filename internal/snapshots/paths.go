package snapshots

import (
	"path/filepath"
	"strings"
)

const (
	matchesDir   = "matches"
	manifestName = "manifest.json"
)

// MatchViewPath builds the path of the exported view for a match. Characters outside
// [A-Za-z0-9._-] are replaced so ids cannot escape the matches directory.
func MatchViewPath(basePath, matchID string) string {
	return filepath.Join(basePath, matchesDir, safeName(matchID)+".json")
}

func safeName(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == '.' && b.Len() > 0:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
