package feed

import (
	"strings"
	"time"

	"cricket-live-service/internal/normalize"
)

// Merger applies upstream payloads onto a LegacyState.
type Merger struct {
	aliases AliasTable
	now     func() time.Time
}

// NewMerger builds a merger over the given alias table. A nil table selects DefaultAliases and a
// nil clock selects time.Now.
func NewMerger(aliases AliasTable, now func() time.Time) *Merger {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	if now == nil {
		now = time.Now
	}
	return &Merger{aliases: aliases, now: now}
}

// Merge returns a new state with payload applied as a patch. Only fields present with a non-null
// value overwrite; lists replace wholesale. When the payload carries no usable timestamp and
// markFresh is set the merge time becomes the data time, otherwise the previous data time is kept.
func (m *Merger) Merge(current LegacyState, payload Payload, markFresh bool) LegacyState {
	next := current
	next.Merges = current.Merges + 1
	if len(payload) == 0 {
		return next
	}
	a := m.aliases

	mergeString(a, payload, FieldScore, &next.Score)
	mergeFloat(a, payload, FieldOvers, &next.Overs)
	mergeFloat(a, payload, FieldRunRate, &next.RunRate)
	mergeFloat(a, payload, FieldRequiredRunRate, &next.RequiredRunRate)
	mergeFloat(a, payload, FieldTarget, &next.Target)
	mergeFloat(a, payload, FieldRunsRemaining, &next.RunsRemaining)
	mergeFloat(a, payload, FieldBallsRemaining, &next.BallsRemaining)
	mergeFloat(a, payload, FieldProjectedScore, &next.ProjectedScore)
	mergeFloat(a, payload, FieldWinProbability, &next.WinProbability)
	mergeString(a, payload, FieldTeamName, &next.TeamName)
	mergeString(a, payload, FieldBattingTeam, &next.BattingTeam)
	mergeString(a, payload, FieldFavouriteTeam, &next.FavouriteTeam)
	mergeString(a, payload, FieldTeamOdds, &next.TeamOdds)
	mergeString(a, payload, FieldToss, &next.Toss)
	mergeString(a, payload, FieldCurrentBall, &next.CurrentBall)

	if v, ok := a.Lookup(payload, FieldBatters); ok {
		next.Batters = decodeBatters(a, v)
	}
	if v, ok := a.Lookup(payload, FieldBowlers); ok {
		next.Bowlers = decodeBowlers(a, v)
	}
	if v, ok := a.Lookup(payload, FieldPartnership); ok {
		if p, ok := decodePartnership(a, v); ok {
			next.Partnership = &p
		}
	}
	if v, ok := a.Lookup(payload, FieldMatchOdds); ok {
		next.MatchOdds = decodeMatchOdds(a, v)
	}
	if v, ok := a.Lookup(payload, FieldSessionOdds); ok {
		next.SessionOdds = decodeSessionOdds(a, v)
	}
	if v, ok := a.Lookup(payload, FieldOverBuckets); ok {
		next.OverBuckets = decodeOverBuckets(a, v)
	}
	if v, ok := a.Lookup(payload, FieldBallStream); ok {
		stream := strings.Join(Tokenize(v), ",")
		next.BallStream = &stream
	}

	if v, ok := a.Lookup(payload, FieldResult); ok {
		if text, ok := normalize.ParseString(v); ok && IsResultText(text) {
			next.Result = &text
			next.PersistedResult = text
		}
	}
	if next.PersistedResult == "" {
		if text, ok := m.soleCurrentBallResult(payload); ok {
			next.PersistedResult = text
		}
	}

	next.LastUpdatedMs = m.resolveTimestamp(current.LastUpdatedMs, payload, markFresh)
	return next
}

func (m *Merger) resolveTimestamp(previous int64, payload Payload, markFresh bool) int64 {
	for _, field := range []Field{FieldTimestamp, FieldLegacyTimestamp} {
		if v, ok := m.aliases.Lookup(payload, field); ok {
			if ms, ok := normalize.NormalizeTimestamp(v); ok {
				return ms
			}
		}
	}
	if markFresh {
		return m.now().UnixMilli()
	}
	return previous
}

// soleCurrentBallResult detects the end-of-match message: a current-ball text announcing the
// winner and nothing else informative. Toss announcements also say "won" and are skipped.
func (m *Merger) soleCurrentBallResult(payload Payload) (string, bool) {
	present := 0
	for _, field := range topLevelFields {
		if _, ok := m.aliases.Lookup(payload, field); ok {
			present++
		}
	}
	if present != 1 {
		return "", false
	}
	v, ok := m.aliases.Lookup(payload, FieldCurrentBall)
	if !ok {
		return "", false
	}
	text, ok := normalize.ParseString(v)
	if !ok {
		return "", false
	}
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "won") || strings.Contains(lower, "toss") {
		return "", false
	}
	return strings.TrimSpace(text), true
}

var resultMarkers = []string{"won", "tied", "draw", "abandoned", "no result"}

// IsResultText reports whether text reads as a final match result.
func IsResultText(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" || strings.Contains(lower, "toss") {
		return false
	}
	for _, marker := range resultMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func mergeString(a AliasTable, payload Payload, field Field, dst **string) {
	v, ok := a.Lookup(payload, field)
	if !ok {
		return
	}
	if s, ok := normalize.ParseString(v); ok {
		s = strings.TrimSpace(s)
		*dst = &s
	}
}

// mergeFloat keeps the previous value when the new one is unusable.
func mergeFloat(a AliasTable, payload Payload, field Field, dst **float64) {
	v, ok := a.Lookup(payload, field)
	if !ok {
		return
	}
	if f, ok := normalize.ParseNumericOK(v); ok {
		*dst = &f
	}
}
