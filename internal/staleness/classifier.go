// Package staleness grades snapshot freshness from the age of its data.
package staleness

import (
	"time"

	"cricket-live-service/internal/domain/match"
)

const (
	// WarningAfter is the age at which data stops being fresh.
	WarningAfter = 30 * time.Second
	// ErrorAfter is the age at which data is considered stale.
	ErrorAfter = 120 * time.Second
)

const (
	messageWarning = "live data is delayed"
	messageError   = "live data is stale"
	messageWaiting = "waiting for live data"
)

// Classify grades data last updated at timestampMs as seen at nowMs. An unknown timestamp (zero)
// is reported as ERROR. Clock skew that puts the data in the future counts as age zero.
func Classify(timestampMs, nowMs int64) match.StalenessSignal {
	if timestampMs <= 0 {
		return match.StalenessSignal{Tier: match.TierError, Message: messageWaiting}
	}
	ageMs := nowMs - timestampMs
	if ageMs < 0 {
		ageMs = 0
	}
	signal := match.StalenessSignal{AgeSeconds: float64(ageMs) / 1000}
	switch {
	case ageMs < WarningAfter.Milliseconds():
		signal.Tier = match.TierFresh
	case ageMs < ErrorAfter.Milliseconds():
		signal.Tier = match.TierWarning
		signal.Message = messageWarning
	default:
		signal.Tier = match.TierError
		signal.Message = messageError
	}
	return signal
}

// Apply returns snap with its staleness classified at now.
func Apply(snap match.Snapshot, now time.Time) match.Snapshot {
	return snap.WithStaleness(Classify(snap.TimestampMs, now.UnixMilli()))
}
