package testutil

import (
	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/viewmodel"
)

// SamplePayload is a live feed message for an innings in progress, stamped at 2023-11-14T22:13:20Z.
const SamplePayload = `{
	"team_name": "India",
	"score": "IND 145-3",
	"over": "17.3",
	"crr": "8.29",
	"timestamp": 1700000000000,
	"batsman_data": [
		{"name": "Kohli", "runs": 72, "balls": 48, "fours": 6, "sixes": 3, "onStrike": true},
		{"name": "Pant", "runs": 20, "balls": 15}
	],
	"current_ball": "4"
}`

// SampleView returns a minimal live view model for matchID.
func SampleView(matchID string, version uint64) viewmodel.ViewModel {
	striker := "Kohli"
	return viewmodel.ViewModel{
		MatchID:          matchID,
		Version:          version,
		SessionID:        "session-1",
		Status:           match.StatusLive,
		TimestampMs:      1700000000000,
		TeamCode:         "IND",
		TeamScore:        "145/3",
		Overs:            "17.3",
		RunRate:          "CRR 8.29",
		Batters:          []viewmodel.BatterView{{Name: "Kohli", Score: "72 (48)", OnStrike: true}},
		RecentBalls:      []string{},
		CurrentStriker:   &striker,
		LastValidStriker: &striker,
		Staleness:        match.StalenessSignal{Tier: match.TierFresh},
	}
}
