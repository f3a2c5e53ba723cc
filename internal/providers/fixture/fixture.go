package fixture

import (
	"context"
	"encoding/json"
	"time"

	"cricket-live-service/internal/domain/match"
)

// Provider returns a canned in-progress chase useful for local testing and bootstrapping.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchSnapshot returns a deterministic snapshot document stamped with the current time.
// It deliberately mixes legacy and current field names the way the upstream feed does.
func (p *Provider) FetchSnapshot(ctx context.Context, matchID string) ([]byte, error) {
	_ = ctx
	doc := map[string]any{
		"matchId":     matchID,
		"team_name":   "India",
		"score":       "IND 145-3",
		"over":        "17.3",
		"crr":         "8.29",
		"target":      "180",
		"rrr":         "13.33",
		"batsman_data": []map[string]any{
			{"name": "Kohli", "score": 50, "ballsFaced": 40, "fours": 5, "sixes": 1, "onStrike": true},
			{"name": "Pant", "score": 22, "ballsFaced": 15, "fours": 2, "sixes": 1},
		},
		"bolwer_data": []map[string]any{
			{"name": "Starc", "ballsBowled": 23, "runs": 30, "wickets": 2},
		},
		"partnership": "60(45)",
		"team_odds":   "IND 1.85 1.87",
		"overs_data": []map[string]any{
			{"label": "This Over", "balls": []string{"1", "4", "W"}},
		},
		"current_ball": "W",
		"toss":         "India won the toss and chose to bat",
		"timestamp":    p.now().UnixMilli(),
	}
	return json.Marshal(doc)
}

// FetchScorecard returns a deterministic scorecard for the match.
func (p *Provider) FetchScorecard(ctx context.Context, matchID string) (match.Scorecard, error) {
	_ = ctx
	return match.Scorecard{
		MatchID: matchID,
		Batters: []match.Participant{
			{Name: "Kohli", Runs: 50, Balls: 40, Fours: 5, Sixes: 1, StrikeRate: 125, OnStrike: true},
			{Name: "Pant", Runs: 22, Balls: 15, Fours: 2, Sixes: 1, StrikeRate: 146.67},
		},
		Bowler:      &match.Bowler{Name: "Starc", Overs: "3.5", Runs: 30, Wickets: 2, Economy: 7.83},
		Partnership: &match.Partnership{Runs: 60, Balls: 45},
		FetchedAt:   p.now().UTC(),
	}, nil
}
