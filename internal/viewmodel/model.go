// Package viewmodel projects canonical snapshots into render-ready display values.
package viewmodel

import "cricket-live-service/internal/domain/match"

// ViewModel is what the rendering layer consumes. Numbers are pre-formatted display strings.
type ViewModel struct {
	MatchID     string       `json:"matchId"`
	Version     uint64       `json:"version"`
	SessionID   string       `json:"sessionId,omitempty"`
	Status      match.Status `json:"status"`
	Timestamp   string       `json:"timestamp,omitempty"`
	TimestampMs int64        `json:"timestampMs,omitempty"`

	TeamCode       string `json:"teamCode"`
	TeamName       string `json:"teamName,omitempty"`
	TeamScore      string `json:"teamScore"`
	Overs          string `json:"overs"`
	RunRate        string `json:"runRate"`
	ProjectedScore string `json:"projectedScore,omitempty"`
	Result         string `json:"result,omitempty"`

	Chase       *ChaseView   `json:"chase,omitempty"`
	Batters     []BatterView `json:"batters"`
	Bowler      *BowlerView  `json:"bowler,omitempty"`
	Partnership string       `json:"partnership,omitempty"`
	Odds        *OddsView    `json:"odds,omitempty"`

	CurrentBall string   `json:"currentBall,omitempty"`
	RecentBalls []string `json:"recentBalls"`
	Toss        string   `json:"toss,omitempty"`

	// CurrentStriker is the valid on-strike batter for this update, nil when the feed has none.
	CurrentStriker *string `json:"currentStriker"`
	// LastValidStriker only changes when a new valid striker appears.
	LastValidStriker *string `json:"lastValidStriker"`

	Staleness match.StalenessSignal `json:"staleness"`
	// ScorecardFields lists the sections filled from the scorecard instead of the live feed.
	ScorecardFields []string `json:"scorecardFields,omitempty"`
}

// ChaseView is the chase summary line.
type ChaseView struct {
	Target          string `json:"target"`
	Equation        string `json:"equation"`
	RequiredRunRate string `json:"requiredRunRate"`
	WinProbability  string `json:"winProbability,omitempty"`
}

// BatterView is one batter row.
type BatterView struct {
	Name        string   `json:"name"`
	Score       string   `json:"score"`
	Boundaries  string   `json:"boundaries"`
	StrikeRate  string   `json:"strikeRate"`
	OnStrike    bool     `json:"onStrike"`
	RecentBalls []string `json:"recentBalls,omitempty"`
}

// BowlerView is the current bowler row.
type BowlerView struct {
	Name    string `json:"name"`
	Figures string `json:"figures"`
	Overs   string `json:"overs"`
	Maidens string `json:"maidens"`
	Economy string `json:"economy"`
}

// OddsView is the odds widget. When JurisdictionEnabled is false only Raw is meaningful.
type OddsView struct {
	Team                string `json:"team,omitempty"`
	Back                string `json:"back,omitempty"`
	Lay                 string `json:"lay,omitempty"`
	Raw                 string `json:"raw,omitempty"`
	JurisdictionEnabled bool   `json:"jurisdictionEnabled"`
}
