package match

import "time"

// Status mirrors the lifecycle states a live match can report.
type Status string

const (
	StatusLive         Status = "LIVE"
	StatusInningsBreak Status = "INNINGS_BREAK"
	StatusDelayed      Status = "DELAYED"
	StatusCompleted    Status = "COMPLETED"
)

// Tier is the freshness classification of a snapshot.
type Tier string

const (
	TierFresh   Tier = "FRESH"
	TierWarning Tier = "WARNING"
	TierError   Tier = "ERROR"
)

// StalenessSignal describes how old the data behind a snapshot is.
type StalenessSignal struct {
	Tier       Tier    `json:"tier"`
	AgeSeconds float64 `json:"ageSeconds"`
	Message    string  `json:"message,omitempty"`
}

// InningsScore captures the batting side's score line.
type InningsScore struct {
	TeamCode       string  `json:"teamCode"`
	TeamName       string  `json:"teamName"`
	Runs           int     `json:"runs"`
	Wickets        int     `json:"wickets"`
	Overs          string  `json:"overs"`
	RunRate        float64 `json:"runRate"`
	ProjectedScore *int    `json:"projectedScore,omitempty"`
	Result         string  `json:"result,omitempty"`
}

// Chase is present when the batting side has a target.
type Chase struct {
	Target          int      `json:"target"`
	RunsRemaining   int      `json:"runsRemaining"`
	BallsRemaining  int      `json:"ballsRemaining"`
	RequiredRunRate float64  `json:"requiredRunRate"`
	WinProbability  *float64 `json:"winProbability,omitempty"`
}

// Participant is a batter summary.
type Participant struct {
	Name        string   `json:"name"`
	Runs        int      `json:"runs"`
	Balls       int      `json:"balls"`
	Fours       int      `json:"fours"`
	Sixes       int      `json:"sixes"`
	StrikeRate  float64  `json:"strikeRate"`
	OnStrike    bool     `json:"onStrike"`
	RecentBalls []string `json:"recentBalls,omitempty"`
}

// Bowler is the current bowler's figures.
type Bowler struct {
	Name    string  `json:"name"`
	Overs   string  `json:"overs"`
	Maidens int     `json:"maidens"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Economy float64 `json:"economy"`
}

// Partnership is the current stand between the two batters.
type Partnership struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
}

// OddsQuote is the market price shown alongside the score. JurisdictionEnabled is false when odds exist
// upstream but no usable price could be extracted.
type OddsQuote struct {
	Team                string  `json:"team,omitempty"`
	Back                float64 `json:"back"`
	Lay                 float64 `json:"lay,omitempty"`
	Raw                 string  `json:"raw,omitempty"`
	JurisdictionEnabled bool    `json:"jurisdictionEnabled"`
}

// Snapshot is the canonical, fully-typed state of a match at one instant.
// Snapshots are never mutated after construction; updates build a new value.
type Snapshot struct {
	MatchID      string          `json:"matchId"`
	Status       Status          `json:"status"`
	Timestamp    string          `json:"timestamp,omitempty"`
	TimestampMs  int64           `json:"timestampMs,omitempty"`
	Score        InningsScore    `json:"score"`
	Chase        *Chase          `json:"chase,omitempty"`
	Participants []Participant   `json:"participants"`
	Bowler       *Bowler         `json:"bowler,omitempty"`
	Partnership  *Partnership    `json:"partnership,omitempty"`
	Odds         *OddsQuote      `json:"odds,omitempty"`
	CurrentBall  string          `json:"currentBall,omitempty"`
	RecentBalls  []string        `json:"recentBalls,omitempty"`
	Toss         string          `json:"toss,omitempty"`
	Staleness    StalenessSignal `json:"staleness"`
}

// WithStaleness returns a copy of the snapshot carrying the given signal.
func (s Snapshot) WithStaleness(signal StalenessSignal) Snapshot {
	s.Staleness = signal
	return s
}

// Scorecard is richer, out-of-band match detail used to backfill fields the live feed omits.
type Scorecard struct {
	MatchID     string        `json:"matchId"`
	Batters     []Participant `json:"batters"`
	Bowler      *Bowler       `json:"bowler,omitempty"`
	Partnership *Partnership  `json:"partnership,omitempty"`
	FetchedAt   time.Time     `json:"fetchedAt"`
}

// IsEmpty reports whether the scorecard has nothing to contribute.
func (s Scorecard) IsEmpty() bool {
	return len(s.Batters) == 0 && s.Bowler == nil && s.Partnership == nil
}
