package feed

// BatterRecord is a batter row as reported upstream.
type BatterRecord struct {
	Name        string
	Runs        int
	Balls       int
	Fours       int
	Sixes       int
	StrikeRate  *float64
	OnStrike    *bool
	RecentBalls []string
}

// BowlerRecord is a bowler row as reported upstream. Overs is cricket notation; Balls is a raw count.
type BowlerRecord struct {
	Name    string
	Overs   *float64
	Balls   *int
	Maidens int
	Runs    int
	Wickets int
	Economy *float64
}

// PartnershipRecord is the current partnership.
type PartnershipRecord struct {
	Runs  int
	Balls int
}

// OddsRecord is one row of the match odds table. Back and Lay keep the upstream text.
type OddsRecord struct {
	Team string
	Back string
	Lay  string
}

// SessionOddsRecord is one row of the session (fancy) odds table.
type SessionOddsRecord struct {
	Label string
	Yes   string
	No    string
}

// OverBucket groups the ball outcomes of one over.
type OverBucket struct {
	Label string
	Balls []string
}

// LegacyState is the accumulated upstream state for one match. Nil pointers and nil slices mean
// the field was never reported; a non-nil empty slice means upstream reported an empty list.
type LegacyState struct {
	Score           *string
	Overs           *float64
	RunRate         *float64
	RequiredRunRate *float64
	Target          *float64
	RunsRemaining   *float64
	BallsRemaining  *float64
	ProjectedScore  *float64
	WinProbability  *float64
	TeamName        *string
	BattingTeam     *string
	FavouriteTeam   *string
	Batters         []BatterRecord
	Bowlers         []BowlerRecord
	Partnership     *PartnershipRecord
	TeamOdds        *string
	MatchOdds       []OddsRecord
	SessionOdds     []SessionOddsRecord
	OverBuckets     []OverBucket
	BallStream      *string
	CurrentBall     *string
	Toss            *string
	Result          *string

	// LastUpdatedMs is the best-known data time in epoch milliseconds; zero when unknown.
	LastUpdatedMs int64
	// PersistedResult is set once a final result is seen and never cleared for the session.
	PersistedResult string
	// Merges counts payloads applied to this state.
	Merges int
}

// HasData reports whether any informative field has been reported.
func (s LegacyState) HasData() bool {
	return s.Score != nil || s.Overs != nil || s.Batters != nil || s.Bowlers != nil ||
		s.CurrentBall != nil || s.BallStream != nil || s.OverBuckets != nil || s.PersistedResult != ""
}
