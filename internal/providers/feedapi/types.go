package feedapi

const providerName = "feedapi"

type scorecardResponse struct {
	Data scorecardData `json:"data"`
}

type scorecardData struct {
	MatchID     string               `json:"match_id"`
	Batters     []batterResponse     `json:"batters"`
	Bowler      *bowlerResponse      `json:"bowler"`
	Partnership *partnershipResponse `json:"partnership"`
}

type batterResponse struct {
	Name       string   `json:"name"`
	Runs       int      `json:"runs"`
	Balls      int      `json:"balls"`
	Fours      int      `json:"fours"`
	Sixes      int      `json:"sixes"`
	StrikeRate *float64 `json:"strike_rate"`
	OnStrike   bool     `json:"on_strike"`
}

type bowlerResponse struct {
	Name        string   `json:"name"`
	BallsBowled int      `json:"balls_bowled"`
	Maidens     int      `json:"maidens"`
	Runs        int      `json:"runs"`
	Wickets     int      `json:"wickets"`
	Economy     *float64 `json:"economy"`
}

type partnershipResponse struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
}
