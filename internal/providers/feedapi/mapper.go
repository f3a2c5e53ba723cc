package feedapi

import (
	"math"
	"strings"

	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/normalize"
)

func mapScorecard(d scorecardData, matchID string) match.Scorecard {
	card := match.Scorecard{MatchID: matchID}
	if id := strings.TrimSpace(d.MatchID); id != "" {
		card.MatchID = id
	}
	for _, b := range d.Batters {
		if strings.TrimSpace(b.Name) == "" {
			continue
		}
		card.Batters = append(card.Batters, mapBatter(b))
	}
	if d.Bowler != nil && strings.TrimSpace(d.Bowler.Name) != "" {
		bowler := mapBowler(*d.Bowler)
		card.Bowler = &bowler
	}
	if d.Partnership != nil {
		card.Partnership = &match.Partnership{Runs: d.Partnership.Runs, Balls: d.Partnership.Balls}
	}
	return card
}

func mapBatter(b batterResponse) match.Participant {
	sr := 0.0
	if b.StrikeRate != nil {
		sr = *b.StrikeRate
	} else if b.Balls > 0 {
		sr = float64(b.Runs) * 100 / float64(b.Balls)
	}
	return match.Participant{
		Name:       strings.TrimSpace(b.Name),
		Runs:       b.Runs,
		Balls:      b.Balls,
		Fours:      b.Fours,
		Sixes:      b.Sixes,
		StrikeRate: round2(sr),
		OnStrike:   b.OnStrike,
	}
}

func mapBowler(b bowlerResponse) match.Bowler {
	eco := 0.0
	if b.Economy != nil {
		eco = *b.Economy
	} else if b.BallsBowled > 0 {
		eco = float64(b.Runs) * normalize.BallsPerOver / float64(b.BallsBowled)
	}
	return match.Bowler{
		Name:    strings.TrimSpace(b.Name),
		Overs:   normalize.FormatBowlerOvers(b.BallsBowled),
		Maidens: b.Maidens,
		Runs:    b.Runs,
		Wickets: b.Wickets,
		Economy: round2(eco),
	}
}

func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Round(f*100) / 100
}
