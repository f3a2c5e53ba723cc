// Package snapshot converts accumulated feed state into the canonical match snapshot.
package snapshot

import (
	"math"
	"regexp"
	"strings"

	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/feed"
	"cricket-live-service/internal/normalize"
	"cricket-live-service/internal/timeutil"
)

const (
	maxParticipants = 2
	maxRecentBalls  = 6
)

// Build produces a snapshot from state. It is pure: the same state always yields the same snapshot,
// and the staleness signal is left for the classifier.
func Build(state feed.LegacyState, matchID string) match.Snapshot {
	scoreText := deref(state.Score)
	parts := normalize.ParseScoreParts(scoreText)
	overs := normalize.FormatOversLabel(state.Overs, scoreText)
	balls := 0
	if overs != "" {
		whole, rem := normalize.ParseOversLabel(overs)
		balls = whole*normalize.BallsPerOver + rem
	}

	teamName := firstNonEmpty(deref(state.TeamName), deref(state.BattingTeam), parts.Team)
	snap := match.Snapshot{
		MatchID:     matchID,
		Status:      match.StatusLive,
		Timestamp:   timeutil.ISOFromMillis(state.LastUpdatedMs),
		TimestampMs: state.LastUpdatedMs,
		Score: match.InningsScore{
			TeamCode: normalize.DeriveTeamCode(teamName),
			TeamName: teamName,
			Runs:     parts.Runs,
			Wickets:  parts.Wickets,
			Overs:    overs,
			RunRate:  runRate(state.RunRate, parts.Runs, balls),
			Result:   state.PersistedResult,
		},
		Chase:        buildChase(state, parts.Runs),
		Participants: buildParticipants(state.Batters),
		Bowler:       buildBowler(state.Bowlers),
		Odds:         buildOdds(state),
		CurrentBall:  deref(state.CurrentBall),
		RecentBalls:  recentBalls(state),
		Toss:         deref(state.Toss),
	}
	if state.PersistedResult != "" {
		snap.Status = match.StatusCompleted
	}
	if state.ProjectedScore != nil {
		projected := int(math.Round(*state.ProjectedScore))
		snap.Score.ProjectedScore = &projected
	}
	if state.Partnership != nil {
		snap.Partnership = &match.Partnership{Runs: state.Partnership.Runs, Balls: state.Partnership.Balls}
	}
	return snap
}

func runRate(explicit *float64, runs, balls int) float64 {
	if explicit != nil {
		return round2(*explicit)
	}
	return round2(perBalls(float64(runs), balls, normalize.BallsPerOver))
}

func buildChase(state feed.LegacyState, runs int) *match.Chase {
	if state.Target == nil || *state.Target <= 0 {
		return nil
	}
	target := int(math.Round(*state.Target))
	chase := &match.Chase{Target: target}
	if state.RunsRemaining != nil {
		chase.RunsRemaining = int(math.Round(*state.RunsRemaining))
	} else if target > runs {
		chase.RunsRemaining = target - runs
	}
	if state.BallsRemaining != nil && *state.BallsRemaining > 0 {
		chase.BallsRemaining = int(math.Round(*state.BallsRemaining))
	}
	if state.RequiredRunRate != nil {
		chase.RequiredRunRate = round2(*state.RequiredRunRate)
	} else {
		chase.RequiredRunRate = round2(perBalls(float64(chase.RunsRemaining), chase.BallsRemaining, normalize.BallsPerOver))
	}
	if state.WinProbability != nil {
		p := *state.WinProbability
		chase.WinProbability = &p
	}
	return chase
}

// buildParticipants keeps feed order. A batter's own flag always wins. An unflagged first batter is
// on strike unless another batter is explicitly on strike.
func buildParticipants(batters []feed.BatterRecord) []match.Participant {
	n := len(batters)
	if n > maxParticipants {
		n = maxParticipants
	}
	out := make([]match.Participant, 0, n)
	strikerFlagged := false
	for _, b := range batters[:n] {
		if b.OnStrike != nil && *b.OnStrike {
			strikerFlagged = true
		}
	}
	for i, b := range batters[:n] {
		p := match.Participant{
			Name:        b.Name,
			Runs:        b.Runs,
			Balls:       b.Balls,
			Fours:       b.Fours,
			Sixes:       b.Sixes,
			RecentBalls: lastN(b.RecentBalls, maxRecentBalls),
		}
		if b.StrikeRate != nil {
			p.StrikeRate = round2(*b.StrikeRate)
		} else {
			p.StrikeRate = round2(perBalls(float64(b.Runs), b.Balls, 100))
		}
		if b.OnStrike != nil {
			p.OnStrike = *b.OnStrike
		} else {
			p.OnStrike = i == 0 && !strikerFlagged
		}
		out = append(out, p)
	}
	return out
}

func buildBowler(bowlers []feed.BowlerRecord) *match.Bowler {
	if len(bowlers) == 0 {
		return nil
	}
	rec := bowlers[0]
	var oversValue float64
	switch {
	case rec.Balls != nil:
		oversValue = normalize.BallsToOvers(*rec.Balls)
	case rec.Overs != nil:
		oversValue = *rec.Overs
	}
	whole, balls := normalize.SplitOvers(oversValue)
	b := &match.Bowler{
		Name:    rec.Name,
		Overs:   normalize.FormatBowlerOvers(whole*normalize.BallsPerOver + balls),
		Maidens: rec.Maidens,
		Runs:    rec.Runs,
		Wickets: rec.Wickets,
	}
	if rec.Economy != nil {
		b.Economy = round2(*rec.Economy)
	} else {
		b.Economy = round2(perBalls(float64(rec.Runs), whole*normalize.BallsPerOver+balls, normalize.BallsPerOver))
	}
	return b
}

var priceToken = regexp.MustCompile(`\d+(?:\.\d+)?`)

// buildOdds prefers the team odds line, then the first usable match odds row. Odds that exist
// upstream without a usable price yield a disabled quote; no odds at all yields nil.
func buildOdds(state feed.LegacyState) *match.OddsQuote {
	team := deref(state.FavouriteTeam)
	if state.TeamOdds != nil {
		if q, ok := quoteFromText(team, *state.TeamOdds); ok {
			return q
		}
	}
	for _, row := range state.MatchOdds {
		back, ok := normalize.ParseNumericOK(row.Back)
		if !ok || back <= 0 {
			continue
		}
		q := &match.OddsQuote{
			Team:                firstNonEmpty(row.Team, team),
			Back:                back,
			Raw:                 strings.TrimSpace(row.Back + " " + row.Lay),
			JurisdictionEnabled: true,
		}
		if lay, ok := normalize.ParseNumericOK(row.Lay); ok {
			q.Lay = lay
		}
		return q
	}
	if state.TeamOdds == nil && len(state.MatchOdds) == 0 {
		return nil
	}
	return &match.OddsQuote{Team: team, Raw: deref(state.TeamOdds), JurisdictionEnabled: false}
}

func quoteFromText(team, text string) (*match.OddsQuote, bool) {
	tokens := priceToken.FindAllString(text, 2)
	if len(tokens) == 0 {
		return nil, false
	}
	back := normalize.ParseNumeric(tokens[0])
	if back <= 0 {
		return nil, false
	}
	q := &match.OddsQuote{Team: team, Back: back, Raw: strings.TrimSpace(text), JurisdictionEnabled: true}
	if len(tokens) > 1 {
		q.Lay = normalize.ParseNumeric(tokens[1])
	}
	return q, true
}

// recentBalls takes the over-bucket labelled as the current over, else the last bucket even when it
// is still empty. The flat ball stream is used only when there are no buckets.
func recentBalls(state feed.LegacyState) []string {
	buckets := state.OverBuckets
	if len(buckets) == 0 {
		if state.BallStream == nil {
			return nil
		}
		return lastN(feed.Tokenize(*state.BallStream), maxRecentBalls)
	}
	chosen := buckets[len(buckets)-1].Balls
	for i := len(buckets) - 1; i >= 0; i-- {
		if isCurrentOverLabel(buckets[i].Label) {
			chosen = buckets[i].Balls
			break
		}
	}
	return lastN(chosen, maxRecentBalls)
}

var currentOverMarkers = []string{"this over", "current"}

func isCurrentOverLabel(label string) bool {
	l := strings.ToLower(label)
	for _, marker := range currentOverMarkers {
		if strings.Contains(l, marker) {
			return true
		}
	}
	return false
}

func lastN(items []string, n int) []string {
	if len(items) == 0 {
		return nil
	}
	if len(items) > n {
		items = items[len(items)-n:]
	}
	return append([]string(nil), items...)
}

// perBalls returns value scaled per `per` units of balls faced, 0 when balls is not positive.
func perBalls(value float64, balls int, per float64) float64 {
	if balls <= 0 {
		return 0
	}
	return value * per / float64(balls)
}

func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Round(f*100) / 100
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
