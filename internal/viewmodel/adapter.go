package viewmodel

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"cricket-live-service/internal/domain/match"
)

const (
	sectionBatters     = "batters"
	sectionBowler      = "bowler"
	sectionPartnership = "partnership"
)

// Adapt renders snap, carrying the sticky striker forward from prev. The scorecard, when given,
// only fills batters, bowler and partnership that the live snapshot lacks.
func Adapt(snap match.Snapshot, prev *ViewModel, scorecard *match.Scorecard) ViewModel {
	vm := ViewModel{
		MatchID:     snap.MatchID,
		Status:      snap.Status,
		Timestamp:   snap.Timestamp,
		TimestampMs: snap.TimestampMs,
		TeamCode:    snap.Score.TeamCode,
		TeamName:    snap.Score.TeamName,
		TeamScore:   fmt.Sprintf("%d/%d", snap.Score.Runs, snap.Score.Wickets),
		Overs:       snap.Score.Overs,
		RunRate:     "CRR " + FormatRate(snap.Score.RunRate),
		Result:      snap.Score.Result,
		Chase:       chaseView(snap.Chase),
		CurrentBall: snap.CurrentBall,
		RecentBalls: append([]string{}, snap.RecentBalls...),
		Toss:        snap.Toss,
		Staleness:   snap.Staleness,
	}
	if snap.Score.ProjectedScore != nil {
		vm.ProjectedScore = strconv.Itoa(*snap.Score.ProjectedScore)
	}
	if snap.Odds != nil {
		vm.Odds = oddsView(*snap.Odds)
	}

	participants := snap.Participants
	bowler := snap.Bowler
	partnership := snap.Partnership
	if scorecard != nil {
		if len(participants) == 0 && len(scorecard.Batters) > 0 {
			participants = scorecard.Batters
			vm.ScorecardFields = append(vm.ScorecardFields, sectionBatters)
		}
		if bowler == nil && scorecard.Bowler != nil {
			bowler = scorecard.Bowler
			vm.ScorecardFields = append(vm.ScorecardFields, sectionBowler)
		}
		if partnership == nil && scorecard.Partnership != nil {
			partnership = scorecard.Partnership
			vm.ScorecardFields = append(vm.ScorecardFields, sectionPartnership)
		}
	}

	vm.Batters = make([]BatterView, 0, len(participants))
	for _, p := range participants {
		vm.Batters = append(vm.Batters, batterView(p))
	}
	if bowler != nil {
		vm.Bowler = bowlerView(*bowler)
	}
	if partnership != nil {
		vm.Partnership = fmt.Sprintf("%d(%d)", partnership.Runs, partnership.Balls)
	}

	vm.CurrentStriker = currentStriker(participants)
	switch {
	case vm.CurrentStriker != nil:
		name := *vm.CurrentStriker
		vm.LastValidStriker = &name
	case prev != nil && prev.LastValidStriker != nil:
		name := *prev.LastValidStriker
		vm.LastValidStriker = &name
	}
	return vm
}

// FormatRate renders a rate with two decimals; non-finite input renders as "0.00".
func FormatRate(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0.00"
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func chaseView(c *match.Chase) *ChaseView {
	if c == nil {
		return nil
	}
	view := &ChaseView{
		Target:          "Target " + strconv.Itoa(c.Target),
		RequiredRunRate: "RRR " + FormatRate(c.RequiredRunRate),
	}
	if c.BallsRemaining > 0 {
		view.Equation = fmt.Sprintf("Need %d from %d", c.RunsRemaining, c.BallsRemaining)
	} else {
		view.Equation = fmt.Sprintf("Need %d", c.RunsRemaining)
	}
	if c.WinProbability != nil {
		p := *c.WinProbability
		if math.IsNaN(p) || math.IsInf(p, 0) {
			p = 0
		}
		view.WinProbability = strconv.FormatFloat(p, 'f', 1, 64) + "%"
	}
	return view
}

func batterView(p match.Participant) BatterView {
	return BatterView{
		Name:        p.Name,
		Score:       fmt.Sprintf("%d (%d)", p.Runs, p.Balls),
		Boundaries:  fmt.Sprintf("4s %d 6s %d", p.Fours, p.Sixes),
		StrikeRate:  "SR " + FormatRate(p.StrikeRate),
		OnStrike:    p.OnStrike,
		RecentBalls: p.RecentBalls,
	}
}

func bowlerView(b match.Bowler) *BowlerView {
	return &BowlerView{
		Name:    b.Name,
		Figures: fmt.Sprintf("%d-%d", b.Wickets, b.Runs),
		Overs:   b.Overs,
		Maidens: strconv.Itoa(b.Maidens),
		Economy: "ECO " + FormatRate(b.Economy),
	}
}

func oddsView(q match.OddsQuote) *OddsView {
	view := &OddsView{Team: q.Team, Raw: q.Raw, JurisdictionEnabled: q.JurisdictionEnabled}
	if q.JurisdictionEnabled {
		view.Back = formatPrice(q.Back)
		if q.Lay > 0 {
			view.Lay = formatPrice(q.Lay)
		}
	}
	return view
}

func formatPrice(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var placeholderNames = map[string]struct{}{
	"":        {},
	"-":       {},
	"unknown": {},
	"batter":  {},
	"batsman": {},
	"player":  {},
	"tbd":     {},
	"n/a":     {},
}

var numberedPlaceholder = regexp.MustCompile(`^(batter|batsman|player)\s*\d+$`)

// IsPlaceholderName reports names the feed uses when the real batter is not yet known.
func IsPlaceholderName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if _, ok := placeholderNames[n]; ok {
		return true
	}
	return numberedPlaceholder.MatchString(n)
}

func currentStriker(participants []match.Participant) *string {
	for _, p := range participants {
		if p.OnStrike && !IsPlaceholderName(p.Name) {
			name := strings.TrimSpace(p.Name)
			return &name
		}
	}
	return nil
}
