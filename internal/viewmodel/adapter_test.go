package viewmodel

import (
	"math"
	"reflect"
	"testing"

	"cricket-live-service/internal/domain/match"
)

func snapshotWithBatters(batters ...match.Participant) match.Snapshot {
	return match.Snapshot{
		MatchID:      "m1",
		Status:       match.StatusLive,
		Score:        match.InningsScore{TeamCode: "IND", Runs: 132, Wickets: 4, Overs: "17.3", RunRate: 7.61},
		Participants: batters,
	}
}

func TestAdaptFormatsDisplayStrings(t *testing.T) {
	snap := snapshotWithBatters(match.Participant{Name: "Player A", Runs: 50, Balls: 40, Fours: 4, Sixes: 2, StrikeRate: 125, OnStrike: true})
	snap.Bowler = &match.Bowler{Name: "X", Overs: "3.0", Runs: 12, Wickets: 1, Economy: 4}
	snap.Chase = &match.Chase{Target: 171, RunsRemaining: 39, BallsRemaining: 15, RequiredRunRate: 15.6}
	snap.Partnership = &match.Partnership{Runs: 45, Balls: 32}

	vm := Adapt(snap, nil, nil)
	if vm.TeamScore != "132/4" || vm.Overs != "17.3" || vm.RunRate != "CRR 7.61" {
		t.Fatalf("unexpected score line %+v", vm)
	}
	if vm.Bowler == nil || vm.Bowler.Economy != "ECO 4.00" || vm.Bowler.Figures != "1-12" {
		t.Fatalf("unexpected bowler %+v", vm.Bowler)
	}
	if vm.Chase == nil || vm.Chase.Equation != "Need 39 from 15" || vm.Chase.RequiredRunRate != "RRR 15.60" {
		t.Fatalf("unexpected chase %+v", vm.Chase)
	}
	if vm.Batters[0].Score != "50 (40)" || vm.Batters[0].StrikeRate != "SR 125.00" {
		t.Fatalf("unexpected batter %+v", vm.Batters[0])
	}
	if vm.Partnership != "45(32)" {
		t.Fatalf("unexpected partnership %q", vm.Partnership)
	}
	if vm.CurrentStriker == nil || *vm.CurrentStriker != "Player A" {
		t.Fatalf("expected striker Player A, got %v", vm.CurrentStriker)
	}
}

func TestFormatRateGuardsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := FormatRate(f); got != "0.00" {
			t.Fatalf("FormatRate(%v) = %s", f, got)
		}
	}
	if got := FormatRate(7.605); got != "7.61" && got != "7.60" {
		t.Fatalf("unexpected rounding %s", got)
	}
}

func TestStickyStriker(t *testing.T) {
	first := Adapt(snapshotWithBatters(match.Participant{Name: "Kohli", OnStrike: true}), nil, nil)
	second := Adapt(snapshotWithBatters(match.Participant{Name: "Unknown", OnStrike: true}), &first, nil)

	if first.LastValidStriker == nil || *first.LastValidStriker != "Kohli" {
		t.Fatalf("expected Kohli as last valid striker, got %v", first.LastValidStriker)
	}
	if second.CurrentStriker != nil {
		t.Fatalf("expected no current striker, got %v", *second.CurrentStriker)
	}
	if second.LastValidStriker == nil || *second.LastValidStriker != "Kohli" {
		t.Fatalf("expected Kohli carried forward, got %v", second.LastValidStriker)
	}

	third := Adapt(snapshotWithBatters(match.Participant{Name: "Rohit", OnStrike: true}), &second, nil)
	if *third.LastValidStriker != "Rohit" {
		t.Fatalf("expected new valid striker to replace sticky one, got %v", *third.LastValidStriker)
	}
}

func TestLastValidStrikerNeverCleared(t *testing.T) {
	prev := Adapt(snapshotWithBatters(match.Participant{Name: "Kohli", OnStrike: true}), nil, nil)
	gaps := []match.Snapshot{
		snapshotWithBatters(),
		snapshotWithBatters(match.Participant{Name: "Batter 1", OnStrike: true}),
		snapshotWithBatters(match.Participant{Name: "Gill", OnStrike: false}),
	}
	for _, snap := range gaps {
		next := Adapt(snap, &prev, nil)
		if next.LastValidStriker == nil || *next.LastValidStriker != "Kohli" {
			t.Fatalf("sticky striker lost on %+v", snap.Participants)
		}
		prev = next
	}
}

func TestIsPlaceholderName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Unknown", true},
		{" batter ", true},
		{"BATSMAN 2", true},
		{"", true},
		{"TBD", true},
		{"Virat Kohli", false},
		{"Batterson", false},
	}
	for _, tc := range cases {
		if got := IsPlaceholderName(tc.name); got != tc.want {
			t.Fatalf("IsPlaceholderName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestScorecardFallbackOnlyWhenLiveLacks(t *testing.T) {
	scorecard := &match.Scorecard{
		Batters:     []match.Participant{{Name: "Card Batter", Runs: 10, Balls: 8, OnStrike: true}},
		Bowler:      &match.Bowler{Name: "Card Bowler", Economy: 5},
		Partnership: &match.Partnership{Runs: 12, Balls: 9},
	}

	empty := Adapt(snapshotWithBatters(), nil, scorecard)
	if len(empty.Batters) != 1 || empty.Batters[0].Name != "Card Batter" {
		t.Fatalf("expected scorecard batters, got %+v", empty.Batters)
	}
	if empty.Bowler == nil || empty.Bowler.Name != "Card Bowler" || empty.Partnership != "12(9)" {
		t.Fatalf("expected scorecard bowler and partnership, got %+v", empty)
	}
	if !reflect.DeepEqual(empty.ScorecardFields, []string{"batters", "bowler", "partnership"}) {
		t.Fatalf("unexpected scorecard fields %v", empty.ScorecardFields)
	}

	live := snapshotWithBatters(match.Participant{Name: "Live Batter", OnStrike: true})
	live.Bowler = &match.Bowler{Name: "Live Bowler"}
	vm := Adapt(live, nil, scorecard)
	if vm.Batters[0].Name != "Live Batter" || vm.Bowler.Name != "Live Bowler" {
		t.Fatalf("live data must take precedence, got %+v", vm)
	}
	if !reflect.DeepEqual(vm.ScorecardFields, []string{"partnership"}) {
		t.Fatalf("unexpected scorecard fields %v", vm.ScorecardFields)
	}
}

func TestAdaptOdds(t *testing.T) {
	snap := snapshotWithBatters()
	snap.Odds = &match.OddsQuote{Raw: "SUSPENDED"}
	vm := Adapt(snap, nil, nil)
	if vm.Odds == nil || vm.Odds.JurisdictionEnabled || vm.Odds.Back != "" || vm.Odds.Raw != "SUSPENDED" {
		t.Fatalf("expected disabled odds, got %+v", vm.Odds)
	}

	snap.Odds = &match.OddsQuote{Team: "IND", Back: 1.45, Lay: 1.47, JurisdictionEnabled: true}
	vm = Adapt(snap, nil, nil)
	if vm.Odds.Back != "1.45" || vm.Odds.Lay != "1.47" {
		t.Fatalf("unexpected odds %+v", vm.Odds)
	}
}

func TestAdaptDoesNotAliasSnapshotSlices(t *testing.T) {
	snap := snapshotWithBatters()
	snap.RecentBalls = []string{"1", "4"}
	vm := Adapt(snap, nil, nil)
	vm.RecentBalls[0] = "W"
	if snap.RecentBalls[0] != "1" {
		t.Fatalf("view model shares recent balls with snapshot")
	}
}
