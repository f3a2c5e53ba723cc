package feedapi

import "testing"

func TestMapScorecardPrefersUpstreamMatchID(t *testing.T) {
	card := mapScorecard(scorecardData{MatchID: "upstream-1"}, "m1")
	if card.MatchID != "upstream-1" {
		t.Fatalf("expected upstream match id, got %s", card.MatchID)
	}
	if !card.IsEmpty() {
		t.Fatalf("expected empty scorecard, got %+v", card)
	}
}

func TestMapBatterUsesExplicitStrikeRate(t *testing.T) {
	sr := 133.333
	b := mapBatter(batterResponse{Name: " Gill ", Runs: 4, Balls: 3, StrikeRate: &sr})
	if b.Name != "Gill" || b.StrikeRate != 133.33 {
		t.Fatalf("unexpected batter %+v", b)
	}
}

func TestMapBowlerWithoutBallsHasZeroEconomy(t *testing.T) {
	b := mapBowler(bowlerResponse{Name: "Cummins", Runs: 12})
	if b.Economy != 0 || b.Overs != "0.0" {
		t.Fatalf("unexpected bowler %+v", b)
	}
}

func TestMapScorecardSkipsUnnamedBowler(t *testing.T) {
	card := mapScorecard(scorecardData{Bowler: &bowlerResponse{Name: ""}}, "m1")
	if card.Bowler != nil {
		t.Fatalf("expected unnamed bowler to be dropped, got %+v", card.Bowler)
	}
}
