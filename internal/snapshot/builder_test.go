package snapshot

import (
	"reflect"
	"testing"
	"time"

	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/feed"
)

func mergeAll(t *testing.T, payloads ...string) feed.LegacyState {
	t.Helper()
	m := feed.NewMerger(nil, func() time.Time { return time.Unix(1700000000, 0) })
	var state feed.LegacyState
	for _, raw := range payloads {
		p, err := feed.DecodePayload([]byte(raw))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		state = m.Merge(state, p, false)
	}
	return state
}

func TestBuildFromLivePayload(t *testing.T) {
	state := mergeAll(t, `{"score":"132/4","over":17.3,"crr":"7.61",
		"batsman_data":[{"name":"Player A","score":50,"ballsFaced":40,"onStrike":true}],
		"lastUpdated":1700000000}`)
	snap := Build(state, "m1")

	if snap.MatchID != "m1" || snap.Status != match.StatusLive {
		t.Fatalf("unexpected header %+v", snap)
	}
	if snap.Score.Runs != 132 || snap.Score.Wickets != 4 || snap.Score.Overs != "17.3" || snap.Score.RunRate != 7.61 {
		t.Fatalf("unexpected score %+v", snap.Score)
	}
	if len(snap.Participants) != 1 || snap.Participants[0].Name != "Player A" || !snap.Participants[0].OnStrike {
		t.Fatalf("unexpected participants %+v", snap.Participants)
	}
	if snap.Participants[0].StrikeRate != 125 {
		t.Fatalf("expected computed strike rate 125, got %v", snap.Participants[0].StrikeRate)
	}
	if snap.TimestampMs != 1700000000000 || snap.Timestamp != "2023-11-14T22:13:20.000Z" {
		t.Fatalf("unexpected timestamp %d %s", snap.TimestampMs, snap.Timestamp)
	}
	if snap.Odds != nil || snap.Chase != nil || snap.Bowler != nil {
		t.Fatalf("expected absent optional sections, got %+v", snap)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	state := mergeAll(t, `{"score":"IND 88/2","over":10.2,"batters":[{"name":"A"},{"name":"B"}],"last_balls":"1,4,0,W,6,1,2"}`)
	if !reflect.DeepEqual(Build(state, "x"), Build(state, "x")) {
		t.Fatalf("expected identical snapshots")
	}
}

func TestBuildComputesRunRateWhenMissing(t *testing.T) {
	state := mergeAll(t, `{"score":"60/1","over":10}`)
	if got := Build(state, "m").Score.RunRate; got != 6 {
		t.Fatalf("expected run rate 6, got %v", got)
	}
	state = mergeAll(t, `{"score":"0/0"}`)
	if got := Build(state, "m").Score.RunRate; got != 0 {
		t.Fatalf("expected zero run rate with no balls, got %v", got)
	}
}

func TestBuildOversFallbackFromScoreText(t *testing.T) {
	state := mergeAll(t, `{"score":"IND 145/3 (16.4 ov)"}`)
	snap := Build(state, "m")
	if snap.Score.Overs != "16.4" || snap.Score.TeamName != "IND" || snap.Score.TeamCode != "IND" {
		t.Fatalf("unexpected score %+v", snap.Score)
	}
}

func TestBuildCompletedFromPersistedResult(t *testing.T) {
	state := mergeAll(t, `{"score":"180/6"}`, `{"current_ball":"Team A won by 5 runs"}`)
	snap := Build(state, "m")
	if snap.Status != match.StatusCompleted || snap.Score.Result != "Team A won by 5 runs" {
		t.Fatalf("expected completed snapshot, got %+v", snap)
	}
}

func TestBuildParticipantsStrikeAssignment(t *testing.T) {
	state := mergeAll(t, `{"batters":[{"name":"A"},{"name":"B"},{"name":"C"}]}`)
	snap := Build(state, "m")
	if len(snap.Participants) != 2 {
		t.Fatalf("expected two participants, got %d", len(snap.Participants))
	}
	if !snap.Participants[0].OnStrike || snap.Participants[1].OnStrike {
		t.Fatalf("expected first batter on strike by default, got %+v", snap.Participants)
	}

	state = mergeAll(t, `{"batters":[{"name":"A","onStrike":0},{"name":"B","onStrike":1}]}`)
	snap = Build(state, "m")
	if snap.Participants[0].OnStrike || !snap.Participants[1].OnStrike {
		t.Fatalf("expected explicit flags honoured, got %+v", snap.Participants)
	}

	state = mergeAll(t, `{"batsman_data":[{"name":"Kohli","score":20},{"name":"Rohit","score":10,"onStrike":false}]}`)
	snap = Build(state, "m")
	if !snap.Participants[0].OnStrike || snap.Participants[1].OnStrike {
		t.Fatalf("expected unflagged first batter on strike when only the partner is flagged off, got %+v", snap.Participants)
	}

	state = mergeAll(t, `{"batters":[{"name":"A"},{"name":"B","onStrike":true}]}`)
	snap = Build(state, "m")
	if snap.Participants[0].OnStrike || !snap.Participants[1].OnStrike {
		t.Fatalf("expected flagged second batter to take strike, got %+v", snap.Participants)
	}
}

func TestBuildChase(t *testing.T) {
	state := mergeAll(t, `{"score":"150/5","over":18,"target":171,"ballsRemaining":12,"winProbability":42.5}`)
	chase := Build(state, "m").Chase
	if chase == nil {
		t.Fatalf("expected chase")
	}
	if chase.Target != 171 || chase.RunsRemaining != 21 || chase.BallsRemaining != 12 || chase.RequiredRunRate != 10.5 {
		t.Fatalf("unexpected chase %+v", chase)
	}
	if chase.WinProbability == nil || *chase.WinProbability != 42.5 {
		t.Fatalf("unexpected win probability %v", chase.WinProbability)
	}
}

func TestBuildBowler(t *testing.T) {
	state := mergeAll(t, `{"bowler_data":[{"name":"X","overs":3.2,"runs":20,"wickets":2},{"name":"Y"}]}`)
	b := Build(state, "m").Bowler
	if b == nil || b.Name != "X" || b.Overs != "3.2" || b.Economy != 6 {
		t.Fatalf("unexpected bowler %+v", b)
	}

	state = mergeAll(t, `{"bowler_data":[{"name":"X","balls":23,"runs":23,"economy":"6.01"}]}`)
	b = Build(state, "m").Bowler
	if b.Overs != "3.5" || b.Economy != 6.01 {
		t.Fatalf("unexpected ball-count bowler %+v", b)
	}

	state = mergeAll(t, `{"bowler_data":[{"name":"X","runs":5}]}`)
	if b = Build(state, "m").Bowler; b.Economy != 0 || b.Overs != "0.0" {
		t.Fatalf("expected guarded economy, got %+v", b)
	}
}

func TestBuildOdds(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *match.OddsQuote
	}{
		{"none", `{"score":"1/0"}`, nil},
		{"team odds", `{"fav_team":"IND","team_odds":"45-46"}`, &match.OddsQuote{Team: "IND", Back: 45, Lay: 46, Raw: "45-46", JurisdictionEnabled: true}},
		{"match odds fallback", `{"team_odds":"-","match_odds":[{"team":"AUS","back":"x"},{"team":"IND","back":"1.5","lay":"1.52"}]}`,
			&match.OddsQuote{Team: "IND", Back: 1.5, Lay: 1.52, Raw: "1.5 1.52", JurisdictionEnabled: true}},
		{"unusable", `{"team_odds":"SUSPENDED"}`, &match.OddsQuote{Raw: "SUSPENDED", JurisdictionEnabled: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(mergeAll(t, tt.payload), "m").Odds
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestBuildRecentBalls(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{"stream keeps last six", `{"last_balls":"1,4,0,W,6,1,2"}`, []string{"4", "0", "W", "6", "1", "2"}},
		{"current over bucket", `{"overs_data":[{"label":"this over","balls":["1","2"]},{"label":"17","balls":["6"]}]}`, []string{"1", "2"}},
		{"latest bucket", `{"overs_data":[{"label":"16","balls":["0"]},{"label":"17","balls":["4","W"]}],"last_balls":"9"}`, []string{"4", "W"}},
		{"labelled with over number", `{"overs_data":[{"label":"This Over (12)","balls":["0","1"]},{"label":"Over 11","balls":["6"]}]}`, []string{"0", "1"}},
		{"empty last bucket", `{"overs_data":[{"label":"Over 11","balls":"1,4,0,W,6,2"},{"label":"Over 12","balls":[]}],"last_balls":"9"}`, nil},
		{"nothing", `{"score":"1/0"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(mergeAll(t, tt.payload), "m").RecentBalls
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBuildEmptyState(t *testing.T) {
	snap := Build(feed.LegacyState{}, "m")
	if snap.Score.Overs != "" || snap.Timestamp != "" || snap.Participants == nil {
		t.Fatalf("unexpected empty snapshot %+v", snap)
	}
}
