package feed

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Field is a canonical key of the legacy state. Dotted names address fields inside records.
type Field string

const (
	FieldScore           Field = "score"
	FieldOvers           Field = "overs"
	FieldRunRate         Field = "runRate"
	FieldRequiredRunRate Field = "requiredRunRate"
	FieldTarget          Field = "target"
	FieldRunsRemaining   Field = "runsRemaining"
	FieldBallsRemaining  Field = "ballsRemaining"
	FieldProjectedScore  Field = "projectedScore"
	FieldWinProbability  Field = "winProbability"
	FieldTeamName        Field = "teamName"
	FieldBattingTeam     Field = "battingTeam"
	FieldFavouriteTeam   Field = "favouriteTeam"
	FieldBatters         Field = "batters"
	FieldBowlers         Field = "bowlers"
	FieldPartnership     Field = "partnership"
	FieldTeamOdds        Field = "teamOdds"
	FieldMatchOdds       Field = "matchOdds"
	FieldSessionOdds     Field = "sessionOdds"
	FieldOverBuckets     Field = "overBuckets"
	FieldBallStream      Field = "ballStream"
	FieldCurrentBall     Field = "currentBall"
	FieldToss            Field = "toss"
	FieldResult          Field = "result"
	FieldTimestamp       Field = "timestamp"
	FieldLegacyTimestamp Field = "legacyTimestamp"

	FieldBatterName        Field = "batter.name"
	FieldBatterRuns        Field = "batter.runs"
	FieldBatterBalls       Field = "batter.balls"
	FieldBatterFours       Field = "batter.fours"
	FieldBatterSixes       Field = "batter.sixes"
	FieldBatterStrikeRate  Field = "batter.strikeRate"
	FieldBatterOnStrike    Field = "batter.onStrike"
	FieldBatterRecentBalls Field = "batter.recentBalls"

	FieldBowlerName    Field = "bowler.name"
	FieldBowlerOvers   Field = "bowler.overs"
	FieldBowlerBalls   Field = "bowler.balls"
	FieldBowlerMaidens Field = "bowler.maidens"
	FieldBowlerRuns    Field = "bowler.runs"
	FieldBowlerWickets Field = "bowler.wickets"
	FieldBowlerEconomy Field = "bowler.economy"

	FieldPartnershipRuns  Field = "partnership.runs"
	FieldPartnershipBalls Field = "partnership.balls"

	FieldOddsTeam Field = "odds.team"
	FieldOddsBack Field = "odds.back"
	FieldOddsLay  Field = "odds.lay"

	FieldSessionLabel Field = "session.label"
	FieldSessionYes   Field = "session.yes"
	FieldSessionNo    Field = "session.no"

	FieldBucketLabel Field = "bucket.label"
	FieldBucketBalls Field = "bucket.balls"
)

// topLevelFields are the state fields that count as informative content of a message.
var topLevelFields = []Field{
	FieldScore, FieldOvers, FieldRunRate, FieldRequiredRunRate, FieldTarget, FieldRunsRemaining,
	FieldBallsRemaining, FieldProjectedScore, FieldWinProbability, FieldTeamName, FieldBattingTeam,
	FieldFavouriteTeam, FieldBatters, FieldBowlers, FieldPartnership, FieldTeamOdds, FieldMatchOdds,
	FieldSessionOdds, FieldOverBuckets, FieldBallStream, FieldCurrentBall, FieldToss, FieldResult,
}

// AliasTable maps each canonical field to the upstream names that carry it, in priority order.
// Snapshot and patch messages name the same data differently; both spellings belong here.
type AliasTable map[Field][]string

// DefaultAliases is the mapping table for the names observed on the live feed and the snapshot API.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldScore:           {"score", "teamScore", "team_score", "scoreStr"},
		FieldOvers:           {"over", "overs", "oversBowled", "overs_bowled"},
		FieldRunRate:         {"crr", "currentRunRate", "current_run_rate", "runRate", "run_rate"},
		FieldRequiredRunRate: {"rrr", "requiredRunRate", "required_run_rate"},
		FieldTarget:          {"target", "targetRuns", "target_runs"},
		FieldRunsRemaining:   {"runsNeeded", "runs_needed", "runsRemaining", "runs_remaining"},
		FieldBallsRemaining:  {"ballsRemaining", "balls_remaining", "ballsLeft", "balls_left"},
		FieldProjectedScore:  {"projectedScore", "projected_score", "projScore"},
		FieldWinProbability:  {"winProbability", "win_probability", "winPct"},
		FieldTeamName:        {"teamName", "team_name"},
		FieldBattingTeam:     {"batting_team", "battingTeam", "team"},
		FieldFavouriteTeam:   {"fav_team", "favTeam", "favouriteTeam", "favorite_team"},
		FieldBatters:         {"batsman_data", "batsmanData", "batsmen", "batters"},
		FieldBowlers:         {"bolwer_data", "bowler_data", "bowlerData", "bowlers"},
		FieldPartnership:     {"partnership", "pship"},
		FieldTeamOdds:        {"team_odds", "teamOdds", "odds"},
		FieldMatchOdds:       {"match_odds", "matchOdds"},
		FieldSessionOdds:     {"session", "session_odds", "sessionOdds"},
		FieldOverBuckets:     {"overs_data", "oversData", "over_balls", "overBalls"},
		FieldBallStream:      {"last_balls", "lastBalls", "recent_balls", "recentBalls", "ball_by_ball"},
		FieldCurrentBall:     {"current_ball", "currentBall", "ball"},
		FieldToss:            {"toss", "tossInfo", "toss_info"},
		FieldResult:          {"result", "resultText", "result_text"},
		FieldTimestamp:       {"timestamp", "lastUpdated", "last_updated", "updatedAt"},
		FieldLegacyTimestamp: {"updated_at", "lastUpdate", "ts", "time"},

		FieldBatterName:        {"name", "batsman", "batter", "player"},
		FieldBatterRuns:        {"score", "runs", "r"},
		FieldBatterBalls:       {"ballsFaced", "balls_faced", "balls", "b"},
		FieldBatterFours:       {"fours", "4s"},
		FieldBatterSixes:       {"sixes", "6s"},
		FieldBatterStrikeRate:  {"strikeRate", "strike_rate", "sr"},
		FieldBatterOnStrike:    {"onStrike", "on_strike", "striker", "isStriker"},
		FieldBatterRecentBalls: {"recentBalls", "recent_balls", "last_balls"},

		FieldBowlerName:    {"name", "bowler", "player"},
		FieldBowlerOvers:   {"overs", "over", "o"},
		FieldBowlerBalls:   {"ballsBowled", "balls_bowled", "balls"},
		FieldBowlerMaidens: {"maidens", "maiden", "m"},
		FieldBowlerRuns:    {"runs", "runsConceded", "runs_conceded", "r"},
		FieldBowlerWickets: {"wickets", "wicket", "w"},
		FieldBowlerEconomy: {"economy", "eco", "econ"},

		FieldPartnershipRuns:  {"runs", "r"},
		FieldPartnershipBalls: {"balls", "b"},

		FieldOddsTeam: {"team", "name", "team_name"},
		FieldOddsBack: {"back", "odds", "rate", "value"},
		FieldOddsLay:  {"lay"},

		FieldSessionLabel: {"label", "name", "over"},
		FieldSessionYes:   {"yes", "back"},
		FieldSessionNo:    {"no", "lay"},

		FieldBucketLabel: {"label", "over", "title"},
		FieldBucketBalls: {"balls", "data"},
	}
}

// Extend returns a copy of the table with extra upstream names appended after the existing ones.
func (t AliasTable) Extend(extra map[Field][]string) AliasTable {
	out := make(AliasTable, len(t))
	for field, names := range t {
		out[field] = append([]string(nil), names...)
	}
	for field, names := range extra {
		for _, name := range names {
			if !containsString(out[field], name) {
				out[field] = append(out[field], name)
			}
		}
	}
	return out
}

// Lookup returns the first non-null value carried under any alias of field.
func (t AliasTable) Lookup(obj map[string]any, field Field) (any, bool) {
	for _, name := range t[field] {
		if v, ok := obj[name]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadAliasFile extends the default table with aliases declared in a YAML file:
//
//	aliases:
//	  score: [scoreline]
//	  batter.name: [player_name]
//
// Unknown canonical fields are rejected so that typos do not silently drop data.
func LoadAliasFile(path string) (AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}
	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	base := DefaultAliases()
	extra := make(map[Field][]string, len(file.Aliases))
	var unknown []string
	for key, names := range file.Aliases {
		field := Field(key)
		if _, ok := base[field]; !ok {
			unknown = append(unknown, key)
			continue
		}
		extra[field] = names
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("alias file %s: unknown fields %v", path, unknown)
	}
	return base.Extend(extra), nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
