package feed

import (
	"regexp"
	"strings"

	"cricket-live-service/internal/normalize"
)

// asObjects accepts a list of objects or a single object; anything else yields an empty list.
func asObjects(v any) []map[string]any {
	switch list := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{list}
	default:
		return []map[string]any{}
	}
}

func lookupString(a AliasTable, obj map[string]any, field Field) string {
	v, ok := a.Lookup(obj, field)
	if !ok {
		return ""
	}
	s, _ := normalize.ParseString(v)
	return s
}

func lookupInt(a AliasTable, obj map[string]any, field Field) int {
	v, ok := a.Lookup(obj, field)
	if !ok {
		return 0
	}
	return normalize.ParseInt(v)
}

func lookupFloat(a AliasTable, obj map[string]any, field Field) *float64 {
	v, ok := a.Lookup(obj, field)
	if !ok {
		return nil
	}
	f, ok := normalize.ParseNumericOK(v)
	if !ok {
		return nil
	}
	return &f
}

func decodeBatters(a AliasTable, v any) []BatterRecord {
	objs := asObjects(v)
	out := make([]BatterRecord, 0, len(objs))
	for _, obj := range objs {
		rec := BatterRecord{
			Name:       lookupString(a, obj, FieldBatterName),
			Runs:       lookupInt(a, obj, FieldBatterRuns),
			Balls:      lookupInt(a, obj, FieldBatterBalls),
			Fours:      lookupInt(a, obj, FieldBatterFours),
			Sixes:      lookupInt(a, obj, FieldBatterSixes),
			StrikeRate: lookupFloat(a, obj, FieldBatterStrikeRate),
		}
		if raw, ok := a.Lookup(obj, FieldBatterOnStrike); ok {
			if b, ok := normalize.ParseBool(raw); ok {
				rec.OnStrike = &b
			}
		}
		if raw, ok := a.Lookup(obj, FieldBatterRecentBalls); ok {
			rec.RecentBalls = Tokenize(raw)
		}
		out = append(out, rec)
	}
	return out
}

func decodeBowlers(a AliasTable, v any) []BowlerRecord {
	objs := asObjects(v)
	out := make([]BowlerRecord, 0, len(objs))
	for _, obj := range objs {
		rec := BowlerRecord{
			Name:    lookupString(a, obj, FieldBowlerName),
			Overs:   lookupFloat(a, obj, FieldBowlerOvers),
			Maidens: lookupInt(a, obj, FieldBowlerMaidens),
			Runs:    lookupInt(a, obj, FieldBowlerRuns),
			Wickets: lookupInt(a, obj, FieldBowlerWickets),
			Economy: lookupFloat(a, obj, FieldBowlerEconomy),
		}
		if raw, ok := a.Lookup(obj, FieldBowlerBalls); ok {
			if f, ok := normalize.ParseNumericOK(raw); ok {
				balls := int(f)
				rec.Balls = &balls
			}
		}
		out = append(out, rec)
	}
	return out
}

var digitGroups = regexp.MustCompile(`\d+`)

// decodePartnership accepts an object or text such as "45(32)".
func decodePartnership(a AliasTable, v any) (PartnershipRecord, bool) {
	switch p := v.(type) {
	case map[string]any:
		return PartnershipRecord{
			Runs:  lookupInt(a, p, FieldPartnershipRuns),
			Balls: lookupInt(a, p, FieldPartnershipBalls),
		}, true
	case string:
		groups := digitGroups.FindAllString(p, 2)
		if len(groups) == 0 {
			return PartnershipRecord{}, false
		}
		rec := PartnershipRecord{Runs: normalize.ParseInt(groups[0])}
		if len(groups) > 1 {
			rec.Balls = normalize.ParseInt(groups[1])
		}
		return rec, true
	default:
		if f, ok := normalize.ParseNumericOK(v); ok {
			return PartnershipRecord{Runs: int(f)}, true
		}
		return PartnershipRecord{}, false
	}
}

func decodeMatchOdds(a AliasTable, v any) []OddsRecord {
	objs := asObjects(v)
	out := make([]OddsRecord, 0, len(objs))
	for _, obj := range objs {
		out = append(out, OddsRecord{
			Team: lookupString(a, obj, FieldOddsTeam),
			Back: lookupString(a, obj, FieldOddsBack),
			Lay:  lookupString(a, obj, FieldOddsLay),
		})
	}
	return out
}

func decodeSessionOdds(a AliasTable, v any) []SessionOddsRecord {
	objs := asObjects(v)
	out := make([]SessionOddsRecord, 0, len(objs))
	for _, obj := range objs {
		out = append(out, SessionOddsRecord{
			Label: lookupString(a, obj, FieldSessionLabel),
			Yes:   lookupString(a, obj, FieldSessionYes),
			No:    lookupString(a, obj, FieldSessionNo),
		})
	}
	return out
}

func decodeOverBuckets(a AliasTable, v any) []OverBucket {
	objs := asObjects(v)
	out := make([]OverBucket, 0, len(objs))
	for _, obj := range objs {
		bucket := OverBucket{Label: lookupString(a, obj, FieldBucketLabel)}
		if raw, ok := a.Lookup(obj, FieldBucketBalls); ok {
			bucket.Balls = Tokenize(raw)
		} else {
			bucket.Balls = []string{}
		}
		out = append(out, bucket)
	}
	return out
}

// Tokenize splits ball outcome text on commas, pipes and whitespace. Lists are flattened.
func Tokenize(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			out = append(out, Tokenize(item)...)
		}
	case []string:
		for _, item := range t {
			out = append(out, Tokenize(item)...)
		}
	default:
		s, ok := normalize.ParseString(v)
		if !ok {
			return out
		}
		fields := strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == '|' || r == ' ' || r == '\t' || r == '\n'
		})
		for _, f := range fields {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}
