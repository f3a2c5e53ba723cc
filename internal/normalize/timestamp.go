package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Epoch values below this are seconds, anything at or above is milliseconds.
const secondsCutoff = 10_000_000_000

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTimestamp returns milliseconds since the epoch for epoch seconds, epoch milliseconds,
// numeric strings or ISO date strings. It reports false when nothing usable is found.
func NormalizeTimestamp(value any) (int64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		return timestampFromString(v)
	case json.Number:
		return timestampFromString(v.String())
	case time.Time:
		if v.IsZero() {
			return 0, false
		}
		return v.UnixMilli(), true
	}
	f, ok := ParseNumericOK(value)
	if !ok {
		return 0, false
	}
	return epochToMillis(f)
}

func timestampFromString(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return epochToMillis(f)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

func epochToMillis(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	if f < secondsCutoff {
		return int64(math.Round(f * 1000)), true
	}
	return int64(math.Round(f)), true
}
