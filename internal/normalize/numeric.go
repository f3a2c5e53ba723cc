// Package normalize converts the ad-hoc encodings used by the live feed into canonical values.
// Every function is total: unparseable input yields a safe default instead of an error.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumeric accepts numbers or strings and returns a float64.
// Strings are stripped of everything except digits, '.' and '-'. Unparseable input returns 0.
func ParseNumeric(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return parseNumericString(v.String())
	case string:
		return parseNumericString(v)
	default:
		return 0
	}
}

// ParseNumericOK is ParseNumeric that also reports whether a usable number was found.
func ParseNumericOK(value any) (float64, bool) {
	switch v := value.(type) {
	case nil, bool:
		return 0, false
	case string:
		cleaned := stripNonNumeric(v)
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case json.Number:
		return ParseNumericOK(v.String())
	default:
		f := ParseNumeric(v)
		switch v.(type) {
		case float64, float32, int, int32, int64, uint, uint32, uint64:
			return f, true
		}
		return 0, false
	}
}

// ParseInt truncates ParseNumeric to an int.
func ParseInt(value any) int {
	return int(ParseNumeric(value))
}

// ParseString renders scalar values as trimmed strings. Empty strings and non-scalars report false.
func ParseString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case json.Number:
		return v.String(), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// ParseBool understands booleans, 0/1 numbers and the usual truthy strings.
func ParseBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	case json.Number:
		return v.String() != "0", true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "*":
			return true, true
		case "0", "false", "no", "n", "":
			return false, true
		}
	}
	return false, false
}

func parseNumericString(raw string) float64 {
	f, err := strconv.ParseFloat(stripNonNumeric(raw), 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

func stripNonNumeric(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
