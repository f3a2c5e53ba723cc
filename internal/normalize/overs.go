package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// BallsPerOver is fixed for every format the feed covers.
	BallsPerOver = 6

	// Values above this are ball totals rather than over decimals. The threshold comes from observed feed
	// data and has not been checked against every competition.
	ballCountThreshold = 100
)

var oversInParens = regexp.MustCompile(`\(\s*(\d+(?:\.\d+)?)`)

// FormatOversLabel renders overs as "whole.balls". A present numeric value wins; otherwise the "(N ov)"
// suffix of the fallback score string is used. Returns "" when neither yields a value.
func FormatOversLabel(overs *float64, fallbackScore string) string {
	if overs != nil {
		whole, balls := SplitOvers(*overs)
		return formatWholeBalls(whole, balls)
	}
	m := oversInParens.FindStringSubmatch(fallbackScore)
	if m == nil {
		return ""
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ""
	}
	whole, balls := SplitOvers(f)
	return formatWholeBalls(whole, balls)
}

// FormatBowlerOvers renders a ball count in overs notation, e.g. 23 balls -> "3.5".
func FormatBowlerOvers(balls int) string {
	if balls < 0 {
		balls = 0
	}
	return formatWholeBalls(balls/BallsPerOver, balls%BallsPerOver)
}

// SplitOvers returns whole overs and balls into the current over, with balls clamped to [0,5].
// Values above the ball-count threshold are treated as ball totals.
func SplitOvers(overs float64) (int, int) {
	if math.IsNaN(overs) || math.IsInf(overs, 0) || overs <= 0 {
		return 0, 0
	}
	if overs > ballCountThreshold {
		total := int(overs)
		return total / BallsPerOver, total % BallsPerOver
	}
	whole := math.Floor(overs)
	balls := int(math.Round((overs - whole) * 10))
	if balls > BallsPerOver-1 {
		balls = BallsPerOver - 1
	}
	if balls < 0 {
		balls = 0
	}
	return int(whole), balls
}

// ParseOversLabel is the inverse of FormatOversLabel: "17.3" -> (17, 3).
func ParseOversLabel(label string) (int, int) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, 0
	}
	wholePart, ballPart, _ := strings.Cut(label, ".")
	whole := atoiOrZero(wholePart)
	balls := 0
	if ballPart != "" {
		balls = atoiOrZero(ballPart[:1])
	}
	if balls > BallsPerOver-1 {
		balls = BallsPerOver - 1
	}
	return whole, balls
}

// OversToFloat converts over notation into fractional overs: 17.3 -> 17.5.
func OversToFloat(overs float64) float64 {
	whole, balls := SplitOvers(overs)
	return float64(whole) + float64(balls)/BallsPerOver
}

// OversToBalls converts over notation into a ball count: 17.3 -> 105.
func OversToBalls(overs float64) int {
	whole, balls := SplitOvers(overs)
	return whole*BallsPerOver + balls
}

// BallsToOvers converts a ball count into over notation: 105 -> 17.3.
func BallsToOvers(balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(balls/BallsPerOver) + float64(balls%BallsPerOver)/10
}

func formatWholeBalls(whole, balls int) string {
	return strconv.Itoa(whole) + "." + strconv.Itoa(balls)
}
