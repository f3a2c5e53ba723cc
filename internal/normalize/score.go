package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	scorePattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	digitGroups  = regexp.MustCompile(`\d+`)
)

// ScoreParts is the decomposed form of a score string such as "RSA 180/4".
type ScoreParts struct {
	Team    string
	Runs    int
	Wickets int
}

// ParseScoreParts extracts runs/wickets from strings like "243/8" or "RSA 180/4".
// When the runs/wickets pattern is missing the first two digit groups are used instead.
func ParseScoreParts(raw string) ScoreParts {
	parts := ScoreParts{Team: leadingTeamName(raw)}

	if m := scorePattern.FindStringSubmatch(raw); m != nil {
		parts.Runs = atoiOrZero(m[1])
		parts.Wickets = atoiOrZero(m[2])
		return parts
	}

	groups := digitGroups.FindAllString(raw, 2)
	if len(groups) > 0 {
		parts.Runs = atoiOrZero(groups[0])
	}
	if len(groups) > 1 {
		parts.Wickets = atoiOrZero(groups[1])
	}
	return parts
}

// FormatScore renders runs and wickets as "runs/wickets".
func FormatScore(runs, wickets int) string {
	return strconv.Itoa(runs) + "/" + strconv.Itoa(wickets)
}

func leadingTeamName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	end := 0
	for i, r := range trimmed {
		if unicode.IsLetter(r) || r == ' ' || r == '.' || r == '&' || r == '\'' {
			end = i + len(string(r))
			continue
		}
		break
	}
	name := strings.TrimSpace(trimmed[:end])
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		return ""
	}
	return name
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
