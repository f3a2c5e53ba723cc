package normalize

import (
	"strings"
	"unicode"
)

// DeriveTeamCode builds a short team code: initials of a multi-word name when that gives 2-4 letters
// ("South Africa" -> "SA"), otherwise the first three letters upper-cased ("India" -> "IND").
func DeriveTeamCode(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return !unicode.IsLetter(r) })
	if len(words) == 0 {
		return ""
	}
	if len(words) >= 2 && len(words) <= 4 {
		var initials strings.Builder
		for _, w := range words {
			initials.WriteRune(unicode.ToUpper([]rune(w)[0]))
		}
		return initials.String()
	}

	letters := []rune(strings.Join(words, ""))
	if len(letters) > 3 {
		letters = letters[:3]
	}
	return strings.ToUpper(string(letters))
}
