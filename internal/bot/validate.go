package bot

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameRunes = 80

// validCityName reports whether the trimmed input looks like a place name:
// letters, spaces, and hyphens only, 1..80 runes.
func validCityName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxNameRunes {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' || r == '-' {
			continue
		}
		return false
	}
	return true
}
