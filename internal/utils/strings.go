package utils

import (
	"strings"
	"unicode/utf8"
)

// Excerpt cuts s to at most length runes, appending "..." when cut.
func Excerpt(s string, length int) string {
	if length <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:length])) + "..."
}

// Initials of a display name, used by the placeholder avatar.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, f := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(f)
		b.WriteString(strings.ToUpper(string(r)))
		if n++; n == 2 {
			break
		}
	}
	if n == 0 {
		return "?"
	}
	return b.String()
}
