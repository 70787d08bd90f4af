package match

import (
	"strings"
	"unicode"
)

// Normalize folds s to lower case and drops every rune that is neither a
// letter, a digit nor a qualifier separator ('.' or '/').
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '.' || r == '/':
			return r
		default:
			return -1
		}
	}, s)
}
