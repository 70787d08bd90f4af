package common

import (
	"go/token"
	"strings"
	"unicode"
)

// ExportName turns an arbitrary name into an exported Go identifier.
// Examples:
//   - "hitPoints" -> "HitPoints"
//   - "m_Speed"   -> "MSpeed"
//   - "Main Camera" -> "MainCamera"
//   - "2D"        -> "X2D"
//
// Returns "X" for names without any letter or digit.
func ExportName(s string) string {
	tokens := tokenizeCamelCase(s)
	if len(tokens) == 0 {
		return "X"
	}

	var b strings.Builder

	for _, tok := range tokens {
		runes := []rune(tok)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	out := b.String()
	if first := []rune(out)[0]; !unicode.IsLetter(first) {
		out = "X" + out
	}

	return out
}

// UnexportName returns the unexported form of an identifier by lowering its
// leading acronym or letter. Keywords get a trailing underscore.
// Examples:
//   - "ItemView" -> "itemView"
//   - "HTTPItem" -> "httpItem"
//   - "Type"     -> "type_"
func UnexportName(s string) string {
	runes := []rune(ExportName(s))

	i := 0
	for i < len(runes) && unicode.IsUpper(runes[i]) {
		// keep the last capital of an acronym when a lowercase run follows
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}

		runes[i] = unicode.ToLower(runes[i])
		i++
	}

	out := string(runes)
	if token.IsKeyword(out) {
		out += "_"
	}

	return out
}

// IsIdent reports whether s is a valid Go identifier that is not a keyword.
func IsIdent(s string) bool {
	return token.IsIdentifier(s)
}

// tokenizeCamelCase splits a CamelCase, snake_case or spaced string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "Ignore Raycast" -> ["Ignore", "Raycast"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true for every rune that cannot appear in an identifier.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)
	isPrevSep := isSeparator(prevRune)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// "XMLParser" -> "XML" + "Parser", split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
