package analyzer

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// Tokens lower-cases text and returns its runs of ASCII letters in order.
// Digits, punctuation and every other character only separate tokens.
func Tokens(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
