package asset

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numericPrefix matches the longest decimal literal at the start of a string:
// optional sign, Infinity, or digits with optional fraction and exponent.
var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|[0-9]+\.?[0-9]*(?:[eE][+-]?[0-9]+)?|\.[0-9]+(?:[eE][+-]?[0-9]+)?)`)

// isLeadingSpace reports Unicode white space and the byte order mark
func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// LeadingFloat extracts a float from the beginning of s.
// Leading white space and U+FEFF are skipped and trailing garbage is ignored,
// so "16.8km" yields 16.8 while "abc" and "" yield ok=false.
func LeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, isLeadingSpace)
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}
