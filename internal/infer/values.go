package infer

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder tokens the export tool writes where a value is absent.
// Checked before parenthesis stripping, so a literal "(float)" is a
// placeholder while "(3.0)" is a wrapped number.
var placeholderTokens = []string{"(float)", "n/a", "?", "null"}

func isPlaceholder(s string) bool {
	for _, p := range placeholderTokens {
		if strings.EqualFold(s, p) {
			return true
		}
	}
	return false
}

// parseFloat parses a header value. Placeholder tokens, empty strings and
// anything non-numeric report false; parenthetical wrapping is stripped.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isPlaceholder(s) {
		return 0, false
	}
	s = strings.TrimSpace(strings.Trim(s, "()"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseInt parses a base-10 integer header value with the same
// placeholder handling as parseFloat.
func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isPlaceholder(s) {
		return 0, false
	}
	s = strings.TrimSpace(strings.Trim(s, "()"))
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// roundTo rounds to places decimal places, half away from zero.
func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// msToSeconds converts a millisecond reading to seconds at the 6-decimal
// precision all time fields carry.
func msToSeconds(ms float64) float64 {
	return roundTo(ms/1000.0, 6)
}
