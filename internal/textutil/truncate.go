package textutil

import "strings"

// Truncate collapses runs of whitespace and shortens value to at most limit
// runes, marking the cut with an ellipsis. A non-positive limit disables
// truncation.
func Truncate(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return string(runes[:1])
	}
	return string(runes[:limit-1]) + "…"
}
