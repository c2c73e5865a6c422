package utils

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// Truncate shortens s to at most max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}

	var builder strings.Builder
	builder.Grow(max + len(ellipsis))

	n := 0
	for _, r := range s {
		if n == max {
			break
		}
		builder.WriteRune(r)
		n++
	}
	builder.WriteString(ellipsis)
	return builder.String()
}

// CollapseSpace replaces every run of whitespace with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
