package service

import (
	"regexp"
	"strings"
)

// reasoning blocks some upstream models prepend to their answer
var (
	thinkBlockRe      = regexp.MustCompile(`(?is)<think\b[^>]*>.*?</think\s*>`)
	detailsBlockRe    = regexp.MustCompile(`(?is)<details\b[^>]*>.*?</details\s*>`)
	extraBlankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// CleanAnswer cuts <think> and <details> blocks out of an answer. Everything outside
// those spans is kept byte for byte, so quiz text containing '<' or '&' survives.
func CleanAnswer(answer string) string {
	cleaned := thinkBlockRe.ReplaceAllString(answer, "")
	cleaned = detailsBlockRe.ReplaceAllString(cleaned, "")
	if cleaned != answer {
		cleaned = extraBlankLinesRe.ReplaceAllString(cleaned, "\n\n")
	}
	return strings.TrimSpace(cleaned)
}
