package search

import (
	"regexp"
	"strings"
)

var (
	tagPattern       = regexp.MustCompile(`<\/?("[^"]*"|'[^']*'|[^>])*(>|$)`)
	shortcodePattern = regexp.MustCompile(`\[.*?\]`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// StripMarkup reduces a rendered article body to indexable plain text:
// HTML tags and editor shortcodes are removed, whitespace collapsed.
func StripMarkup(body string) string {
	out := tagPattern.ReplaceAllString(body, "")
	out = shortcodePattern.ReplaceAllString(out, "")
	out = spacePattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
