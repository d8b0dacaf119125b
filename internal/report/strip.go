package report

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripHTML reduces a markup-bearing field to its text content. Plain
// strings pass through unchanged.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// truncate shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
