package views

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdMu        sync.Mutex
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// renderMarkup renders a markup-bearing field for terminal display.
// Renderers are cached per wrap width; a fixed style avoids the
// terminal capability queries WithAutoStyle can block on.
func renderMarkup(text string, width int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdMu.Lock()
	r := mdRenderers[width]
	mdMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		mdMu.Lock()
		mdRenderers[width] = rr
		mdMu.Unlock()
		r = rr
	}

	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
