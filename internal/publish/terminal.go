package publish

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// RenderTerminal renders markdown for a terminal of the given width.
// style is a glamour standard style name ("dark", "light", "notty", ...);
// empty means "dark". On renderer failure the plain markdown is returned.
func RenderTerminal(md string, width int, style string) string {
	if width < 20 {
		width = 20
	}
	style = strings.TrimSpace(style)
	if style == "" {
		style = styles.DarkStyle
	}
	// Avoid WithAutoStyle(): it can block waiting on terminal queries in some setups.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
