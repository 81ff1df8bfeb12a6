package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws the new-task input as a single full-width line.
func renderInputLine(width int, inputView string, focused bool) string {
	if width < 10 {
		width = 10
	}

	// The input must stay on one visual line; a stray newline would look like
	// the terminal inserting rows while typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	bg := colorInputBg
	if focused {
		bg = colorSelectedBg
	}
	line := lipgloss.PlaceHorizontal(
		width,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(bg),
	)
	if xansi.StringWidth(line) > width {
		// Terminate ANSI styling so a cut never bleeds into the rows below.
		line = xansi.Cut(line, 0, width) + "\x1b[0m"
	}
	return line
}
