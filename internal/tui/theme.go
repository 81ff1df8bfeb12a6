package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette for the task list. Adaptive colors keep rows readable on light and
// dark backgrounds; faint styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	// Alternating row shading.
	colorRowEvenBg lipgloss.TerminalColor = ac("255", "235")
	colorRowOddBg  lipgloss.TerminalColor = ac("254", "236")
	colorRowFg     lipgloss.TerminalColor = ac("235", "252")

	colorInputBg lipgloss.TerminalColor = ac("254", "234")
	colorAccent  lipgloss.TerminalColor = ac("27", "62")
	colorDropFg  lipgloss.TerminalColor = ac("27", "75")
	colorError   lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError).Bold(true)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
func applyColorProfilePreference() {
	lipgloss.SetColorProfile(colorProfileFor(os.Getenv, termenv.ColorProfile()))
}

// colorProfileFor upgrades the detected profile from TERM/COLORTERM hints.
// Only NO_COLOR turns colors off; CLICOLOR is ignored inside the alt screen.
func colorProfileFor(getenv func(string) string, detected termenv.Profile) termenv.Profile {
	env := func(k string) string { return strings.ToLower(strings.TrimSpace(getenv(k))) }

	switch colorterm, term := env("COLORTERM"), env("TERM"); {
	case env("NO_COLOR") != "":
		return termenv.Ascii
	case detected == termenv.Ascii:
		if strings.Contains(term, "256color") {
			return termenv.ANSI256
		}
		return detected
	case colorterm == "truecolor" || colorterm == "24bit":
		return termenv.TrueColor
	case detected == termenv.ANSI && strings.Contains(term, "256color"):
		return termenv.ANSI256
	default:
		return detected
	}
}

// applyThemePreference configures Lip Gloss's background detection:
// TODO_TUI_THEME=light|dark wins, then the COLORFGBG ("fg;bg") heuristic.
func applyThemePreference() {
	if dark, ok := darkBackgroundFor(os.Getenv); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}

func darkBackgroundFor(getenv func(string) string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(getenv("TODO_TUI_THEME"))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}
	v := strings.TrimSpace(getenv("COLORFGBG"))
	if v == "" {
		return false, false
	}
	bg, err := strconv.Atoi(strings.TrimSpace(v[strings.LastIndex(v, ";")+1:]))
	if err != nil {
		return false, false
	}
	return bg < 7 || bg == 8, true
}
