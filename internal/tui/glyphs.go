package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font. Instead we choose between
// Unicode and ASCII glyph sets for row affordances (grip handle, checkbox,
// drop marker).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set. TODO_TUI_GLYPHS wins over the
// configured value; unknown values are ignored.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(os.Getenv("TODO_TUI_GLYPHS"))
	if v == "" {
		v = configured
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphGrip() string {
	if glyphs() == glyphSetASCII {
		return ":"
	}
	return "⋮"
}

func glyphDropTarget() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphCheckbox(done bool) string {
	if glyphs() == glyphSetASCII {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "[✓]"
	}
	return "[ ]"
}
