package tui

import (
	"os"
	"strings"
	"sync"

	"geomag-cli/internal/geoformat"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for UI affordances (placeholders,
// separators, markers). This helps on terminals/fonts that don't render some
// glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference reads GEOMAG_TUI_GLYPHS, then the configured value.
func applyGlyphPreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("GEOMAG_TUI_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
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

// glyphPlaceholder fills computed cells that have no value.
func glyphPlaceholder() string {
	if glyphs() == glyphSetASCII {
		return geoformat.ASCIIPlaceholder
	}
	return geoformat.Placeholder
}

func glyphFocus() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphError() string {
	if glyphs() == glyphSetASCII {
		return "!"
	}
	return "✗"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
