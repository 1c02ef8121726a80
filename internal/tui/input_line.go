package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderCell lays text out in a fixed-width table cell.
func renderCell(w int, text string, st lipgloss.Style) string {
	if w < 1 {
		w = 1
	}

	// Cells always render as a single visual line; stray newlines would break
	// the row layout.
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")

	if xansi.StringWidth(text) > w {
		// Terminate ANSI styling to prevent bleed into the next cell.
		text = xansi.Cut(text, 0, w) + "\x1b[0m"
	}
	return st.Render(lipgloss.PlaceHorizontal(w, lipgloss.Left, text, lipgloss.WithWhitespaceChars(" ")))
}
